package meshing

import (
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/cedric-h/hypermine/internal/config"
)

// serialCutoff is the slot count below which splitting a pass across
// workers costs more than it saves.
const serialCutoff = 4096

var (
	passPoolOnce sync.Once
	passPool     pond.Pool
)

// parallelFor runs fn over contiguous sub-ranges of [0,n), one per worker,
// and returns once every range has completed. Ranges never overlap, so fn
// may write freely to per-index data. Small n runs inline.
func parallelFor(n int, fn func(lo, hi int)) {
	workers := config.GetMeshWorkers()
	if n < serialCutoff || workers <= 1 {
		fn(0, n)
		return
	}

	// The pool is built once at the config clamp limit, not at the current
	// worker count: the count is re-read on every call and only drives the
	// range split, so SetMeshWorkers keeps working after the first pass.
	passPoolOnce.Do(func() {
		passPool = pond.NewPool(config.MeshWorkerLimit())
	})

	step := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += step {
		lo, hi := lo, min(lo+step, n)
		wg.Add(1)
		passPool.Submit(func() {
			defer wg.Done()
			fn(lo, hi)
		})
	}
	wg.Wait()
}
