package meshing

import (
	"reflect"
	"testing"
	"time"

	"github.com/cedric-h/hypermine/internal/world"
)

func TestWorkerPoolCompletesJobs(t *testing.T) {
	w := world.New()
	var gen world.PatternGenerator
	coords := []world.ChunkCoord{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}}
	for _, cc := range coords {
		gen.Populate(w.Chunk(cc, true))
	}

	pool := NewWorkerPool(2, 8)
	defer pool.Shutdown()

	dims := world.Cube(world.ChunkSize)
	slots := uint32(FaceSlots(dims))
	results := make(chan MeshResult, len(coords))
	for i, cc := range coords {
		pool.SubmitJobBlocking(MeshJob{
			Src:        w.SamplerFor(cc),
			Dims:       dims,
			Coord:      cc,
			FirstQuad:  uint32(i) * slots,
			ResultChan: results,
		})
	}

	got := map[world.ChunkCoord]MeshResult{}
	for range coords {
		select {
		case r := <-results:
			got[r.Coord] = r
		case <-time.After(10 * time.Second):
			t.Fatal("timed out waiting for mesh results")
		}
	}

	for i, cc := range coords {
		r, ok := got[cc]
		if !ok {
			t.Fatalf("no result for chunk %v", cc)
		}
		if r.Error != nil {
			t.Fatalf("chunk %v: unexpected error %v", cc, r.Error)
		}
		wantSurfaces, wantArgs := Extract(w.SamplerFor(cc), dims, uint32(i)*slots, nil)
		if r.Args != wantArgs {
			t.Fatalf("chunk %v args: got %+v, want %+v", cc, r.Args, wantArgs)
		}
		if !reflect.DeepEqual(r.Surfaces, append([]Surface{}, wantSurfaces...)) {
			t.Fatalf("chunk %v surfaces differ from direct extraction", cc)
		}
	}
}

func TestWorkerPoolEmptyChunkShortCircuits(t *testing.T) {
	w := world.New()
	pool := NewWorkerPool(1, 2)
	defer pool.Shutdown()

	results := make(chan MeshResult, 1)
	pool.SubmitJobBlocking(MeshJob{
		Src:        w.SamplerFor(world.ChunkCoord{X: 5, Y: 5, Z: 5}),
		Dims:       world.Cube(world.ChunkSize),
		Coord:      world.ChunkCoord{X: 5, Y: 5, Z: 5},
		FirstQuad:  9,
		ResultChan: results,
	})

	r := <-results
	if r.Error != nil {
		t.Fatalf("unexpected error: %v", r.Error)
	}
	if len(r.Surfaces) != 0 {
		t.Fatalf("surfaces: got %d, want 0", len(r.Surfaces))
	}
	want := DrawArgs{VertexCount: 0, InstanceCount: 1, FirstVertex: 54, FirstIndex: 0}
	if r.Args != want {
		t.Fatalf("empty chunk args: got %+v, want %+v", r.Args, want)
	}
}

func TestWorkerPoolNilSourceErrors(t *testing.T) {
	pool := NewWorkerPool(1, 2)
	defer pool.Shutdown()

	results := make(chan MeshResult, 1)
	pool.SubmitJobBlocking(MeshJob{
		Coord:      world.ChunkCoord{X: 1, Y: 2, Z: 3},
		ResultChan: results,
	})

	r := <-results
	if r.Error == nil {
		t.Fatal("job without a voxel source should error")
	}
}

func TestWorkerPoolShutdown(t *testing.T) {
	pool := NewWorkerPool(4, 16)

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pool shutdown did not complete")
	}

	if ok := pool.SubmitJob(MeshJob{}); ok {
		// Queued but never processed; just make sure nothing blocks or
		// panics after shutdown.
		if n := pool.QueueLength(); n != 1 {
			t.Fatalf("queue length after post-shutdown submit: got %d, want 1", n)
		}
	}
}
