package main

import (
	"testing"
	"time"

	"github.com/cedric-h/hypermine/internal/meshing"
)

// A pool torn down mid-round drops its queued jobs without replying, so a
// round in flight must bail out through done instead of waiting on results
// that will never arrive.
func TestRunRoundReturnsAfterShutdown(t *testing.T) {
	w := buildWorld(1)
	coords := meshCoords(1)

	pool := meshing.NewWorkerPool(1, len(coords))
	pool.Shutdown()

	done := make(chan struct{})
	close(done)

	finished := make(chan roundStats, 1)
	go func() {
		finished <- runRound(w, coords, pool, done)
	}()

	select {
	case st := <-finished:
		if st.faces != 0 {
			t.Fatalf("faces from a dead pool: got %d, want 0", st.faces)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runRound kept waiting on a shut-down pool")
	}
}

// The non-soak path passes a nil done channel; a full round must still
// complete on it.
func TestRunRoundNilDoneCompletes(t *testing.T) {
	w := buildWorld(1)
	coords := meshCoords(1)

	pool := meshing.NewWorkerPool(2, len(coords))
	defer pool.Shutdown()

	st := runRound(w, coords, pool, nil)
	if st.chunks != len(coords) {
		t.Fatalf("chunks: got %d, want %d", st.chunks, len(coords))
	}
	if st.faces == 0 {
		t.Fatal("pattern chunks produced no faces")
	}
}
