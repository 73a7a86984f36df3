// Command surfbench extracts surfaces for a grid of pattern-filled chunks
// through the worker pool and reports timing totals. With -soak it keeps
// re-extracting (mutating one voxel per round) until interrupted, which is
// handy for spotting allocation creep in the extraction passes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cedric-h/hypermine/internal/config"
	"github.com/cedric-h/hypermine/internal/meshing"
	"github.com/cedric-h/hypermine/internal/profiling"
	"github.com/cedric-h/hypermine/internal/world"
	"github.com/xlab/closer"
)

func main() {
	var (
		radius  = flag.Int("radius", 3, "populated chunk radius around the origin")
		rounds  = flag.Int("rounds", 1, "number of extraction rounds")
		workers = flag.Int("workers", config.GetMeshWorkers(), "mesh worker count")
		queue   = flag.Int("queue", config.GetMeshQueueSize(), "mesh job queue capacity")
		soak    = flag.Bool("soak", false, "keep extracting until interrupted")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	meshing.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config.SetMeshWorkers(*workers)
	config.SetMeshQueueSize(*queue)

	w := buildWorld(*radius)
	// Queue one extra ring of unloaded chunks so the pool's empty-chunk
	// short circuit shows up in the numbers too.
	coords := meshCoords(*radius + 1)

	pool := meshing.NewWorkerPool(config.GetMeshWorkers(), config.GetMeshQueueSize())

	side := 2*(*radius) + 1
	fmt.Printf("surfbench: %d chunks queued (%d populated), %d workers, queue %d\n",
		len(coords), side*side, config.GetMeshWorkers(), config.GetMeshQueueSize())

	if *soak {
		runSoak(w, coords, pool)
		return
	}

	for i := 1; i <= *rounds; i++ {
		st := runRound(w, coords, pool, nil)
		fmt.Printf("round %d: %s\n", i, st)
		if top := profiling.TopN(4); top != "" {
			fmt.Println("  hottest:", top)
		}
	}
	pool.Shutdown()
}

// buildWorld fills a flat layer of chunks around the origin with the test
// pattern.
func buildWorld(radius int) *world.World {
	w := world.New()
	var gen world.PatternGenerator
	for cz := -radius; cz <= radius; cz++ {
		for cx := -radius; cx <= radius; cx++ {
			gen.Populate(w.Chunk(world.ChunkCoord{X: cx, Z: cz}, true))
		}
	}
	return w
}

func meshCoords(radius int) []world.ChunkCoord {
	coords := make([]world.ChunkCoord, 0, (2*radius+1)*(2*radius+1))
	for cz := -radius; cz <= radius; cz++ {
		for cx := -radius; cx <= radius; cx++ {
			coords = append(coords, world.ChunkCoord{X: cx, Z: cz})
		}
	}
	return coords
}

type roundStats struct {
	chunks  int
	empty   int
	errors  int
	faces   int
	elapsed time.Duration
}

func (s roundStats) String() string {
	return fmt.Sprintf("%d chunks (%d empty, %d errors) in %v, %d faces, %d vertices, %.0f chunks/s",
		s.chunks, s.empty, s.errors, s.elapsed.Round(10*time.Microsecond),
		s.faces, s.faces*meshing.VertsPerFace, float64(s.chunks)/s.elapsed.Seconds())
}

// runRound submits every chunk as one job and waits for all results. Each
// chunk gets a fixed quad budget in the shared vertex space, the way a
// renderer with one big preallocated buffer would lay them out.
//
// A shutdown pool drops queued jobs without replying, so the result wait
// also watches done; a nil done never fires.
func runRound(w *world.World, coords []world.ChunkCoord, pool *meshing.WorkerPool, done <-chan struct{}) roundStats {
	profiling.Reset()
	start := time.Now()

	dims := world.Cube(world.ChunkSize)
	budget := uint32(meshing.FaceSlots(dims))
	results := make(chan meshing.MeshResult, len(coords))

	for i, coord := range coords {
		pool.SubmitJobBlocking(meshing.MeshJob{
			Src:        w.SamplerFor(coord),
			Dims:       dims,
			Coord:      coord,
			FirstQuad:  uint32(i) * budget,
			ResultChan: results,
		})
	}

	st := roundStats{chunks: len(coords)}
	for range coords {
		var r meshing.MeshResult
		select {
		case r = <-results:
		case <-done:
			st.elapsed = time.Since(start)
			return st
		}
		switch {
		case r.Error != nil:
			st.errors++
			fmt.Fprintf(os.Stderr, "chunk %v: %v\n", r.Coord, r.Error)
		case r.Args.VertexCount == 0:
			st.empty++
		default:
			st.faces += len(r.Surfaces)
		}
	}
	st.elapsed = time.Since(start)
	return st
}

// runSoak extracts rounds back to back until SIGINT. One voxel is toggled
// between rounds so the extracted data actually changes.
func runSoak(w *world.World, coords []world.ChunkCoord, pool *meshing.WorkerPool) {
	done := make(chan struct{})
	closer.Bind(func() {
		close(done)
		pool.Shutdown()
		fmt.Println("soak stopped")
	})

	go func() {
		for round := 1; ; round++ {
			select {
			case <-done:
				return
			default:
			}

			p := world.Vec3i{X: round % world.ChunkSize, Y: world.ChunkSize / 2, Z: world.ChunkSize / 2}
			if round%2 == 0 {
				w.Set(p, world.MaterialStone)
			} else {
				w.Set(p, world.MaterialVoid)
			}

			st := runRound(w, coords, pool, done)
			fmt.Printf("round %d: %s\n", round, st)
			if round%10 == 0 {
				fmt.Println("  hottest:", profiling.TopN(4))
			}
		}
	}()

	closer.Hold()
}
