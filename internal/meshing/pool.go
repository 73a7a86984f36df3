package meshing

import (
	"context"
	"fmt"
	"sync"

	"github.com/cedric-h/hypermine/internal/world"
)

// MeshJob asks the pool to extract one chunk's surfaces.
type MeshJob struct {
	// Src supplies the chunk's voxels plus their one-voxel halo. A source
	// that also implements Empty() bool lets the pool skip whole-void
	// chunks without running the passes.
	Src  world.Sampler
	Dims world.Dims
	// Coord identifies the chunk in results.
	Coord world.ChunkCoord
	// FirstQuad is this chunk's quad offset in the shared vertex buffer.
	FirstQuad uint32
	// ResultChan receives the result when done.
	ResultChan chan MeshResult
}

// MeshResult is the outcome of one extraction job. Surfaces is owned by the
// receiver; the pool never touches it again.
type MeshResult struct {
	Coord    world.ChunkCoord
	Surfaces []Surface
	Args     DrawArgs
	Error    error
}

// WorkerPool runs extraction jobs on a fixed set of goroutines. Each worker
// keeps its own scratch Buffers, so steady-state meshing does not allocate
// beyond the per-result surface copies.
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a pool with the given worker count and job queue
// capacity and starts its workers.
func NewWorkerPool(workers, queueSize int) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a job without blocking.
// Returns true if it was queued, false if the queue is full.
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		Logger().Warn("mesh job dropped, queue full", "coord", job.Coord)
		return false
	}
}

// SubmitJobBlocking submits a job, waiting for queue space. Returns early
// if the pool shuts down first.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

// worker processes jobs until the pool shuts down.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	buf := &Buffers{}
	for {
		select {
		case job := <-p.jobQueue:
			result := p.process(job, buf)

			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *WorkerPool) process(job MeshJob, buf *Buffers) MeshResult {
	if job.Src == nil {
		return MeshResult{
			Coord: job.Coord,
			Error: fmt.Errorf("mesh job for chunk %v has no voxel source", job.Coord),
		}
	}

	// Whole-void chunks can't own a face, but their draw args still get
	// written so a renderer can consume every result the same way.
	if e, ok := job.Src.(interface{ Empty() bool }); ok && e.Empty() {
		return MeshResult{
			Coord: job.Coord,
			Args:  finalizeDraw(0, job.FirstQuad),
		}
	}

	surfaces, args := Extract(job.Src, job.Dims, job.FirstQuad, buf)

	// Copy out of the worker's scratch: the next job overwrites it.
	out := make([]Surface, len(surfaces))
	copy(out, surfaces)

	return MeshResult{
		Coord:    job.Coord,
		Surfaces: out,
		Args:     args,
	}
}

// Shutdown stops the workers and waits for them to exit. Queued jobs that
// no worker picked up are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// QueueLength returns the number of jobs waiting in the queue.
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}
