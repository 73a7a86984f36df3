package config

import (
	"runtime"
	"sync"
)

// MeshSettings holds surface-extraction tuning
type MeshSettings struct {
	mu        sync.RWMutex
	workers   int // parallel width for extraction passes and the chunk pool
	queueSize int // pending jobs the chunk pool will hold
}

var globalMeshSettings = &MeshSettings{
	workers:   runtime.NumCPU(),
	queueSize: 64, // default value
}

// MeshWorkerLimit returns the upper clamp SetMeshWorkers applies. Pool
// sizing uses it too, so a pool built at the limit can serve any worker
// count a setter will ever allow.
func MeshWorkerLimit() int {
	return 4 * runtime.NumCPU()
}

// GetMeshWorkers returns the number of workers used for meshing.
func GetMeshWorkers() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.workers
}

// SetMeshWorkers sets the number of workers used for meshing.
func SetMeshWorkers(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()

	// Clamp to reasonable values
	if n < 1 {
		n = 1
	}
	if limit := MeshWorkerLimit(); n > limit {
		n = limit
	}

	globalMeshSettings.workers = n
}

// GetMeshQueueSize returns the chunk pool's job queue capacity.
func GetMeshQueueSize() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.queueSize
}

// SetMeshQueueSize sets the chunk pool's job queue capacity.
func SetMeshQueueSize(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()

	if n < 1 {
		n = 1
	}
	if n > 4096 {
		n = 4096
	}

	globalMeshSettings.queueSize = n
}
