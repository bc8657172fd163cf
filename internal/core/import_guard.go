package core

// import_guard.go admits a bounded number of concurrent imports.
//
// Imports are meant to run one at a time: a second request while one is in
// flight is rejected immediately with ErrImportInProgress instead of queueing.
// WaitForDrain lets shutdown wait for the running import to finish.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrImportInProgress is returned when every import slot is taken.
var ErrImportInProgress = errors.New("import already in progress")

// ImportGuard is a non-blocking semaphore over import runs.
type ImportGuard struct {
	slots chan struct{}

	mu     sync.RWMutex
	active int
}

// NewImportGuard allows at most max concurrent imports; max below 1 means 1.
func NewImportGuard(max int) *ImportGuard {
	if max <= 0 {
		max = 1
	}
	return &ImportGuard{slots: make(chan struct{}, max)}
}

// TryAcquire takes a slot without blocking and reports whether it succeeded.
// A successful call must be paired with Release.
func (g *ImportGuard) TryAcquire() bool {
	select {
	case g.slots <- struct{}{}:
		g.mu.Lock()
		g.active++
		g.mu.Unlock()
		return true
	default:
		return false
	}
}

// Release frees a slot taken by TryAcquire.
func (g *ImportGuard) Release() {
	g.mu.Lock()
	g.active--
	g.mu.Unlock()
	<-g.slots
}

// Active returns the number of imports currently running.
func (g *ImportGuard) Active() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active
}

// WaitForDrain blocks until no import is running or ctx is done.
func (g *ImportGuard) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if g.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
