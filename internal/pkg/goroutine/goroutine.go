package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/pkaramon/book-store-sub000/internal/pkg/stacktrace"
	"go.uber.org/atomic"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs background functions with a concurrency limit.
//
// Errors returned by tasks are collected and reported by Wait. A panicking
// task is recovered and logged.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	wg      sync.WaitGroup
	sema    chan struct{}
	stateMu sync.RWMutex
	closed  bool

	started  atomic.Int64
	rejected atomic.Int64
	failed   atomic.Int64
}

// Stats is a snapshot of the manager counters.
type Stats struct {
	Started  int64
	Rejected int64
	Failed   int64
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go schedules f and reports whether it was started. f is skipped when the
// manager is closed or already at its limit.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.stateMu.RLock()
	defer g.stateMu.RUnlock()

	if g.closed {
		g.rejected.Inc()
		slog.WarnContext(pCtx, "goroutine manager is closed, skipping new goroutine")
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		g.rejected.Inc()
		slog.WarnContext(pCtx, "maximum goroutine limit reached, failed to start new goroutine")
		return false
	}

	g.started.Inc()
	g.wg.Go(func() {
		defer func() {
			<-g.sema

			if rvr := recover(); rvr != nil {
				g.failed.Inc()
				stack := debug.Stack()
				if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
					slog.ErrorContext(pCtx, "panic occurred in goroutine", "panic", rvr, "stack", paths)
				} else {
					slog.ErrorContext(pCtx, "panic occurred in goroutine", "panic", rvr, "stack", string(stack))
				}
			}
		}()

		if err := pCtx.Err(); err != nil {
			slog.WarnContext(pCtx, "goroutine canceled", "because", err)
			return
		}

		if err := f(pCtx); err != nil {
			g.failed.Inc()
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	})

	return true
}

// Stats returns the current counters.
func (g *Manager) Stats() Stats {
	return Stats{
		Started:  g.started.Load(),
		Rejected: g.rejected.Load(),
		Failed:   g.failed.Load(),
	}
}

// Wait closes the manager, blocks until all scheduled goroutines finish and
// returns any collected errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
