package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
)

// Start serves HTTP in the background. The returned channel closes on
// SIGINT, SIGTERM or SIGHUP, or when the listener fails.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})
	sigCtx, stop := signal.NotifyContext(a.ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)
		err := a.httpServer.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	go func() {
		defer close(done)
		<-sigCtx.Done()
		stop()
		a.cancel()
		slog.Info("shutdown requested")
	}()

	return done
}

// Stop drains HTTP traffic and background work, then releases resources in
// registration order.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}

	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background work finished with errors", "error", err)
	}
	stats := a.goroutine.Stats()
	slog.InfoContext(ctx, "background work drained",
		"started", stats.Started, "rejected", stats.Rejected, "failed", stats.Failed)

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", c.name, "error", err)
		}
	}
	slog.InfoContext(ctx, "application stopped")
}
