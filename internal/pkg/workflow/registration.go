package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goroutine"
	"go.uber.org/atomic"
)

var errNotScheduled = errors.New("notification not scheduled: background manager closed or full")

// Registration creates an entity E from input In.
//
// Steps run strictly in order and the first failure ends the run:
// Taken, Validate, Build, Save, then Notify. Uniqueness is checked before
// validation so a duplicate is reported as a conflict even when the input is
// also invalid. Notify failures never reach the caller.
type Registration[In, E any] struct {
	// Entity names the created entity in step descriptions, e.g. "user".
	Entity string
	// Conflict is the message used when Taken reports a duplicate.
	Conflict string

	Taken    func(ctx context.Context, in In) (bool, error)
	Validate func(ctx context.Context, in In) (In, error)
	Build    func(ctx context.Context, in In) (E, error)
	Save     func(ctx context.Context, e E) error
	Notify   func(ctx context.Context, e E) error
	ID       func(e E) string

	// Background runs Notify detached from the request. When nil Notify
	// runs inline and its error or panic is still discarded.
	Background *goroutine.Manager
	// Report observes Notify failures. Defaults to a warning log.
	Report func(ctx context.Context, err error)

	attempted atomic.Int64
	failed    atomic.Int64
}

// NotifyStats counts notification attempts and failures.
type NotifyStats struct {
	Attempted int64
	Failed    int64
}

// Run executes the registration and returns the new entity id.
func (r *Registration[In, E]) Run(ctx context.Context, in In) (string, error) {
	taken, err := Call(ctx, "checking "+r.Entity+" uniqueness", func() (bool, error) {
		return r.Taken(ctx, in)
	})
	if err != nil {
		return "", err
	}
	if taken {
		return "", goerror.NewConflict(r.conflictMessage())
	}

	clean, err := Call(ctx, "validating "+r.Entity, func() (In, error) {
		return r.Validate(ctx, in)
	})
	if err != nil {
		return "", err
	}

	entity, err := Call(ctx, "building "+r.Entity, func() (E, error) {
		return r.Build(ctx, clean)
	})
	if err != nil {
		return "", err
	}

	if err := Do(ctx, "saving "+r.Entity, func() error { return r.Save(ctx, entity) }); err != nil {
		return "", err
	}

	r.notify(ctx, entity)

	return r.ID(entity), nil
}

// NotifyStats returns the notification counters.
func (r *Registration[In, E]) NotifyStats() NotifyStats {
	return NotifyStats{Attempted: r.attempted.Load(), Failed: r.failed.Load()}
}

func (r *Registration[In, E]) notify(ctx context.Context, entity E) {
	if r.Notify == nil {
		return
	}

	r.attempted.Inc()
	task := func(ctx context.Context) error {
		if err := r.safeNotify(ctx, entity); err != nil {
			r.failed.Inc()
			r.report(ctx, err)
		}
		return nil
	}

	if r.Background == nil {
		_ = task(ctx)
		return
	}

	if !r.Background.Go(context.WithoutCancel(ctx), task) {
		r.failed.Inc()
		r.report(ctx, errNotScheduled)
	}
}

func (r *Registration[In, E]) safeNotify(ctx context.Context, entity E) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			err = fmt.Errorf("notification panicked: %v", rvr)
		}
	}()
	return r.Notify(ctx, entity)
}

func (r *Registration[In, E]) report(ctx context.Context, err error) {
	if r.Report != nil {
		r.Report(ctx, err)
		return
	}
	slog.WarnContext(ctx, "notification failed", "entity", r.Entity, "error", err)
}

func (r *Registration[In, E]) conflictMessage() string {
	if r.Conflict != "" {
		return r.Conflict
	}
	return r.Entity + " already exists"
}
