package workflow

import (
	"context"
)

// Request identifies the caller and, for aggregates that are not scoped to
// the actor alone, the target aggregate.
type Request struct {
	Token  string
	Target string
}

// Mutate changes the aggregate in memory. It may return a domain error.
type Mutate[A, G any] func(ctx context.Context, actor A, aggregate G) error

// Mutation loads an actor A and an aggregate G, applies a Mutate step,
// persists G and builds a response R.
//
// There is no locking between loading and persisting the aggregate: two
// concurrent runs on the same aggregate race and the last Persist wins.
type Mutation[A, G, R any] struct {
	// Entity names the aggregate, e.g. "cart". It is used in not-found
	// errors and step descriptions.
	Entity string

	// Authenticate turns a token into an actor id. Its errors are returned
	// unchanged.
	Authenticate func(token string) (string, error)
	// Actor loads the actor. goerror.ErrNotFound becomes a user not-found
	// error; goerror errors such as an invalid type pass through.
	Actor func(ctx context.Context, id string) (A, error)
	// Aggregate loads the aggregate. goerror.ErrNotFound becomes a not-found
	// error for Entity and the request target.
	Aggregate func(ctx context.Context, actor A, target string) (G, error)
	// Authorize optionally checks the actor may change the aggregate.
	Authorize func(ctx context.Context, actor A, aggregate G) error
	Persist   func(ctx context.Context, aggregate G) error
	Respond   func(ctx context.Context, actor A, aggregate G) (R, error)
}

// Run executes the full sequence with mutate as the variable step.
func (m *Mutation[A, G, R]) Run(ctx context.Context, req Request, mutate Mutate[A, G]) (R, error) {
	var zero R

	actor, aggregate, err := m.load(ctx, req)
	if err != nil {
		return zero, err
	}

	if err := mutate(ctx, actor, aggregate); err != nil {
		return zero, err
	}

	if err := Do(ctx, "saving "+m.Entity, func() error { return m.Persist(ctx, aggregate) }); err != nil {
		return zero, err
	}

	return m.respond(ctx, actor, aggregate)
}

// View executes the sequence without mutating or persisting.
func (m *Mutation[A, G, R]) View(ctx context.Context, req Request) (R, error) {
	actor, aggregate, err := m.load(ctx, req)
	if err != nil {
		var zero R
		return zero, err
	}

	return m.respond(ctx, actor, aggregate)
}

func (m *Mutation[A, G, R]) load(ctx context.Context, req Request) (actor A, aggregate G, err error) {
	actorID, err := m.Authenticate(req.Token)
	if err != nil {
		return actor, aggregate, err
	}

	actor, err = Find(ctx, "fetching user", "user", actorID, func() (A, error) {
		return m.Actor(ctx, actorID)
	})
	if err != nil {
		return actor, aggregate, err
	}

	aggregate, err = Find(ctx, "fetching "+m.Entity, m.Entity, req.Target, func() (G, error) {
		return m.Aggregate(ctx, actor, req.Target)
	})
	if err != nil {
		return actor, aggregate, err
	}

	if m.Authorize != nil {
		err = Do(ctx, "authorizing "+m.Entity+" access", func() error {
			return m.Authorize(ctx, actor, aggregate)
		})
		if err != nil {
			return actor, aggregate, err
		}
	}

	return actor, aggregate, nil
}

func (m *Mutation[A, G, R]) respond(ctx context.Context, actor A, aggregate G) (R, error) {
	return Call(ctx, "building "+m.Entity+" response", func() (R, error) {
		return m.Respond(ctx, actor, aggregate)
	})
}
