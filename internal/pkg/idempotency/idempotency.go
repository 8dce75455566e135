// Package idempotency guards message handlers against redelivery using
// Redis as the shared record of processed keys.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrInProgress means another worker holds the key.
	ErrInProgress = errors.New("idempotency: operation already in progress")
	// ErrCompleted means the key was processed before.
	ErrCompleted = errors.New("idempotency: operation already completed")
	// ErrInvalidState means the stored value is not a known state.
	ErrInvalidState = errors.New("idempotency: invalid state")
)

// State of a key.
type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

func (s State) String() string {
	return string(s)
}

const (
	defaultLockDuration = time.Minute
	defaultDoneTTL      = 24 * time.Hour
)

// Guard runs a function at most once per key.
type Guard struct {
	client  redis.Cmdable
	prefix  string
	lock    time.Duration
	doneTTL time.Duration
}

// Option configures a Guard.
type Option func(*Guard)

// WithPrefix namespaces keys.
func WithPrefix(prefix string) Option {
	return func(g *Guard) { g.prefix = prefix }
}

// WithLockDuration bounds how long an in-progress claim survives a crashed worker.
func WithLockDuration(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.lock = d
		}
	}
}

// WithCompletedTTL sets how long completed keys are remembered.
func WithCompletedTTL(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.doneTTL = d
		}
	}
}

// New returns a Guard backed by client.
func New(client redis.Cmdable, opts ...Option) *Guard {
	g := &Guard{client: client, prefix: "idempotency:", lock: defaultLockDuration, doneTTL: defaultDoneTTL}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Acquire claims key. It returns StateNone when the caller now owns it.
func (g *Guard) Acquire(ctx context.Context, key string) (State, error) {
	fk := g.prefix + key

	acquired, err := g.client.SetNX(ctx, fk, StateInProgress.String(), g.lock).Result()
	if err != nil {
		return StateNone, fmt.Errorf("idempotency: acquire: %w", err)
	}
	if acquired {
		return StateNone, nil
	}

	current, err := g.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return g.Acquire(ctx, key)
	}
	if err != nil {
		return StateNone, fmt.Errorf("idempotency: read state: %w", err)
	}

	switch State(current) {
	case StateInProgress:
		return StateInProgress, nil
	case StateCompleted:
		return StateCompleted, nil
	default:
		return StateNone, ErrInvalidState
	}
}

// Do runs fn if key was not processed yet. A failed fn releases the key so
// a redelivery can try again.
func (g *Guard) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	state, err := g.Acquire(ctx, key)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrInProgress
	case StateCompleted:
		return ErrCompleted
	}

	if err := fn(ctx); err != nil {
		return errors.Join(err, g.client.Del(context.WithoutCancel(ctx), g.prefix+key).Err())
	}

	return g.client.Set(ctx, g.prefix+key, StateCompleted.String(), g.doneTTL).Err()
}
