// Package email delivers notification mail through a circuit breaker with
// bounded retries.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Config bounds retries and trips the breaker. Zero values take defaults.
type Config struct {
	MaxAttempts     uint64
	InitialBackoff  time.Duration
	MaxBackoff      time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 200 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 5 * time.Second
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
	return c
}

type Mail struct {
	client  mail.Mail
	cfg     Config
	breaker *gobreaker.CircuitBreaker[struct{}]
	ins     instrument.Instrumentation
}

func New(client mail.Mail, cfg Config, ins instrument.Instrumentation) *Mail {
	cfg = cfg.withDefaults()

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "mail",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Mail{client: client, cfg: cfg, breaker: breaker, ins: ins}
}

// Send tries up to MaxAttempts times with exponential backoff. An open
// breaker fails fast without further attempts.
func (m *Mail) Send(ctx context.Context, msg mail.Message) error {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "Send")
	defer span.End()

	b := retry.NewExponential(m.cfg.InitialBackoff)
	b = retry.WithCappedDuration(m.cfg.MaxBackoff, b)
	b = retry.WithMaxRetries(m.cfg.MaxAttempts-1, b)

	attempts := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		_, err := m.breaker.Execute(func() (struct{}, error) {
			return struct{}{}, m.client.Send(ctx, msg)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return err
		}
		if err != nil {
			slog.WarnContext(ctx, "mail delivery attempt failed", "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})

	span.SetAttributes(attribute.Int("mail.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// State reports the breaker state, e.g. "closed" or "open".
func (m *Mail) State() string {
	return m.breaker.State().String()
}
