package notification

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/notification/inbound"
	"github.com/pkaramon/book-store-sub000/internal/notification/outbound/email"
	"github.com/pkaramon/book-store-sub000/internal/notification/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/clock"
	"github.com/pkaramon/book-store-sub000/internal/pkg/config"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goroutine"
	"github.com/pkaramon/book-store-sub000/internal/pkg/idempotency"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/mail"
	"github.com/pkaramon/book-store-sub000/internal/pkg/messaging"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	Messaging  messaging.Messaging        `validate:"required"`
	Redis      redis.UniversalClient      `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Validator  *validator.Validator       `validate:"required"`
}

// New starts the welcome consumer. It stops when ctx is done.
func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Struct(dep); err != nil {
		return err
	}

	guard := idempotency.New(dep.Redis,
		idempotency.WithPrefix("notification:"),
		idempotency.WithCompletedTTL(dep.Config.GetMinute("notification.dedup_ttl_minutes")),
	)

	repoMail := email.New(dep.Mail, email.Config{
		MaxAttempts:     uint64(dep.Config.GetInt("notification.mail.max_attempts")),
		InitialBackoff:  dep.Config.GetSecond("notification.mail.initial_backoff_seconds"),
		MaxBackoff:      dep.Config.GetSecond("notification.mail.max_backoff_seconds"),
		BreakerFailures: uint32(dep.Config.GetInt("notification.mail.breaker_failures")),
		BreakerTimeout:  dep.Config.GetSecond("notification.mail.breaker_timeout_seconds"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoMail:   repoMail,
		Guard:      guard,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		Brand: usecase.Brand{
			AppName:      dep.Config.GetString("app.name"),
			SupportEmail: dep.Config.GetString("app.support_email"),
		},
	})

	inbound.RegisterMQConsumer(ctx, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	return nil
}
