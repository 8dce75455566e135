package usecase

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/pkg/clock"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/mail"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

// guard runs fn at most once per key.
type guard interface {
	Do(ctx context.Context, key string, fn func(context.Context) error) error
}

type Usecase struct {
	repoMail repoMail
	guard    guard
	clock    clock.Clocker
	ins      instrument.Instrumentation
	brand    Brand
}

// Brand is the sender identity shown in emails.
type Brand struct {
	AppName      string
	SupportEmail string
}

type Dependency struct {
	RepoMail   repoMail
	Guard      guard
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Brand      Brand
}

func New(dep Dependency) *Usecase {
	brand := dep.Brand
	if brand.AppName == "" {
		brand.AppName = "Book Store"
	}
	return &Usecase{
		repoMail: dep.RepoMail,
		guard:    dep.Guard,
		clock:    dep.Clock,
		ins:      dep.Instrument,
		brand:    brand,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}
