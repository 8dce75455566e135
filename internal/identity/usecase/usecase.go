package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/pkg/authz"
	"github.com/pkaramon/book-store-sub000/internal/pkg/clock"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goroutine"
	"github.com/pkaramon/book-store-sub000/internal/pkg/hash"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"go.opentelemetry.io/otel/trace"
)

// DateLayout is the wire format of birth dates.
const DateLayout = time.DateOnly

type repoDB interface {
	UserByID(ctx context.Context, id string) (account.User, error)
	UserByEmail(ctx context.Context, email string) (account.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	InsertUser(ctx context.Context, u account.User) error
	UpdateUser(ctx context.Context, u account.User) error
	DeleteUser(ctx context.Context, id string) error
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, u account.User) error
}

type passwordMaker interface {
	Make(raw string, isHashed bool) (hash.Password, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	tagger        schema.Tagger
	passwords     passwordMaker
	uid           uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	authz         authz.Authorizer

	customerSchema *schema.Schema[RegisterCustomerInput]
	authorSchema   *schema.Schema[RegisterBookAuthorInput]

	registerCustomer *workflow.Registration[RegisterCustomerInput, *account.Customer]
	registerAuthor   *workflow.Registration[RegisterBookAuthorInput, *account.BookAuthor]
	registerAdmin    *workflow.Registration[RegisterCustomerInput, *account.Admin]
	self             *workflow.Mutation[account.User, account.User, ProfileOutput]
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Tagger        schema.Tagger
	Passwords     passwordMaker
	UID           uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Authz         authz.Authorizer
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		tagger:        dep.Tagger,
		passwords:     dep.Passwords,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		authz:         dep.Authz,
	}

	s.customerSchema = newCustomerSchema(dep.Tagger, dep.Clock.Now)
	s.authorSchema = newAuthorSchema(dep.Tagger, dep.Clock.Now)
	s.registerCustomer = newCustomerRegistration(s, dep.Goroutine)
	s.registerAuthor = newAuthorRegistration(s, dep.Goroutine)
	s.registerAdmin = newAdminRegistration(s)
	s.self = &workflow.Mutation[account.User, account.User, ProfileOutput]{
		Entity:       "user",
		Authenticate: s.authenticate,
		Actor:        s.repoDB.UserByID,
		Aggregate: func(_ context.Context, actor account.User, _ string) (account.User, error) {
			return actor, nil
		},
		Persist: func(ctx context.Context, u account.User) error {
			err := s.repoDB.UpdateUser(ctx, u)
			if errors.Is(err, goerror.ErrNotFound) {
				return goerror.NewNotFound("user", u.Info().ID)
			}
			return err
		},
		Respond: func(_ context.Context, _ account.User, u account.User) (ProfileOutput, error) {
			return newProfileOutput(u), nil
		},
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) authenticate(token string) (string, error) {
	clm, err := s.jwt.Verify(token)
	if err != nil {
		return "", err
	}
	return clm.UserID, nil
}
