package identity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkaramon/book-store-sub000/internal/identity/inbound"
	"github.com/pkaramon/book-store-sub000/internal/identity/outbound/db"
	"github.com/pkaramon/book-store-sub000/internal/identity/outbound/mq"
	"github.com/pkaramon/book-store-sub000/internal/identity/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/authz"
	"github.com/pkaramon/book-store-sub000/internal/pkg/clock"
	"github.com/pkaramon/book-store-sub000/internal/pkg/config"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goroutine"
	"github.com/pkaramon/book-store-sub000/internal/pkg/hash"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/messaging"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Authz      authz.Authorizer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.StringID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Passwords  *hash.PasswordMaker        `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  *validator.Validator       `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

// New wires the module and, when identity.admin.email is configured,
// makes sure that administrator exists.
func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Struct(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.UUID, dep.Clock, dep.Instrument),
		Tagger:        dep.Validator,
		Passwords:     dep.Passwords,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Authz:         dep.Authz,
		Goroutine:     dep.Goroutine,
	})

	if email := dep.Config.GetString("identity.admin.email"); email != "" {
		if err := uc.EnsureAdmin(ctx, usecase.RegisterCustomerInput{
			FirstName: dep.Config.GetString("identity.admin.first_name"),
			LastName:  dep.Config.GetString("identity.admin.last_name"),
			Email:     email,
			Password:  dep.Config.GetString("identity.admin.password"),
			BirthDate: dep.Config.GetString("identity.admin.birth_date"),
		}); err != nil {
			return err
		}
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
