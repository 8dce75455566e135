package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkaramon/book-store-sub000/internal/catalog/inbound"
	"github.com/pkaramon/book-store-sub000/internal/catalog/outbound/cover"
	"github.com/pkaramon/book-store-sub000/internal/catalog/outbound/db"
	"github.com/pkaramon/book-store-sub000/internal/catalog/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/authz"
	"github.com/pkaramon/book-store-sub000/internal/pkg/clock"
	"github.com/pkaramon/book-store-sub000/internal/pkg/config"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
	"github.com/pkaramon/book-store-sub000/internal/pkg/storage"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Authz      authz.Authorizer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.StringID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  *validator.Validator       `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

// New wires books and comments. Covers live in storage.covers.bucket.
func New(_ context.Context, dep Dependency) error {
	if err := dep.Validator.Struct(dep); err != nil {
		return err
	}

	covers := cover.New(
		dep.Storage,
		dep.Config.GetString("storage.covers.bucket"),
		dep.Config.GetSecond("storage.covers.url_expiry_seconds"),
		dep.Instrument,
	)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		Covers:     covers,
		UID:        dep.UID,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
		Authz:      dep.Authz,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
