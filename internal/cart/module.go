package cart

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkaramon/book-store-sub000/internal/cart/inbound"
	"github.com/pkaramon/book-store-sub000/internal/cart/outbound/cache"
	"github.com/pkaramon/book-store-sub000/internal/cart/outbound/db"
	"github.com/pkaramon/book-store-sub000/internal/cart/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
	"github.com/pkaramon/book-store-sub000/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Redis      redis.UniversalClient      `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  *validator.Validator       `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(_ context.Context, dep Dependency) error {
	if err := dep.Validator.Struct(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		RepoCache:  cache.New(dep.Redis, dep.Instrument),
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
