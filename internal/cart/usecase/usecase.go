package usecase

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/cart/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	UserByID(ctx context.Context, id string) (account.User, error)
	BookExists(ctx context.Context, id string) (bool, error)
	BooksWithAuthors(ctx context.Context, ids []string) ([]entity.Line, error)
}

type repoCache interface {
	CartFor(ctx context.Context, customerID string) (*entity.Cart, error)
	SaveCart(ctx context.Context, c *entity.Cart) error
}

type Usecase struct {
	repoDB    repoDB
	repoCache repoCache
	jwt       jwt.JWT
	ins       instrument.Instrumentation

	carts *workflow.Mutation[*account.Customer, *entity.Cart, CartOutput]
}

type Dependency struct {
	RepoDB     repoDB
	RepoCache  repoCache
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB:    dep.RepoDB,
		repoCache: dep.RepoCache,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
	}

	s.carts = &workflow.Mutation[*account.Customer, *entity.Cart, CartOutput]{
		Entity:       "cart",
		Authenticate: s.authenticate,
		Actor: func(ctx context.Context, id string) (*account.Customer, error) {
			u, err := s.repoDB.UserByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return account.Narrow[*account.Customer](u)
		},
		Aggregate: func(ctx context.Context, c *account.Customer, _ string) (*entity.Cart, error) {
			return s.repoCache.CartFor(ctx, c.ID)
		},
		Persist: s.repoCache.SaveCart,
		Respond: s.cartOutput,
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("cart.usecase").Start(ctx, name)
}

func (s *Usecase) authenticate(token string) (string, error) {
	clm, err := s.jwt.Verify(token)
	if err != nil {
		return "", err
	}
	return clm.UserID, nil
}
