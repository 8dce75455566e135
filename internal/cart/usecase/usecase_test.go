package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/cart/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepoDB struct {
	mock.Mock
}

func (m *mockRepoDB) UserByID(ctx context.Context, id string) (account.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(account.User)
	return u, args.Error(1)
}

func (m *mockRepoDB) BookExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepoDB) BooksWithAuthors(ctx context.Context, ids []string) ([]entity.Line, error) {
	args := m.Called(ctx, ids)
	l, _ := args.Get(0).([]entity.Line)
	return l, args.Error(1)
}

// memCache stores carts by customer and counts saves.
type memCache struct {
	carts   map[string][]string
	saves   int
	saveErr error
}

func (c *memCache) CartFor(_ context.Context, customerID string) (*entity.Cart, error) {
	return entity.NewCart(customerID, c.carts[customerID]...), nil
}

func (c *memCache) SaveCart(_ context.Context, cart *entity.Cart) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	c.saves++
	c.carts[cart.CustomerID] = cart.GetAll()
	return nil
}

type tokenJWT struct{}

func (tokenJWT) Generate(userID, _ string) (string, error) { return "tok-" + userID, nil }

func (tokenJWT) Verify(token string) (jwt.Claims, error) {
	id, ok := strings.CutPrefix(token, "tok-")
	if !ok {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return jwt.Claims{UserID: id}, nil
}

type fixture struct {
	uc    *Usecase
	db    *mockRepoDB
	cache *memCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{db: &mockRepoDB{}, cache: &memCache{carts: map[string][]string{}}}
	f.uc = New(Dependency{RepoDB: f.db, RepoCache: f.cache, JWT: tokenJWT{}, Instrument: instrument.NewNoop()})

	t.Cleanup(func() { f.db.AssertExpectations(t) })
	return f
}

func profile(id string) account.Profile {
	return account.Profile{ID: id, FirstName: "Ann", LastName: "Lee", Email: id + "@example.com",
		BirthDate: time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC)}
}

func line(id string) entity.Line {
	return entity.Line{
		Book:   entity.Book{ID: id, AuthorID: "7", Title: "Book " + id, PriceCents: 1000},
		Author: &account.BookAuthor{Profile: account.Profile{ID: "7", FirstName: "Frank", LastName: "Herbert"}},
	}
}

func (f *fixture) customer(id string) {
	f.db.On("UserByID", mock.Anything, id).Return(&account.Customer{Profile: profile(id)}, nil)
}

func requireCode(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()

	gerr, ok := goerror.As(err)
	require.True(t, ok, "expected goerror, got %v", err)
	require.Equal(t, code, gerr.Code(), gerr.String())
	return gerr
}

func itemIDs(out *CartOutput) []string {
	ids := make([]string, len(out.Items))
	for i, it := range out.Items {
		ids[i] = it.Book.ID
	}
	return ids
}

func TestUsecase_AddToCart(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		f := newFixture(t)
		f.customer("1")
		f.db.On("BookExists", mock.Anything, "101").Return(true, nil)
		f.db.On("BookExists", mock.Anything, "102").Return(true, nil)
		f.db.On("BooksWithAuthors", mock.Anything, []string{"101"}).Return([]entity.Line{line("101")}, nil)
		f.db.On("BooksWithAuthors", mock.Anything, []string{"101", "102"}).Return([]entity.Line{line("101"), line("102")}, nil)

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "tok-1", BookID: "101"})
		require.NoError(t, err)
		out, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "tok-1", BookID: "102"})
		require.NoError(t, err)

		assert.Equal(t, []string{"101", "102"}, f.cache.carts["1"])
		assert.Equal(t, "1", out.CustomerID)
		assert.Equal(t, []string{"101", "102"}, itemIDs(out))
		assert.Equal(t, "Herbert", out.Items[0].Author.LastName)
	})

	t.Run("allows duplicates", func(t *testing.T) {
		f := newFixture(t)
		f.cache.carts["1"] = []string{"101"}
		f.customer("1")
		f.db.On("BookExists", mock.Anything, "101").Return(true, nil)
		f.db.On("BooksWithAuthors", mock.Anything, []string{"101", "101"}).Return([]entity.Line{line("101"), line("101")}, nil)

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "tok-1", BookID: "101"})
		require.NoError(t, err)
		assert.Equal(t, []string{"101", "101"}, f.cache.carts["1"])
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newFixture(t)
		f.customer("1")
		f.db.On("BookExists", mock.Anything, "999").Return(false, nil)

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "tok-1", BookID: "999"})
		gerr := requireCode(t, err, goerror.CodeNotFound)
		assert.Equal(t, "book", gerr.Detail(goerror.DetailEntity))
		assert.Zero(t, f.cache.saves)
	})

	t.Run("empty book id", func(t *testing.T) {
		f := newFixture(t)
		f.customer("1")

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "tok-1", BookID: " "})
		gerr := requireCode(t, err, goerror.CodeInvalidInput)
		assert.Equal(t, []string{"bookId"}, gerr.InvalidProperties())
		assert.Zero(t, f.cache.saves)
	})

	t.Run("bad token wins over empty book id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "nope", BookID: "  "})
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		_, isGoerror := goerror.As(err)
		assert.False(t, isGoerror)
	})

	t.Run("author has no cart", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.BookAuthor{Profile: profile("7")}, nil)

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "tok-7", BookID: "101"})
		gerr := requireCode(t, err, goerror.CodeInvalidType)
		assert.Equal(t, "customer", gerr.Detail(goerror.DetailExpected))
		assert.Equal(t, "book_author", gerr.Detail(goerror.DetailActual))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "5").Return(nil, goerror.ErrNotFound)

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "tok-5", BookID: "101"})
		gerr := requireCode(t, err, goerror.CodeNotFound)
		assert.Equal(t, "user", gerr.Detail(goerror.DetailEntity))
	})

	t.Run("bad token", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "nope", BookID: "101"})
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("save failure", func(t *testing.T) {
		f := newFixture(t)
		f.cache.saveErr = errors.New("redis down")
		f.customer("1")
		f.db.On("BookExists", mock.Anything, "101").Return(true, nil)

		_, err := f.uc.AddToCart(context.Background(), CartItemInput{Token: "tok-1", BookID: "101"})
		gerr := requireCode(t, err, goerror.CodeInternal)
		assert.Equal(t, "saving cart", gerr.Step())
	})
}

func TestUsecase_RemoveFromCart(t *testing.T) {
	t.Run("removes the first occurrence", func(t *testing.T) {
		f := newFixture(t)
		f.cache.carts["1"] = []string{"101", "102", "101"}
		f.customer("1")
		f.db.On("BooksWithAuthors", mock.Anything, []string{"102", "101"}).Return([]entity.Line{line("102"), line("101")}, nil)

		out, err := f.uc.RemoveFromCart(context.Background(), CartItemInput{Token: "tok-1", BookID: "101"})
		require.NoError(t, err)
		assert.Equal(t, []string{"102", "101"}, itemIDs(out))
	})

	t.Run("absent book leaves the cart untouched", func(t *testing.T) {
		f := newFixture(t)
		f.cache.carts["1"] = []string{"101"}
		f.customer("1")

		_, err := f.uc.RemoveFromCart(context.Background(), CartItemInput{Token: "tok-1", BookID: "102"})
		gerr := requireCode(t, err, goerror.CodeNotFound)
		assert.Equal(t, "cart item", gerr.Detail(goerror.DetailEntity))
		assert.Equal(t, "102", gerr.Detail(goerror.DetailID))
		assert.Zero(t, f.cache.saves)
		assert.Equal(t, []string{"101"}, f.cache.carts["1"])
	})
}

func TestUsecase_ClearCart(t *testing.T) {
	f := newFixture(t)
	f.cache.carts["1"] = []string{"101", "102"}
	f.customer("1")
	f.db.On("BooksWithAuthors", mock.Anything, []string(nil)).Return(nil, nil)

	out, err := f.uc.ClearCart(context.Background(), CartInput{Token: "tok-1"})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Empty(t, f.cache.carts["1"])
}

func TestUsecase_ViewCart(t *testing.T) {
	t.Run("skips deleted books without saving", func(t *testing.T) {
		f := newFixture(t)
		f.cache.carts["1"] = []string{"101", "gone"}
		f.customer("1")
		f.db.On("BooksWithAuthors", mock.Anything, []string{"101", "gone"}).Return([]entity.Line{line("101")}, nil)

		out, err := f.uc.ViewCart(context.Background(), CartInput{Token: "tok-1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"101"}, itemIDs(out))
		assert.Zero(t, f.cache.saves)
	})

	t.Run("catalogue failure", func(t *testing.T) {
		f := newFixture(t)
		f.customer("1")
		f.db.On("BooksWithAuthors", mock.Anything, []string(nil)).Return(nil, errors.New("connection refused"))

		_, err := f.uc.ViewCart(context.Background(), CartInput{Token: "tok-1"})
		gerr := requireCode(t, err, goerror.CodeInternal)
		assert.Equal(t, "building cart response", gerr.Step())
	})
}
