package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/authz"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
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

func (m *mockRepoDB) BookByID(ctx context.Context, id string) (*entity.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.Book)
	return b, args.Error(1)
}

func (m *mockRepoDB) BookWithAuthor(ctx context.Context, id string) (*entity.BookWithAuthor, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.BookWithAuthor)
	return b, args.Error(1)
}

func (m *mockRepoDB) ListBooks(ctx context.Context, f entity.BookFilter) ([]entity.BookWithAuthor, error) {
	args := m.Called(ctx, f)
	b, _ := args.Get(0).([]entity.BookWithAuthor)
	return b, args.Error(1)
}

func (m *mockRepoDB) SaveBook(ctx context.Context, b *entity.Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepoDB) UpdateBook(ctx context.Context, id string, p entity.BookPatch) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *mockRepoDB) DeleteBook(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepoDB) CommentByID(ctx context.Context, id string) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Comment)
	return c, args.Error(1)
}

func (m *mockRepoDB) CommentsByBook(ctx context.Context, bookID string) ([]entity.CommentWithAuthor, error) {
	args := m.Called(ctx, bookID)
	c, _ := args.Get(0).([]entity.CommentWithAuthor)
	return c, args.Error(1)
}

func (m *mockRepoDB) SaveComment(ctx context.Context, c *entity.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepoDB) DeleteComment(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCovers struct {
	mock.Mock
}

func (m *mockCovers) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockCovers) UploadURL(ctx context.Context, key, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockCovers) DownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCovers) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
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

type fixedID string

func (f fixedID) Generate() string { return string(f) }

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

type fixture struct {
	uc     *Usecase
	db     *mockRepoDB
	covers *mockCovers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	enforcer, err := authz.New(nil, authz.DefaultPolicies)
	require.NoError(t, err)

	f := &fixture{db: &mockRepoDB{}, covers: &mockCovers{}}
	f.uc = New(Dependency{
		RepoDB:     f.db,
		Covers:     f.covers,
		UID:        fixedID("500"),
		UUID:       fixedID("c0ffee"),
		Clock:      fixedClock{},
		JWT:        tokenJWT{},
		Instrument: instrument.NewNoop(),
		Authz:      enforcer,
	})

	t.Cleanup(func() {
		f.db.AssertExpectations(t)
		f.covers.AssertExpectations(t)
	})
	return f
}

func profile(id string) account.Profile {
	return account.Profile{
		ID:        id,
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann" + id + "@example.com",
		BirthDate: time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func author(id string) *account.BookAuthor {
	return &account.BookAuthor{Profile: profile(id), Bio: "Writes things"}
}

func customer(id string) *account.Customer {
	return &account.Customer{Profile: profile(id)}
}

func admin(id string) *account.Admin {
	return &account.Admin{Profile: profile(id)}
}

func book(id, authorID string) *entity.Book {
	return &entity.Book{
		ID:          id,
		AuthorID:    authorID,
		Title:       "Dune",
		Description: "Spice",
		PriceCents:  1999,
		CreatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func comment(id, bookID, authorID string) *entity.Comment {
	return &entity.Comment{
		ID:        id,
		BookID:    bookID,
		AuthorID:  authorID,
		Title:     "Great",
		Body:      "Loved it",
		Stars:     5,
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func requireCode(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()

	gerr, ok := goerror.As(err)
	require.True(t, ok, "expected goerror, got %v", err)
	require.Equal(t, code, gerr.Code(), gerr.String())
	return gerr
}

var errDBDown = errors.New("connection refused")
