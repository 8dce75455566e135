package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/pkg/authz"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/hash"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/validator"
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

func (m *mockRepoDB) UserByEmail(ctx context.Context, email string) (account.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(account.User)
	return u, args.Error(1)
}

func (m *mockRepoDB) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepoDB) InsertUser(ctx context.Context, u account.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepoDB) UpdateUser(ctx context.Context, u account.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepoDB) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockRepoMessaging struct {
	mock.Mock
}

func (m *mockRepoMessaging) PublishUserRegistered(ctx context.Context, u account.User) error {
	return m.Called(ctx, u).Error(0)
}

// plainHash keeps tests fast; it is not a real hash.
type plainHash struct{}

func (plainHash) Hash(p string) ([]byte, error) { return []byte("h:" + p), nil }
func (plainHash) Verify(h, p string) bool      { return h == "h:"+p }

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

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

type fixture struct {
	uc  *Usecase
	db  *mockRepoDB
	msg *mockRepoMessaging
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.New()
	require.NoError(t, err)
	enforcer, err := authz.New(nil, authz.DefaultPolicies)
	require.NoError(t, err)

	f := &fixture{db: &mockRepoDB{}, msg: &mockRepoMessaging{}}
	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.msg,
		Tagger:        v,
		Passwords:     hash.NewPasswordMaker(plainHash{}),
		UID:           fixedID("100"),
		Clock:         fixedClock{},
		JWT:           tokenJWT{},
		Instrument:    instrument.NewNoop(),
		Authz:         enforcer,
	})

	t.Cleanup(func() {
		f.db.AssertExpectations(t)
		f.msg.AssertExpectations(t)
	})
	return f
}

func profile(id string) account.Profile {
	return account.Profile{
		ID:           id,
		FirstName:    "Ann",
		LastName:     "Lee",
		Email:        "ann@example.com",
		BirthDate:    time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC),
		PasswordHash: "h:Secret123!",
		CreatedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
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
