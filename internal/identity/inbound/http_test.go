package inbound

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/identity/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router/routertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUC struct {
	mock.Mock
}

func (m *mockUC) RegisterCustomer(ctx context.Context, in usecase.RegisterCustomerInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.RegisterOutput)
	return out, args.Error(1)
}

func (m *mockUC) RegisterBookAuthor(ctx context.Context, in usecase.RegisterBookAuthorInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.RegisterOutput)
	return out, args.Error(1)
}

func (m *mockUC) Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.LoginOutput)
	return out, args.Error(1)
}

func (m *mockUC) Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.ProfileOutput)
	return out, args.Error(1)
}

func (m *mockUC) ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) (*usecase.ProfileOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.ProfileOutput)
	return out, args.Error(1)
}

func (m *mockUC) PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) DeleteAccount(ctx context.Context, in usecase.DeleteAccountInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockUC) DeleteUser(ctx context.Context, in usecase.DeleteUserInput) error {
	return m.Called(ctx, in).Error(0)
}

func newServer(t *testing.T) (*routertest.Server, *mockUC) {
	t.Helper()

	m := &mockUC{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	srv := routertest.New(t, func(r *router.Router) { RegisterHTTPEndpoint(r, m) })
	return srv, m
}

func TestRegisterCustomer(t *testing.T) {
	srv, m := newServer(t)

	// Arrange
	in := usecase.RegisterCustomerInput{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
		Password:  "Secret123!",
		BirthDate: "1990-04-01",
	}
	m.On("RegisterCustomer", mock.Anything, in).Return(&usecase.RegisterOutput{ID: "7"}, nil).Once()

	// Act
	status, body := srv.DoJSON(t, http.MethodPost, "/api/v1/identity/customers", map[string]string{
		"firstName": "Ann",
		"lastName":  "Lee",
		"email":     "ann@example.com",
		"password":  "Secret123!",
		"birthDate": "1990-04-01",
	}, "")

	// Assert
	require.Equal(t, http.StatusCreated, status)
	var data RegisterResponse
	routertest.DecodeSuccess(t, body, &data)
	assert.Equal(t, "7", data.ID)
}

func TestRegisterCustomer_ValidationError(t *testing.T) {
	srv, m := newServer(t)

	// Arrange
	m.On("RegisterCustomer", mock.Anything, mock.Anything).Return(nil, goerror.NewValidation(
		map[string][]string{
			"firstName": {"firstName cannot be empty"},
			"password":  {"password must be at least 8 characters long"},
		},
		[]string{"firstName", "password"},
	)).Once()

	// Act
	status, body := srv.DoJSON(t, http.MethodPost, "/api/v1/identity/customers", map[string]string{"firstName": "", "password": "abc"}, "")

	// Assert
	require.Equal(t, http.StatusUnprocessableEntity, status)
	errEnv := routertest.DecodeError(t, body)
	assert.Equal(t, []string{"firstName", "password"}, errEnv.InvalidProperties)
	assert.Equal(t, []string{"firstName cannot be empty"}, errEnv.Error["firstName"])
}

func TestRegisterCustomer_UnknownField(t *testing.T) {
	srv, _ := newServer(t)

	status, _ := srv.DoJSON(t, http.MethodPost, "/api/v1/identity/customers", map[string]string{"nickname": "x"}, "")

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRegisterBookAuthor(t *testing.T) {
	srv, m := newServer(t)

	m.On("RegisterBookAuthor", mock.Anything, mock.MatchedBy(func(in usecase.RegisterBookAuthorInput) bool {
		return in.Email == "ursula@example.com" && in.Bio == "Earthsea"
	})).Return(&usecase.RegisterOutput{ID: "8"}, nil).Once()

	status, body := srv.DoJSON(t, http.MethodPost, "/api/v1/identity/authors", map[string]string{
		"email": "ursula@example.com",
		"bio":   "Earthsea",
	}, "")

	require.Equal(t, http.StatusCreated, status)
	var data RegisterResponse
	routertest.DecodeSuccess(t, body, &data)
	assert.Equal(t, "8", data.ID)
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("Login", mock.Anything, usecase.LoginInput{Email: "ann@example.com", Password: "Secret123!"}).
			Return(&usecase.LoginOutput{AccessToken: "tok"}, nil).Once()

		status, body := srv.DoJSON(t, http.MethodPost, "/api/v1/identity/login",
			map[string]string{"email": "ann@example.com", "password": "Secret123!"}, "")

		require.Equal(t, http.StatusOK, status)
		var data LoginResponse
		routertest.DecodeSuccess(t, body, &data)
		assert.Equal(t, "tok", data.AccessToken)
	})

	t.Run("bad credentials", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("Login", mock.Anything, mock.Anything).
			Return(nil, goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)).Once()

		status, body := srv.DoJSON(t, http.MethodPost, "/api/v1/identity/login",
			map[string]string{"email": "ann@example.com", "password": "nope"}, "")

		require.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid email or password", routertest.DecodeError(t, body).Message)
	})
}

func TestProfile(t *testing.T) {
	t.Run("passes the bearer token", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("Profile", mock.Anything, usecase.ProfileInput{Token: "tok"}).Return(&usecase.ProfileOutput{
			ID:        "7",
			Kind:      "customer",
			FirstName: "Ann",
			BirthDate: "1990-04-01",
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}, nil).Once()

		status, body := srv.DoJSON(t, http.MethodGet, "/api/v1/identity/profile", nil, "tok")

		require.Equal(t, http.StatusOK, status)
		var data ProfileResponse
		routertest.DecodeSuccess(t, body, &data)
		assert.Equal(t, "customer", data.Kind)
		assert.Equal(t, "1990-04-01", data.BirthDate)
	})

	t.Run("expired token", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("Profile", mock.Anything, usecase.ProfileInput{}).Return(nil, jwt.ErrTokenExpired).Once()

		status, _ := srv.DoJSON(t, http.MethodGet, "/api/v1/identity/profile", nil, "")

		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestProfileUpdate_PartialFields(t *testing.T) {
	srv, m := newServer(t)

	m.On("ProfileUpdate", mock.Anything, mock.MatchedBy(func(in usecase.ProfileUpdateInput) bool {
		return in.Token == "tok" && in.FirstName != nil && *in.FirstName == "Annie" && in.LastName == nil && in.Bio == nil
	})).Return(&usecase.ProfileOutput{ID: "7", FirstName: "Annie"}, nil).Once()

	status, body := srv.DoJSON(t, http.MethodPatch, "/api/v1/identity/profile", map[string]string{"firstName": "Annie"}, "tok")

	require.Equal(t, http.StatusOK, status)
	var data ProfileResponse
	routertest.DecodeSuccess(t, body, &data)
	assert.Equal(t, "Annie", data.FirstName)
}

func TestPasswordChange(t *testing.T) {
	srv, m := newServer(t)
	m.On("PasswordChange", mock.Anything, usecase.PasswordChangeInput{
		Token:           "tok",
		CurrentPassword: "Secret123!",
		NewPassword:     "Secret456!",
	}).Return(nil).Once()

	status, body := srv.DoJSON(t, http.MethodPost, "/api/v1/identity/password/change",
		map[string]string{"currentPassword": "Secret123!", "newPassword": "Secret456!"}, "tok")

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Password has been changed.", routertest.DecodeSuccess(t, body, nil).Message)
}

func TestDeleteAccount(t *testing.T) {
	srv, m := newServer(t)
	m.On("DeleteAccount", mock.Anything, usecase.DeleteAccountInput{Token: "tok", Password: "Secret123!"}).Return(nil).Once()

	status, _ := srv.DoJSON(t, http.MethodDelete, "/api/v1/identity/profile", map[string]string{"password": "Secret123!"}, "tok")

	assert.Equal(t, http.StatusNoContent, status)
}

func TestDeleteUser(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("DeleteUser", mock.Anything, usecase.DeleteUserInput{Token: "tok", UserID: "42"}).Return(nil).Once()

		status, _ := srv.DoJSON(t, http.MethodDelete, "/api/v1/identity/users/42", nil, "tok")

		assert.Equal(t, http.StatusNoContent, status)
	})

	t.Run("not allowed", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("DeleteUser", mock.Anything, mock.Anything).Return(goerror.NewUnauthorized("Not allowed to delete users")).Once()

		status, _ := srv.DoJSON(t, http.MethodDelete, "/api/v1/identity/users/42", nil, "tok")

		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("missing user", func(t *testing.T) {
		srv, m := newServer(t)
		m.On("DeleteUser", mock.Anything, mock.Anything).Return(goerror.NewNotFound("user", "42")).Once()

		status, body := srv.DoJSON(t, http.MethodDelete, "/api/v1/identity/users/42", nil, "tok")

		require.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "42", routertest.DecodeError(t, body).Details["id"])
	})
}
