package usecase

import (
	"context"
	"testing"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/jwt"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("author view carries bio", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.BookAuthor{Profile: profile("7"), Bio: "Earthsea"}, nil).Once()

		out, err := f.uc.Profile(ctx, ProfileInput{Token: "tok-7"})

		require.NoError(t, err)
		assert.Equal(t, "book_author", out.Kind)
		assert.Equal(t, "1990-04-01", out.BirthDate)
		assert.Equal(t, "Earthsea", out.Bio)
	})

	t.Run("invalid token surfaces unchanged", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Profile(ctx, ProfileInput{Token: "garbage"})

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("deleted user", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(nil, goerror.ErrNotFound).Once()

		_, err := f.uc.Profile(ctx, ProfileInput{Token: "tok-7"})

		gerr := requireCode(t, err, goerror.CodeNotFound)
		assert.Equal(t, "user", gerr.Detail(goerror.DetailEntity))
	})
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("customer cannot set bio", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.Customer{Profile: profile("7")}, nil).Once()

		_, err := f.uc.ProfileUpdate(ctx, ProfileUpdateInput{Token: "tok-7", FirstName: ptr(""), Bio: ptr("hi")})

		gerr := requireCode(t, err, goerror.CodeInvalidInput)
		assert.Equal(t, []string{"firstName", "bio"}, gerr.InvalidProperties())
		assert.Equal(t, []string{"bio can only be set by book authors"}, gerr.Fields()["bio"])
		f.db.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})

	t.Run("author updates only given fields", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.BookAuthor{Profile: profile("7"), Bio: "old"}, nil).Once()
		f.db.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u account.User) bool {
			a, ok := u.(*account.BookAuthor)
			return ok && a.FirstName == "Ann" && a.LastName == "Leigh" && a.Bio == "new"
		})).Return(nil).Once()

		out, err := f.uc.ProfileUpdate(ctx, ProfileUpdateInput{Token: "tok-7", LastName: ptr(" Leigh "), Bio: ptr("new")})

		require.NoError(t, err)
		assert.Equal(t, "Leigh", out.LastName)
		assert.Equal(t, "new", out.Bio)
	})

	t.Run("user deleted before save", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.Customer{Profile: profile("7")}, nil).Once()
		f.db.On("UpdateUser", mock.Anything, mock.Anything).Return(goerror.ErrNotFound).Once()

		_, err := f.uc.ProfileUpdate(ctx, ProfileUpdateInput{Token: "tok-7", FirstName: ptr("Ann")})

		gerr := requireCode(t, err, goerror.CodeNotFound)
		assert.Equal(t, "user", gerr.Detail(goerror.DetailEntity))
	})
}

func TestPasswordChange(t *testing.T) {
	ctx := context.Background()

	t.Run("collects both failures", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.Customer{Profile: profile("7")}, nil).Once()

		err := f.uc.PasswordChange(ctx, PasswordChangeInput{Token: "tok-7", CurrentPassword: "wrong", NewPassword: "short"})

		gerr := requireCode(t, err, goerror.CodeInvalidInput)
		assert.Equal(t, []string{"currentPassword", "newPassword"}, gerr.InvalidProperties())
		assert.Equal(t, []string{"currentPassword is incorrect"}, gerr.Fields()["currentPassword"])
		assert.Contains(t, gerr.Fields()["newPassword"], "newPassword must be at least 8 characters long")
	})

	t.Run("stores the new hash", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.Customer{Profile: profile("7")}, nil).Once()
		f.db.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u account.User) bool {
			return u.Info().PasswordHash == "h:Secret456!"
		})).Return(nil).Once()

		err := f.uc.PasswordChange(ctx, PasswordChangeInput{Token: "tok-7", CurrentPassword: "Secret123!", NewPassword: "Secret456!"})

		require.NoError(t, err)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.Customer{Profile: profile("7")}, nil).Once()

		err := f.uc.DeleteAccount(ctx, DeleteAccountInput{Token: "tok-7", Password: "nope"})

		gerr := requireCode(t, err, goerror.CodeInvalidInput)
		assert.Equal(t, []string{"password"}, gerr.InvalidProperties())
	})

	t.Run("deletes self", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.Customer{Profile: profile("7")}, nil).Once()
		f.db.On("DeleteUser", mock.Anything, "7").Return(nil).Once()

		require.NoError(t, f.uc.DeleteAccount(ctx, DeleteAccountInput{Token: "tok-7", Password: "Secret123!"}))
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	admin := &account.Admin{Profile: profile("1")}

	t.Run("non admin is forbidden", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "7").Return(&account.Customer{Profile: profile("7")}, nil).Once()

		err := f.uc.DeleteUser(ctx, DeleteUserInput{Token: "tok-7", UserID: "8"})

		requireCode(t, err, goerror.CodeForbidden)
	})

	t.Run("missing target", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "1").Return(admin, nil).Once()
		f.db.On("UserByID", mock.Anything, "404").Return(nil, goerror.ErrNotFound).Once()

		err := f.uc.DeleteUser(ctx, DeleteUserInput{Token: "tok-1", UserID: "404"})

		gerr := requireCode(t, err, goerror.CodeNotFound)
		assert.Equal(t, "404", gerr.Detail(goerror.DetailID))
	})

	t.Run("admin deletes", func(t *testing.T) {
		f := newFixture(t)
		f.db.On("UserByID", mock.Anything, "1").Return(admin, nil).Once()
		f.db.On("UserByID", mock.Anything, "8").Return(&account.BookAuthor{Profile: profile("8")}, nil).Once()
		f.db.On("DeleteUser", mock.Anything, "8").Return(nil).Once()

		require.NoError(t, f.uc.DeleteUser(ctx, DeleteUserInput{Token: "tok-1", UserID: "8"}))
	})
}
