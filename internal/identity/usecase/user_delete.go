package usecase

import (
	"context"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type DeleteAccountInput struct {
	Token    string
	Password string
}

type DeleteUserInput struct {
	Token  string
	UserID string
}

// DeleteAccount removes the caller's own account after a password check.
func (s *Usecase) DeleteAccount(ctx context.Context, in DeleteAccountInput) error {
	ctx, span := s.startSpan(ctx, "DeleteAccount")
	defer span.End()

	user, err := s.actor(ctx, in.Token)
	if err != nil {
		return err
	}

	pw, err := s.passwords.Make(user.Info().PasswordHash, true)
	if err != nil {
		return workflow.Classify(ctx, "loading password", err)
	}
	if !pw.IsEqual(in.Password) {
		var msgs schema.Messages
		msgs.Add("password", "password is incorrect")
		return msgs.Err()
	}

	return workflow.Do(ctx, "deleting user", func() error {
		return s.repoDB.DeleteUser(ctx, user.Info().ID)
	})
}

// DeleteUser lets an administrator remove any account.
func (s *Usecase) DeleteUser(ctx context.Context, in DeleteUserInput) error {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer span.End()

	actor, err := s.actor(ctx, in.Token)
	if err != nil {
		return err
	}

	allowed, err := workflow.Call(ctx, "authorizing user access", func() (bool, error) {
		return s.authz.Allowed(actor.Kind().String(), "user", "delete")
	})
	if err != nil {
		return err
	}
	if !allowed {
		slog.WarnContext(ctx, "user delete denied", "user_id", actor.Info().ID)
		return goerror.NewUnauthorized("Not allowed to delete users")
	}

	target, err := workflow.Find(ctx, "fetching user", "user", in.UserID, func() (account.User, error) {
		return s.repoDB.UserByID(ctx, in.UserID)
	})
	if err != nil {
		return err
	}

	return workflow.Do(ctx, "deleting user", func() error {
		return s.repoDB.DeleteUser(ctx, target.Info().ID)
	})
}

func (s *Usecase) actor(ctx context.Context, token string) (account.User, error) {
	id, err := s.authenticate(token)
	if err != nil {
		return nil, err
	}

	return workflow.Find(ctx, "fetching user", "user", id, func() (account.User, error) {
		return s.repoDB.UserByID(ctx, id)
	})
}
