package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var errInvalidCredentials = goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)

// Login exchanges credentials for an access token.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, errInvalidCredentials
	}

	user, err := s.repoDB.UserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown email")
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, workflow.Classify(ctx, "fetching user", err)
	}

	pw, err := s.passwords.Make(user.Info().PasswordHash, true)
	if err != nil {
		return nil, workflow.Classify(ctx, "loading password", err)
	}
	if !pw.IsEqual(in.Password) {
		slog.WarnContext(ctx, "login password mismatch", "user_id", user.Info().ID)
		return nil, errInvalidCredentials
	}

	token, err := workflow.Call(ctx, "issuing token", func() (string, error) {
		return s.jwt.Generate(user.Info().ID, user.Kind().String())
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{AccessToken: token}, nil
}
