package usecase

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type PasswordChangeInput struct {
	Token           string
	CurrentPassword string
	NewPassword     string
}

// PasswordChange replaces the caller's password after checking the current one.
func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) error {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	_, err := s.self.Run(ctx, workflow.Request{Token: in.Token}, func(ctx context.Context, _ account.User, u account.User) error {
		var msgs schema.Messages
		p := u.Info()

		current, err := workflow.Call(ctx, "loading password", func() (bool, error) {
			pw, err := s.passwords.Make(p.PasswordHash, true)
			return err == nil && pw.IsEqual(in.CurrentPassword), err
		})
		if err != nil {
			return err
		}
		if !current {
			msgs.Add("currentPassword", "currentPassword is incorrect")
		}

		if res := schema.Password("newPassword", in.NewPassword); !res.IsValid() {
			msgs.Set("newPassword", res.Messages)
		}

		if msgs.HasAny() {
			return msgs.Err()
		}

		next, err := workflow.Call(ctx, "hashing password", func() (string, error) {
			pw, err := s.passwords.Make(in.NewPassword, false)
			return pw.HashedString(), err
		})
		if err != nil {
			return err
		}

		p.PasswordHash = next
		return nil
	})
	return err
}
