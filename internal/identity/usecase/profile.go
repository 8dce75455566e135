package usecase

import (
	"context"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type ProfileInput struct {
	Token string
}

type ProfileOutput struct {
	ID        string
	Kind      string
	FirstName string
	LastName  string
	Email     string
	BirthDate string
	Bio       string
	CreatedAt time.Time
}

func newProfileOutput(u account.User) ProfileOutput {
	p := u.Info()
	return ProfileOutput{
		ID:        p.ID,
		Kind:      u.Kind().String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		BirthDate: p.BirthDate.Format(DateLayout),
		Bio:       account.BioOf(u),
		CreatedAt: p.CreatedAt,
	}
}

// Profile returns the caller's own account.
func (s *Usecase) Profile(ctx context.Context, in ProfileInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	out, err := s.self.View(ctx, workflow.Request{Token: in.Token})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
