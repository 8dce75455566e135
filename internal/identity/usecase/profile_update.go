package usecase

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

// ProfileUpdateInput changes only the non-nil fields.
type ProfileUpdateInput struct {
	Token     string
	FirstName *string
	LastName  *string
	Bio       *string
}

var bioCheck = schema.All(schema.Trim, schema.MaxLen(2000))

// ProfileUpdate edits the caller's names and, for book authors, the bio.
func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	out, err := s.self.Run(ctx, workflow.Request{Token: in.Token}, func(_ context.Context, _ account.User, u account.User) error {
		var msgs schema.Messages
		p := u.Info()

		first, last := p.FirstName, p.LastName
		if in.FirstName != nil {
			first = schema.Merge(&msgs, "firstName", personName("firstName", *in.FirstName))
		}
		if in.LastName != nil {
			last = schema.Merge(&msgs, "lastName", personName("lastName", *in.LastName))
		}

		var newBio string
		author, isAuthor := u.(*account.BookAuthor)
		if in.Bio != nil {
			if isAuthor {
				newBio = schema.Merge(&msgs, "bio", bioCheck("bio", *in.Bio))
			} else {
				msgs.Add("bio", "bio can only be set by book authors")
			}
		}

		if msgs.HasAny() {
			return msgs.Err()
		}

		p.FirstName, p.LastName = first, last
		if isAuthor && in.Bio != nil {
			author.Bio = newBio
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
