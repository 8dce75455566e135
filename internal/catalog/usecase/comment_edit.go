package usecase

import (
	"context"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type CommentAuthorOutput struct {
	ID        string
	FirstName string
	LastName  string
}

type CommentOutput struct {
	ID        string
	BookID    string
	Title     string
	Body      string
	Stars     int
	Author    CommentAuthorOutput
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EditCommentInput struct {
	Token     string
	CommentID string
	Title     *string
	Body      *string
	Stars     *int
}

func commentOutput(c *entity.Comment, author account.User) CommentOutput {
	out := CommentOutput{
		ID:        c.ID,
		BookID:    c.BookID,
		Title:     c.Title,
		Body:      c.Body,
		Stars:     c.Stars,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if author != nil {
		p := author.Info()
		out.Author = CommentAuthorOutput{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
	}
	return out
}

func newEditComment(s *Usecase) *workflow.Mutation[account.User, *entity.Comment, CommentOutput] {
	return &workflow.Mutation[account.User, *entity.Comment, CommentOutput]{
		Entity:       "comment",
		Authenticate: s.authenticate,
		Actor:        s.repoDB.UserByID,
		Aggregate: func(ctx context.Context, _ account.User, id string) (*entity.Comment, error) {
			return s.repoDB.CommentByID(ctx, id)
		},
		Authorize: func(_ context.Context, u account.User, c *entity.Comment) error {
			if !c.OwnedBy(u) {
				return goerror.NewUnauthorized("Only the author can edit this comment")
			}
			return nil
		},
		Persist: s.repoDB.SaveComment,
		Respond: func(_ context.Context, u account.User, c *entity.Comment) (CommentOutput, error) {
			return commentOutput(c, u), nil
		},
	}
}

// EditComment changes the non-nil fields of a comment written by the caller.
func (s *Usecase) EditComment(ctx context.Context, in EditCommentInput) (*CommentOutput, error) {
	ctx, span := s.startSpan(ctx, "EditComment")
	defer span.End()

	out, err := s.editComment.Run(ctx, workflow.Request{Token: in.Token, Target: in.CommentID},
		func(_ context.Context, _ account.User, c *entity.Comment) error {
			var msgs schema.Messages

			title, body, stars := c.Title, c.Body, c.Stars
			if in.Title != nil {
				title = schema.Merge(&msgs, "title", commentTitleCheck("title", *in.Title))
			}
			if in.Body != nil {
				body = schema.Merge(&msgs, "body", commentBodyCheck("body", *in.Body))
			}
			if in.Stars != nil {
				stars = schema.Merge(&msgs, "stars", starsCheck("stars", *in.Stars))
			}
			if err := msgs.Err(); err != nil {
				return err
			}

			c.Title, c.Body, c.Stars = title, body, stars
			c.UpdatedAt = s.clock.Now()
			return nil
		})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
