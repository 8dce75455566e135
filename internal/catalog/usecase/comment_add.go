package usecase

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type CommentDraft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Stars int    `json:"stars"`
}

type AddCommentInput struct {
	Token   string
	BookID  string
	Comment CommentDraft
}

type AddCommentOutput struct {
	ID string
}

var (
	commentTitleCheck = schema.All(schema.Trim, schema.NotEmpty, schema.MaxLen(120))
	commentBodyCheck  = schema.All(schema.Trim, schema.NotEmpty, schema.MaxLen(2000))
	starsCheck        = schema.Between(1, 5)
)

func newCommentSchema() *schema.Schema[CommentDraft] {
	return schema.New(
		schema.Field(func(d *CommentDraft) *string { return &d.Title }, commentTitleCheck),
		schema.Field(func(d *CommentDraft) *string { return &d.Body }, commentBodyCheck),
		schema.Field(func(d *CommentDraft) *int { return &d.Stars }, starsCheck),
	)
}

// AddComment lets a customer review a book.
func (s *Usecase) AddComment(ctx context.Context, in AddCommentInput) (*AddCommentOutput, error) {
	ctx, span := s.startSpan(ctx, "AddComment")
	defer span.End()

	customer, err := actorAs[*account.Customer](ctx, s, in.Token)
	if err != nil {
		return nil, err
	}

	book, err := workflow.Find(ctx, "fetching book", "book", in.BookID, func() (*entity.Book, error) {
		return s.repoDB.BookByID(ctx, in.BookID)
	})
	if err != nil {
		return nil, err
	}

	report := s.commentSchema.Validate(in.Comment)
	if err := report.Err(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	comment := &entity.Comment{
		ID:        s.uid.Generate(),
		BookID:    book.ID,
		AuthorID:  customer.ID,
		Title:     report.Value.Title,
		Body:      report.Value.Body,
		Stars:     report.Value.Stars,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := workflow.Do(ctx, "saving comment", func() error { return s.repoDB.SaveComment(ctx, comment) }); err != nil {
		return nil, err
	}

	return &AddCommentOutput{ID: comment.ID}, nil
}
