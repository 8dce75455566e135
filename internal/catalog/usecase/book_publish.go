package usecase

import (
	"context"
	"strings"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

// BookDraft is the author supplied part of a book. Price is in cents.
type BookDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Cover       string `json:"cover"`
}

type PublishBookInput struct {
	Token string
	Book  BookDraft
}

type PublishBookOutput struct {
	ID string
}

const maxPriceCents = 1_000_000

var (
	titleCheck       = schema.All(schema.Trim, schema.NotEmpty, schema.MaxLen(200))
	descriptionCheck = schema.All(schema.Trim, schema.NotEmpty, schema.MaxLen(5000))
	priceCheck       = schema.Between[int64](1, maxPriceCents)
)

func newDraftSchema(cover schema.AsyncCheck[string]) *schema.AsyncSchema[BookDraft] {
	return schema.NewAsync(
		schema.Field(func(d *BookDraft) *string { return &d.Title }, titleCheck),
		schema.Field(func(d *BookDraft) *string { return &d.Description }, descriptionCheck),
		schema.Field(func(d *BookDraft) *int64 { return &d.Price }, priceCheck),
		schema.AsyncField(func(d *BookDraft) *string { return &d.Cover }, cover),
	)
}

// coverCheck accepts "" or the key of an uploaded object. A storage failure
// is returned as an error, not as a message.
func (s *Usecase) coverCheck(ctx context.Context, key, v string) (schema.Result[string], error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return schema.Result[string]{}, nil
	}

	ok, err := s.covers.Exists(ctx, v)
	if err != nil {
		return schema.Result[string]{}, err
	}
	if !ok {
		return schema.Result[string]{Value: v, Messages: []string{key + " must reference an uploaded image"}}, nil
	}
	return schema.Result[string]{Value: v}, nil
}

// PublishBook lets a book author put a new book on sale.
func (s *Usecase) PublishBook(ctx context.Context, in PublishBookInput) (*PublishBookOutput, error) {
	ctx, span := s.startSpan(ctx, "PublishBook")
	defer span.End()

	author, err := actorAs[*account.BookAuthor](ctx, s, in.Token)
	if err != nil {
		return nil, err
	}

	report, err := workflow.Call(ctx, "validating book", func() (schema.Report[BookDraft], error) {
		return s.draftSchema.Validate(ctx, in.Book)
	})
	if err != nil {
		return nil, err
	}
	if err := report.Err(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	draft := report.Value
	book := &entity.Book{
		ID:          s.uid.Generate(),
		AuthorID:    author.ID,
		Title:       draft.Title,
		Description: draft.Description,
		PriceCents:  draft.Price,
		CoverKey:    draft.Cover,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := workflow.Do(ctx, "saving book", func() error { return s.repoDB.SaveBook(ctx, book) }); err != nil {
		return nil, err
	}

	return &PublishBookOutput{ID: book.ID}, nil
}
