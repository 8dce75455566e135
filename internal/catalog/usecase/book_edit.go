package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

// EditBookInput changes only the non-nil fields. An empty Cover removes the
// cover.
type EditBookInput struct {
	Token       string
	BookID      string
	Title       *string
	Description *string
	Price       *int64
	Cover       *string
}

func newEditBook(s *Usecase) *workflow.Mutation[*account.BookAuthor, *entity.Book, BookOutput] {
	return &workflow.Mutation[*account.BookAuthor, *entity.Book, BookOutput]{
		Entity:       "book",
		Authenticate: s.authenticate,
		Actor:        loadAs[*account.BookAuthor](s),
		Aggregate: func(ctx context.Context, _ *account.BookAuthor, id string) (*entity.Book, error) {
			return s.repoDB.BookByID(ctx, id)
		},
		Authorize: func(_ context.Context, author *account.BookAuthor, b *entity.Book) error {
			if !b.OwnedBy(author) {
				return goerror.NewUnauthorized("Only the author can edit this book")
			}
			return nil
		},
		Persist: func(ctx context.Context, b *entity.Book) error {
			p, ok := b.Patch()
			if !ok {
				return nil
			}
			err := s.repoDB.UpdateBook(ctx, b.ID, p)
			if errors.Is(err, goerror.ErrNotFound) {
				// deleted between load and save
				return goerror.NewNotFound("book", b.ID)
			}
			return err
		},
		Respond: func(ctx context.Context, author *account.BookAuthor, b *entity.Book) (BookOutput, error) {
			return s.bookOutput(ctx, b, author)
		},
	}
}

// EditBook updates a book owned by the calling author. A replaced cover is
// removed from storage once the book is saved.
func (s *Usecase) EditBook(ctx context.Context, in EditBookInput) (*BookOutput, error) {
	ctx, span := s.startSpan(ctx, "EditBook")
	defer span.End()

	var replaced string
	out, err := s.editBook.Run(ctx, workflow.Request{Token: in.Token, Target: in.BookID},
		func(ctx context.Context, _ *account.BookAuthor, b *entity.Book) error {
			var msgs schema.Messages

			patch := entity.BookPatch{UpdatedAt: s.clock.Now()}
			if in.Title != nil {
				patch.Title = mergeSet(&msgs, "title", titleCheck("title", *in.Title))
			}
			if in.Description != nil {
				patch.Description = mergeSet(&msgs, "description", descriptionCheck("description", *in.Description))
			}
			if in.Price != nil {
				patch.PriceCents = mergeSet(&msgs, "price", priceCheck("price", *in.Price))
			}
			if in.Cover != nil {
				res, err := workflow.Call(ctx, "checking cover", func() (schema.Result[string], error) {
					return s.coverCheck(ctx, "cover", *in.Cover)
				})
				if err != nil {
					return err
				}
				patch.CoverKey = mergeSet(&msgs, "cover", res)
			}

			if err := msgs.Err(); err != nil {
				return err
			}

			if patch.CoverKey != nil && *patch.CoverKey != b.CoverKey {
				replaced = b.CoverKey
			}
			b.Apply(patch)
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.dropCover(ctx, replaced)
	return &out, nil
}

// mergeSet merges r into msgs and returns a pointer to the cleaned value.
func mergeSet[V any](msgs *schema.Messages, key string, r schema.Result[V]) *V {
	v := schema.Merge(msgs, key, r)
	return &v
}

// dropCover deletes an unused cover. Failures leave an orphaned object and
// are only logged.
func (s *Usecase) dropCover(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.covers.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to delete cover", "key", key, "error", err)
	}
}
