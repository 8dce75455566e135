package usecase

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
)

type DeleteBookInput struct {
	Token  string
	BookID string
}

// DeleteBook removes a book. Its author may always do so; other users need
// the book/delete permission.
func (s *Usecase) DeleteBook(ctx context.Context, in DeleteBookInput) error {
	ctx, span := s.startSpan(ctx, "DeleteBook")
	defer span.End()

	actor, err := s.actor(ctx, in.Token)
	if err != nil {
		return err
	}

	book, err := workflow.Find(ctx, "fetching book", "book", in.BookID, func() (*entity.Book, error) {
		return s.repoDB.BookByID(ctx, in.BookID)
	})
	if err != nil {
		return err
	}

	if err := s.ownerOrGranted(ctx, actor, book.OwnedBy(actor), "book", "delete", "Not allowed to delete this book"); err != nil {
		return err
	}

	_, err = workflow.Find(ctx, "deleting book", "book", book.ID, func() (struct{}, error) {
		return struct{}{}, s.repoDB.DeleteBook(ctx, book.ID)
	})
	if err != nil {
		return err
	}

	s.dropCover(ctx, book.CoverKey)
	return nil
}
