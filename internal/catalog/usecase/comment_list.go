package usecase

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
)

type ListCommentsInput struct {
	BookID string
}

// ListComments returns the comments of a book, newest first.
func (s *Usecase) ListComments(ctx context.Context, in ListCommentsInput) ([]CommentOutput, error) {
	ctx, span := s.startSpan(ctx, "ListComments")
	defer span.End()

	_, err := workflow.Find(ctx, "fetching book", "book", in.BookID, func() (*entity.Book, error) {
		return s.repoDB.BookByID(ctx, in.BookID)
	})
	if err != nil {
		return nil, err
	}

	comments, err := workflow.Call(ctx, "fetching comments", func() ([]entity.CommentWithAuthor, error) {
		return s.repoDB.CommentsByBook(ctx, in.BookID)
	})
	if err != nil {
		return nil, err
	}

	out := make([]CommentOutput, 0, len(comments))
	for i := range comments {
		out = append(out, commentOutput(&comments[i].Comment, comments[i].Author))
	}
	return out, nil
}
