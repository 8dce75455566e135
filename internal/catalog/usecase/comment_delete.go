package usecase

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
)

type DeleteCommentInput struct {
	Token     string
	CommentID string
}

// DeleteComment removes a comment. Its author may always do so; other users
// need the comment/delete permission.
func (s *Usecase) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	ctx, span := s.startSpan(ctx, "DeleteComment")
	defer span.End()

	actor, err := s.actor(ctx, in.Token)
	if err != nil {
		return err
	}

	comment, err := workflow.Find(ctx, "fetching comment", "comment", in.CommentID, func() (*entity.Comment, error) {
		return s.repoDB.CommentByID(ctx, in.CommentID)
	})
	if err != nil {
		return err
	}

	if err := s.ownerOrGranted(ctx, actor, comment.OwnedBy(actor), "comment", "delete", "Not allowed to delete this comment"); err != nil {
		return err
	}

	_, err = workflow.Find(ctx, "deleting comment", "comment", comment.ID, func() (struct{}, error) {
		return struct{}{}, s.repoDB.DeleteComment(ctx, comment.ID)
	})
	return err
}
