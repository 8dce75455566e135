package inbound

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/catalog/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
)

type uc interface {
	ListBooks(ctx context.Context, in usecase.ListBooksInput) (*usecase.ListBooksOutput, error)
	GetBook(ctx context.Context, in usecase.GetBookInput) (*usecase.BookOutput, error)
	PublishBook(ctx context.Context, in usecase.PublishBookInput) (*usecase.PublishBookOutput, error)
	EditBook(ctx context.Context, in usecase.EditBookInput) (*usecase.BookOutput, error)
	DeleteBook(ctx context.Context, in usecase.DeleteBookInput) error
	CoverUploadURL(ctx context.Context, in usecase.CoverUploadInput) (*usecase.CoverUploadOutput, error)

	ListComments(ctx context.Context, in usecase.ListCommentsInput) ([]usecase.CommentOutput, error)
	AddComment(ctx context.Context, in usecase.AddCommentInput) (*usecase.AddCommentOutput, error)
	EditComment(ctx context.Context, in usecase.EditCommentInput) (*usecase.CommentOutput, error)
	DeleteComment(ctx context.Context, in usecase.DeleteCommentInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Browsing (public)
	r.GET("/api/v1/catalog/books", end.ListBooks)
	r.GET("/api/v1/catalog/books/:id", end.GetBook)
	r.GET("/api/v1/catalog/books/:id/comments", end.ListComments)

	// Publishing (book authors)
	r.POST("/api/v1/catalog/books", end.PublishBook)
	r.POST("/api/v1/catalog/covers", end.CoverUploadURL)
	r.PATCH("/api/v1/catalog/books/:id", end.EditBook)
	r.DELETE("/api/v1/catalog/books/:id", end.DeleteBook)

	// Reviews (customers)
	r.POST("/api/v1/catalog/books/:id/comments", end.AddComment)
	r.PATCH("/api/v1/catalog/comments/:id", end.EditComment)
	r.DELETE("/api/v1/catalog/comments/:id", end.DeleteComment)
}
