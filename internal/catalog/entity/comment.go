package entity

import (
	"time"

	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

// Comment is a customer review of a book.
type Comment struct {
	ID        string
	BookID    string
	AuthorID  string
	Title     string
	Body      string
	Stars     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) OwnedBy(u account.User) bool {
	return u != nil && c.AuthorID == u.Info().ID
}

// CommentWithAuthor joins a comment with the customer who wrote it.
type CommentWithAuthor struct {
	Comment Comment
	Author  account.User
}
