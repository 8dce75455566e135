package entity

import (
	"time"

	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

// Book is a title published by a book author. Prices are in cents.
type Book struct {
	ID          string
	AuthorID    string
	Title       string
	Description string
	PriceCents  int64
	CoverKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	patch *BookPatch
}

// BookPatch lists the columns an edit touched. Nil fields are unchanged.
type BookPatch struct {
	Title       *string
	Description *string
	PriceCents  *int64
	CoverKey    *string
	UpdatedAt   time.Time
}

// Apply copies the set fields of p onto b and remembers them for Patch.
func (b *Book) Apply(p BookPatch) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.PriceCents != nil {
		b.PriceCents = *p.PriceCents
	}
	if p.CoverKey != nil {
		b.CoverKey = *p.CoverKey
	}
	b.UpdatedAt = p.UpdatedAt
	b.patch = &p
}

// Patch returns the edit recorded by Apply.
func (b *Book) Patch() (BookPatch, bool) {
	if b.patch == nil {
		return BookPatch{}, false
	}
	return *b.patch, true
}

// OwnedBy reports whether u published the book.
func (b *Book) OwnedBy(u account.User) bool {
	return u != nil && b.AuthorID == u.Info().ID
}

// BookWithAuthor joins a book with its author's account.
type BookWithAuthor struct {
	Book   Book
	Author account.User
}

// BookFilter narrows ListBooks. Zero fields do not filter.
type BookFilter struct {
	Query    string
	AuthorID string
	MinPrice int64
	MaxPrice int64
	Limit    uint64
	Offset   uint64
}
