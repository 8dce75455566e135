package usecase

import (
	"context"
	"strings"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
)

// ListBooksInput filters the catalogue. Zero values do not filter; Limit
// defaults to 20.
type ListBooksInput struct {
	Query    string
	AuthorID string
	MinPrice int64
	MaxPrice int64
	Limit    int
	Offset   int
}

type ListBooksOutput struct {
	Items  []BookOutput
	Limit  int
	Offset int
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

func (s *Usecase) ListBooks(ctx context.Context, in ListBooksInput) (*ListBooksOutput, error) {
	ctx, span := s.startSpan(ctx, "ListBooks")
	defer span.End()

	var msgs schema.Messages
	if in.Limit == 0 {
		in.Limit = defaultLimit
	}
	schema.Merge(&msgs, "limit", schema.Between(1, maxLimit)("limit", in.Limit))
	if in.Offset < 0 {
		msgs.Add("offset", "offset must not be negative")
	}
	if in.MinPrice < 0 {
		msgs.Add("minPrice", "minPrice must not be negative")
	}
	if in.MaxPrice < 0 {
		msgs.Add("maxPrice", "maxPrice must not be negative")
	}
	if in.MinPrice > 0 && in.MaxPrice > 0 && in.MinPrice > in.MaxPrice {
		msgs.Add("maxPrice", "maxPrice must not be less than minPrice")
	}
	if err := msgs.Err(); err != nil {
		return nil, err
	}

	books, err := workflow.Call(ctx, "listing books", func() ([]entity.BookWithAuthor, error) {
		return s.repoDB.ListBooks(ctx, entity.BookFilter{
			Query:    strings.TrimSpace(in.Query),
			AuthorID: strings.TrimSpace(in.AuthorID),
			MinPrice: in.MinPrice,
			MaxPrice: in.MaxPrice,
			Limit:    uint64(in.Limit),
			Offset:   uint64(in.Offset),
		})
	})
	if err != nil {
		return nil, err
	}

	items := make([]BookOutput, 0, len(books))
	for i := range books {
		out, err := s.bookOutput(ctx, &books[i].Book, books[i].Author)
		if err != nil {
			return nil, err
		}
		items = append(items, out)
	}

	return &ListBooksOutput{Items: items, Limit: in.Limit, Offset: in.Offset}, nil
}
