package usecase

import (
	"context"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type GetBookInput struct {
	BookID string
}

type AuthorOutput struct {
	ID        string
	FirstName string
	LastName  string
	Bio       string
}

type BookOutput struct {
	ID          string
	Title       string
	Description string
	Price       int64
	CoverKey    string
	CoverURL    string
	Author      AuthorOutput
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetBook returns a book with its author and a signed cover URL.
func (s *Usecase) GetBook(ctx context.Context, in GetBookInput) (*BookOutput, error) {
	ctx, span := s.startSpan(ctx, "GetBook")
	defer span.End()

	bw, err := workflow.Find(ctx, "fetching book", "book", in.BookID, func() (*entity.BookWithAuthor, error) {
		return s.repoDB.BookWithAuthor(ctx, in.BookID)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.bookOutput(ctx, &bw.Book, bw.Author)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Usecase) bookOutput(ctx context.Context, b *entity.Book, author account.User) (BookOutput, error) {
	out := BookOutput{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Price:       b.PriceCents,
		CoverKey:    b.CoverKey,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if author != nil {
		p := author.Info()
		out.Author = AuthorOutput{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Bio: account.BioOf(author)}
	}

	if b.CoverKey == "" {
		return out, nil
	}

	url, err := workflow.Call(ctx, "signing cover download", func() (string, error) {
		return s.covers.DownloadURL(ctx, b.CoverKey)
	})
	if err != nil {
		return BookOutput{}, err
	}
	out.CoverURL = url
	return out, nil
}
