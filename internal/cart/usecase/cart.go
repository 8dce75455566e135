package usecase

import (
	"context"
	"strings"

	"github.com/pkaramon/book-store-sub000/internal/cart/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type CartInput struct {
	Token string
}

type CartItemInput struct {
	Token  string
	BookID string
}

type CartBookOutput struct {
	ID       string
	Title    string
	Price    int64
	CoverKey string
}

type CartAuthorOutput struct {
	ID        string
	FirstName string
	LastName  string
}

type CartItemOutput struct {
	Book   CartBookOutput
	Author CartAuthorOutput
}

type CartOutput struct {
	CustomerID string
	Items      []CartItemOutput
}

// cartOutput lists the cart's books in stored order. Books deleted since
// they were added are left out.
func (s *Usecase) cartOutput(ctx context.Context, _ *account.Customer, c *entity.Cart) (CartOutput, error) {
	lines, err := s.repoDB.BooksWithAuthors(ctx, c.GetAll())
	if err != nil {
		return CartOutput{}, err
	}

	items := make([]CartItemOutput, 0, len(lines))
	for _, l := range lines {
		item := CartItemOutput{Book: CartBookOutput{
			ID:       l.Book.ID,
			Title:    l.Book.Title,
			Price:    l.Book.PriceCents,
			CoverKey: l.Book.CoverKey,
		}}
		if l.Author != nil {
			p := l.Author.Info()
			item.Author = CartAuthorOutput{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}
		}
		items = append(items, item)
	}

	return CartOutput{CustomerID: c.CustomerID, Items: items}, nil
}

func bookIDOf(in CartItemInput) (string, error) {
	var msgs schema.Messages
	id := schema.Merge(&msgs, "bookId", schema.All(schema.Trim, schema.NotEmpty)("bookId", in.BookID))
	return id, msgs.Err()
}

// ViewCart returns the caller's cart without changing it.
func (s *Usecase) ViewCart(ctx context.Context, in CartInput) (*CartOutput, error) {
	ctx, span := s.startSpan(ctx, "ViewCart")
	defer span.End()

	out, err := s.carts.View(ctx, workflow.Request{Token: in.Token})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart appends a book to the caller's cart. Adding a book twice keeps
// both entries.
func (s *Usecase) AddToCart(ctx context.Context, in CartItemInput) (*CartOutput, error) {
	ctx, span := s.startSpan(ctx, "AddToCart")
	defer span.End()

	out, err := s.carts.Run(ctx, workflow.Request{Token: in.Token}, func(ctx context.Context, _ *account.Customer, c *entity.Cart) error {
		bookID, err := bookIDOf(in)
		if err != nil {
			return err
		}

		exists, err := workflow.Call(ctx, "fetching book", func() (bool, error) {
			return s.repoDB.BookExists(ctx, bookID)
		})
		if err != nil {
			return err
		}
		if !exists {
			return goerror.NewNotFound("book", bookID)
		}

		c.Add(bookID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFromCart removes one occurrence of a book. The cart is left as it
// was when the book is not in it.
func (s *Usecase) RemoveFromCart(ctx context.Context, in CartItemInput) (*CartOutput, error) {
	ctx, span := s.startSpan(ctx, "RemoveFromCart")
	defer span.End()

	bookID := strings.TrimSpace(in.BookID)
	out, err := s.carts.Run(ctx, workflow.Request{Token: in.Token}, func(_ context.Context, _ *account.Customer, c *entity.Cart) error {
		return c.Remove(bookID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Usecase) ClearCart(ctx context.Context, in CartInput) (*CartOutput, error) {
	ctx, span := s.startSpan(ctx, "ClearCart")
	defer span.End()

	out, err := s.carts.Run(ctx, workflow.Request{Token: in.Token}, func(_ context.Context, _ *account.Customer, c *entity.Cart) error {
		c.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
