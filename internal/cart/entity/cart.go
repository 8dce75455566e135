package entity

import (
	"slices"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

// Cart is a customer's ordered list of book ids. The same book may appear
// more than once.
type Cart struct {
	CustomerID string
	items      []string
}

func NewCart(customerID string, items ...string) *Cart {
	return &Cart{CustomerID: customerID, items: slices.Clone(items)}
}

func (c *Cart) Add(bookID string) {
	c.items = append(c.items, bookID)
}

// Remove deletes the first occurrence of bookID.
func (c *Cart) Remove(bookID string) error {
	i := slices.Index(c.items, bookID)
	if i < 0 {
		return BookNotInCart(bookID)
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

func (c *Cart) Clear() {
	c.items = nil
}

// GetAll returns the book ids in insertion order. The slice is a copy.
func (c *Cart) GetAll() []string {
	return slices.Clone(c.items)
}

func (c *Cart) Len() int {
	return len(c.items)
}

// BookNotInCart is returned when removing a book the cart does not hold.
func BookNotInCart(bookID string) error {
	return goerror.NewNotFound("cart item", bookID)
}

// Book is the part of a catalogue book shown in a cart.
type Book struct {
	ID         string
	AuthorID   string
	Title      string
	PriceCents int64
	CoverKey   string
}

type Line struct {
	Book   Book
	Author account.User
}
