// Package account defines the user kinds shared by every module.
//
// User is a closed set: *Customer, *BookAuthor and *Admin. Code that needs a
// specific kind narrows with Narrow and gets an invalid-type error otherwise.
package account

import (
	"fmt"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
)

// Kind names a user variant.
type Kind string

const (
	KindCustomer   Kind = "customer"
	KindBookAuthor Kind = "book_author"
	KindAdmin      Kind = "admin"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a stored kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindCustomer, KindBookAuthor, KindAdmin:
		return k, nil
	default:
		return "", fmt.Errorf("unknown user kind %q", s)
	}
}

// Profile holds the data every user kind has.
type Profile struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	BirthDate    time.Time
	PasswordHash string
	CreatedAt    time.Time
}

// FullName joins the first and last name.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// User is implemented only by the variants in this package.
type User interface {
	Kind() Kind
	Info() *Profile
	sealed()
}

// Customer buys books and owns a cart.
type Customer struct {
	Profile
}

// BookAuthor publishes books.
type BookAuthor struct {
	Profile
	Bio string
}

// Admin moderates content and accounts.
type Admin struct {
	Profile
}

// Kind methods do not dereference the receiver, so they are safe on nil.

func (*Customer) Kind() Kind   { return KindCustomer }
func (*BookAuthor) Kind() Kind { return KindBookAuthor }
func (*Admin) Kind() Kind      { return KindAdmin }

func (u *Customer) Info() *Profile   { return &u.Profile }
func (u *BookAuthor) Info() *Profile { return &u.Profile }
func (u *Admin) Info() *Profile      { return &u.Profile }

func (*Customer) sealed()   {}
func (*BookAuthor) sealed() {}
func (*Admin) sealed()      {}

// New builds the variant for kind. bio is kept only for book authors.
func New(kind Kind, p Profile, bio string) (User, error) {
	switch kind {
	case KindCustomer:
		return &Customer{Profile: p}, nil
	case KindBookAuthor:
		return &BookAuthor{Profile: p, Bio: bio}, nil
	case KindAdmin:
		return &Admin{Profile: p}, nil
	default:
		return nil, fmt.Errorf("unknown user kind %q", kind)
	}
}

// BioOf returns the bio of a book author and "" for other kinds.
func BioOf(u User) string {
	if a, ok := u.(*BookAuthor); ok {
		return a.Bio
	}
	return ""
}

// Narrow returns u as T, or an invalid-type error naming both kinds.
func Narrow[T User](u User) (T, error) {
	if v, ok := u.(T); ok {
		return v, nil
	}

	var zero T
	actual := "unknown"
	if u != nil {
		actual = u.Kind().String()
	}
	return zero, goerror.NewInvalidType(zero.Kind().String(), actual)
}
