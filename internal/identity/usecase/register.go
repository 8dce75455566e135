package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goroutine"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
	"github.com/pkaramon/book-store-sub000/internal/pkg/workflow"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

type RegisterCustomerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDate string `json:"birthDate"`
}

type RegisterBookAuthorInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDate string `json:"birthDate"`
	Bio       string `json:"bio"`
}

type RegisterOutput struct {
	ID string
}

const conflictEmail = "Email already registered"

var personName = schema.All(schema.Trim, schema.NotEmpty, schema.MaxLen(100))

func newCustomerSchema(tagger schema.Tagger, now func() time.Time) *schema.Schema[RegisterCustomerInput] {
	return schema.New(
		schema.Field(func(in *RegisterCustomerInput) *string { return &in.FirstName }, personName),
		schema.Field(func(in *RegisterCustomerInput) *string { return &in.LastName }, personName),
		schema.Field(func(in *RegisterCustomerInput) *string { return &in.Email }, schema.Email(tagger)),
		schema.Field(func(in *RegisterCustomerInput) *string { return &in.Password }, schema.Password),
		schema.Field(func(in *RegisterCustomerInput) *string { return &in.BirthDate }, schema.Past(DateLayout, now)),
	)
}

func newAuthorSchema(tagger schema.Tagger, now func() time.Time) *schema.Schema[RegisterBookAuthorInput] {
	return schema.New(
		schema.Field(func(in *RegisterBookAuthorInput) *string { return &in.FirstName }, personName),
		schema.Field(func(in *RegisterBookAuthorInput) *string { return &in.LastName }, personName),
		schema.Field(func(in *RegisterBookAuthorInput) *string { return &in.Email }, schema.Email(tagger)),
		schema.Field(func(in *RegisterBookAuthorInput) *string { return &in.Password }, schema.Password),
		schema.Field(func(in *RegisterBookAuthorInput) *string { return &in.BirthDate }, schema.Past(DateLayout, now)),
		schema.Field(func(in *RegisterBookAuthorInput) *string { return &in.Bio }, bioCheck),
	)
}

func newCustomerRegistration(s *Usecase, bg *goroutine.Manager) *workflow.Registration[RegisterCustomerInput, *account.Customer] {
	return &workflow.Registration[RegisterCustomerInput, *account.Customer]{
		Entity:   "user",
		Conflict: conflictEmail,
		Taken: func(ctx context.Context, in RegisterCustomerInput) (bool, error) {
			return s.repoDB.EmailTaken(ctx, normalizeEmail(in.Email))
		},
		Validate: func(_ context.Context, in RegisterCustomerInput) (RegisterCustomerInput, error) {
			report := s.customerSchema.Validate(in)
			return report.Value, report.Err()
		},
		Build: func(_ context.Context, in RegisterCustomerInput) (*account.Customer, error) {
			p, err := s.newProfile(in.FirstName, in.LastName, in.Email, in.Password, in.BirthDate)
			if err != nil {
				return nil, err
			}
			return &account.Customer{Profile: p}, nil
		},
		Save: func(ctx context.Context, u *account.Customer) error {
			return s.insertUser(ctx, u)
		},
		Notify: func(ctx context.Context, u *account.Customer) error {
			return s.repoMessaging.PublishUserRegistered(ctx, u)
		},
		ID:         func(u *account.Customer) string { return u.ID },
		Background: bg,
	}
}

func newAuthorRegistration(s *Usecase, bg *goroutine.Manager) *workflow.Registration[RegisterBookAuthorInput, *account.BookAuthor] {
	return &workflow.Registration[RegisterBookAuthorInput, *account.BookAuthor]{
		Entity:   "user",
		Conflict: conflictEmail,
		Taken: func(ctx context.Context, in RegisterBookAuthorInput) (bool, error) {
			return s.repoDB.EmailTaken(ctx, normalizeEmail(in.Email))
		},
		Validate: func(_ context.Context, in RegisterBookAuthorInput) (RegisterBookAuthorInput, error) {
			report := s.authorSchema.Validate(in)
			return report.Value, report.Err()
		},
		Build: func(_ context.Context, in RegisterBookAuthorInput) (*account.BookAuthor, error) {
			p, err := s.newProfile(in.FirstName, in.LastName, in.Email, in.Password, in.BirthDate)
			if err != nil {
				return nil, err
			}
			return &account.BookAuthor{Profile: p, Bio: in.Bio}, nil
		},
		Save: func(ctx context.Context, u *account.BookAuthor) error {
			return s.insertUser(ctx, u)
		},
		Notify: func(ctx context.Context, u *account.BookAuthor) error {
			return s.repoMessaging.PublishUserRegistered(ctx, u)
		},
		ID:         func(u *account.BookAuthor) string { return u.ID },
		Background: bg,
	}
}

func newAdminRegistration(s *Usecase) *workflow.Registration[RegisterCustomerInput, *account.Admin] {
	return &workflow.Registration[RegisterCustomerInput, *account.Admin]{
		Entity:   "user",
		Conflict: conflictEmail,
		Taken: func(ctx context.Context, in RegisterCustomerInput) (bool, error) {
			return s.repoDB.EmailTaken(ctx, normalizeEmail(in.Email))
		},
		Validate: func(_ context.Context, in RegisterCustomerInput) (RegisterCustomerInput, error) {
			report := s.customerSchema.Validate(in)
			return report.Value, report.Err()
		},
		Build: func(_ context.Context, in RegisterCustomerInput) (*account.Admin, error) {
			p, err := s.newProfile(in.FirstName, in.LastName, in.Email, in.Password, in.BirthDate)
			if err != nil {
				return nil, err
			}
			return &account.Admin{Profile: p}, nil
		},
		Save: func(ctx context.Context, u *account.Admin) error {
			return s.insertUser(ctx, u)
		},
		ID: func(u *account.Admin) string { return u.ID },
	}
}

// RegisterCustomer signs up a customer and returns the new id.
func (s *Usecase) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterCustomer")
	defer span.End()

	id, err := s.registerCustomer.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	return &RegisterOutput{ID: id}, nil
}

// RegisterBookAuthor signs up a book author and returns the new id.
func (s *Usecase) RegisterBookAuthor(ctx context.Context, in RegisterBookAuthorInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterBookAuthor")
	defer span.End()

	id, err := s.registerAuthor.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	return &RegisterOutput{ID: id}, nil
}

// EnsureAdmin creates the configured administrator unless the email is
// already registered.
func (s *Usecase) EnsureAdmin(ctx context.Context, in RegisterCustomerInput) error {
	ctx, span := s.startSpan(ctx, "EnsureAdmin")
	defer span.End()

	_, err := s.registerAdmin.Run(ctx, in)
	if goerror.HasCode(err, goerror.CodeConflict) {
		return nil
	}
	return err
}

// newProfile expects validated input.
func (s *Usecase) newProfile(first, last, email, password, birthDate string) (account.Profile, error) {
	born, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return account.Profile{}, err
	}

	pw, err := s.passwords.Make(password, false)
	if err != nil {
		return account.Profile{}, err
	}

	return account.Profile{
		ID:           s.uid.Generate(),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		BirthDate:    born,
		PasswordHash: pw.HashedString(),
		CreatedAt:    s.clock.Now(),
	}, nil
}

// insertUser reports a lost race on the email index as a conflict.
func (s *Usecase) insertUser(ctx context.Context, u account.User) error {
	err := s.repoDB.InsertUser(ctx, u)
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewConflict(conflictEmail)
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
