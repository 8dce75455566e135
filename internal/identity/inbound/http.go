package inbound

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/identity/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
)

type uc interface {
	RegisterCustomer(ctx context.Context, in usecase.RegisterCustomerInput) (*usecase.RegisterOutput, error)
	RegisterBookAuthor(ctx context.Context, in usecase.RegisterBookAuthorInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) (*usecase.ProfileOutput, error)
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error
	DeleteAccount(ctx context.Context, in usecase.DeleteAccountInput) error

	DeleteUser(ctx context.Context, in usecase.DeleteUserInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Sign up & sign in
	r.POST("/api/v1/identity/customers", end.RegisterCustomer)
	r.POST("/api/v1/identity/authors", end.RegisterBookAuthor)
	r.POST("/api/v1/identity/login", end.Login)

	// Own account (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
	r.PATCH("/api/v1/identity/profile", end.ProfileUpdate)
	r.DELETE("/api/v1/identity/profile", end.DeleteAccount)
	r.POST("/api/v1/identity/password/change", end.PasswordChange)

	// User directory (need authenticated & authorization)
	r.DELETE("/api/v1/identity/users/:id", end.DeleteUser)
}
