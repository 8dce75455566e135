package inbound

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/cart/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
)

type uc interface {
	ViewCart(ctx context.Context, in usecase.CartInput) (*usecase.CartOutput, error)
	AddToCart(ctx context.Context, in usecase.CartItemInput) (*usecase.CartOutput, error)
	RemoveFromCart(ctx context.Context, in usecase.CartItemInput) (*usecase.CartOutput, error)
	ClearCart(ctx context.Context, in usecase.CartInput) (*usecase.CartOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Own cart (need authenticated customer)
	r.GET("/api/v1/cart", end.ViewCart)
	r.DELETE("/api/v1/cart", end.ClearCart)
	r.POST("/api/v1/cart/items", end.AddToCart)
	r.DELETE("/api/v1/cart/items/:bookId", end.RemoveFromCart)
}
