package inbound

import (
	"github.com/pkaramon/book-store-sub000/internal/cart/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
)

// HTTPEndpoint exposes the caller's cart.
type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) ViewCart(r *router.Request) (any, error) {
	resp, err := h.uc.ViewCart(r.Context(), usecase.CartInput{Token: r.BearerToken()})
	if err != nil {
		return nil, err
	}
	return toCartResponse(resp), nil
}

func (h *HTTPEndpoint) AddToCart(r *router.Request) (any, error) {
	var req AddToCartRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.AddToCart(r.Context(), usecase.CartItemInput{Token: r.BearerToken(), BookID: req.BookID})
	if err != nil {
		return nil, err
	}
	return toCartResponse(resp), nil
}

func (h *HTTPEndpoint) RemoveFromCart(r *router.Request) (any, error) {
	resp, err := h.uc.RemoveFromCart(r.Context(), usecase.CartItemInput{Token: r.BearerToken(), BookID: r.GetParam("bookId")})
	if err != nil {
		return nil, err
	}
	return toCartResponse(resp), nil
}

func (h *HTTPEndpoint) ClearCart(r *router.Request) (any, error) {
	resp, err := h.uc.ClearCart(r.Context(), usecase.CartInput{Token: r.BearerToken()})
	if err != nil {
		return nil, err
	}
	return toCartResponse(resp), nil
}
