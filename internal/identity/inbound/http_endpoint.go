package inbound

import (
	"github.com/pkaramon/book-store-sub000/internal/identity/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for account workflows.
type HTTPEndpoint struct {
	uc uc
}

// RegisterCustomer creates a customer account.
func (h *HTTPEndpoint) RegisterCustomer(r *router.Request) (any, error) {
	var req RegisterCustomerRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterCustomer(r.Context(), usecase.RegisterCustomerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{ID: resp.ID}, nil
}

// RegisterBookAuthor creates a book author account.
func (h *HTTPEndpoint) RegisterBookAuthor(r *router.Request) (any, error) {
	var req RegisterBookAuthorRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterBookAuthor(r.Context(), usecase.RegisterBookAuthorInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: req.BirthDate,
		Bio:       req.Bio,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{ID: resp.ID}, nil
}

// Login exchanges credentials for an access token.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{AccessToken: resp.AccessToken}, nil
}

func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context(), usecase.ProfileInput{Token: r.BearerToken()})
	if err != nil {
		return nil, err
	}

	return toProfileResponse(resp), nil
}

func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req ProfileUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		Token:     r.BearerToken(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	if err != nil {
		return nil, err
	}

	return toProfileResponse(resp), nil
}

func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		Token:           r.BearerToken(),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordChangeResponse{}, nil
}

// DeleteAccount removes the caller's account. The body carries the password.
func (h *HTTPEndpoint) DeleteAccount(r *router.Request) (any, error) {
	var req DeleteAccountRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.DeleteAccount(r.Context(), usecase.DeleteAccountInput{
		Token:    r.BearerToken(),
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) DeleteUser(r *router.Request) (any, error) {
	if err := h.uc.DeleteUser(r.Context(), usecase.DeleteUserInput{
		Token:  r.BearerToken(),
		UserID: r.GetParam("id"),
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

func toProfileResponse(p *usecase.ProfileOutput) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Kind:      p.Kind,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		BirthDate: p.BirthDate,
		Bio:       p.Bio,
		CreatedAt: p.CreatedAt,
	}
}
