package inbound

import (
	"net/http"
	"time"
)

type RegisterCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDate string `json:"birthDate"`
}

type RegisterBookAuthorRequest struct {
	RegisterCustomerRequest
	Bio string `json:"bio"`
}

type RegisterResponse struct {
	ID string `json:"id"`
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

func (RegisterResponse) Message() string {
	return "Registration successful."
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	BirthDate string    `json:"birthDate"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProfileUpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type PasswordChangeResponse struct{}

func (PasswordChangeResponse) Message() string {
	return "Password has been changed."
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}
