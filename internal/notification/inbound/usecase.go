package inbound

import (
	"context"

	"github.com/pkaramon/book-store-sub000/internal/notification/usecase"
)

type uc interface {
	SendWelcome(ctx context.Context, in usecase.SendWelcomeInput) error
}
