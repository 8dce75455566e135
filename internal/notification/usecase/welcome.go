package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/notification/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/idempotency"
	"github.com/pkaramon/book-store-sub000/internal/pkg/mail"
	"github.com/pkaramon/book-store-sub000/internal/pkg/schema"
)

type SendWelcomeInput struct {
	Welcome entity.Welcome
}

var recipientCheck = schema.All(schema.Trim, schema.NotEmpty)

// SendWelcome emails a new user once per registration event. An invalid
// payload is dropped without error so the message is not redelivered. A
// delivery error, or the event being handled by another worker, is returned
// so the broker can redeliver.
func (s *Usecase) SendWelcome(ctx context.Context, in SendWelcomeInput) error {
	ctx, span := s.startSpan(ctx, "SendWelcome")
	defer span.End()

	w := in.Welcome

	var msgs schema.Messages
	w.Email = schema.Merge(&msgs, "email", recipientCheck("email", w.Email))
	w.UserID = schema.Merge(&msgs, "user_id", recipientCheck("user_id", w.UserID))
	if msgs.HasAny() {
		slog.WarnContext(ctx, "dropping welcome with invalid payload", "event_id", w.EventID, "errors", msgs.ErrorMessages())
		return nil
	}

	err := s.guard.Do(ctx, w.DedupKey(), func(ctx context.Context) error {
		return s.sendWelcome(ctx, w)
	})
	switch {
	case errors.Is(err, idempotency.ErrCompleted):
		slog.InfoContext(ctx, "welcome already handled", "user_id", w.UserID, "event_id", w.EventID)
		return nil
	case errors.Is(err, idempotency.ErrInProgress):
		// the holder may still fail and release the key, so redeliver
		slog.InfoContext(ctx, "welcome in progress elsewhere", "user_id", w.UserID, "event_id", w.EventID)
		return err
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to send welcome", "user_id", w.UserID, "event_id", w.EventID, "error", err)
		return err
	}

	slog.InfoContext(ctx, "welcome sent", "user_id", w.UserID, "event_id", w.EventID)
	return nil
}

func (s *Usecase) sendWelcome(ctx context.Context, w entity.Welcome) error {
	text, html, err := renderWelcome(welcomeData{
		FirstName:    w.FirstName,
		AppName:      s.brand.AppName,
		SupportEmail: s.brand.SupportEmail,
		IsAuthor:     w.IsAuthor(),
		Year:         s.clock.Now().Format("2006"),
	})
	if err != nil {
		return err
	}

	return s.repoMail.Send(ctx, mail.Message{
		To:       []string{w.Email},
		Subject:  "Welcome to " + s.brand.AppName,
		TextBody: text,
		HTMLBody: html,
	})
}
