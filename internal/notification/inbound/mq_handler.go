package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/notification/entity"
	"github.com/pkaramon/book-store-sub000/internal/notification/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/messaging"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/shared/event"
)

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, env messaging.Envelope) context.Context {
	if cid := env.Header(messaging.HeaderCorrelationID); cid != "" {
		return instrument.SetCorrelationID(ctx, cid)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// UserRegistered sends the welcome email. A body that cannot be decoded is
// logged and acknowledged.
func (h *MQHandler) UserRegistered(ctx context.Context, env messaging.Envelope) error {
	ctx = h.ensureCorrelationID(ctx, env)
	ctx = instrument.ExtractHeaders(ctx, env.Headers)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserRegistered")
	defer span.End()

	var payload event.UserRegistered
	if err := json.Unmarshal(env.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse user registered message", "msg_body", string(env.Body), "error", err)
		return nil
	}

	eventID := payload.EventID
	if eventID == "" {
		eventID = env.Header(messaging.HeaderEventID)
	}

	return h.uc.SendWelcome(ctx, usecase.SendWelcomeInput{Welcome: entity.Welcome{
		EventID:   eventID,
		UserID:    payload.UserID,
		Kind:      payload.Kind,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	}})
}
