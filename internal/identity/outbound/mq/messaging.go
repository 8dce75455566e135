package mq

import (
	"context"
	"encoding/json"

	"github.com/pkaramon/book-store-sub000/internal/pkg/clock"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/messaging"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"github.com/pkaramon/book-store-sub000/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

type Messaging struct {
	client messaging.Messaging
	uuid   uid.StringID
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, uuid uid.StringID, clk clock.Clocker, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, uuid: uuid, clock: clk, ins: ins}
}

// PublishUserRegistered announces a new account. The user id is the message
// key so events of one user stay ordered on partitioned brokers.
func (m *Messaging) PublishUserRegistered(ctx context.Context, u account.User) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishUserRegistered")
	defer span.End()

	p := u.Info()
	msg := event.UserRegistered{
		EventID:    m.uuid.Generate(),
		UserID:     p.ID,
		Kind:       u.Kind().String(),
		Email:      p.Email,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		OccurredAt: m.clock.Now(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	headers := map[string]string{
		messaging.HeaderCorrelationID: instrument.GetCorrelationID(ctx),
		messaging.HeaderEventID:       msg.EventID,
	}
	instrument.InjectHeaders(ctx, headers)

	if err := m.client.Publish(ctx, event.UserRegisteredTopic, messaging.Envelope{
		Key:     p.ID,
		Body:    body,
		Headers: headers,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
