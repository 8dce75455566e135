package inbound

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goroutine"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/messaging"
	"github.com/pkaramon/book-store-sub000/internal/pkg/uid"
	"github.com/pkaramon/book-store-sub000/internal/shared/event"
)

// RegisterMQConsumer subscribes the welcome handler in the background until
// ctx is done.
func RegisterMQConsumer(
	ctx context.Context,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	h := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	consumers := []struct {
		topic   string
		group   string
		handler messaging.Handler
	}{
		{topic: event.UserRegisteredTopic, group: event.UserRegisteredWelcomeGroup, handler: h.UserRegistered},
	}

	for _, c := range consumers {
		routine.Go(ctx, func(ctx context.Context) error {
			slog.InfoContext(ctx, "running consumer", "topic", c.topic, "group", c.group)
			err := messenger.Subscribe(ctx, c.topic, c.group, c.handler)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
}
