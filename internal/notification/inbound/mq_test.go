package inbound

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkaramon/book-store-sub000/internal/notification/entity"
	"github.com/pkaramon/book-store-sub000/internal/notification/usecase"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goroutine"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/pkg/messaging"
	"github.com/pkaramon/book-store-sub000/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUC struct {
	mock.Mock
}

func (m *mockUC) SendWelcome(ctx context.Context, in usecase.SendWelcomeInput) error {
	return m.Called(ctx, in).Error(0)
}

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func body(t *testing.T, v any) []byte {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestMQHandler_UserRegistered(t *testing.T) {
	t.Run("decodes and keeps the correlation id", func(t *testing.T) {
		m := &mockUC{}
		h := &MQHandler{uc: m, uuid: fixedID("generated"), ins: instrument.NewNoop()}
		m.On("SendWelcome", mock.MatchedBy(func(ctx context.Context) bool {
			return instrument.GetCorrelationID(ctx) == "cid-1"
		}), usecase.SendWelcomeInput{Welcome: entity.Welcome{
			EventID: "ev-1", UserID: "7", Kind: "customer", Email: "ann@example.com", FirstName: "Ann", LastName: "Lee",
		}}).Return(nil).Once()

		err := h.UserRegistered(context.Background(), messaging.Envelope{
			Body: body(t, event.UserRegistered{
				EventID: "ev-1", UserID: "7", Kind: "customer", Email: "ann@example.com", FirstName: "Ann", LastName: "Lee",
			}),
			Headers: map[string]string{messaging.HeaderCorrelationID: "cid-1"},
		})

		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("event id from header", func(t *testing.T) {
		m := &mockUC{}
		h := &MQHandler{uc: m, uuid: fixedID("generated"), ins: instrument.NewNoop()}
		m.On("SendWelcome", mock.Anything, mock.MatchedBy(func(in usecase.SendWelcomeInput) bool {
			return in.Welcome.EventID == "ev-h"
		})).Return(nil).Once()

		err := h.UserRegistered(context.Background(), messaging.Envelope{
			Body:    body(t, event.UserRegistered{UserID: "7", Email: "ann@example.com"}),
			Headers: map[string]string{messaging.HeaderEventID: "ev-h"},
		})

		require.NoError(t, err)
		m.AssertExpectations(t)
	})

	t.Run("malformed body is acknowledged", func(t *testing.T) {
		m := &mockUC{}
		h := &MQHandler{uc: m, uuid: fixedID("generated"), ins: instrument.NewNoop()}

		err := h.UserRegistered(context.Background(), messaging.Envelope{Body: []byte("{not json")})

		require.NoError(t, err)
		m.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything)
	})
}

func TestRegisterMQConsumer(t *testing.T) {
	bus := messaging.NewMemory()
	t.Cleanup(func() { _ = bus.Close() })

	m := &mockUC{}
	delivered := make(chan struct{}, 1)
	m.On("SendWelcome", mock.Anything, mock.Anything).Return(nil).Run(func(mock.Arguments) {
		delivered <- struct{}{}
	}).Once()

	ctx, cancel := context.WithCancel(context.Background())
	routine := goroutine.NewManager(2)
	RegisterMQConsumer(ctx, routine, bus, fixedID("generated"), m, instrument.NewNoop())

	require.Eventually(t, func() bool { return bus.Subscribers(event.UserRegisteredTopic) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(context.Background(), event.UserRegisteredTopic, messaging.Envelope{
		Body: body(t, event.UserRegistered{EventID: "ev-1", UserID: "7", Email: "ann@example.com"}),
	}))

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("welcome was not delivered")
	}

	cancel()
	assert.NoError(t, routine.Wait())
	m.AssertExpectations(t)
}
