package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired is returned when the NATS server URL is missing.
var ErrNATSURLRequired = errors.New("messaging: nats url is required")

// NATSConfig configures the NATS implementation.
type NATSConfig struct {
	// URL is the NATS server address.
	URL string
	// Options are passed to the NATS client.
	Options []nats.Option
}

// NATS is a Messaging backed by core NATS. Groups map to queue groups.
// Core NATS has no redelivery, so handler errors are only logged.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	closed bool
}

// NewNATS connects to the NATS server.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("messaging: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Close drains and closes the connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true
	return n.conn.Drain()
}

// Publish sends env to the subject topic.
func (n *NATS) Publish(ctx context.Context, topic string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := nats.NewMsg(topic)
	msg.Data = env.Body
	for k, v := range env.Headers {
		msg.Header.Set(k, v)
	}
	if env.Key != "" {
		msg.Header.Set("key", env.Key)
	}

	if err := n.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("messaging: nats publish: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("messaging: nats flush: %w", err)
	}
	return nil
}

// Subscribe joins queue group on topic until ctx is done.
func (n *NATS) Subscribe(ctx context.Context, topic, group string, h Handler) error {
	sub, err := n.conn.QueueSubscribe(topic, group, func(m *nats.Msg) {
		env := Envelope{Body: m.Data, Headers: make(map[string]string, len(m.Header))}
		for k := range m.Header {
			env.Headers[k] = m.Header.Get(k)
		}
		env.Key = env.Headers["key"]
		delete(env.Headers, "key")

		if err := handle(ctx, "nats", h, env); err != nil {
			slog.WarnContext(ctx, "nats handler failed, message dropped", "subject", m.Subject, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("messaging: nats subscribe: %w", err)
	}

	<-ctx.Done()
	return errors.Join(ctx.Err(), sub.Drain())
}
