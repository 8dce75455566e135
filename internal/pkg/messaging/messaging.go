package messaging

import (
	"context"
	"errors"
	"io"
	"maps"
)

// ErrClosed is returned by operations on a closed client.
var ErrClosed = errors.New("messaging: client closed")

// Messaging publishes to and subscribes on named topics.
type Messaging interface {
	io.Closer

	// Publish sends env to topic and waits until the broker accepted it.
	Publish(ctx context.Context, topic string, env Envelope) error

	// Subscribe delivers messages from topic to h until ctx is done. Members
	// of the same group share the stream. A message whose handler returns an
	// error is redelivered when the broker supports it.
	Subscribe(ctx context.Context, topic, group string, h Handler) error
}

// Handler processes one delivered message.
type Handler func(ctx context.Context, env Envelope) error

// Envelope is the broker independent message.
type Envelope struct {
	// Key orders or partitions messages where the broker supports it.
	Key string
	// Body is the payload.
	Body []byte
	// Headers carry metadata such as the correlation id.
	Headers map[string]string
}

// Header names set by publishers in this application.
const (
	HeaderCorrelationID = "cID"
	HeaderEventID       = "eventID"
)

// Header returns the value of header name, or "".
func (e Envelope) Header(name string) string {
	return e.Headers[name]
}

func (e Envelope) clone() Envelope {
	return Envelope{Key: e.Key, Body: append([]byte(nil), e.Body...), Headers: maps.Clone(e.Headers)}
}
