package mail

import (
	"context"
	"io"
)

// Message is an email payload.
type Message struct {
	// From overrides the configured sender.
	From     string
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mail delivers messages.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
