package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

// ErrPubSubProjectIDRequired is returned when a ProjectID is required but missing.
var ErrPubSubProjectIDRequired = errors.New("messaging: pubsub project id is required")

// PubSubConfig configures the Google Pub/Sub implementation.
type PubSubConfig struct {
	ProjectID string
	// Client provides an existing Pub/Sub client.
	Client        *pubsub.Client
	ClientOptions []option.ClientOption
	// Concurrency sets ReceiveSettings.NumGoroutines when positive.
	Concurrency int
}

// PubSub is a Messaging backed by Google Pub/Sub. Topics and subscriptions
// are provisioned outside the application; the subscription for a group is
// named "<topic>.<group>".
type PubSub struct {
	client      *pubsub.Client
	concurrency int

	mu         sync.Mutex
	closed     bool
	publishers map[string]*pubsub.Publisher
}

// NewPubSub constructs a Pub/Sub client.
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	p := &PubSub{client: cfg.Client, concurrency: cfg.Concurrency, publishers: map[string]*pubsub.Publisher{}}
	if p.client != nil {
		return p, nil
	}
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	c, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("messaging: pubsub new client: %w", err)
	}
	p.client = c

	return p, nil
}

// Close stops publishers and closes the client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pubs := p.publishers
	p.publishers = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}
	return p.client.Close()
}

// Publish sends env to topic and waits for the server id.
func (p *PubSub) Publish(ctx context.Context, topic string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pub, err := p.publisher(topic)
	if err != nil {
		return err
	}

	res := pub.Publish(ctx, &pubsub.Message{Data: env.Body, Attributes: env.Headers, OrderingKey: env.Key})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("messaging: pubsub publish: %w", err)
	}
	return nil
}

// Subscribe receives from the group's subscription until ctx is done.
// Failed messages are nacked for redelivery.
func (p *PubSub) Subscribe(ctx context.Context, topic, group string, h Handler) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrClosed
	}

	sub := p.client.Subscriber(topic + "." + group)
	if p.concurrency > 0 {
		sub.ReceiveSettings.NumGoroutines = p.concurrency
	}

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		env := Envelope{Key: m.OrderingKey, Body: m.Data, Headers: m.Attributes}
		if err := handle(ctx, "pubsub", h, env); err != nil {
			m.Nack()
			return
		}
		m.Ack()
	})
}

func (p *PubSub) publisher(topic string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if pub, ok := p.publishers[topic]; ok {
		return pub, nil
	}
	pub := p.client.Publisher(topic)
	p.publishers[topic] = pub
	return pub, nil
}
