package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	nsq "github.com/nsqio/go-nsq"
)

var (
	// ErrNSQProducerAddrRequired is returned when publishing without a producer address.
	ErrNSQProducerAddrRequired = errors.New("messaging: nsq producer address is required")
	// ErrNSQConsumerAddrsRequired is returned when subscribing without nsqd or lookupd addresses.
	ErrNSQConsumerAddrsRequired = errors.New("messaging: nsq consumer nsqd/lookupd addresses are required")
)

// NSQConfig configures the NSQ implementation.
type NSQConfig struct {
	ProducerAddr         string
	ConsumerNSQDAddrs    []string
	ConsumerLookupdAddrs []string
	// Concurrency is the number of handlers per subscription.
	Concurrency int
}

// NSQ is a Messaging backed by NSQ. Groups map to channels. NSQ messages
// carry no headers, so the envelope is sent as JSON.
type NSQ struct {
	cfg      NSQConfig
	producer *nsq.Producer

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

type nsqBody struct {
	Key     string            `json:"key,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    []byte            `json:"body"`
}

// NewNSQ constructs an NSQ client. The producer is created only when a
// producer address is configured.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	n := &NSQ{cfg: cfg}
	if cfg.ProducerAddr == "" {
		return n, nil
	}

	p, err := nsq.NewProducer(cfg.ProducerAddr, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("messaging: nsq new producer: %w", err)
	}
	p.SetLoggerLevel(nsq.LogLevelError)
	n.producer = p

	return n, nil
}

// Close stops all consumers and the producer.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := n.consumers
	n.mu.Unlock()

	for _, c := range consumers {
		c.Stop()
		<-c.StopChan
	}
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

// Publish sends env to topic.
func (n *NSQ) Publish(ctx context.Context, topic string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.producer == nil {
		return ErrNSQProducerAddrRequired
	}

	body, err := json.Marshal(nsqBody{Key: env.Key, Headers: env.Headers, Body: env.Body})
	if err != nil {
		return fmt.Errorf("messaging: nsq encode: %w", err)
	}
	if err := n.producer.Publish(topic, body); err != nil {
		return fmt.Errorf("messaging: nsq publish: %w", err)
	}
	return nil
}

// Subscribe consumes topic on channel group until ctx is done. A handler
// error requeues the message.
func (n *NSQ) Subscribe(ctx context.Context, topic, group string, h Handler) error {
	if len(n.cfg.ConsumerNSQDAddrs) == 0 && len(n.cfg.ConsumerLookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	concurrency := max(n.cfg.Concurrency, 1)
	ccfg := nsq.NewConfig()
	ccfg.MaxInFlight = concurrency

	consumer, err := nsq.NewConsumer(topic, group, ccfg)
	if err != nil {
		return fmt.Errorf("messaging: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)

	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		var b nsqBody
		if err := json.Unmarshal(m.Body, &b); err != nil {
			// not an envelope; hand over the raw body
			b = nsqBody{Body: m.Body}
		}
		return handle(ctx, "nsq", h, Envelope{Key: b.Key, Body: b.Body, Headers: b.Headers})
	}), concurrency)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return ErrClosed
	}
	n.consumers = append(n.consumers, consumer)
	n.mu.Unlock()

	if len(n.cfg.ConsumerLookupdAddrs) > 0 {
		err = consumer.ConnectToNSQLookupds(n.cfg.ConsumerLookupdAddrs)
	} else {
		err = consumer.ConnectToNSQDs(n.cfg.ConsumerNSQDAddrs)
	}
	if err != nil {
		consumer.Stop()
		return fmt.Errorf("messaging: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		consumer.Stop()
		<-consumer.StopChan
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}
