package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
	// ErrKafkaGroupRequired is returned when subscribing without a consumer group.
	ErrKafkaGroupRequired = errors.New("messaging: kafka consumer group is required")
)

// KafkaConfig configures the Kafka implementation.
type KafkaConfig struct {
	Brokers []string
	Dialer  *kafka.Dialer
}

// Kafka is a Messaging backed by kafka-go. Offsets are committed only after
// the handler succeeds, so a failed message is read again after a rebalance.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers []*kafka.Reader
	closed  bool
}

// NewKafka constructs a Kafka client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: append([]string{}, cfg.Brokers...),
		dialer:  cfg.Dialer,
		writers: map[string]*kafka.Writer{},
	}, nil
}

// Close shuts down all readers and writers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers := k.writers
	readers := k.readers
	k.writers, k.readers = nil, nil
	k.mu.Unlock()

	var closeErr error
	for _, r := range readers {
		closeErr = errors.Join(closeErr, r.Close())
	}
	for _, w := range writers {
		closeErr = errors.Join(closeErr, w.Close())
	}
	return closeErr
}

// Publish writes env to topic.
func (k *Kafka) Publish(ctx context.Context, topic string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w, err := k.writer(topic)
	if err != nil {
		return err
	}

	msg := kafka.Message{Key: []byte(env.Key), Value: env.Body, Time: time.Now()}
	for key, v := range env.Headers {
		msg.Headers = append(msg.Headers, kafka.Header{Key: key, Value: []byte(v)})
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("messaging: kafka publish: %w", err)
	}
	return nil
}

// Subscribe reads topic as consumer group until ctx is done.
func (k *Kafka) Subscribe(ctx context.Context, topic, group string, h Handler) error {
	if group == "" {
		return ErrKafkaGroupRequired
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		GroupID: group,
		Topic:   topic,
		Dialer:  k.dialer,
	})

	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		_ = r.Close()
		return ErrClosed
	}
	k.readers = append(k.readers, r)
	k.mu.Unlock()

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("messaging: kafka fetch: %w", err)
		}

		env := Envelope{Key: string(m.Key), Body: m.Value, Headers: make(map[string]string, len(m.Headers))}
		for _, hd := range m.Headers {
			env.Headers[hd.Key] = string(hd.Value)
		}

		if err := handle(ctx, "kafka", h, env); err != nil {
			continue
		}
		if err := r.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			return fmt.Errorf("messaging: kafka commit: %w", err)
		}
	}
}

func (k *Kafka) writer(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, ErrClosed
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(k.brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	if k.dialer != nil {
		w.Transport = &kafka.Transport{TLS: k.dialer.TLS, SASL: k.dialer.SASLMechanism}
	}
	k.writers[topic] = w
	return w, nil
}
