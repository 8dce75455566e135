package messaging

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Memory is an in-process Messaging. Every group on a topic receives each
// message once; within a group messages go round-robin to subscribers.
// Delivery is synchronous with Publish and handler errors are logged.
type Memory struct {
	mu     sync.Mutex
	closed bool
	topics map[string]map[string][]memorySub
	next   map[string]int
	seq    int
}

type memorySub struct {
	id int
	h  Handler
}

// NewMemory returns an empty in-process bus.
func NewMemory() *Memory {
	return &Memory{topics: map[string]map[string][]memorySub{}, next: map[string]int{}}
}

// Close stops delivery.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.topics = map[string]map[string][]memorySub{}
	return nil
}

// Publish delivers env to one subscriber of every group on topic.
func (m *Memory) Publish(ctx context.Context, topic string, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	var targets []Handler
	for group, hs := range m.topics[topic] {
		if len(hs) == 0 {
			continue
		}
		key := topic + "\x00" + group
		targets = append(targets, hs[m.next[key]%len(hs)].h)
		m.next[key]++
	}
	m.mu.Unlock()

	for _, h := range targets {
		if err := handle(ctx, "memory", h, env.clone()); err != nil {
			slog.WarnContext(ctx, "memory handler failed", "topic", topic, "error", err)
		}
	}
	return nil
}

// Subscribe registers h until ctx is done.
func (m *Memory) Subscribe(ctx context.Context, topic, group string, h Handler) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.topics[topic] == nil {
		m.topics[topic] = map[string][]memorySub{}
	}
	m.seq++
	id := m.seq
	m.topics[topic][group] = append(m.topics[topic][group], memorySub{id: id, h: h})
	m.mu.Unlock()

	<-ctx.Done()

	m.mu.Lock()
	if groups := m.topics[topic]; groups != nil {
		groups[group] = slices.DeleteFunc(groups[group], func(s memorySub) bool { return s.id == id })
	}
	m.mu.Unlock()
	return ctx.Err()
}

// Subscribers counts the live subscriptions on topic across all groups.
func (m *Memory) Subscribers(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, subs := range m.topics[topic] {
		n += len(subs)
	}
	return n
}
