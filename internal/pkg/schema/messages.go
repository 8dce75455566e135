package schema

import (
	"slices"

	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
)

// Messages accumulates field messages across a sequence of ad hoc checks.
// A key is reported only once at least one message was recorded for it.
//
// The zero value is ready to use.
type Messages struct {
	fields map[string][]string
	order  []string
}

// Add appends msg to key's messages.
func (m *Messages) Add(key, msg string) {
	m.Set(key, append(m.get(key), msg))
}

// Set replaces key's messages. An empty msgs clears the key.
func (m *Messages) Set(key string, msgs []string) {
	if len(msgs) == 0 {
		if _, ok := m.fields[key]; ok {
			delete(m.fields, key)
			m.order = slices.DeleteFunc(m.order, func(k string) bool { return k == key })
		}
		return
	}

	if m.fields == nil {
		m.fields = make(map[string][]string)
	}
	if _, ok := m.fields[key]; !ok {
		m.order = append(m.order, key)
	}
	m.fields[key] = slices.Clone(msgs)
}

// Merge records the messages of a field result under key.
func Merge[V any](m *Messages, key string, res Result[V]) V {
	if !res.IsValid() {
		m.Set(key, append(m.get(key), res.Messages...))
	}
	return res.Value
}

// HasAny reports whether any key has messages.
func (m *Messages) HasAny() bool {
	return len(m.order) > 0
}

// ErrorMessages returns a copy of the recorded messages.
func (m *Messages) ErrorMessages() map[string][]string {
	out := make(map[string][]string, len(m.fields))
	for k, v := range m.fields {
		out[k] = slices.Clone(v)
	}
	return out
}

// InvalidProperties returns the keys with messages in insertion order.
func (m *Messages) InvalidProperties() []string {
	return slices.Clone(m.order)
}

// Err returns a validation error for the recorded messages, or nil.
func (m *Messages) Err() error {
	if !m.HasAny() {
		return nil
	}
	return goerror.NewValidation(m.fields, m.order)
}

func (m *Messages) get(key string) []string {
	return slices.Clone(m.fields[key])
}
