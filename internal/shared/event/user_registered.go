// Package event holds the payloads exchanged between modules over messaging.
package event

import "time"

// UserRegisteredTopic carries UserRegistered.
const UserRegisteredTopic = "user.registered"

// UserRegisteredWelcomeGroup is the consumer group sending welcome emails.
const UserRegisteredWelcomeGroup = "notification.welcome"

// UserRegistered is published after a customer or book author signs up.
type UserRegistered struct {
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	OccurredAt time.Time `json:"occurred_at"`
}
