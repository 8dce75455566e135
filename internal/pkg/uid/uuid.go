package uid

import "github.com/google/uuid"

// UUID generates version 7 UUIDs. They are time ordered, which keeps
// correlation and event ids sortable in logs and broker dashboards.
type UUID struct{}

func NewUUID() UUID {
	return UUID{}
}

func (UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
