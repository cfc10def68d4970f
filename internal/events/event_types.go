package events

import (
	"time"

	"github.com/spec-kit/recruitment-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionCreated EventType = "session_created"
	EventSessionCleared EventType = "session_cleared"
	EventSessionExpired EventType = "session_expired"
)

// Event records one transition in a browser session's lifecycle.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Role      domain.Role `json:"role,omitempty"`
	PersonID  int64       `json:"person_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Detail    string      `json:"detail,omitempty"`
}
