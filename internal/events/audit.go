package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLog subscribes a logging handler to every session lifecycle
// event, so sign-ins, sign-outs and forced expiries end up in the audit trail.
func RegisterAuditLog(d Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, e Event) error {
		logger.Info("session event",
			zap.String("event_id", e.ID),
			zap.String("type", string(e.Type)),
			zap.String("session_id", e.SessionID),
			zap.String("role", string(e.Role)),
			zap.Int64("person_id", e.PersonID),
			zap.String("detail", e.Detail),
		)
		return nil
	}

	d.Subscribe(EventSessionCreated, handler)
	d.Subscribe(EventSessionCleared, handler)
	d.Subscribe(EventSessionExpired, handler)
}
