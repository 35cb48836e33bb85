package state

import (
	"context"
	"time"

	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/model"
)

// UpdateFunc mutates a session's state. Returning an error aborts the update
// without writing anything; the error is passed back to the caller unchanged.
type UpdateFunc func(state *entity.WidgetState) error

// StateGateway stores one WidgetState per session. Updates of a session are serialised.
type StateGateway interface {
	// Get returns the session's state, or a fresh state when the session is unknown
	Get(ctx context.Context, sessionID string) (entity.WidgetState, error)

	// Update applies fn to the session's state and stores the result
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (entity.WidgetState, error)

	// Sessions lists the known session IDs
	Sessions(ctx context.Context) ([]string, error)

	// Sweep removes sessions whose LastSeenAt is older than idle and returns how many were removed.
	// Stores with native expiry may do nothing here.
	Sweep(ctx context.Context, idle time.Duration) (int, error)

	// Health reports the store status
	Health(ctx context.Context) model.ComponentHealthStatus
}

func cloneState(s entity.WidgetState) entity.WidgetState {
	if s.Current != nil {
		current := *s.Current
		s.Current = &current
	}
	s.Hourly = append([]entity.HourlyEntry{}, s.Hourly...)
	s.Daily = append([]entity.DailyEntry{}, s.Daily...)
	return s
}
