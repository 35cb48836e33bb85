package state

import (
	"context"
	"strconv"
	"sync"
	"time"

	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/model"
)

type memoryStateGateway struct {
	mu       sync.Mutex
	sessions map[string]entity.WidgetState
	now      func() time.Time
}

// NewMemoryStateGateway creates a process-local StateGateway
func NewMemoryStateGateway() StateGateway {
	return &memoryStateGateway{
		sessions: make(map[string]entity.WidgetState),
		now:      time.Now,
	}
}

func (g *memoryStateGateway) Get(_ context.Context, sessionID string) (entity.WidgetState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if s, ok := g.sessions[sessionID]; ok {
		return cloneState(s), nil
	}
	return entity.NewWidgetState(sessionID), nil
}

func (g *memoryStateGateway) Update(_ context.Context, sessionID string, fn UpdateFunc) (entity.WidgetState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.sessions[sessionID]
	if !ok {
		current = entity.NewWidgetState(sessionID)
	}

	working := cloneState(current)
	if err := fn(&working); err != nil {
		return cloneState(current), err
	}

	working.SessionID = sessionID
	working.UpdatedAt = g.now()
	g.sessions[sessionID] = working
	return cloneState(working), nil
}

func (g *memoryStateGateway) Sessions(_ context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]string, 0, len(g.sessions))
	for id := range g.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *memoryStateGateway) Sweep(_ context.Context, idle time.Duration) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	removed := 0
	for id, s := range g.sessions {
		if s.IdleFor(idle, now) {
			delete(g.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (g *memoryStateGateway) Health(_ context.Context) model.ComponentHealthStatus {
	g.mu.Lock()
	count := len(g.sessions)
	g.mu.Unlock()

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"type":     "memory",
			"sessions": strconv.Itoa(count),
		},
	}
}
