package weather

import (
	"context"

	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/model"
)

type UseCase interface {
	// Open returns the session's widget, running the default-city search the first time a session is seen
	Open(ctx context.Context, sessionID string) (entity.WidgetState, error)

	// GetWidget returns the session's widget as it is
	GetWidget(ctx context.Context, sessionID string) (entity.WidgetState, error)

	// Search fetches current conditions and forecast for city and commits them to the session's widget
	Search(ctx context.Context, sessionID string, city string) (entity.WidgetState, error)

	// Refresh repeats the session's last search
	Refresh(ctx context.Context, sessionID string) (entity.WidgetState, error)

	// ToggleTheme flips the session's dark mode flag
	ToggleTheme(ctx context.Context, sessionID string) (entity.WidgetState, error)

	// RefreshAll refreshes every session that has searched and is not idle, without marking it as seen
	RefreshAll(ctx context.Context) (int, error)

	// ExpireIdleSessions removes sessions idle for longer than the configured session TTL
	ExpireIdleSessions(ctx context.Context) (int, error)

	// GetReport runs the fetch-and-transform routine for city without touching any session
	GetReport(ctx context.Context, city string) (*model.WeatherReport, error)
}
