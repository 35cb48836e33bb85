package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/gateway/api"
	"weather-widget/internal/domain/gateway/state"
	"weather-widget/internal/domain/model"
	"weather-widget/internal/domain/model/external"
	"weather-widget/pkg/log"
)

// CredentialSource returns the provider API key; it is called on every search.
type CredentialSource func() string

// Config holds the widget settings of the use case
type Config struct {
	DefaultCity string
	SessionTTL  time.Duration
	Transformer Transformer
}

type weatherUseCase struct {
	apiGateway   api.WeatherGateway
	stateGateway state.StateGateway
	credentials  CredentialSource
	transformer  Transformer
	defaultCity  string
	sessionTTL   time.Duration
	now          func() time.Time
}

func NewWeatherUseCase(config Config, credentials CredentialSource, apiGateway api.WeatherGateway, stateGateway state.StateGateway) UseCase {
	return &weatherUseCase{
		apiGateway:   apiGateway,
		stateGateway: stateGateway,
		credentials:  credentials,
		transformer:  config.Transformer,
		defaultCity:  strings.TrimSpace(config.DefaultCity),
		sessionTTL:   config.SessionTTL,
		now:          time.Now,
	}
}

// Open returns the session's widget, searching the default city for sessions that never searched.
// The check and the start of that search happen in one update, so concurrent first opens search once.
func (uc *weatherUseCase) Open(ctx context.Context, sessionID string) (entity.WidgetState, error) {
	var sequence uint64
	opened, err := uc.stateGateway.Update(ctx, sessionID, func(s *entity.WidgetState) error {
		s.LastSeenAt = uc.now()
		if s.Sequence != 0 || uc.defaultCity == "" {
			return nil
		}
		sequence = startSearch(s, uc.defaultCity)
		return nil
	})
	if err != nil {
		return entity.WidgetState{}, fmt.Errorf("failed to open widget: %w", err)
	}

	if sequence == 0 {
		return opened, nil
	}

	log.Info("Opening new widget session with default city",
		zap.String("session_id", sessionID),
		zap.String("city", uc.defaultCity))
	return uc.runSearch(ctx, sessionID, uc.defaultCity, sequence, opened)
}

// GetWidget returns the session's widget as it is
func (uc *weatherUseCase) GetWidget(ctx context.Context, sessionID string) (entity.WidgetState, error) {
	current, err := uc.stateGateway.Get(ctx, sessionID)
	if err != nil {
		return entity.WidgetState{}, fmt.Errorf("failed to load widget: %w", err)
	}
	return current, nil
}

// Search fetches current conditions and forecast for city and commits them to the session's widget.
// Provider failures are reported through the widget message; the returned error covers state store failures only.
func (uc *weatherUseCase) Search(ctx context.Context, sessionID string, city string) (entity.WidgetState, error) {
	return uc.search(ctx, sessionID, city, true)
}

// search runs one search. Only user-initiated searches mark the session as seen.
func (uc *weatherUseCase) search(ctx context.Context, sessionID string, city string, userAction bool) (entity.WidgetState, error) {
	city = strings.TrimSpace(city)

	var sequence uint64
	started, err := uc.stateGateway.Update(ctx, sessionID, func(s *entity.WidgetState) error {
		if userAction {
			s.LastSeenAt = uc.now()
		}
		sequence = startSearch(s, city)
		return nil
	})
	if err != nil {
		return entity.WidgetState{}, fmt.Errorf("failed to start search: %w", err)
	}

	return uc.runSearch(ctx, sessionID, city, sequence, started)
}

// startSearch claims the next sequence number and puts the widget in its searching state
func startSearch(s *entity.WidgetState, city string) uint64 {
	s.Sequence++

	if city == "" {
		s.Current = nil
		s.Loading = false
		s.Message = MessageBlankCity
		return s.Sequence
	}

	s.LastCity = city
	s.Loading = true
	s.Message = MessageFetching
	return s.Sequence
}

// runSearch fetches city for the search started as sequence and commits the outcome
func (uc *weatherUseCase) runSearch(ctx context.Context, sessionID string, city string, sequence uint64, started entity.WidgetState) (entity.WidgetState, error) {
	if city == "" {
		log.Debug("Ignoring blank city search", zap.String("session_id", sessionID))
		return started, nil
	}

	apiKey := uc.credentials()
	if apiKey == "" {
		log.Error("API Key is missing!", zap.String("session_id", sessionID))
		return uc.commit(ctx, sessionID, sequence, nil, ErrMissingAPIKey)
	}

	report, fetchErr := uc.fetchReport(ctx, city, apiKey)
	if fetchErr != nil {
		log.Warn("Weather search failed",
			zap.String("session_id", sessionID),
			zap.String("city", city),
			zap.Uint64("sequence", sequence),
			zap.Error(fetchErr))
	}

	return uc.commit(ctx, sessionID, sequence, report, fetchErr)
}

// commit writes the outcome of search number sequence, unless a newer search was issued meanwhile
func (uc *weatherUseCase) commit(ctx context.Context, sessionID string, sequence uint64, report *model.WeatherReport, fetchErr error) (entity.WidgetState, error) {
	committed, err := uc.stateGateway.Update(context.WithoutCancel(ctx), sessionID, func(s *entity.WidgetState) error {
		if s.Sequence != sequence {
			return errStaleSearch
		}
		applyOutcome(s, report, fetchErr)
		return nil
	})

	if errors.Is(err, errStaleSearch) {
		log.Debug("Discarding stale search result",
			zap.String("session_id", sessionID),
			zap.Uint64("sequence", sequence),
			zap.Uint64("latest_sequence", committed.Sequence))
		return committed, nil
	}
	if err != nil {
		return entity.WidgetState{}, fmt.Errorf("failed to commit search: %w", err)
	}

	return committed, nil
}

// applyOutcome maps a fetch outcome onto the widget.
// A forecast failure shows the new current conditions, if any, and empties both forecast panels.
// Unexpected failures only change the message.
func applyOutcome(s *entity.WidgetState, report *model.WeatherReport, fetchErr error) {
	s.Loading = false
	s.Message = StatusMessage(fetchErr)

	switch {
	case fetchErr == nil:
		s.Current = report.Current
		s.Hourly = report.Hourly
		s.Daily = report.Daily
	case errors.Is(fetchErr, ErrCityNotFound):
		s.ClearWeather()
	case errors.Is(fetchErr, ErrForecastUnavailable):
		s.ClearWeather()
		if report != nil {
			s.Current = report.Current
		}
	}
}

// Refresh repeats the session's last search
func (uc *weatherUseCase) Refresh(ctx context.Context, sessionID string) (entity.WidgetState, error) {
	current, err := uc.GetWidget(ctx, sessionID)
	if err != nil {
		return entity.WidgetState{}, err
	}
	return uc.search(ctx, sessionID, current.LastCity, true)
}

// ToggleTheme flips the session's dark mode flag
func (uc *weatherUseCase) ToggleTheme(ctx context.Context, sessionID string) (entity.WidgetState, error) {
	toggled, err := uc.stateGateway.Update(ctx, sessionID, func(s *entity.WidgetState) error {
		s.DarkMode = !s.DarkMode
		s.LastSeenAt = uc.now()
		return nil
	})
	if err != nil {
		return entity.WidgetState{}, fmt.Errorf("failed to toggle theme: %w", err)
	}
	return toggled, nil
}

// RefreshAll refreshes every session that has searched at least once and is not idle.
// Refreshing does not count as activity, so refreshed sessions still expire.
func (uc *weatherUseCase) RefreshAll(ctx context.Context) (int, error) {
	sessionIDs, err := uc.stateGateway.Sessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	refreshed := 0
	for _, sessionID := range sessionIDs {
		if ctx.Err() != nil {
			return refreshed, ctx.Err()
		}

		current, err := uc.GetWidget(ctx, sessionID)
		if err != nil {
			log.Warn("Skipping session refresh", zap.String("session_id", sessionID), zap.Error(err))
			continue
		}
		if current.LastCity == "" {
			continue
		}
		if uc.sessionTTL > 0 && current.IdleFor(uc.sessionTTL, uc.now()) {
			log.Debug("Skipping refresh of idle session", zap.String("session_id", sessionID))
			continue
		}

		if _, err := uc.search(ctx, sessionID, current.LastCity, false); err != nil {
			log.Warn("Session refresh failed", zap.String("session_id", sessionID), zap.Error(err))
			continue
		}
		refreshed++
	}

	return refreshed, nil
}

// ExpireIdleSessions removes sessions idle for longer than the configured session TTL
func (uc *weatherUseCase) ExpireIdleSessions(ctx context.Context) (int, error) {
	if uc.sessionTTL <= 0 {
		return 0, nil
	}
	removed, err := uc.stateGateway.Sweep(ctx, uc.sessionTTL)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return removed, nil
}

// GetReport runs the fetch-and-transform routine for city without touching any session
func (uc *weatherUseCase) GetReport(ctx context.Context, city string) (*model.WeatherReport, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrBlankCity
	}

	apiKey := uc.credentials()
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return uc.fetchReport(ctx, city, apiKey)
}

// fetchReport fetches both provider documents in parallel and transforms them.
//
// Failures are checked in this order: no response on either call, current
// weather status, forecast status, then decoding and missing fields.
func (uc *weatherUseCase) fetchReport(ctx context.Context, city string, apiKey string) (*model.WeatherReport, error) {
	current, forecast, currentErr, forecastErr := uc.fetchCurrentAndForecastInParallel(ctx, city, apiKey)

	var transportErr *api.TransportError
	if errors.As(currentErr, &transportErr) || errors.As(forecastErr, &transportErr) {
		return nil, fmt.Errorf("failed to reach weather provider: %w", transportErr)
	}

	var providerErr *api.ProviderError
	if errors.As(currentErr, &providerErr) {
		return nil, fmt.Errorf("%w: %w", ErrCityNotFound, currentErr)
	}
	if errors.As(forecastErr, &providerErr) {
		report := &model.WeatherReport{Hourly: []entity.HourlyEntry{}, Daily: []entity.DailyEntry{}}
		if currentErr == nil {
			if conditions, err := uc.transformer.CurrentConditions(current); err == nil {
				report.Current = conditions
			}
		}
		return report, fmt.Errorf("%w: %w", ErrForecastUnavailable, forecastErr)
	}

	if currentErr != nil {
		return nil, fmt.Errorf("failed to get current weather: %w", currentErr)
	}
	if forecastErr != nil {
		return nil, fmt.Errorf("failed to get forecast: %w", forecastErr)
	}

	conditions, err := uc.transformer.CurrentConditions(current)
	if err != nil {
		return nil, err
	}
	hourly, err := uc.transformer.HourlyForecast(forecast)
	if err != nil {
		return nil, err
	}
	daily, err := uc.transformer.DailyForecast(forecast)
	if err != nil {
		return nil, err
	}

	return &model.WeatherReport{Current: conditions, Hourly: hourly, Daily: daily}, nil
}

// fetchCurrentAndForecastInParallel issues both provider calls and waits for both
func (uc *weatherUseCase) fetchCurrentAndForecastInParallel(ctx context.Context, city string, apiKey string) (*external.CurrentWeatherResponse, *external.ForecastResponse, error, error) {
	var wg sync.WaitGroup
	var current *external.CurrentWeatherResponse
	var forecast *external.ForecastResponse
	var currentErr, forecastErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		current, currentErr = uc.apiGateway.GetCurrentWeather(ctx, city, apiKey)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		forecast, forecastErr = uc.apiGateway.GetForecast(ctx, city, apiKey)
	}()

	wg.Wait()

	return current, forecast, currentErr, forecastErr
}
