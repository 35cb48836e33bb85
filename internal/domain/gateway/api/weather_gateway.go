package api

import (
	"context"

	"weather-widget/internal/domain/model/external"
)

// WeatherGateway defines the OpenWeatherMap calls used by the widget.
// Both calls request metric units.
type WeatherGateway interface {
	// GetCurrentWeather gets the current conditions for a city name
	GetCurrentWeather(ctx context.Context, city string, apiKey string) (*external.CurrentWeatherResponse, error)

	// GetForecast gets the 5 day / 3 hour forecast for a city name
	GetForecast(ctx context.Context, city string, apiKey string) (*external.ForecastResponse, error)
}
