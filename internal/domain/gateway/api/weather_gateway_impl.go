package api

import (
	"context"
	"fmt"

	"weather-widget/internal/domain/model/external"
	"weather-widget/pkg/http"
)

const (
	currentWeatherPath = "/weather"
	forecastPath       = "/forecast"
	metricUnits        = "metric"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client
func NewWeatherGateway(baseUrl string, clientOptions http.ClientOptions) WeatherGateway {
	httpClient := http.NewHttpClient(baseUrl, clientOptions)

	return &weatherGatewayImpl{
		httpClient: httpClient,
	}
}

// GetCurrentWeather gets the current conditions for a city name
func (w *weatherGatewayImpl) GetCurrentWeather(ctx context.Context, city string, apiKey string) (*external.CurrentWeatherResponse, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(currentWeatherPath).
		WithQueryParams(cityQuery(city, apiKey)).
		WithSuccessResp(&external.CurrentWeatherResponse{}).
		WithErrorResp(&external.OpenWeatherErrorResponse{}).
		Execute()

	if err == nil {
		return successResp.(*external.CurrentWeatherResponse), nil
	}

	return nil, classifyError(currentWeatherPath, status, errResp, err)
}

// GetForecast gets the 5 day / 3 hour forecast for a city name
func (w *weatherGatewayImpl) GetForecast(ctx context.Context, city string, apiKey string) (*external.ForecastResponse, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(forecastPath).
		WithQueryParams(cityQuery(city, apiKey)).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.OpenWeatherErrorResponse{}).
		Execute()

	if err == nil {
		return successResp.(*external.ForecastResponse), nil
	}

	return nil, classifyError(forecastPath, status, errResp, err)
}

func cityQuery(city string, apiKey string) map[string]string {
	return map[string]string{
		"q":     city,
		"units": metricUnits,
		"appid": apiKey,
	}
}

// classifyError turns the client's (status, error response, error) triple into
// a TransportError, a ProviderError or a decoding error.
func classifyError(endpoint string, status int, errResp any, err error) error {
	if status == 0 {
		return &TransportError{Endpoint: endpoint, Err: err}
	}

	if status < 200 || status >= 300 {
		providerErr := &ProviderError{Endpoint: endpoint, StatusCode: status}
		if body, ok := errResp.(*external.OpenWeatherErrorResponse); ok && body != nil {
			providerErr.Message = body.Message
		}
		return providerErr
	}

	return fmt.Errorf("%s: %w", endpoint, err)
}
