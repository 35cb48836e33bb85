package weather

import "errors"

// Status messages shown by the widget.
const (
	MessageFetching      = "Fetching weather data..."
	MessageBlankCity     = "Please enter a city name."
	MessageMissingAPIKey = "API Key is missing!"
	MessageCityNotFound  = "City not found. Please enter a valid location."
	MessageForecastError = "Error fetching forecast data."
	MessageUnexpected    = "An error occurred. Please try again."
)

var (
	ErrBlankCity           = errors.New("city name is blank")
	ErrMissingAPIKey       = errors.New("api key is missing")
	ErrCityNotFound        = errors.New("city not found")
	ErrForecastUnavailable = errors.New("forecast unavailable")

	// errStaleSearch aborts the commit of a search that is no longer the latest of its session
	errStaleSearch = errors.New("stale search result")
)

// StatusMessage returns the message the widget shows for the outcome of a search.
func StatusMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBlankCity):
		return MessageBlankCity
	case errors.Is(err, ErrMissingAPIKey):
		return MessageMissingAPIKey
	case errors.Is(err, ErrCityNotFound):
		return MessageCityNotFound
	case errors.Is(err, ErrForecastUnavailable):
		return MessageForecastError
	default:
		return MessageUnexpected
	}
}
