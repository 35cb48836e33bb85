package model

import "weather-widget/internal/domain/entity"

// SearchDTO is the body of the widget search endpoint
type SearchDTO struct {
	City string `json:"city" form:"city"`
}

// WeatherReport is the stateless result of one fetch-and-transform run
type WeatherReport struct {
	Current *entity.CurrentConditions `json:"current"`
	Hourly  []entity.HourlyEntry      `json:"hourly"`
	Daily   []entity.DailyEntry       `json:"daily"`
}

// ErrorResponse is the body returned by the JSON API on failure
type ErrorResponse struct {
	Error string `json:"error"`
}
