package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-widget/internal/domain/model"
	"weather-widget/internal/domain/usecase/weather"
	"weather-widget/pkg/log"
)

type WeatherController struct {
	api     *echo.Group
	useCase weather.UseCase
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase) *WeatherController {
	return &WeatherController{api: api, useCase: useCase}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/api/weather", controller.GetReport)
}

// GetReport godoc
// @Summary Get weather report
// @Description Fetch current conditions, the next five 3-hour samples and up to five daily midday samples for a city
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} model.WeatherReport "Weather report"
// @Failure 400 {object} model.ErrorResponse "Blank city or missing API key"
// @Failure 404 {object} model.ErrorResponse "City not found"
// @Failure 502 {object} model.ErrorResponse "Forecast unavailable"
// @Failure 500 {object} model.ErrorResponse "Unexpected error"
// @Router /api/weather [get]
func (controller *WeatherController) GetReport(c echo.Context) error {
	city := c.QueryParam("city")

	report, err := controller.useCase.GetReport(c.Request().Context(), city)
	if err != nil {
		status := reportErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Error("Weather report failed", zap.String("city", city), zap.Error(err))
		}
		return c.JSON(status, model.ErrorResponse{Error: weather.StatusMessage(err)})
	}
	return c.JSON(http.StatusOK, report)
}

func reportErrorStatus(err error) int {
	switch {
	case errors.Is(err, weather.ErrBlankCity), errors.Is(err, weather.ErrMissingAPIKey):
		return http.StatusBadRequest
	case errors.Is(err, weather.ErrCityNotFound):
		return http.StatusNotFound
	case errors.Is(err, weather.ErrForecastUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
