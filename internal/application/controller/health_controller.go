package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"weather-widget/internal/domain/usecase/health"
)

type HealthController struct {
	api     *echo.Group
	useCase health.UseCase
}

func NewHealthController(api *echo.Group, useCase health.UseCase) *HealthController {
	return &HealthController{api: api, useCase: useCase}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.api.GET("/health", controller.CheckHealth())
}

// CheckHealth godoc
// @Summary Health check
// @Description Report the status of the weather provider credential and the widget state store
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse "Health status"
// @Router /health [get]
func (controller *HealthController) CheckHealth() echo.HandlerFunc {
	return func(c echo.Context) error {
		healthResponse := controller.useCase.CheckHealth(c.Request().Context())

		return c.JSON(http.StatusOK, healthResponse)
	}
}
