package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"weather-widget/internal/application/middleware"
	"weather-widget/internal/application/view"
	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/model"
	"weather-widget/internal/domain/usecase/weather"
	"weather-widget/pkg/log"
)

type WidgetController struct {
	api      *echo.Group
	useCase  weather.UseCase
	basePath string
}

func NewWidgetController(api *echo.Group, useCase weather.UseCase, basePath string) *WidgetController {
	return &WidgetController{api: api, useCase: useCase, basePath: basePath}
}

// InitWidgetRoutes initializes the widget page and widget API routes
func (controller *WidgetController) InitWidgetRoutes() {
	controller.api.GET("", controller.ShowWidget)
	controller.api.GET("/", controller.ShowWidget)
	controller.api.POST("/search", controller.SubmitSearch)
	controller.api.POST("/refresh", controller.SubmitRefresh)
	controller.api.POST("/theme", controller.SubmitTheme)

	controller.api.GET("/api/widget", controller.GetWidget)
	controller.api.POST("/api/widget/search", controller.Search)
	controller.api.POST("/api/widget/refresh", controller.Refresh)
	controller.api.POST("/api/widget/theme", controller.ToggleTheme)
}

// ShowWidget renders the widget page, searching the default city on a session's first visit
func (controller *WidgetController) ShowWidget(c echo.Context) error {
	state, err := controller.useCase.Open(c.Request().Context(), middleware.SessionID(c))
	if err != nil {
		return controller.stateFailure(c, err)
	}
	return c.Render(http.StatusOK, view.WidgetTemplate, view.WidgetPage{State: state, BasePath: controller.basePath})
}

// SubmitSearch handles the search form and redirects back to the page
func (controller *WidgetController) SubmitSearch(c echo.Context) error {
	var dto model.SearchDTO
	if err := c.Bind(&dto); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form")
	}
	if _, err := controller.useCase.Search(c.Request().Context(), middleware.SessionID(c), dto.City); err != nil {
		return controller.stateFailure(c, err)
	}
	return controller.redirectToWidget(c)
}

// SubmitRefresh handles the refresh form and redirects back to the page
func (controller *WidgetController) SubmitRefresh(c echo.Context) error {
	if _, err := controller.useCase.Refresh(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return controller.stateFailure(c, err)
	}
	return controller.redirectToWidget(c)
}

// SubmitTheme handles the theme toggle form and redirects back to the page
func (controller *WidgetController) SubmitTheme(c echo.Context) error {
	if _, err := controller.useCase.ToggleTheme(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return controller.stateFailure(c, err)
	}
	return controller.redirectToWidget(c)
}

// GetWidget godoc
// @Summary Get widget state
// @Description Return the widget state of the caller's session
// @Tags widget
// @Produce json
// @Success 200 {object} entity.WidgetState "Widget state"
// @Failure 500 {object} model.ErrorResponse "State store failure"
// @Router /api/widget [get]
func (controller *WidgetController) GetWidget(c echo.Context) error {
	state, err := controller.useCase.GetWidget(c.Request().Context(), middleware.SessionID(c))
	return controller.respondState(c, state, err)
}

// Search godoc
// @Summary Search a city
// @Description Fetch current conditions and forecast for a city into the caller's widget. Provider failures are reported in the state message.
// @Tags widget
// @Accept json
// @Produce json
// @Param search body model.SearchDTO true "City to search"
// @Success 200 {object} entity.WidgetState "Widget state after the search"
// @Failure 400 {object} model.ErrorResponse "Invalid request body"
// @Failure 500 {object} model.ErrorResponse "State store failure"
// @Router /api/widget/search [post]
func (controller *WidgetController) Search(c echo.Context) error {
	var dto model.SearchDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request body"})
	}
	state, err := controller.useCase.Search(c.Request().Context(), middleware.SessionID(c), dto.City)
	return controller.respondState(c, state, err)
}

// Refresh godoc
// @Summary Refresh the widget
// @Description Repeat the last search of the caller's session
// @Tags widget
// @Produce json
// @Success 200 {object} entity.WidgetState "Widget state after the refresh"
// @Failure 500 {object} model.ErrorResponse "State store failure"
// @Router /api/widget/refresh [post]
func (controller *WidgetController) Refresh(c echo.Context) error {
	state, err := controller.useCase.Refresh(c.Request().Context(), middleware.SessionID(c))
	return controller.respondState(c, state, err)
}

// ToggleTheme godoc
// @Summary Toggle dark mode
// @Description Flip the dark mode flag of the caller's widget
// @Tags widget
// @Produce json
// @Success 200 {object} entity.WidgetState "Widget state after the toggle"
// @Failure 500 {object} model.ErrorResponse "State store failure"
// @Router /api/widget/theme [post]
func (controller *WidgetController) ToggleTheme(c echo.Context) error {
	state, err := controller.useCase.ToggleTheme(c.Request().Context(), middleware.SessionID(c))
	return controller.respondState(c, state, err)
}

func (controller *WidgetController) respondState(c echo.Context, state entity.WidgetState, err error) error {
	if err != nil {
		log.Error("Widget state request failed", zap.String("session_id", middleware.SessionID(c)), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: weather.MessageUnexpected})
	}
	return c.JSON(http.StatusOK, state)
}

func (controller *WidgetController) stateFailure(c echo.Context, err error) error {
	log.Error("Widget page request failed", zap.String("session_id", middleware.SessionID(c)), zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, weather.MessageUnexpected)
}

func (controller *WidgetController) redirectToWidget(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, controller.basePath+"/")
}
