package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"weather-widget/internal/application/middleware"
	"weather-widget/internal/application/view"
	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/gateway/api"
	"weather-widget/internal/domain/gateway/state"
	"weather-widget/internal/domain/model"
	"weather-widget/internal/domain/model/external"
	"weather-widget/internal/domain/usecase/health"
	"weather-widget/internal/domain/usecase/weather"
)

const basePath = "/weather-widget"

type stubGateway struct{}

func (stubGateway) GetCurrentWeather(_ context.Context, city string, _ string) (*external.CurrentWeatherResponse, error) {
	if city == "Nonexistentville123" {
		return nil, &api.ProviderError{Endpoint: "weather", StatusCode: http.StatusNotFound, Message: "city not found"}
	}
	return &external.CurrentWeatherResponse{
		Name:    city,
		Main:    &external.MainReadings{Temp: 28.3, Humidity: 62},
		Wind:    &external.WindReadings{Speed: 3.6},
		Weather: []external.WeatherCondition{{Description: "scattered clouds", Icon: "03d"}},
	}, nil
}

func (stubGateway) GetForecast(_ context.Context, city string, _ string) (*external.ForecastResponse, error) {
	switch city {
	case "Nonexistentville123":
		return nil, &api.ProviderError{Endpoint: "forecast", StatusCode: http.StatusNotFound}
	case "Atlantis":
		return nil, &api.ProviderError{Endpoint: "forecast", StatusCode: http.StatusServiceUnavailable}
	}
	return &external.ForecastResponse{
		List: []external.ForecastEntry{{
			Dt:      1700049600,
			DtTxt:   "2023-11-15 12:00:00",
			Main:    &external.MainReadings{Temp: 25.2, TempMin: 24.1, TempMax: 26.8},
			Weather: []external.WeatherCondition{{Icon: "10d"}},
		}},
		City: &external.ForecastCity{Timezone: 19800},
	}, nil
}

func newServer(t *testing.T, apiKey string) *echo.Echo {
	t.Helper()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	e.Renderer = renderer
	group := e.Group(basePath, middleware.Session(middleware.SessionConfig{Path: basePath}))

	store := state.NewMemoryStateGateway()
	credential := func() string { return apiKey }
	weatherUseCase := weather.NewWeatherUseCase(weather.Config{
		DefaultCity: "Tirupati",
		SessionTTL:  time.Hour,
		Transformer: weather.Transformer{IconBaseURL: "https://openweathermap.org/img/wn", Location: time.UTC},
	}, credential, stubGateway{}, store)
	healthUseCase := health.NewHealthUseCase(health.ProviderInfo{BaseURL: "http://provider", Credential: credential}, store)

	NewWidgetController(group, weatherUseCase, basePath).InitWidgetRoutes()
	NewWeatherController(group, weatherUseCase).InitWeatherRoutes()
	NewHealthController(group, healthUseCase).InitHealthRoutes()
	return e
}

func do(e *echo.Echo, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) entity.WidgetState {
	t.Helper()
	var s entity.WidgetState
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("invalid state body %s: %v", rec.Body.String(), err)
	}
	return s
}

func TestShowWidgetSearchesDefaultCity(t *testing.T) {
	e := newServer(t, "key")

	rec := do(e, httptest.NewRequest(http.MethodGet, basePath+"/", nil), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	sessionCookie(t, rec)
	body := rec.Body.String()
	if !strings.Contains(body, "Tirupati") || !strings.Contains(body, "28&deg;C") {
		t.Fatalf("default city not rendered: %s", body)
	}
}

func TestSearchFormRedirectsToWidget(t *testing.T) {
	e := newServer(t, "key")
	cookie := sessionCookie(t, do(e, httptest.NewRequest(http.MethodGet, basePath+"/api/widget", nil), nil))

	form := url.Values{"city": {"Oslo"}}
	req := httptest.NewRequest(http.MethodPost, basePath+"/search", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := do(e, req, cookie)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != basePath+"/" {
		t.Fatalf("status = %d, location = %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	s := decodeState(t, do(e, httptest.NewRequest(http.MethodGet, basePath+"/api/widget", nil), cookie))
	if s.Current == nil || s.Current.City != "Oslo" || s.LastCity != "Oslo" {
		t.Fatalf("unexpected state %+v", s)
	}
}

func TestWidgetAPI(t *testing.T) {
	e := newServer(t, "key")

	req := httptest.NewRequest(http.MethodPost, basePath+"/api/widget/search", strings.NewReader(`{"city":"Tirupati"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := do(e, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)
	s := decodeState(t, rec)
	if s.Current == nil || s.Current.Temperature != 28 || s.Message != "" || len(s.Daily) != 1 {
		t.Fatalf("unexpected state %+v", s)
	}

	s = decodeState(t, do(e, httptest.NewRequest(http.MethodPost, basePath+"/api/widget/theme", nil), cookie))
	if !s.DarkMode {
		t.Fatal("dark mode not toggled")
	}

	s = decodeState(t, do(e, httptest.NewRequest(http.MethodPost, basePath+"/api/widget/refresh", nil), cookie))
	if s.Sequence != 2 || s.Current.City != "Tirupati" || !s.DarkMode {
		t.Fatalf("unexpected state after refresh %+v", s)
	}

	req = httptest.NewRequest(http.MethodPost, basePath+"/api/widget/search", strings.NewReader(`{"city":"Nonexistentville123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	s = decodeState(t, do(e, req, cookie))
	if s.Message != weather.MessageCityNotFound || s.Current != nil || len(s.Hourly) != 0 || len(s.Daily) != 0 {
		t.Fatalf("unexpected state after failed search %+v", s)
	}
}

func TestWidgetAPIInvalidBody(t *testing.T) {
	e := newServer(t, "key")

	req := httptest.NewRequest(http.MethodPost, basePath+"/api/widget/search", strings.NewReader(`{"city":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if rec := do(e, req, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetReportStatusCodes(t *testing.T) {
	cases := []struct {
		city    string
		apiKey  string
		status  int
		message string
	}{
		{city: "Tirupati", apiKey: "key", status: http.StatusOK},
		{city: "", apiKey: "key", status: http.StatusBadRequest, message: weather.MessageBlankCity},
		{city: "Tirupati", apiKey: "", status: http.StatusBadRequest, message: weather.MessageMissingAPIKey},
		{city: "Nonexistentville123", apiKey: "key", status: http.StatusNotFound, message: weather.MessageCityNotFound},
		{city: "Atlantis", apiKey: "key", status: http.StatusBadGateway, message: weather.MessageForecastError},
	}

	for _, tc := range cases {
		t.Run(tc.city+"/"+tc.apiKey, func(t *testing.T) {
			e := newServer(t, tc.apiKey)
			target := basePath + "/api/weather?city=" + url.QueryEscape(tc.city)
			rec := do(e, httptest.NewRequest(http.MethodGet, target, nil), nil)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusOK {
				var report model.WeatherReport
				if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
					t.Fatal(err)
				}
				if report.Current == nil || report.Current.City != "Tirupati" || len(report.Hourly) != 1 {
					t.Fatalf("unexpected report %+v", report)
				}
				return
			}
			var body model.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tc.message {
				t.Fatalf("error = %q, want %q", body.Error, tc.message)
			}
		})
	}
}

func TestCheckHealth(t *testing.T) {
	e := newServer(t, "")

	rec := do(e, httptest.NewRequest(http.MethodGet, basePath+"/health", nil), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp model.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != model.StatusDown || resp.Provider.Status != model.StatusDown || resp.StateStore.Status != model.StatusUp {
		t.Fatalf("unexpected health %+v", resp)
	}
}
