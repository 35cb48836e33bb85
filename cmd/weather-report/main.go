package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"weather-widget/configs"
	"weather-widget/internal/domain/gateway/api"
	"weather-widget/internal/domain/gateway/state"
	"weather-widget/internal/domain/usecase/weather"
	pkghttp "weather-widget/pkg/http"
	"weather-widget/pkg/log"
	"weather-widget/pkg/resource"
)

// weather-report prints the report of one city as JSON, without starting the server.
//
//	go run ./cmd/weather-report -city Tirupati
func main() {
	defer log.Sync()

	city := flag.String("city", resource.GetStringOrDefault("app.widget.default-city", "Tirupati"), "city to report")
	timeout := flag.Duration("timeout", 15*time.Second, "overall request timeout")
	flag.Parse()

	baseURL := resource.GetStringOrDefault("app.weather.base-url", "https://api.openweathermap.org/data/2.5")
	weatherGateway := api.NewWeatherGateway(baseURL, pkghttp.ClientOptions{
		ConnectionTimeout: resource.GetDurationOrDefault("app.weather.connection-timeout", 5*time.Second),
		ReadTimeout:       resource.GetDurationOrDefault("app.weather.read-timeout", 10*time.Second),
		Logger:            pkghttp.NewZapHTTPLogger("openweather", "appid"),
	})

	location, err := time.LoadLocation(resource.GetStringOrDefault("app.widget.display-timezone", "Local"))
	if err != nil {
		location = time.Local
	}

	useCase := weather.NewWeatherUseCase(weather.Config{
		Transformer: weather.Transformer{
			IconBaseURL: resource.GetStringOrDefault("app.weather.icon-base-url", "https://openweathermap.org/img/wn"),
			Location:    location,
		},
	}, configs.APIKey, weatherGateway, state.NewMemoryStateGateway())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := useCase.GetReport(ctx, strings.TrimSpace(*city))
	if err != nil {
		log.Error(weather.StatusMessage(err), zap.String("city", *city), zap.Error(err))
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Fatal("Failed to write report", zap.Error(err))
	}
}
