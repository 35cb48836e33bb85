package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"weather-widget/configs"
	"weather-widget/docs"
	"weather-widget/internal/application/controller"
	"weather-widget/internal/application/middleware"
	"weather-widget/internal/application/schedule"
	"weather-widget/internal/application/view"
	"weather-widget/internal/domain/gateway/api"
	"weather-widget/internal/domain/gateway/state"
	"weather-widget/internal/domain/usecase/health"
	"weather-widget/internal/domain/usecase/weather"
	pkghttp "weather-widget/pkg/http"
	"weather-widget/pkg/log"
	"weather-widget/pkg/msg"
	"weather-widget/pkg/redis"
	"weather-widget/pkg/resource"
)

const (
	stateStoreMemory = "memory"
	stateStoreRedis  = "redis"
)

func main() {
	defer log.Sync()
	log.Info(msg.GetMessage("app.start"), zap.Bool("env_file_loaded", configs.Env.EnvFileLoaded))

	contextPath := resource.GetStringOrDefault("app.server.context-path", "/weather-widget")
	port := resource.GetStringOrDefault("app.server.port", "8080")
	baseURL := resource.GetStringOrDefault("app.weather.base-url", "https://api.openweathermap.org/data/2.5")
	sessionTTL := resource.GetDurationOrDefault("app.widget.session-ttl", 24*time.Hour)

	// Init infra
	e := echo.New()
	e.HideBanner = true
	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("Failed to load widget templates", zap.Error(err))
	}
	e.Renderer = renderer
	middleware.SetupRequestLogger(e)

	router := e.Group(contextPath, middleware.Session(middleware.SessionConfig{Path: contextPath, MaxAge: sessionTTL}))
	docs.SwaggerInfo.BasePath = contextPath
	e.GET(contextPath+"/swagger/*", echoSwagger.WrapHandler)

	// Init Gateways
	weatherGateway := api.NewWeatherGateway(baseURL, pkghttp.ClientOptions{
		ConnectionTimeout: resource.GetDurationOrDefault("app.weather.connection-timeout", 5*time.Second),
		ReadTimeout:       resource.GetDurationOrDefault("app.weather.read-timeout", 10*time.Second),
		Logger:            pkghttp.NewZapHTTPLogger("openweather", "appid"),
	})
	stateGateway, redisClient := newStateGateway(sessionTTL)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Init UseCase
	weatherUseCase := weather.NewWeatherUseCase(weather.Config{
		DefaultCity: resource.GetStringOrDefault("app.widget.default-city", "Tirupati"),
		SessionTTL:  sessionTTL,
		Transformer: weather.Transformer{
			IconBaseURL: resource.GetStringOrDefault("app.weather.icon-base-url", "https://openweathermap.org/img/wn"),
			Location:    displayLocation(),
		},
	}, configs.APIKey, weatherGateway, stateGateway)
	healthUseCase := health.NewHealthUseCase(health.ProviderInfo{BaseURL: baseURL, Credential: configs.APIKey}, stateGateway)

	// Init Controller
	widgetController := controller.NewWidgetController(router, weatherUseCase, contextPath)
	weatherController := controller.NewWeatherController(router, weatherUseCase)
	healthController := controller.NewHealthController(router, healthUseCase)

	// Init Routes
	widgetController.InitWidgetRoutes()
	weatherController.InitWeatherRoutes()
	healthController.InitHealthRoutes()

	// Init Schedule
	schedulerConfig := schedule.WidgetSchedulerConfig{
		SweepInterval:   resource.GetDurationOrDefault("app.widget.session-sweep-interval", 10*time.Minute),
		RefreshInterval: resource.GetDuration("app.widget.refresh-interval"),
	}
	if redisClient != nil {
		schedulerConfig.Locker = redis.NewJobLocker(redisClient, resource.GetDurationOrDefault("app.redis.lock-ttl", time.Minute))
	}
	widgetScheduler, err := schedule.NewWidgetScheduler(weatherUseCase, schedulerConfig)
	if err != nil {
		log.Fatal("Failed to create widget scheduler", zap.Error(err))
	}
	if err := widgetScheduler.InitWidgetScheduleTasks(); err != nil {
		log.Fatal("Failed to start widget scheduler", zap.Error(err))
	}
	defer widgetScheduler.Stop()

	// Start Routes
	go func() {
		log.Info(msg.GetMessage("app.started", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info(msg.GetMessage("app.stop"))
}

// newStateGateway builds the store selected by app.state.store; the Redis client is nil for the memory store
func newStateGateway(sessionTTL time.Duration) (state.StateGateway, *redis.Client) {
	store := resource.GetStringOrDefault("app.state.store", stateStoreMemory)
	log.Info(msg.GetMessage("app.state-store", store))

	switch store {
	case stateStoreMemory:
		return state.NewMemoryStateGateway(), nil
	case stateStoreRedis:
		config := redis.DefaultConfig().
			WithHost(resource.GetStringOrDefault("app.redis.host", "localhost")).
			WithPort(resource.GetIntOrDefault("app.redis.port", 6379)).
			WithPassword(resource.GetString("app.redis.password")).
			WithDatabase(resource.GetInt("app.redis.database")).
			WithDialTimeout(resource.GetDurationOrDefault("app.redis.dial-timeout", 5*time.Second)).
			WithKeyPrefix(resource.GetStringOrDefault("app.redis.key-prefix", "weather-widget"))

		client, err := redis.NewClient(config)
		if err != nil {
			log.Fatal("Invalid Redis configuration", zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DialTimeout)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			log.Fatal(msg.GetMessage("app.redis-fail", config.Addr(), err.Error()))
		}
		return state.NewRedisStateGateway(client, sessionTTL), client
	default:
		log.Fatalf("Unknown state store %q, expected %q or %q", store, stateStoreMemory, stateStoreRedis)
		return nil, nil
	}
}

// displayLocation resolves app.widget.display-timezone, falling back to the server zone
func displayLocation() *time.Location {
	name := resource.GetStringOrDefault("app.widget.display-timezone", "Local")
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("Unknown display timezone, using server time zone", zap.String("timezone", name), zap.Error(err))
		return time.Local
	}
	return location
}
