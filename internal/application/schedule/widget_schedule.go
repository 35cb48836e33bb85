package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"weather-widget/internal/domain/usecase/weather"
	"weather-widget/pkg/log"
)

const (
	sessionSweepJob = "widget-session-sweep"
	refreshJob      = "widget-refresh"
)

// WidgetSchedulerConfig holds configuration for the widget scheduler.
// A zero interval disables the corresponding job.
type WidgetSchedulerConfig struct {
	SweepInterval   time.Duration
	RefreshInterval time.Duration
	// Locker makes each run execute on a single instance; nil runs every job locally
	Locker gocron.Locker
}

// WidgetScheduler runs the session sweep and periodic refresh jobs
type WidgetScheduler struct {
	scheduler gocron.Scheduler
	useCase   weather.UseCase
	config    WidgetSchedulerConfig
}

// NewWidgetScheduler creates a widget scheduler; jobs are registered by InitWidgetScheduleTasks
func NewWidgetScheduler(useCase weather.UseCase, config WidgetSchedulerConfig) (*WidgetScheduler, error) {
	options := []gocron.SchedulerOption{gocron.WithLogger(schedulerLogger{})}
	if config.Locker != nil {
		options = append(options, gocron.WithDistributedLocker(config.Locker))
	}

	scheduler, err := gocron.NewScheduler(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &WidgetScheduler{scheduler: scheduler, useCase: useCase, config: config}, nil
}

// InitWidgetScheduleTasks registers the enabled jobs and starts the scheduler
func (s *WidgetScheduler) InitWidgetScheduleTasks() error {
	if s.config.SweepInterval > 0 {
		if err := s.addJob(sessionSweepJob, s.config.SweepInterval, s.ExpireIdleSessions); err != nil {
			return err
		}
	}

	if s.config.RefreshInterval > 0 {
		if err := s.addJob(refreshJob, s.config.RefreshInterval, s.RefreshAllSessions); err != nil {
			return err
		}
	}

	s.scheduler.Start()
	log.Info("Widget scheduler started",
		zap.Duration("sweep_interval", s.config.SweepInterval),
		zap.Duration("refresh_interval", s.config.RefreshInterval),
		zap.Bool("distributed", s.config.Locker != nil))
	return nil
}

func (s *WidgetScheduler) addJob(name string, interval time.Duration, task func(ctx context.Context)) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	return nil
}

// ExpireIdleSessions removes sessions idle for longer than the session TTL
func (s *WidgetScheduler) ExpireIdleSessions(ctx context.Context) {
	runID := uuid.New().String()

	removed, err := s.useCase.ExpireIdleSessions(ctx)
	if err != nil {
		log.Error("Failed to expire idle widget sessions", zap.String("run_id", runID), zap.Error(err))
		return
	}

	if removed > 0 {
		log.Info("Expired idle widget sessions", zap.String("run_id", runID), zap.Int("removed", removed))
	}
}

// RefreshAllSessions repeats the last search of every session
func (s *WidgetScheduler) RefreshAllSessions(ctx context.Context) {
	runID := uuid.New().String()

	log.Info("Widget refresh scheduled task triggered", zap.String("run_id", runID))
	refreshed, err := s.useCase.RefreshAll(ctx)
	if err != nil {
		log.Error("Failed to refresh widget sessions", zap.String("run_id", runID), zap.Int("refreshed", refreshed), zap.Error(err))
		return
	}

	log.Info("Widget refresh scheduled task completed", zap.String("run_id", runID), zap.Int("refreshed", refreshed))
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *WidgetScheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		log.Error("Failed to stop widget scheduler", zap.Error(err))
	}
}

// schedulerLogger routes gocron's own logs through pkg/log
type schedulerLogger struct{}

func (schedulerLogger) Debug(msg string, args ...any) { log.Debugw(msg, args...) }
func (schedulerLogger) Info(msg string, args ...any)  { log.Infow(msg, args...) }
func (schedulerLogger) Warn(msg string, args ...any)  { log.Warnw(msg, args...) }
func (schedulerLogger) Error(msg string, args ...any) { log.Errorw(msg, args...) }
