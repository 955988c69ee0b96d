package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobsift/internal/api"
	"jobsift/internal/config"
	"jobsift/internal/export"
	"jobsift/internal/messaging"
	"jobsift/internal/scheduler"
	"jobsift/internal/scraper"
	"jobsift/internal/telemetry"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func registerScheduler(s *scheduler.Scheduler, pub messaging.Publisher, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	var shutdownTracer func()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.OTLPCollectorURL != "" {
				shutdown, err := telemetry.InitTracer(ctx, "jobsift", cfg.OTLPCollectorURL)
				if err != nil {
					logger.Warn("tracing disabled", zap.Error(err))
				} else {
					shutdownTracer = shutdown
				}
			}
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			pub.Close()
			if shutdownTracer != nil {
				shutdownTracer()
			}
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			api.NewJobSearchClient,
			scraper.New,
			export.NewExporter,
			messaging.NewPublisher,
			scheduler.New,
		),
		fx.Invoke(registerScheduler),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
