// Package scheduler drives the periodic harvest cycle: pipeline run,
// criteria filter, summary, file export and optional publishing.
package scheduler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"jobsift/internal/api"
	"jobsift/internal/config"
	"jobsift/internal/export"
	"jobsift/internal/messaging"
	"jobsift/internal/models"
	"jobsift/internal/report"
	"jobsift/internal/scraper"
	"jobsift/internal/telemetry"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsift/scheduler")

type Scheduler struct {
	cron      *cron.Cron
	pipeline  *scraper.Pipeline
	exporter  *export.Exporter
	publisher messaging.Publisher
	logger    *zap.Logger
	config    *config.Config
	mutex     sync.Mutex
	running   bool

	// ctx is the lifetime of the harvest loop, owned by Start/Stop. Cycles
	// must not run on a caller's start-hook context, which is canceled as
	// soon as startup returns.
	ctx    context.Context
	cancel context.CancelFunc
}

func New(pipeline *scraper.Pipeline, exporter *export.Exporter, publisher messaging.Publisher, logger *zap.Logger, config *config.Config) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		pipeline:  pipeline,
		exporter:  exporter,
		publisher: publisher,
		logger:    logger,
		config:    config,
	}
}

// Start registers the cron entry and kicks off one immediate cycle so a
// fresh deployment produces output without waiting for the first tick.
func (s *Scheduler) Start() error {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	_, err := s.cron.AddFunc(s.config.ScrapeSpec, func() {
		s.runCycle(s.ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.config.ScrapeSpec))

	go s.runCycle(s.ctx)
	return nil
}

// Stop halts the cron loop and cancels any in-flight cycle.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	if s.cancel != nil {
		s.cancel()
	}
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runCycle(ctx context.Context) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		s.logger.Warn("previous harvest cycle still running, skipping tick")
		return
	}
	s.running = true
	s.mutex.Unlock()
	defer func() {
		s.mutex.Lock()
		s.running = false
		s.mutex.Unlock()
	}()

	ctx, span := tracer.Start(ctx, "Scheduler.runCycle")
	defer span.End()

	runID := uuid.NewString()
	startedAt := time.Now()
	logger := s.logger.With(zap.String("run_id", runID))
	span.SetAttributes(telemetry.String("run.id", runID))

	logger.Info("harvest cycle started",
		zap.String("query", s.config.SearchQuery),
		zap.Int("start_page", s.config.StartPage),
		zap.Int("page_count", s.config.PageCount))

	records, stats := s.pipeline.Run(ctx, s.pipelineOptions())

	logger.Info("pipeline run finished",
		zap.Int("pages_fetched", stats.PagesFetched),
		zap.Int("records", stats.RecordsFound),
		zap.Int("details_merged", stats.DetailsMerged),
		zap.Int("detail_failures", stats.DetailFailures),
		zap.String("stop_reason", string(stats.StopReason)))

	if len(records) == 0 {
		logger.Info("no records collected, nothing to export")
		return
	}

	selected := report.Filter(records, s.criteria())
	summary := report.Summarize(selected)
	logger.Info("harvest summary",
		zap.Int("selected", len(selected)),
		zap.Int("total_jobs", summary.TotalJobs),
		zap.Int("companies", summary.Companies),
		zap.Int("locations", summary.Locations),
		zap.Int("remote_jobs", summary.RemoteJobs),
		zap.Float64p("avg_salary", summary.AvgSalary),
		zap.Any("employment_types", summary.EmploymentTypes))

	if len(selected) == 0 {
		logger.Info("no records matched criteria, nothing to export")
		return
	}

	s.exportRecords(logger, runID, startedAt, selected)
	s.publishRecords(ctx, logger, selected)

	logger.Info("harvest cycle complete", zap.Duration("elapsed", time.Since(startedAt)))
}

func (s *Scheduler) pipelineOptions() scraper.Options {
	return scraper.Options{
		Query:        s.config.SearchQuery,
		StartPage:    s.config.StartPage,
		PageCount:    s.config.PageCount,
		FetchDetails: s.config.FetchDetails,
		Filters: api.SearchFilters{
			DatePosted:      s.config.DatePosted,
			Country:         s.config.Country,
			EmploymentTypes: s.config.EmploymentTypes,
			JobRequirements: s.config.JobRequirements,
			Radius:          s.config.Radius,
		},
	}
}

func (s *Scheduler) criteria() report.Criteria {
	return report.Criteria{
		MinSalary:     s.config.FilterMinSalary,
		Location:      s.config.FilterLocation,
		RemoteOnly:    s.config.FilterRemoteOnly,
		Company:       s.config.FilterCompany,
		TitleKeywords: s.config.FilterTitleKeywords,
	}
}

func (s *Scheduler) exportRecords(logger *zap.Logger, runID string, startedAt time.Time, records []models.Record) {
	base := filepath.Join(s.config.OutputDir,
		fmt.Sprintf("jobs_%s_%s", startedAt.Format("20060102_150405"), runID[:8]))

	format := s.config.ExportFormat
	if format == "json" || format == "both" {
		if err := s.exporter.WriteJSON(base+".json", records); err != nil {
			logger.Error("JSON export failed", zap.Error(err))
		}
	}
	if format == "csv" || format == "both" {
		if err := s.exporter.WriteCSV(base+".csv", records); err != nil {
			logger.Error("CSV export failed", zap.Error(err))
		}
	}
}

func (s *Scheduler) publishRecords(ctx context.Context, logger *zap.Logger, records []models.Record) {
	var failures int
	for _, rec := range records {
		if err := s.publisher.PublishRecord(ctx, rec); err != nil {
			failures++
		}
	}
	if failures > 0 {
		logger.Warn("some records failed to publish",
			zap.Int("failures", failures),
			zap.Int("records", len(records)))
	}
}
