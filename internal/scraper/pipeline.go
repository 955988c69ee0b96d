// Package scraper implements the paginate-and-enrich pipeline: it walks
// search result pages, optionally merges a detail record per listing, and
// returns the stamped records it accumulated.
package scraper

import (
	"context"
	"time"

	"jobsift/internal/api"
	"jobsift/internal/config"
	"jobsift/internal/errors"
	"jobsift/internal/models"
	"jobsift/internal/normalize"
	"jobsift/internal/pacing"
	"jobsift/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsift/scraper")

const jobIDField = "job_id"

// Options describe one pipeline run: the query, the page range
// [StartPage, StartPage+PageCount) and the fixed search filters.
type Options struct {
	Query        string
	StartPage    int
	PageCount    int
	Filters      api.SearchFilters
	FetchDetails bool
}

// StopReason records why a run ended. Every reason ends the run gracefully;
// whatever was accumulated is still returned.
type StopReason string

const (
	StopRangeExhausted StopReason = "range_exhausted"
	StopEmptyPage      StopReason = "empty_page"
	StopAPIStatus      StopReason = "api_status"
	StopTransport      StopReason = "transport_failure"
	StopBadResponse    StopReason = "bad_response"
	StopCanceled       StopReason = "canceled"
)

type RunStats struct {
	PagesFetched   int
	RecordsFound   int
	DetailsMerged  int
	DetailFailures int
	StopReason     StopReason
}

type Pipeline struct {
	client  api.JobSearchClient
	pages   *pacing.Governor
	details *pacing.Governor
	logger  *zap.Logger
	now     func() time.Time
}

func New(client api.JobSearchClient, logger *zap.Logger, cfg *config.Config) *Pipeline {
	return &Pipeline{
		client:  client,
		pages:   pacing.NewGovernor(cfg.PageInterval),
		details: pacing.NewGovernor(cfg.DetailInterval),
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes one pagination run. It never fails: stop conditions are
// reported in RunStats and the records collected so far are always returned.
// Fetching is strictly sequential, so total latency is bounded by
// entries x per-call latency; the two governors are the only pacing.
func (p *Pipeline) Run(ctx context.Context, opts Options) ([]models.Record, RunStats) {
	ctx, span := tracer.Start(ctx, "Pipeline.Run")
	defer span.End()
	span.SetAttributes(
		telemetry.String("search.query", opts.Query),
		telemetry.Int("search.start_page", opts.StartPage),
		telemetry.Int("search.page_count", opts.PageCount),
	)

	var records []models.Record
	stats := RunStats{StopReason: StopRangeExhausted}

	for page := opts.StartPage; page < opts.StartPage+opts.PageCount; page++ {
		if err := p.pages.Wait(ctx); err != nil {
			stats.StopReason = StopCanceled
			break
		}

		p.logger.Info("fetching search page", zap.Int("page", page))
		entries, err := p.client.SearchPage(ctx, opts.Query, page, opts.Filters)
		if err != nil {
			span.RecordError(err)
			p.logger.Error("search page failed, stopping run",
				zap.Int("page", page),
				zap.Error(err))
			stats.StopReason = stopReasonFor(err)
			break
		}
		stats.PagesFetched++

		if len(entries) == 0 {
			p.logger.Info("empty page, stopping run", zap.Int("page", page))
			stats.StopReason = StopEmptyPage
			break
		}

		for _, entry := range entries {
			rec := entry
			if opts.FetchDetails {
				rec = p.enrich(ctx, entry, &stats)
			}
			records = append(records, normalize.Stamp(rec, p.now()))
		}

		p.logger.Info("collected page",
			zap.Int("page", page),
			zap.Int("entries", len(entries)),
			zap.Int("total", len(records)))
	}

	stats.RecordsFound = len(records)
	span.SetAttributes(
		telemetry.Int("run.records", stats.RecordsFound),
		telemetry.Int("run.pages", stats.PagesFetched),
		telemetry.String("run.stop_reason", string(stats.StopReason)),
	)
	return records, stats
}

// enrich merges the detail record over the search entry, detail fields
// winning on collision. Missing id or a failed fetch falls back to the
// unmodified entry; a single bad listing never aborts the run.
func (p *Pipeline) enrich(ctx context.Context, entry models.Record, stats *RunStats) models.Record {
	jobID, ok := entry.StringField(jobIDField)
	if !ok {
		return entry
	}

	if err := p.details.Wait(ctx); err != nil {
		return entry
	}

	detail, err := p.client.JobDetails(ctx, jobID)
	if err != nil {
		stats.DetailFailures++
		p.logger.Warn("job details unavailable, keeping search entry",
			zap.String("job_id", jobID),
			zap.Error(err))
		return entry
	}

	stats.DetailsMerged++
	return models.Merge(entry, detail)
}

func stopReasonFor(err error) StopReason {
	switch errors.TypeOf(err) {
	case errors.ErrTypeAPIStatus:
		return StopAPIStatus
	case errors.ErrTypeDecode:
		return StopBadResponse
	default:
		return StopTransport
	}
}
