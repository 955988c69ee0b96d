package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"jobsift/internal/cache"
	"jobsift/internal/cache/memory"
	"jobsift/internal/cache/redis"
	"jobsift/internal/config"
	"jobsift/internal/errors"
	"jobsift/internal/models"
	"jobsift/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsift/api")

const statusOK = "OK"

// SearchFilters are the fixed query-side filters sent with every page
// request of a run.
type SearchFilters struct {
	DatePosted      string
	Country         string
	EmploymentTypes string
	JobRequirements string
	Radius          int
}

type JobSearchClient interface {
	SearchPage(ctx context.Context, query string, page int, filters SearchFilters) ([]models.Record, error)
	JobDetails(ctx context.Context, jobID string) (models.Record, error)
}

type jobSearchClient struct {
	client *http.Client
	logger *zap.Logger
	config *config.Config
	cache  cache.Cache
}

func NewJobSearchClient(logger *zap.Logger, config *config.Config) JobSearchClient {
	cacheOpts := cache.Options{
		RedisURL:      config.RedisAddr,
		RedisPassword: config.RedisPassword,
		RedisDB:       config.RedisDB,
		DefaultTTL:    config.CacheTTL,
	}

	var detailCache cache.Cache
	if config.RedisAddr != "" {
		detailCache = redis.New(cacheOpts)
	} else {
		detailCache = memory.New(cacheOpts)
	}

	return &jobSearchClient{
		client: &http.Client{
			Timeout: config.APITimeout,
		},
		logger: logger,
		config: config,
		cache:  detailCache,
	}
}

// envelope is the common response shape of both endpoints. Data is kept raw
// because the detail endpoint returns either an object or an array.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func (c *jobSearchClient) SearchPage(ctx context.Context, query string, page int, filters SearchFilters) ([]models.Record, error) {
	ctx, span := tracer.Start(ctx, "SearchPage")
	defer span.End()
	span.SetAttributes(
		telemetry.String("search.query", query),
		telemetry.Int("search.page", page),
	)

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", "1")
	params.Set("date_posted", filters.DatePosted)
	params.Set("country", filters.Country)
	params.Set("employment_types", filters.EmploymentTypes)
	params.Set("radius", strconv.Itoa(filters.Radius))
	if filters.JobRequirements != "" {
		params.Set("job_requirements", filters.JobRequirements)
	}

	env, err := c.get(ctx, c.config.APIBaseURL+"/search?"+params.Encode())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if env.Status != statusOK {
		c.logger.Error("search returned non-OK status",
			zap.Int("page", page),
			zap.String("status", env.Status),
			zap.String("api_error", env.Error))
		return nil, errors.APIStatus(fmt.Sprintf("search status %q: %s", env.Status, env.Error), nil)
	}

	var entries []models.Record
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &entries); err != nil {
			c.logger.Error("failed to decode search results", zap.Int("page", page), zap.Error(err))
			return nil, errors.Decode("decoding search results", err)
		}
	}

	c.logger.Debug("fetched search page",
		zap.Int("page", page),
		zap.Int("entries", len(entries)))
	return entries, nil
}

func (c *jobSearchClient) JobDetails(ctx context.Context, jobID string) (models.Record, error) {
	ctx, span := tracer.Start(ctx, "JobDetails")
	defer span.End()
	span.SetAttributes(telemetry.String("job.id", jobID))

	cacheKey := fmt.Sprintf("jsearch:job:%s", jobID)
	var cached models.Record

	err := c.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		c.logger.Debug("cache hit for job details", zap.String("job_id", jobID))
		return cached, nil
	} else if err != cache.ErrNotFound {
		span.SetAttributes(telemetry.String("cache.result", "error"))
		span.RecordError(err)
		c.logger.Warn("cache error for job details", zap.Error(err))
	} else {
		span.SetAttributes(telemetry.String("cache.result", "miss"))
	}

	params := url.Values{}
	params.Set("job_id", jobID)

	env, err := c.get(ctx, c.config.APIBaseURL+"/job-details?"+params.Encode())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if env.Status != statusOK {
		c.logger.Warn("job details returned non-OK status",
			zap.String("job_id", jobID),
			zap.String("status", env.Status),
			zap.String("api_error", env.Error))
		return nil, errors.APIStatus(fmt.Sprintf("job details status %q: %s", env.Status, env.Error), nil)
	}

	detail, err := decodeDetail(env.Data)
	if err != nil {
		c.logger.Error("failed to decode job details", zap.String("job_id", jobID), zap.Error(err))
		return nil, err
	}
	if detail == nil {
		c.logger.Warn("job details not found", zap.String("job_id", jobID))
		return nil, errors.NotFound("job details not found", nil)
	}

	if err := c.cache.Set(ctx, cacheKey, detail, c.config.CacheTTL); err != nil {
		c.logger.Warn("failed to cache job details", zap.String("job_id", jobID), zap.Error(err))
	}

	return detail, nil
}

// decodeDetail normalizes the detail payload to zero or one record: the
// endpoint answers with a single object, a one-or-more element array (first
// element wins), an empty array, or nothing at all.
func decodeDetail(data json.RawMessage) (models.Record, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var record models.Record
	if err := json.Unmarshal(data, &record); err == nil {
		return record, nil
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Decode("decoding job details", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (c *jobSearchClient) get(ctx context.Context, requestURL string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Internal("creating request", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.config.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.config.APIHost)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("failed to execute request", zap.Error(err))
		return nil, errors.Transport("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status code", zap.Int("status_code", resp.StatusCode))
		return nil, errors.Transport(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Error("failed to decode response", zap.Error(err))
		return nil, errors.Decode("decoding response", err)
	}

	return &env, nil
}
