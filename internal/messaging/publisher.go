package messaging

import (
	"context"
	"encoding/json"
	"time"

	"jobsift/internal/config"
	"jobsift/internal/errors"
	"jobsift/internal/models"
	"jobsift/internal/telemetry"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobsift/messaging")

const (
	ScrapedJobsSubject = "jobs.scraped"
)

type Publisher interface {
	PublishRecord(ctx context.Context, record models.Record) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// NewPublisher connects to NATS when publishing is enabled; otherwise it
// returns a no-op publisher so the scheduler can stay oblivious.
func NewPublisher(logger *zap.Logger, config *config.Config) (Publisher, error) {
	if !config.PublishEnabled {
		logger.Info("publishing disabled, records will only be exported to files")
		return noopPublisher{}, nil
	}

	opts := []nats.Option{
		nats.Timeout(config.NATSConnTimeout),
		nats.Name("jobsift"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(config.NATSURL, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishRecord(ctx context.Context, record models.Record) error {
	_, span := tracer.Start(ctx, "PublishRecord")
	defer span.End()

	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling record", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", ScrapedJobsSubject),
		telemetry.Int("message.size", len(data)),
	)

	jobID, _ := record.StringField("job_id")
	if err := p.conn.Publish(ScrapedJobsSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish record",
			zap.String("job_id", jobID),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published record",
		zap.String("job_id", jobID),
		zap.String("subject", ScrapedJobsSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishRecord(ctx context.Context, record models.Record) error { return nil }

func (noopPublisher) Close() {}
