package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/infrastructure/classifier"
	"github.com/devradar/devradar/internal/config"
)

// ErrOutage indicates the pipeline aborted after too many consecutive
// classification failures. The unfinished batch stays unprocessed and is
// retried on the next run.
var ErrOutage = errors.New("classification outage, run aborted")

// Classifier produces a Classification for a posting's text.
type Classifier interface {
	Classify(ctx context.Context, title, description string) (posting.Classification, error)
}

// PostingEmbedder produces an embedding vector for a posting.
type PostingEmbedder interface {
	EmbedPosting(ctx context.Context, title, description string, skills []string) ([]float64, error)
}

// PipelineStats summarizes one pipeline run.
type PipelineStats struct {
	Batches   int
	Processed int
	Published int
	Discarded int
	Failed    int
}

// PipelineOptions tunes a pipeline run. BatchSize and OutageThreshold fall
// back to the defaults when unset; a zero RecordDelay disables inter-record
// pacing, a negative one restores the default.
type PipelineOptions struct {
	BatchSize       int
	RecordDelay     time.Duration
	OutageThreshold int
}

func (o PipelineOptions) withDefaults() PipelineOptions {
	if o.BatchSize <= 0 {
		o.BatchSize = config.DefaultBatchSize
	}
	if o.RecordDelay < 0 {
		o.RecordDelay = config.DefaultRecordDelay
	}
	if o.OutageThreshold <= 0 {
		o.OutageThreshold = config.DefaultOutageThreshold
	}
	return o
}

// PipelineService drains the raw-posting backlog: classify, normalize
// salary, embed, publish. Every record in a fetched batch is marked
// processed at batch end regardless of its individual outcome, so the
// backlog shrinks monotonically and a poison record can never wedge the
// pipeline.
type PipelineService struct {
	raws       posting.RawStore
	classified posting.ClassifiedStore
	classifier Classifier
	embedder   PostingEmbedder
	opts       PipelineOptions
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipelineService creates a PipelineService.
func NewPipelineService(
	raws posting.RawStore,
	classified posting.ClassifiedStore,
	cls Classifier,
	emb PostingEmbedder,
	opts PipelineOptions,
	logger *slog.Logger,
) *PipelineService {
	return &PipelineService{
		raws:       raws,
		classified: classified,
		classifier: cls,
		embedder:   emb,
		opts:       opts.withDefaults(),
		logger:     logger,
		now:        time.Now,
	}
}

// Run drains the backlog batch by batch until it is empty, the context is
// canceled, or an outage aborts the run.
func (s *PipelineService) Run(ctx context.Context) (PipelineStats, error) {
	var stats PipelineStats

	for {
		batch, err := s.raws.Unprocessed(ctx, s.opts.BatchSize)
		if err != nil {
			return stats, fmt.Errorf("fetch batch: %w", err)
		}
		if len(batch) == 0 {
			s.logger.Info("backlog drained",
				"batches", stats.Batches,
				"processed", stats.Processed,
				"published", stats.Published,
				"discarded", stats.Discarded,
				"failed", stats.Failed,
			)
			return stats, nil
		}

		stats.Batches++
		s.logger.Info("processing batch", "batch", stats.Batches, "size", len(batch))

		consecutiveFailures := 0
		for i, raw := range batch {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			outcome := s.processRecord(ctx, raw)
			switch outcome {
			case outcomePublished:
				stats.Published++
				consecutiveFailures = 0
			case outcomeDiscarded:
				stats.Discarded++
				consecutiveFailures = 0
			case outcomeFailed:
				stats.Failed++
				consecutiveFailures = 0
			case outcomeOutage:
				stats.Failed++
				consecutiveFailures++
				if consecutiveFailures >= s.opts.OutageThreshold {
					s.logger.Error("aborting run on consecutive failures",
						"failures", consecutiveFailures,
						"url", raw.URL(),
					)
					return stats, ErrOutage
				}
			}

			if s.opts.RecordDelay > 0 && i < len(batch)-1 {
				select {
				case <-ctx.Done():
					return stats, ctx.Err()
				case <-time.After(s.opts.RecordDelay):
				}
			}
		}

		urls := make([]string, len(batch))
		for i, raw := range batch {
			urls[i] = raw.URL()
		}
		if err := s.raws.MarkProcessed(ctx, urls, s.now()); err != nil {
			return stats, fmt.Errorf("mark batch processed: %w", err)
		}
		stats.Processed += len(batch)
	}
}

type recordOutcome int

const (
	outcomePublished recordOutcome = iota
	outcomeDiscarded
	outcomeFailed
	outcomeOutage
)

// processRecord runs one raw posting through the stages. All failures are
// contained to the record; only a classification-service failure counts
// toward the outage abort.
func (s *PipelineService) processRecord(ctx context.Context, raw posting.RawPosting) recordOutcome {
	cls, err := s.classifier.Classify(ctx, raw.Title(), raw.Description())
	if err != nil {
		if errors.Is(err, classifier.ErrUnavailable) {
			s.logger.Warn("classification unavailable", "url", raw.URL(), "error", err)
			return outcomeOutage
		}
		s.logger.Warn("classification failed", "url", raw.URL(), "error", err)
		return outcomeFailed
	}

	if !cls.Valid() {
		s.logger.Debug("posting discarded as non-tech", "url", raw.URL())
		return outcomeDiscarded
	}

	salaryText := cls.SalaryText()
	if salaryText == "" {
		salaryText = raw.SalaryRaw()
	}
	var salary *float64
	if v, ok := posting.NormalizeSalary(salaryText); ok {
		salary = &v
	}

	embedding, err := s.embedder.EmbedPosting(ctx, raw.Title(), raw.Description(), cls.Skills())
	if err != nil {
		s.logger.Warn("embedding failed, storing without vector", "url", raw.URL(), "error", err)
		embedding = nil
	}

	classified := posting.NewClassifiedPosting(
		raw.Platform(),
		raw.RoleQuery(),
		raw.PublishedAt(),
		raw.Title(),
		raw.Location(),
		raw.Description(),
		salary,
		raw.Company(),
		cls.Skills(),
		cls.Seniority(),
		raw.URL(),
		embedding,
	)

	if err := s.classified.Upsert(ctx, classified); err != nil {
		s.logger.Warn("publish failed", "url", raw.URL(), "error", err)
		return outcomeFailed
	}
	return outcomePublished
}
