package telemetry

import (
	"context"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/logger"
	"codeberg.org/mutker/visionarypub/internal/publish"
	"github.com/google/uuid"
)

type service struct {
	repo  Repository
	runID string
}

// No-op implementation
type noopCollector struct {
	runID string
}

func NewService(cfg Config, log logger.Logger) (Collector, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	runID := uuid.NewString()

	if !cfg.Enabled {
		log.Debug().Msg("Telemetry disabled, using no-op collector")
		return &noopCollector{runID: runID}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("db_path", cfg.DBPath).
		Str("run_id", runID).
		Msg("Telemetry service initialized successfully")

	return &service{repo: repo, runID: runID}, nil
}

func (s *service) RunID() string { return s.runID }

func (s *service) Record(ctx context.Context, report *publish.Report) error {
	errFactory := errors.New()

	if report == nil {
		return errFactory.New(ErrInvalidReport)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
	}

	if err := s.repo.Record(NewFrameRecord(s.runID, report)); err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	return nil
}

func (s *service) Close() error {
	if err := s.repo.Close(); err != nil {
		return errors.New().Wrap(errors.ErrShutdownFailed, err)
	}
	return nil
}

// NewFrameRecord flattens a dispatch report into its stored form.
func NewFrameRecord(runID string, report *publish.Report) *FrameRecord {
	rec := &FrameRecord{
		RunID:     runID,
		Seq:       report.Header.Seq,
		Stamp:     report.Header.Stamp,
		Duration:  report.Duration,
		Published: report.Count(publish.OutcomePublished),
		Skipped:   report.Count(publish.OutcomeSkipped),
		Failed:    report.Count(publish.OutcomeFailed),
		Streams:   make([]StreamRecord, 0, len(report.Results)),
	}

	for _, res := range report.Results {
		sr := StreamRecord{
			Stream:  res.Stream.String(),
			Outcome: res.Outcome.String(),
		}
		if res.Err != nil {
			sr.ErrorCode = string(errors.CodeOf(res.Err))
			sr.Error = res.Err.Error()
		}
		rec.Streams = append(rec.Streams, sr)
	}

	return rec
}

func (n *noopCollector) RunID() string { return n.runID }

func (*noopCollector) Record(_ context.Context, _ *publish.Report) error {
	return nil
}

func (*noopCollector) Close() error {
	return nil
}
