package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"guardops/internal/domain/compliance"
	"guardops/internal/domain/guard"
	"guardops/internal/platform/config"
)

const (
	JobComplianceRecalc = "compliance_recalc"
	JobDocumentSweep    = "document_sweep"
)

// Service runs background maintenance: periodic compliance recalculation
// and the document-expiry sweep. Jobs execute one at a time off a queue so
// a manual trigger and a scheduled run never overlap.
type Service struct {
	DB         *pgxpool.Pool
	Cfg        config.Config
	Compliance *compliance.Service
	Guards     *guard.Store
	queue      chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, complianceSvc *compliance.Service, guards *guard.Store) *Service {
	return &Service{
		DB:         db,
		Cfg:        cfg,
		Compliance: complianceSvc,
		Guards:     guards,
		queue:      make(chan job, 64),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.ComplianceRecalcInterval > 0 {
		go s.schedule(ctx, s.Cfg.ComplianceRecalcInterval, JobComplianceRecalc, s.runComplianceRecalc)
	}
	if s.Cfg.DocumentSweepInterval > 0 {
		go s.schedule(ctx, s.Cfg.DocumentSweepInterval, JobDocumentSweep, s.runDocumentSweep)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) schedule(ctx context.Context, interval time.Duration, jobType string, run func(context.Context) (any, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(jobType, run)
		}
	}
}

func (s *Service) runComplianceRecalc(ctx context.Context) (any, error) {
	score, err := s.Compliance.Recalculate(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{"overall": score.Overall, "trend": score.Trend}, nil
}

func (s *Service) runDocumentSweep(ctx context.Context) (any, error) {
	expiring, expired, err := s.Guards.CountExpiring(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if expiring > 0 || expired > 0 {
		slog.Warn("guard documents need attention", "expiring", expiring, "expired", expired)
	}
	return map[string]int{"expiring": expiring, "expired": expired}, nil
}
