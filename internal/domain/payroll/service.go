package payroll

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"guardops/internal/domain/attendance"
	"guardops/internal/platform/metrics"
)

// SummarySource resolves the attendance summary for a guard and period.
type SummarySource interface {
	GetSummary(ctx context.Context, guardID string, month, year int) (attendance.Summary, error)
}

type Service struct {
	store     *Store
	summaries SummarySource
	rates     Rates
	collector *metrics.Collector
	now       func() time.Time
}

func NewService(store *Store, summaries SummarySource, rates Rates, collector *metrics.Collector) *Service {
	return &Service{
		store:     store,
		summaries: summaries,
		rates:     rates,
		collector: collector,
		now:       time.Now,
	}
}

// Run computes and stores the payroll record for one guard and period. A
// missing salary configuration or attendance summary fails the run; the
// calculator never substitutes defaults for either. Re-running replaces a
// pending or processed record but refuses to touch a paid one.
func (s *Service) Run(ctx context.Context, guardID string, month, year int) (Record, error) {
	if !ValidPeriod(month, year) {
		return Record{}, ErrInvalidPeriod
	}

	status, err := s.store.GetRecordStatus(ctx, guardID, month, year)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return Record{}, err
	}
	if status == StatusPaid {
		return Record{}, ErrRecordPaid
	}

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	cfg, err := s.store.GetEffectiveConfig(ctx, guardID, periodStart)
	if err != nil {
		return Record{}, err
	}

	summary, err := s.summaries.GetSummary(ctx, guardID, month, year)
	if err != nil {
		if errors.Is(err, attendance.ErrNoEntries) {
			return Record{}, ErrAttendanceNotFound
		}
		return Record{}, err
	}

	record := Calculate(cfg, summary, s.rates, s.now().UTC())
	id, err := s.store.UpsertRecord(ctx, record)
	if err != nil {
		return Record{}, err
	}
	record.ID = id

	if s.collector != nil {
		s.collector.RecordPayrollRun()
	}
	return record, nil
}

// RunAll runs payroll for every active guard. Per-guard failures are
// collected rather than aborting the batch.
func (s *Service) RunAll(ctx context.Context, month, year int) (BatchResult, error) {
	if !ValidPeriod(month, year) {
		return BatchResult{}, ErrInvalidPeriod
	}

	guardIDs, err := s.store.ListActiveGuardIDs(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Month: month, Year: year}
	for _, guardID := range guardIDs {
		if _, err := s.Run(ctx, guardID, month, year); err != nil {
			if result.Failures == nil {
				result.Failures = map[string]string{}
			}
			result.Failures[guardID] = err.Error()
			slog.Warn("payroll run failed", "guardId", guardID, "month", month, "year", year, "err", err)
			continue
		}
		result.Processed++
	}
	return result, nil
}

// Process stamps every pending record of the period as processed.
func (s *Service) Process(ctx context.Context, month, year int) (int64, error) {
	if !ValidPeriod(month, year) {
		return 0, ErrInvalidPeriod
	}
	return s.store.MarkProcessed(ctx, month, year, s.now().UTC())
}

// MarkPaid confirms payment of a processed record. Paid is terminal; there
// is no reversal.
func (s *Service) MarkPaid(ctx context.Context, recordID string) error {
	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return err
	}
	switch record.Status {
	case StatusPaid:
		return ErrRecordPaid
	case StatusCancelled:
		return ErrRecordCancelled
	case StatusPending:
		return ErrRecordNotProcessed
	}
	return s.store.MarkPaid(ctx, recordID, s.now().UTC())
}

// Cancel is a terminal override for records that have not been paid out.
func (s *Service) Cancel(ctx context.Context, recordID string) error {
	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return err
	}
	if record.Status == StatusPaid {
		return ErrRecordPaid
	}
	return s.store.MarkCancelled(ctx, recordID)
}

func (s *Service) GetRecord(ctx context.Context, recordID string) (Record, error) {
	return s.store.GetRecord(ctx, recordID)
}

func (s *Service) ListRecords(ctx context.Context, month, year, limit, offset int) ([]Record, error) {
	return s.store.ListRecords(ctx, month, year, limit, offset)
}

func (s *Service) ListRegisterRows(ctx context.Context, month, year int) ([]RegisterRow, error) {
	return s.store.ListRegisterRows(ctx, month, year)
}

func (s *Service) CreateConfig(ctx context.Context, cfg SalaryConfig) (string, error) {
	return s.store.CreateConfig(ctx, cfg)
}

func (s *Service) ListConfigs(ctx context.Context, guardID string) ([]SalaryConfig, error) {
	return s.store.ListConfigs(ctx, guardID)
}
