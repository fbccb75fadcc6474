package payroll

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"guardops/internal/domain/attendance"
	"guardops/internal/platform/config"
)

type stubSummaries struct {
	summary attendance.Summary
	err     error
}

func (s stubSummaries) GetSummary(ctx context.Context, guardID string, month, year int) (attendance.Summary, error) {
	return s.summary, s.err
}

func newTestService(t *testing.T, summaries SummarySource) (pgxmock.PgxPoolIface, *Service) {
	t.Helper()
	mock, store := newMockStore(t)
	rates := RatesFromConfig(config.PayrollRates{
		WorkingDayDivisor: 26, HoursPerShift: 8,
		LatePenaltyPerDay: 200, DefaultAdvance: 1000, DefaultOther: 500,
		OvertimeMultiplier: 1.5,
	})
	return mock, NewService(store, summaries, rates, nil)
}

func TestRunInvalidPeriod(t *testing.T) {
	_, svc := newTestService(t, stubSummaries{})
	if _, err := svc.Run(context.Background(), "g1", 13, 2026); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestRunRefusesPaidRecord(t *testing.T) {
	mock, svc := newTestService(t, stubSummaries{})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM payroll_records")).
		WithArgs("g1", 7, 2026).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(StatusPaid))

	if _, err := svc.Run(context.Background(), "g1", 7, 2026); !errors.Is(err, ErrRecordPaid) {
		t.Fatalf("expected ErrRecordPaid, got %v", err)
	}
}

func TestRunMissingConfigFails(t *testing.T) {
	mock, svc := newTestService(t, stubSummaries{})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM payroll_records")).
		WithArgs("g1", 7, 2026).
		WillReturnRows(pgxmock.NewRows([]string{"status"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM salary_configs")).
		WithArgs("g1", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	if _, err := svc.Run(context.Background(), "g1", 7, 2026); !errors.Is(err, ErrSalaryConfigNotFound) {
		t.Fatalf("expected ErrSalaryConfigNotFound, got %v", err)
	}
}

func TestRunMissingAttendanceFails(t *testing.T) {
	mock, svc := newTestService(t, stubSummaries{err: attendance.ErrNoEntries})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM payroll_records")).
		WithArgs("g1", 7, 2026).
		WillReturnRows(pgxmock.NewRows([]string{"status"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM salary_configs")).
		WithArgs("g1", pgxmock.AnyArg()).
		WillReturnRows(configRows())

	if _, err := svc.Run(context.Background(), "g1", 7, 2026); !errors.Is(err, ErrAttendanceNotFound) {
		t.Fatalf("expected ErrAttendanceNotFound, got %v", err)
	}
}

func TestRunUpsertsPendingRecord(t *testing.T) {
	summary := attendance.Summary{
		GuardID: "g1", Month: 7, Year: 2026,
		TotalDays: 26, PresentDays: 24, AbsentDays: 2, LateDays: 3,
		OvertimeHours: 12, NightShiftHours: 40, WeekendHours: 8, HolidayHours: 4,
	}
	mock, svc := newTestService(t, stubSummaries{summary: summary})
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM payroll_records")).
		WithArgs("g1", 7, 2026).
		WillReturnRows(pgxmock.NewRows([]string{"status"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM salary_configs")).
		WithArgs("g1", pgxmock.AnyArg()).
		WillReturnRows(configRows())
	upsertArgs := make([]interface{}, 18)
	for i := range upsertArgs {
		upsertArgs[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payroll_records")).
		WithArgs(upsertArgs...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("rec-1"))

	record, err := svc.Run(context.Background(), "g1", 7, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID != "rec-1" || record.Status != StatusPending {
		t.Fatalf("unexpected record: %+v", record)
	}
	if !record.NetSalary.Equal(record.TotalEarnings.Sub(record.TotalDeductions)) {
		t.Fatal("net identity violated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMarkPaidRequiresProcessed(t *testing.T) {
	mock, svc := newTestService(t, stubSummaries{})
	mock.ExpectQuery(regexp.QuoteMeta("FROM payroll_records")).
		WithArgs("rec-1").
		WillReturnRows(recordRows(StatusPending))

	if err := svc.MarkPaid(context.Background(), "rec-1"); !errors.Is(err, ErrRecordNotProcessed) {
		t.Fatalf("expected ErrRecordNotProcessed, got %v", err)
	}
}

func TestCancelRefusesPaid(t *testing.T) {
	mock, svc := newTestService(t, stubSummaries{})
	mock.ExpectQuery(regexp.QuoteMeta("FROM payroll_records")).
		WithArgs("rec-1").
		WillReturnRows(recordRows(StatusPaid))

	if err := svc.Cancel(context.Background(), "rec-1"); !errors.Is(err, ErrRecordPaid) {
		t.Fatalf("expected ErrRecordPaid, got %v", err)
	}
}

func configRows() *pgxmock.Rows {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return pgxmock.NewRows([]string{
		"id", "guard_id", "base_salary", "hourly_rate", "overtime_multiplier",
		"night_shift_allowance", "weekend_allowance", "holiday_allowance",
		"advance_deduction", "other_deduction", "effective_from", "effective_to",
	}).AddRow(
		"cfg-1", "g1", decimal.NewFromInt(25000), decimal.NewNullDecimal(decimal.NewFromInt(150)), decimal.NewFromFloat(1.5),
		decimal.NewFromInt(200), decimal.NewFromInt(300), decimal.NewFromInt(500),
		decimal.NullDecimal{}, decimal.NullDecimal{}, from, (*time.Time)(nil),
	)
}

func recordRows(status string) *pgxmock.Rows {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	zero := decimal.Zero
	return pgxmock.NewRows([]string{
		"id", "guard_id", "month", "year", "status", "base_salary", "daily_rate",
		"overtime_amount", "night_shift_amount", "weekend_amount", "holiday_amount", "total_earnings",
		"absent_deduction", "late_penalty", "advance_deduction", "other_deduction", "total_deductions",
		"net_salary", "calculated_at", "processed_at", "paid_at",
	}).AddRow(
		"rec-1", "g1", 7, 2026, status, decimal.NewFromInt(25000), decimal.RequireFromString("961.54"),
		zero, zero, zero, zero, decimal.NewFromInt(25000),
		zero, zero, zero, zero, zero,
		decimal.NewFromInt(25000), now, (*time.Time)(nil), (*time.Time)(nil),
	)
}
