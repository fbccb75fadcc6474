package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"guardops/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

func (s *Store) CreateConfig(ctx context.Context, cfg SalaryConfig) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO salary_configs
      (guard_id, base_salary, hourly_rate, overtime_multiplier,
       night_shift_allowance, weekend_allowance, holiday_allowance,
       advance_deduction, other_deduction, effective_from, effective_to)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id
  `, cfg.GuardID, cfg.BaseSalary, cfg.HourlyRate, cfg.OvertimeMultiplier,
		cfg.NightShiftAllowance, cfg.WeekendAllowance, cfg.HolidayAllowance,
		cfg.AdvanceDeduction, cfg.OtherDeduction, cfg.EffectiveFrom, cfg.EffectiveTo).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListConfigs(ctx context.Context, guardID string) ([]SalaryConfig, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, guard_id, base_salary, hourly_rate, overtime_multiplier,
           night_shift_allowance, weekend_allowance, holiday_allowance,
           advance_deduction, other_deduction, effective_from, effective_to
    FROM salary_configs
    WHERE guard_id = $1
    ORDER BY effective_from DESC
  `, guardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []SalaryConfig
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

// GetEffectiveConfig resolves the single configuration effective for the
// guard at the given date.
func (s *Store) GetEffectiveConfig(ctx context.Context, guardID string, at time.Time) (SalaryConfig, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, guard_id, base_salary, hourly_rate, overtime_multiplier,
           night_shift_allowance, weekend_allowance, holiday_allowance,
           advance_deduction, other_deduction, effective_from, effective_to
    FROM salary_configs
    WHERE guard_id = $1
      AND effective_from <= $2
      AND (effective_to IS NULL OR effective_to >= $2)
    ORDER BY effective_from DESC
    LIMIT 1
  `, guardID, at)
	cfg, err := scanConfig(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return SalaryConfig{}, ErrSalaryConfigNotFound
	}
	return cfg, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfig(row rowScanner) (SalaryConfig, error) {
	var cfg SalaryConfig
	err := row.Scan(&cfg.ID, &cfg.GuardID, &cfg.BaseSalary, &cfg.HourlyRate, &cfg.OvertimeMultiplier,
		&cfg.NightShiftAllowance, &cfg.WeekendAllowance, &cfg.HolidayAllowance,
		&cfg.AdvanceDeduction, &cfg.OtherDeduction, &cfg.EffectiveFrom, &cfg.EffectiveTo)
	return cfg, err
}

// UpsertRecord stores a computed record keyed by (guard, month, year),
// replacing any prior record for the key. Last write wins.
func (s *Store) UpsertRecord(ctx context.Context, record Record) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_records
      (guard_id, month, year, status, base_salary, daily_rate,
       overtime_amount, night_shift_amount, weekend_amount, holiday_amount, total_earnings,
       absent_deduction, late_penalty, advance_deduction, other_deduction, total_deductions,
       net_salary, calculated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
    ON CONFLICT (guard_id, month, year) DO UPDATE SET
      status = EXCLUDED.status,
      base_salary = EXCLUDED.base_salary,
      daily_rate = EXCLUDED.daily_rate,
      overtime_amount = EXCLUDED.overtime_amount,
      night_shift_amount = EXCLUDED.night_shift_amount,
      weekend_amount = EXCLUDED.weekend_amount,
      holiday_amount = EXCLUDED.holiday_amount,
      total_earnings = EXCLUDED.total_earnings,
      absent_deduction = EXCLUDED.absent_deduction,
      late_penalty = EXCLUDED.late_penalty,
      advance_deduction = EXCLUDED.advance_deduction,
      other_deduction = EXCLUDED.other_deduction,
      total_deductions = EXCLUDED.total_deductions,
      net_salary = EXCLUDED.net_salary,
      calculated_at = EXCLUDED.calculated_at,
      processed_at = NULL,
      paid_at = NULL
    RETURNING id
  `, record.GuardID, record.Month, record.Year, record.Status, record.BaseSalary, record.DailyRate,
		record.OvertimeAmount, record.NightShiftAmount, record.WeekendAmount, record.HolidayAmount, record.TotalEarnings,
		record.AbsentDeduction, record.LatePenalty, record.AdvanceDeduction, record.OtherDeduction, record.TotalDeductions,
		record.NetSalary, record.CalculatedAt).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetRecord(ctx context.Context, id string) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, guard_id, month, year, status, base_salary, daily_rate,
           overtime_amount, night_shift_amount, weekend_amount, holiday_amount, total_earnings,
           absent_deduction, late_penalty, advance_deduction, other_deduction, total_deductions,
           net_salary, calculated_at, processed_at, paid_at
    FROM payroll_records
    WHERE id = $1
  `, id)
	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return record, err
}

func (s *Store) GetRecordStatus(ctx context.Context, guardID string, month, year int) (string, error) {
	var status string
	err := s.DB.QueryRow(ctx, `
    SELECT status FROM payroll_records
    WHERE guard_id = $1 AND month = $2 AND year = $3
  `, guardID, month, year).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrRecordNotFound
	}
	return status, err
}

func (s *Store) ListRecords(ctx context.Context, month, year, limit, offset int) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, guard_id, month, year, status, base_salary, daily_rate,
           overtime_amount, night_shift_amount, weekend_amount, holiday_amount, total_earnings,
           absent_deduction, late_penalty, advance_deduction, other_deduction, total_deductions,
           net_salary, calculated_at, processed_at, paid_at
    FROM payroll_records
    WHERE month = $1 AND year = $2
    ORDER BY guard_id
    LIMIT $3 OFFSET $4
  `, month, year, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	err := row.Scan(&record.ID, &record.GuardID, &record.Month, &record.Year, &record.Status,
		&record.BaseSalary, &record.DailyRate,
		&record.OvertimeAmount, &record.NightShiftAmount, &record.WeekendAmount, &record.HolidayAmount, &record.TotalEarnings,
		&record.AbsentDeduction, &record.LatePenalty, &record.AdvanceDeduction, &record.OtherDeduction, &record.TotalDeductions,
		&record.NetSalary, &record.CalculatedAt, &record.ProcessedAt, &record.PaidAt)
	return record, err
}

// MarkProcessed stamps every pending record of the period.
func (s *Store) MarkProcessed(ctx context.Context, month, year int, at time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET status = $1, processed_at = $2
    WHERE month = $3 AND year = $4 AND status = $5
  `, StatusProcessed, at, month, year, StatusPending)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) MarkPaid(ctx context.Context, id string, at time.Time) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET status = $1, paid_at = $2
    WHERE id = $3
  `, StatusPaid, at, id)
	return err
}

func (s *Store) MarkCancelled(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET status = $1
    WHERE id = $2
  `, StatusCancelled, id)
	return err
}

func (s *Store) ListActiveGuardIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT id FROM guards WHERE status = 'active' ORDER BY badge`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) GetPayslipData(ctx context.Context, recordID string) (PayslipData, error) {
	record, err := s.GetRecord(ctx, recordID)
	if err != nil {
		return PayslipData{}, err
	}
	data := PayslipData{Record: record}
	err = s.DB.QueryRow(ctx, `
    SELECT g.name, g.badge, COALESCE(st.name, '')
    FROM guards g
    LEFT JOIN sites st ON g.site_id = st.id
    WHERE g.id = $1
  `, record.GuardID).Scan(&data.GuardName, &data.Badge, &data.SiteName)
	if err != nil {
		return PayslipData{}, err
	}
	return data, nil
}

func (s *Store) ListRegisterRows(ctx context.Context, month, year int) ([]RegisterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.guard_id, g.name, g.badge, r.total_earnings, r.total_deductions, r.net_salary, r.status
    FROM payroll_records r
    JOIN guards g ON r.guard_id = g.id
    WHERE r.month = $1 AND r.year = $2
    ORDER BY g.badge
  `, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RegisterRow
	for rows.Next() {
		var row RegisterRow
		if err := rows.Scan(&row.GuardID, &row.GuardName, &row.Badge, &row.Earnings, &row.Deductions, &row.Net, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
