package attendance

import (
	"context"
	"errors"
	"time"

	"guardops/internal/platform/db"
)

var ErrNoEntries = errors.New("no attendance entries for period")

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

func (s *Store) CreateEntry(ctx context.Context, entry Entry) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_entries
      (guard_id, site_id, day, status, check_in, check_out,
       overtime_hours, night_shift_hours, weekend_hours, holiday_hours)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    ON CONFLICT (guard_id, day) DO UPDATE SET
      status = EXCLUDED.status,
      check_in = EXCLUDED.check_in,
      check_out = EXCLUDED.check_out,
      overtime_hours = EXCLUDED.overtime_hours,
      night_shift_hours = EXCLUDED.night_shift_hours,
      weekend_hours = EXCLUDED.weekend_hours,
      holiday_hours = EXCLUDED.holiday_hours
    RETURNING id
  `, entry.GuardID, entry.SiteID, entry.Day, entry.Status, entry.CheckIn, entry.CheckOut,
		entry.OvertimeHours, entry.NightShiftHours, entry.WeekendHours, entry.HolidayHours).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListEntries(ctx context.Context, guardID string, month, year int) ([]Entry, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	rows, err := s.DB.Query(ctx, `
    SELECT id, guard_id, site_id, day, status, check_in, check_out,
           overtime_hours, night_shift_hours, weekend_hours, holiday_hours
    FROM attendance_entries
    WHERE guard_id = $1 AND day >= $2 AND day < $3
    ORDER BY day
  `, guardID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.GuardID, &entry.SiteID, &entry.Day, &entry.Status,
			&entry.CheckIn, &entry.CheckOut, &entry.OvertimeHours, &entry.NightShiftHours,
			&entry.WeekendHours, &entry.HolidayHours); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetSummary aggregates the stored entries for one guard and period. It
// reports ErrNoEntries rather than an empty summary so callers can tell
// "no data" apart from a genuinely empty month.
func (s *Store) GetSummary(ctx context.Context, guardID string, month, year int) (Summary, error) {
	entries, err := s.ListEntries(ctx, guardID, month, year)
	if err != nil {
		return Summary{}, err
	}
	if len(entries) == 0 {
		return Summary{}, ErrNoEntries
	}
	return Summarize(guardID, month, year, entries), nil
}
