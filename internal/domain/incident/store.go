package incident

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

func (s *Store) Create(ctx context.Context, inc Incident) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO incidents (guard_id, site_id, severity, title, narrative, status, reported_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, inc.GuardID, inc.SiteID, inc.Severity, inc.Title, inc.Narrative, StatusOpen, inc.ReportedAt).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (Incident, error) {
	var inc Incident
	err := s.DB.QueryRow(ctx, `
    SELECT id, guard_id, site_id, severity, title, narrative, status, reported_at, resolved_at
    FROM incidents
    WHERE id = $1
  `, id).Scan(&inc.ID, &inc.GuardID, &inc.SiteID, &inc.Severity, &inc.Title, &inc.Narrative,
		&inc.Status, &inc.ReportedAt, &inc.ResolvedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Incident{}, ErrNotFound
	}
	return inc, err
}

func (s *Store) List(ctx context.Context, status string, limit, offset int) ([]Incident, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, guard_id, site_id, severity, title, narrative, status, reported_at, resolved_at
    FROM incidents
    WHERE ($1 = '' OR status = $1)
    ORDER BY reported_at DESC
    LIMIT $2 OFFSET $3
  `, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incidents []Incident
	for rows.Next() {
		var inc Incident
		if err := rows.Scan(&inc.ID, &inc.GuardID, &inc.SiteID, &inc.Severity, &inc.Title, &inc.Narrative,
			&inc.Status, &inc.ReportedAt, &inc.ResolvedAt); err != nil {
			return nil, err
		}
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}

// Transition moves an incident along its lifecycle, rejecting invalid moves.
func (s *Store) Transition(ctx context.Context, id, to string, now time.Time) error {
	inc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(inc.Status, to) {
		return ErrInvalidTransition
	}
	var resolvedAt *time.Time
	if to == StatusResolved {
		resolvedAt = &now
	}
	_, err = s.DB.Exec(ctx, `
    UPDATE incidents SET status = $1, resolved_at = $2 WHERE id = $3
  `, to, resolvedAt, id)
	return err
}
