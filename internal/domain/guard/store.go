package guard

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"guardops/internal/platform/db"
)

var ErrNotFound = errors.New("guard not found")

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

func (s *Store) Create(ctx context.Context, g Guard) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO guards (site_id, name, badge, phone, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, g.SiteID, g.Name, g.Badge, g.Phone, g.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (Guard, error) {
	var g Guard
	err := s.DB.QueryRow(ctx, `
    SELECT id, site_id, name, badge, COALESCE(phone, ''), status, created_at
    FROM guards
    WHERE id = $1
  `, id).Scan(&g.ID, &g.SiteID, &g.Name, &g.Badge, &g.Phone, &g.Status, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Guard{}, ErrNotFound
	}
	return g, err
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Guard, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, site_id, name, badge, COALESCE(phone, ''), status, created_at
    FROM guards
    ORDER BY badge
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guards []Guard
	for rows.Next() {
		var g Guard
		if err := rows.Scan(&g.ID, &g.SiteID, &g.Name, &g.Badge, &g.Phone, &g.Status, &g.CreatedAt); err != nil {
			return nil, err
		}
		guards = append(guards, g)
	}
	return guards, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := s.DB.Exec(ctx, `UPDATE guards SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateDocument(ctx context.Context, doc Document) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO guard_documents (guard_id, doc_type, number, expiry_date, verified)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, doc.GuardID, doc.DocType, doc.Number, doc.ExpiryDate, doc.Verified).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListDocuments returns the guard's documents with the verification status
// computed as of now.
func (s *Store) ListDocuments(ctx context.Context, guardID string, now time.Time) ([]Document, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, guard_id, doc_type, COALESCE(number, ''), expiry_date, verified, created_at
    FROM guard_documents
    WHERE guard_id = $1
    ORDER BY doc_type
  `, guardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.GuardID, &doc.DocType, &doc.Number, &doc.ExpiryDate, &doc.Verified, &doc.CreatedAt); err != nil {
			return nil, err
		}
		doc.Status = DocumentStatus(doc.ExpiryDate, doc.Number, now)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// CountExpiring counts documents whose expiry falls inside the warning
// window. Used by the nightly sweep to refresh the licenses category.
func (s *Store) CountExpiring(ctx context.Context, now time.Time) (expiring, expired int, err error) {
	err = s.DB.QueryRow(ctx, `
    SELECT
      COUNT(1) FILTER (WHERE expiry_date >= $1 AND expiry_date < $2),
      COUNT(1) FILTER (WHERE expiry_date < $1)
    FROM guard_documents
    WHERE expiry_date IS NOT NULL
  `, now, now.AddDate(0, 0, 30)).Scan(&expiring, &expired)
	return expiring, expired, err
}
