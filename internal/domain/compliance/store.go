package compliance

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

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, weight, score, max_score, COALESCE(trend, 'stable')
    FROM compliance_categories
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Weight,
			&category.Score, &category.MaxScore, &category.Trend); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range categories {
		items, err := s.listItems(ctx, categories[i].ID)
		if err != nil {
			return nil, err
		}
		categories[i].Items = items
	}
	return categories, nil
}

func (s *Store) listItems(ctx context.Context, categoryID string) ([]Item, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, category_id, name, status, score, max_score, due_date, COALESCE(action_required, '')
    FROM compliance_items
    WHERE category_id = $1
    ORDER BY name
  `, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Status,
			&item.Score, &item.MaxScore, &item.DueDate, &item.ActionRequired); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) UpdateItem(ctx context.Context, item Item) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE compliance_items
    SET status = $1, score = $2, max_score = $3, due_date = $4, action_required = $5
    WHERE id = $6
  `, item.Status, item.Score, item.MaxScore, item.DueDate, item.ActionRequired, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *Store) CreateItem(ctx context.Context, item Item) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO compliance_items (category_id, name, status, score, max_score, due_date, action_required)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, item.CategoryID, item.Name, item.Status, item.Score, item.MaxScore, item.DueDate, item.ActionRequired).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateCategoryScore(ctx context.Context, categoryID string, score, maxScore float64, trend string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE compliance_categories
    SET score = $1, max_score = $2, trend = $3
    WHERE id = $4
  `, score, maxScore, trend, categoryID)
	return err
}

// LatestOverall returns the most recently recorded overall score.
func (s *Store) LatestOverall(ctx context.Context) (int, error) {
	var overall int
	err := s.DB.QueryRow(ctx, `
    SELECT overall FROM compliance_scores
    ORDER BY computed_at DESC
    LIMIT 1
  `).Scan(&overall)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNoScoreHistory
	}
	return overall, err
}

func (s *Store) InsertScore(ctx context.Context, overall int, trend string, recommendations []string, at time.Time) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO compliance_scores (overall, trend, recommendations, computed_at)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, overall, trend, recommendations, at).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) LatestScore(ctx context.Context) (Score, error) {
	var score Score
	err := s.DB.QueryRow(ctx, `
    SELECT id, overall, trend, recommendations, computed_at
    FROM compliance_scores
    ORDER BY computed_at DESC
    LIMIT 1
  `).Scan(&score.ID, &score.Overall, &score.Trend, &score.Recommendations, &score.ComputedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Score{}, ErrNoScoreHistory
	}
	return score, err
}
