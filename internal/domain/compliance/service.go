package compliance

import (
	"context"
	"errors"
	"time"

	"guardops/internal/platform/config"
)

type Service struct {
	store *Store
	rules config.ComplianceRules
	now   func() time.Time
}

func NewService(store *Store, rules config.ComplianceRules) *Service {
	return &Service{store: store, rules: rules, now: time.Now}
}

// Recalculate reconciles category scores with their items, rolls them up
// into an overall score, derives the trend against the previous recorded
// score, and appends the result to history.
func (s *Service) Recalculate(ctx context.Context) (Score, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return Score{}, err
	}

	if s.rules.ValidateWeights {
		if err := ValidateWeights(categories, s.rules.WeightSumTolerance); err != nil {
			return Score{}, err
		}
	}

	for i := range categories {
		score, maxScore := SumItemScores(categories[i])
		trend := CompareCategoryTrend(categories[i].Score, score)
		if err := s.store.UpdateCategoryScore(ctx, categories[i].ID, score, maxScore, trend); err != nil {
			return Score{}, err
		}
		categories[i].Score = score
		categories[i].MaxScore = maxScore
		categories[i].Trend = trend
	}

	overall := Overall(categories)

	trend := OverallStable
	previous, err := s.store.LatestOverall(ctx)
	if err == nil {
		trend = CompareTrend(previous, overall)
	} else if !errors.Is(err, ErrNoScoreHistory) {
		return Score{}, err
	}

	recommendations := Recommendations(categories, s.rules.RecommendationCap)
	computedAt := s.now().UTC()
	id, err := s.store.InsertScore(ctx, overall, trend, recommendations, computedAt)
	if err != nil {
		return Score{}, err
	}

	return Score{
		ID:              id,
		Overall:         overall,
		Trend:           trend,
		Categories:      categories,
		Recommendations: recommendations,
		ComputedAt:      computedAt,
	}, nil
}

// Current returns the latest recorded score with the live category state.
func (s *Service) Current(ctx context.Context) (Score, error) {
	score, err := s.store.LatestScore(ctx)
	if err != nil {
		return Score{}, err
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return Score{}, err
	}
	score.Categories = categories
	return score, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) UpdateItem(ctx context.Context, item Item) error {
	return s.store.UpdateItem(ctx, item)
}

func (s *Service) CreateItem(ctx context.Context, item Item) (string, error) {
	return s.store.CreateItem(ctx, item)
}
