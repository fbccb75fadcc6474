package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func referenceCategories() []Category {
	return []Category{
		{Name: "PSARA Licenses", Score: 85, Weight: 0.30},
		{Name: "Training", Score: 72, Weight: 0.25},
		{Name: "Agreements", Score: 80, Weight: 0.20},
		{Name: "Wage Compliance", Score: 75, Weight: 0.25},
	}
}

func TestOverallReferenceScenario(t *testing.T) {
	// 25.5 + 18 + 16 + 18.75 = 78.25 -> 78
	assert.Equal(t, 78, Overall(referenceCategories()))
}

func TestOverallIdempotent(t *testing.T) {
	categories := referenceCategories()
	first := Overall(categories)
	second := Overall(categories)
	assert.Equal(t, first, second)
}

func TestOverallEmpty(t *testing.T) {
	assert.Equal(t, 0, Overall(nil))
}

func TestSumItemScores(t *testing.T) {
	category := Category{
		Score:    999, // stale assigned score, superseded by items
		MaxScore: 999,
		Items: []Item{
			{Score: 40, MaxScore: 50},
			{Score: 30, MaxScore: 50},
		},
	}
	score, maxScore := SumItemScores(category)
	assert.Equal(t, 70.0, score)
	assert.Equal(t, 100.0, maxScore)
}

func TestSumItemScoresZeroItemsKeepsAssigned(t *testing.T) {
	category := Category{Score: 64, MaxScore: 100}
	score, maxScore := SumItemScores(category)
	assert.Equal(t, 64.0, score)
	assert.Equal(t, 100.0, maxScore)
}

func TestCompareTrend(t *testing.T) {
	assert.Equal(t, OverallImproving, CompareTrend(70, 78))
	assert.Equal(t, OverallDeclining, CompareTrend(80, 78))
	assert.Equal(t, OverallStable, CompareTrend(78, 78))
}

func TestCompareCategoryTrend(t *testing.T) {
	assert.Equal(t, TrendUp, CompareCategoryTrend(60, 72))
	assert.Equal(t, TrendDown, CompareCategoryTrend(90, 72))
	assert.Equal(t, TrendFlat, CompareCategoryTrend(72, 72))
}

func TestRecommendations(t *testing.T) {
	categories := []Category{
		{Items: []Item{
			{Status: ItemPartial, ActionRequired: "renew two expiring PSARA licenses"},
			{Status: ItemCompliant},
		}},
		{Items: []Item{
			{Status: ItemNonCompliant, ActionRequired: "schedule refresher training"},
			{Status: ItemPartial, ActionRequired: "update site agreements"},
		}},
	}

	all := Recommendations(categories, 0)
	assert.Len(t, all, 3)
	assert.Equal(t, "renew two expiring PSARA licenses", all[0])

	capped := Recommendations(categories, 2)
	assert.Len(t, capped, 2)
	assert.Equal(t, "schedule refresher training", capped[1])
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(referenceCategories(), 0.001))

	skewed := referenceCategories()
	skewed[0].Weight = 0.5
	assert.ErrorIs(t, ValidateWeights(skewed, 0.001), ErrWeightSumMismatch)
}
