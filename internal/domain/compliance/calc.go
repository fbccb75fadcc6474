package compliance

import "math"

// Overall rolls category scores up into one number: round(sum of
// score*weight). Weights are category-local fractions; they are not
// normalized or checked here. ValidateWeights covers that.
func Overall(categories []Category) int {
	weighted := 0.0
	for _, category := range categories {
		weighted += category.Score * category.Weight
	}
	return int(math.Round(weighted))
}

// SumItemScores reconciles a category's score with its items. Categories
// with zero items keep their independently assigned score; that gap is
// inherited behavior, deliberately not papered over here.
func SumItemScores(category Category) (score, maxScore float64) {
	if len(category.Items) == 0 {
		return category.Score, category.MaxScore
	}
	for _, item := range category.Items {
		score += item.Score
		maxScore += item.MaxScore
	}
	return score, maxScore
}

// CompareTrend classifies the overall score against the immediately
// preceding recorded score. No statistics, just a three-way comparison.
func CompareTrend(previous, current int) string {
	switch {
	case current > previous:
		return OverallImproving
	case current < previous:
		return OverallDeclining
	default:
		return OverallStable
	}
}

// CompareCategoryTrend is the category-level analogue of CompareTrend.
func CompareCategoryTrend(previous, current float64) string {
	switch {
	case current > previous:
		return TrendUp
	case current < previous:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Recommendations surfaces the actionRequired notes in category order. A
// positive limit caps the list; zero or negative means unbounded. The cap is
// a presentation choice, not a scoring rule.
func Recommendations(categories []Category, limit int) []string {
	var out []string
	for _, category := range categories {
		for _, item := range category.Items {
			if item.ActionRequired == "" {
				continue
			}
			out = append(out, item.ActionRequired)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

// ValidateWeights is the optional defensive check: the reference behavior
// never validates, so callers only run this when configured to.
func ValidateWeights(categories []Category, tolerance float64) error {
	sum := 0.0
	for _, category := range categories {
		sum += category.Weight
	}
	if math.Abs(sum-1.0) > tolerance {
		return ErrWeightSumMismatch
	}
	return nil
}
