package compliance

import "time"

const (
	ItemCompliant     = "compliant"
	ItemPartial       = "partial"
	ItemNonCompliant  = "non_compliant"
	ItemNotApplicable = "not_applicable"

	TrendUp     = "up"
	TrendDown   = "down"
	TrendFlat   = "stable"

	OverallImproving = "improving"
	OverallDeclining = "declining"
	OverallStable    = "stable"
)

// Item is a named check. Status is set by an external review workflow and is
// opaque here; the scorer never infers status from the score.
type Item struct {
	ID             string     `json:"id"`
	CategoryID     string     `json:"categoryId"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	Score          float64    `json:"score"`
	MaxScore       float64    `json:"maxScore"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	ActionRequired string     `json:"actionRequired,omitempty"`
}

type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
	Trend    string  `json:"trend"`
	Items    []Item  `json:"items"`
}

type Score struct {
	ID              string     `json:"id"`
	Overall         int        `json:"overall"`
	Trend           string     `json:"trend"`
	Categories      []Category `json:"categories"`
	Recommendations []string   `json:"recommendations"`
	ComputedAt      time.Time  `json:"computedAt"`
}
