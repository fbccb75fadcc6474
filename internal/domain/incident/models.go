package incident

import (
	"errors"
	"time"
)

const (
	StatusOpen          = "open"
	StatusInvestigating = "investigating"
	StatusResolved      = "resolved"

	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

var (
	ErrNotFound          = errors.New("incident not found")
	ErrInvalidTransition = errors.New("invalid incident status transition")
)

type Incident struct {
	ID         string     `json:"id"`
	GuardID    string     `json:"guardId"`
	SiteID     string     `json:"siteId"`
	Severity   string     `json:"severity"`
	Title      string     `json:"title"`
	Narrative  string     `json:"narrative"`
	Status     string     `json:"status"`
	ReportedAt time.Time  `json:"reportedAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// CanTransition enforces the open -> investigating -> resolved lifecycle.
// Resolved is terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusOpen:
		return to == StatusInvestigating || to == StatusResolved
	case StatusInvestigating:
		return to == StatusResolved
	default:
		return false
	}
}

func ValidSeverity(severity string) bool {
	switch severity {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
