package guard

import "time"

const (
	DocIncomplete   = "incomplete"
	DocValid        = "valid"
	DocExpiringSoon = "expiring_soon"
	DocExpired      = "expired"
)

// expiryWarningDays is the window in which a document counts as expiring.
const expiryWarningDays = 30

// DocumentStatus derives the verification status of a document from its
// expiry date and number. Status is always computed, never stored.
func DocumentStatus(expiry *time.Time, number string, now time.Time) string {
	if expiry == nil || number == "" {
		return DocIncomplete
	}
	switch {
	case expiry.Before(now):
		return DocExpired
	case expiry.Before(now.AddDate(0, 0, expiryWarningDays)):
		return DocExpiringSoon
	default:
		return DocValid
	}
}
