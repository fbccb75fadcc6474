package attendance

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

type Entry struct {
	ID              string     `json:"id"`
	GuardID         string     `json:"guardId"`
	SiteID          string     `json:"siteId"`
	Day             time.Time  `json:"day"`
	Status          string     `json:"status"`
	CheckIn         *time.Time `json:"checkIn,omitempty"`
	CheckOut        *time.Time `json:"checkOut,omitempty"`
	OvertimeHours   float64    `json:"overtimeHours"`
	NightShiftHours float64    `json:"nightShiftHours"`
	WeekendHours    float64    `json:"weekendHours"`
	HolidayHours    float64    `json:"holidayHours"`
}

// Summary is the per-period attendance roll-up consumed by the payroll
// calculator. PresentDays + AbsentDays <= TotalDays is expected but not
// enforced here; violated inputs still produce a deterministic result.
type Summary struct {
	GuardID         string  `json:"guardId"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	TotalDays       int     `json:"totalDays"`
	PresentDays     int     `json:"presentDays"`
	AbsentDays      int     `json:"absentDays"`
	LateDays        int     `json:"lateDays"`
	OvertimeHours   float64 `json:"overtimeHours"`
	NightShiftHours float64 `json:"nightShiftHours"`
	WeekendHours    float64 `json:"weekendHours"`
	HolidayHours    float64 `json:"holidayHours"`
}
