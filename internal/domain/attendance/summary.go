package attendance

// Summarize rolls a period's entries into a Summary. A late day still counts
// as a worked day, so it increments both LateDays and PresentDays.
func Summarize(guardID string, month, year int, entries []Entry) Summary {
	summary := Summary{
		GuardID:   guardID,
		Month:     month,
		Year:      year,
		TotalDays: len(entries),
	}
	for _, entry := range entries {
		switch entry.Status {
		case StatusPresent:
			summary.PresentDays++
		case StatusLate:
			summary.PresentDays++
			summary.LateDays++
		case StatusAbsent:
			summary.AbsentDays++
		}
		summary.OvertimeHours += entry.OvertimeHours
		summary.NightShiftHours += entry.NightShiftHours
		summary.WeekendHours += entry.WeekendHours
		summary.HolidayHours += entry.HolidayHours
	}
	return summary
}
