package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"guardops/internal/domain/attendance"
	"guardops/internal/platform/config"
)

// Rates carries the deployment-level payroll constants. They are
// configuration, not code: jurisdictions differ on the working-day divisor
// and penalty amounts.
type Rates struct {
	WorkingDayDivisor  decimal.Decimal
	HoursPerShift      decimal.Decimal
	LatePenaltyPerDay  decimal.Decimal
	DefaultAdvance     decimal.Decimal
	DefaultOther       decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

func RatesFromConfig(cfg config.PayrollRates) Rates {
	return Rates{
		WorkingDayDivisor:  decimal.NewFromInt(int64(cfg.WorkingDayDivisor)),
		HoursPerShift:      decimal.NewFromInt(int64(cfg.HoursPerShift)),
		LatePenaltyPerDay:  decimal.NewFromFloat(cfg.LatePenaltyPerDay),
		DefaultAdvance:     decimal.NewFromFloat(cfg.DefaultAdvance),
		DefaultOther:       decimal.NewFromFloat(cfg.DefaultOther),
		OvertimeMultiplier: decimal.NewFromFloat(cfg.OvertimeMultiplier),
	}
}

// Calculate derives a pending payroll record from one salary configuration
// and one attendance summary for the same guard and period. It is pure: the
// caller supplies now, nothing is persisted here.
//
// Shift allowances are per-shift amounts; they convert to hourly rates by
// dividing by the shift length. The payroll UI's demo data once implied
// amount = hours * allowance instead, but the calculation rule below is the
// authoritative one.
func Calculate(cfg SalaryConfig, summary attendance.Summary, rates Rates, now time.Time) Record {
	dailyRate := cfg.BaseSalary.Div(rates.WorkingDayDivisor).Round(2)

	hourlyBasis := dailyRate.Div(rates.HoursPerShift).Round(2)
	if cfg.HourlyRate.Valid {
		hourlyBasis = cfg.HourlyRate.Decimal
	}

	// A salary config saved without an explicit multiplier carries zero;
	// the deployment default applies instead of wiping out overtime pay.
	multiplier := cfg.OvertimeMultiplier
	if !multiplier.IsPositive() {
		multiplier = rates.OvertimeMultiplier
	}

	overtime := decimal.NewFromFloat(summary.OvertimeHours).
		Mul(hourlyBasis).
		Mul(multiplier).
		Round(2)
	nightShift := shiftAmount(summary.NightShiftHours, cfg.NightShiftAllowance, rates.HoursPerShift)
	weekend := shiftAmount(summary.WeekendHours, cfg.WeekendAllowance, rates.HoursPerShift)
	holiday := shiftAmount(summary.HolidayHours, cfg.HolidayAllowance, rates.HoursPerShift)

	totalEarnings := cfg.BaseSalary.
		Add(overtime).
		Add(nightShift).
		Add(weekend).
		Add(holiday).
		Round(2)

	absentDeduction := decimal.NewFromInt(int64(summary.AbsentDays)).Mul(dailyRate).Round(2)
	latePenalty := decimal.NewFromInt(int64(summary.LateDays)).Mul(rates.LatePenaltyPerDay).Round(2)

	advance := rates.DefaultAdvance
	if cfg.AdvanceDeduction.Valid {
		advance = cfg.AdvanceDeduction.Decimal
	}
	other := rates.DefaultOther
	if cfg.OtherDeduction.Valid {
		other = cfg.OtherDeduction.Decimal
	}

	totalDeductions := absentDeduction.Add(latePenalty).Add(advance).Add(other).Round(2)

	return Record{
		GuardID:          cfg.GuardID,
		Month:            summary.Month,
		Year:             summary.Year,
		Status:           StatusPending,
		BaseSalary:       cfg.BaseSalary.Round(2),
		DailyRate:        dailyRate,
		OvertimeAmount:   overtime,
		NightShiftAmount: nightShift,
		WeekendAmount:    weekend,
		HolidayAmount:    holiday,
		TotalEarnings:    totalEarnings,
		AbsentDeduction:  absentDeduction,
		LatePenalty:      latePenalty,
		AdvanceDeduction: advance.Round(2),
		OtherDeduction:   other.Round(2),
		TotalDeductions:  totalDeductions,
		NetSalary:        totalEarnings.Sub(totalDeductions),
		CalculatedAt:     now,
	}
}

func shiftAmount(hours float64, allowance, hoursPerShift decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(hours).Mul(allowance.Div(hoursPerShift)).Round(2)
}

// ValidPeriod reports whether month/year identify a usable payroll period.
func ValidPeriod(month, year int) bool {
	return month >= 1 && month <= 12 && year >= 2000 && year <= 2100
}
