package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardops/internal/domain/attendance"
	"guardops/internal/platform/config"
)

func referenceRates() Rates {
	return RatesFromConfig(config.PayrollRates{
		WorkingDayDivisor:  26,
		HoursPerShift:      8,
		LatePenaltyPerDay:  200,
		DefaultAdvance:     1000,
		DefaultOther:       500,
		OvertimeMultiplier: 1.5,
	})
}

func referenceConfig() SalaryConfig {
	return SalaryConfig{
		GuardID:             "g1",
		BaseSalary:          decimal.NewFromInt(25000),
		HourlyRate:          decimal.NewNullDecimal(decimal.NewFromInt(150)),
		OvertimeMultiplier:  decimal.NewFromFloat(1.5),
		NightShiftAllowance: decimal.NewFromInt(200),
		WeekendAllowance:    decimal.NewFromInt(300),
		HolidayAllowance:    decimal.NewFromInt(500),
	}
}

func referenceSummary() attendance.Summary {
	return attendance.Summary{
		GuardID:         "g1",
		Month:           7,
		Year:            2026,
		TotalDays:       26,
		PresentDays:     21,
		AbsentDays:      2,
		LateDays:        3,
		OvertimeHours:   12,
		NightShiftHours: 40,
		WeekendHours:    8,
		HolidayHours:    4,
	}
}

func TestCalculateReferenceScenario(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	record := Calculate(referenceConfig(), referenceSummary(), referenceRates(), now)

	assert.Equal(t, StatusPending, record.Status)
	assert.True(t, record.DailyRate.Equal(decimal.RequireFromString("961.54")), "daily rate %s", record.DailyRate)
	assert.True(t, record.OvertimeAmount.Equal(decimal.NewFromInt(2700)), "overtime %s", record.OvertimeAmount)
	// Per-shift allowance divided by shift length, not hours*allowance.
	assert.True(t, record.NightShiftAmount.Equal(decimal.NewFromInt(1000)), "night shift %s", record.NightShiftAmount)
	assert.True(t, record.WeekendAmount.Equal(decimal.NewFromInt(300)), "weekend %s", record.WeekendAmount)
	assert.True(t, record.HolidayAmount.Equal(decimal.NewFromInt(250)), "holiday %s", record.HolidayAmount)
	assert.True(t, record.TotalEarnings.Equal(decimal.NewFromInt(29250)), "earnings %s", record.TotalEarnings)

	assert.True(t, record.AbsentDeduction.Equal(decimal.RequireFromString("1923.08")), "absent %s", record.AbsentDeduction)
	assert.True(t, record.LatePenalty.Equal(decimal.NewFromInt(600)), "late %s", record.LatePenalty)
	assert.True(t, record.AdvanceDeduction.Equal(decimal.NewFromInt(1000)))
	assert.True(t, record.OtherDeduction.Equal(decimal.NewFromInt(500)))
	assert.True(t, record.TotalDeductions.Equal(decimal.RequireFromString("4023.08")), "deductions %s", record.TotalDeductions)
	assert.True(t, record.NetSalary.Equal(decimal.RequireFromString("25226.92")), "net %s", record.NetSalary)
}

func TestCalculateNetIdentity(t *testing.T) {
	record := Calculate(referenceConfig(), referenceSummary(), referenceRates(), time.Now())
	assert.True(t, record.NetSalary.Equal(record.TotalEarnings.Sub(record.TotalDeductions)),
		"net must equal earnings minus deductions exactly")
}

func TestCalculateOvertimeMultiplierFallback(t *testing.T) {
	// A create payload that omits overtimeMultiplier decodes to zero; the
	// deployment default must apply rather than zeroing overtime pay.
	cfg := referenceConfig()
	cfg.OvertimeMultiplier = decimal.Decimal{}

	record := Calculate(cfg, referenceSummary(), referenceRates(), time.Now())
	assert.True(t, record.OvertimeAmount.Equal(decimal.NewFromInt(2700)),
		"overtime with default multiplier %s", record.OvertimeAmount)

	explicit := Calculate(referenceConfig(), referenceSummary(), referenceRates(), time.Now())
	assert.True(t, record.NetSalary.Equal(explicit.NetSalary),
		"defaulted multiplier must match explicit 1.5")
}

func TestCalculateHourlyBasisFallback(t *testing.T) {
	cfg := referenceConfig()
	cfg.HourlyRate = decimal.NullDecimal{}

	record := Calculate(cfg, referenceSummary(), referenceRates(), time.Now())
	// dailyRate/8 = 961.54/8 = 120.19; overtime = 12 * 120.19 * 1.5 = 2163.42
	assert.True(t, record.OvertimeAmount.Equal(decimal.RequireFromString("2163.42")),
		"overtime with fallback basis %s", record.OvertimeAmount)
}

func TestCalculateDeductionOverrides(t *testing.T) {
	cfg := referenceConfig()
	cfg.AdvanceDeduction = decimal.NewNullDecimal(decimal.NewFromInt(250))
	cfg.OtherDeduction = decimal.NewNullDecimal(decimal.Zero)

	record := Calculate(cfg, referenceSummary(), referenceRates(), time.Now())
	assert.True(t, record.AdvanceDeduction.Equal(decimal.NewFromInt(250)))
	assert.True(t, record.OtherDeduction.Equal(decimal.Zero))
	assert.True(t, record.TotalDeductions.Equal(decimal.RequireFromString("2773.08")), "deductions %s", record.TotalDeductions)
}

func TestCalculateIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	first := Calculate(referenceConfig(), referenceSummary(), referenceRates(), now)
	second := Calculate(referenceConfig(), referenceSummary(), referenceRates(), now)
	require.Equal(t, first, second)
}

func TestCalculateDailyRateReconstructsBase(t *testing.T) {
	record := Calculate(referenceConfig(), referenceSummary(), referenceRates(), time.Now())
	reconstructed := record.DailyRate.Mul(decimal.NewFromInt(26))
	diff := reconstructed.Sub(record.BaseSalary).Abs()
	// The rate is rounded to the minor unit, so reconstruction drifts by at
	// most half a cent per working day.
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.13")), "drift %s", diff)
}

func TestCalculateViolatedInvariantStillDeterministic(t *testing.T) {
	summary := referenceSummary()
	summary.PresentDays = 30
	summary.AbsentDays = 10 // present + absent > total: garbage in, garbage out

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	first := Calculate(referenceConfig(), summary, referenceRates(), now)
	second := Calculate(referenceConfig(), summary, referenceRates(), now)
	require.Equal(t, first, second)
	assert.True(t, first.AbsentDeduction.Equal(decimal.RequireFromString("9615.40")), "absent %s", first.AbsentDeduction)
}

func TestCalculateZeroHours(t *testing.T) {
	summary := attendance.Summary{GuardID: "g1", Month: 1, Year: 2026, TotalDays: 26, PresentDays: 26}
	record := Calculate(referenceConfig(), summary, referenceRates(), time.Now())
	assert.True(t, record.TotalEarnings.Equal(decimal.NewFromInt(25000)))
	// Only the default advance/other deductions apply.
	assert.True(t, record.TotalDeductions.Equal(decimal.NewFromInt(1500)))
	assert.True(t, record.NetSalary.Equal(decimal.NewFromInt(23500)))
}

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod(1, 2026))
	assert.True(t, ValidPeriod(12, 2000))
	assert.False(t, ValidPeriod(0, 2026))
	assert.False(t, ValidPeriod(13, 2026))
	assert.False(t, ValidPeriod(6, 1999))
}
