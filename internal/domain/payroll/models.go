package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryConfig is the resolved pay configuration for one guard. The
// surrounding system keeps at most one config effective per guard per date;
// the calculator assumes the single resolved config it is handed.
type SalaryConfig struct {
	ID                  string              `json:"id"`
	GuardID             string              `json:"guardId"`
	BaseSalary          decimal.Decimal     `json:"baseSalary"`
	HourlyRate          decimal.NullDecimal `json:"hourlyRate"`
	OvertimeMultiplier  decimal.Decimal     `json:"overtimeMultiplier"`
	NightShiftAllowance decimal.Decimal     `json:"nightShiftAllowance"`
	WeekendAllowance    decimal.Decimal     `json:"weekendAllowance"`
	HolidayAllowance    decimal.Decimal     `json:"holidayAllowance"`
	AdvanceDeduction    decimal.NullDecimal `json:"advanceDeduction"`
	OtherDeduction      decimal.NullDecimal `json:"otherDeduction"`
	EffectiveFrom       time.Time           `json:"effectiveFrom"`
	EffectiveTo         *time.Time          `json:"effectiveTo,omitempty"`
}

// Record is the derived payroll result for one (guard, month, year) key.
// Recomputing the same key replaces the prior record; no history is kept.
type Record struct {
	ID               string          `json:"id"`
	GuardID          string          `json:"guardId"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	Status           string          `json:"status"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	DailyRate        decimal.Decimal `json:"dailyRate"`
	OvertimeAmount   decimal.Decimal `json:"overtimeAmount"`
	NightShiftAmount decimal.Decimal `json:"nightShiftAmount"`
	WeekendAmount    decimal.Decimal `json:"weekendAmount"`
	HolidayAmount    decimal.Decimal `json:"holidayAmount"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings"`
	AbsentDeduction  decimal.Decimal `json:"absentDeduction"`
	LatePenalty      decimal.Decimal `json:"latePenalty"`
	AdvanceDeduction decimal.Decimal `json:"advanceDeduction"`
	OtherDeduction   decimal.Decimal `json:"otherDeduction"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	NetSalary        decimal.Decimal `json:"netSalary"`
	CalculatedAt     time.Time       `json:"calculatedAt"`
	ProcessedAt      *time.Time      `json:"processedAt,omitempty"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
}

type RegisterRow struct {
	GuardID    string
	GuardName  string
	Badge      string
	Earnings   decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
	Status     string
}

type PayslipData struct {
	Record    Record
	GuardName string
	Badge     string
	SiteName  string
}

type BatchResult struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Processed int               `json:"processed"`
	Failures  map[string]string `json:"failures,omitempty"`
}
