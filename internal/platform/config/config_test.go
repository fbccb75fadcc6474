package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.Payroll.WorkingDayDivisor != 26 {
		t.Fatalf("expected working day divisor 26, got %d", cfg.Payroll.WorkingDayDivisor)
	}
	if cfg.Payroll.LatePenaltyPerDay != 200 {
		t.Fatalf("expected late penalty 200, got %v", cfg.Payroll.LatePenaltyPerDay)
	}
	if cfg.Compliance.ValidateWeights {
		t.Fatal("weight validation must default to off")
	}
	if cfg.ComplianceRecalcInterval != 24*time.Hour {
		t.Fatalf("expected 24h recalc interval, got %v", cfg.ComplianceRecalcInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PAYROLL_WORKING_DAY_DIVISOR", "22")
	t.Setenv("PAYROLL_LATE_PENALTY_PER_DAY", "150.5")
	t.Setenv("COMPLIANCE_VALIDATE_WEIGHTS", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	if cfg.Payroll.WorkingDayDivisor != 22 {
		t.Fatalf("expected divisor override 22, got %d", cfg.Payroll.WorkingDayDivisor)
	}
	if cfg.Payroll.LatePenaltyPerDay != 150.5 {
		t.Fatalf("expected late penalty 150.5, got %v", cfg.Payroll.LatePenaltyPerDay)
	}
	if !cfg.Compliance.ValidateWeights {
		t.Fatal("expected weight validation enabled")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
	cfg.DatabaseURL = "postgres://localhost/guardops"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Payroll.WorkingDayDivisor = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero divisor")
	}
}
