package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                     string
	DatabaseURL              string
	JWTSecret                string
	Environment              string
	FrontendDir              string
	AllowedOrigins           []string
	RunMigrations            bool
	RunSeed                  bool
	MaxBodyBytes             int64
	RateLimitPerMin          int
	MetricsEnabled           bool
	ComplianceRecalcInterval time.Duration
	DocumentSweepInterval    time.Duration

	Payroll    PayrollRates
	Compliance ComplianceRules
}

// PayrollRates carries the tenant-tunable payroll constants. The defaults
// match the reference deployment: a 26 working-day month, a flat 200 per
// late day, and flat advance/other deductions of 1000/500 when a guard has
// no individual override.
type PayrollRates struct {
	WorkingDayDivisor  int
	HoursPerShift      int
	LatePenaltyPerDay  float64
	DefaultAdvance     float64
	DefaultOther       float64
	OvertimeMultiplier float64
}

type ComplianceRules struct {
	ValidateWeights    bool
	WeightSumTolerance float64
	RecommendationCap  int
}

func Load() Config {
	return Config{
		Addr:                     getEnv("APP_ADDR", ":8080"),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		Environment:              getEnv("APP_ENV", "development"),
		FrontendDir:              getEnv("FRONTEND_DIR", "frontend/dist"),
		AllowedOrigins:           splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RunMigrations:            getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                  getEnvBool("RUN_SEED", false),
		MaxBodyBytes:             int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMin:          getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		MetricsEnabled:           getEnvBool("METRICS_ENABLED", true),
		ComplianceRecalcInterval: getEnvDuration("COMPLIANCE_RECALC_INTERVAL", 24*time.Hour),
		DocumentSweepInterval:    getEnvDuration("DOCUMENT_SWEEP_INTERVAL", 24*time.Hour),
		Payroll: PayrollRates{
			WorkingDayDivisor:  getEnvInt("PAYROLL_WORKING_DAY_DIVISOR", 26),
			HoursPerShift:      getEnvInt("PAYROLL_HOURS_PER_SHIFT", 8),
			LatePenaltyPerDay:  getEnvFloat("PAYROLL_LATE_PENALTY_PER_DAY", 200),
			DefaultAdvance:     getEnvFloat("PAYROLL_DEFAULT_ADVANCE_DEDUCTION", 1000),
			DefaultOther:       getEnvFloat("PAYROLL_DEFAULT_OTHER_DEDUCTION", 500),
			OvertimeMultiplier: getEnvFloat("PAYROLL_OVERTIME_MULTIPLIER", 1.5),
		},
		Compliance: ComplianceRules{
			ValidateWeights:    getEnvBool("COMPLIANCE_VALIDATE_WEIGHTS", false),
			WeightSumTolerance: getEnvFloat("COMPLIANCE_WEIGHT_SUM_TOLERANCE", 0.001),
			RecommendationCap:  getEnvInt("COMPLIANCE_RECOMMENDATION_CAP", 0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Payroll.WorkingDayDivisor <= 0 {
		return fmt.Errorf("PAYROLL_WORKING_DAY_DIVISOR must be positive")
	}
	if c.Payroll.HoursPerShift <= 0 {
		return fmt.Errorf("PAYROLL_HOURS_PER_SHIFT must be positive")
	}
	if c.Payroll.OvertimeMultiplier <= 0 {
		return fmt.Errorf("PAYROLL_OVERTIME_MULTIPLIER must be positive")
	}
	if c.Compliance.WeightSumTolerance < 0 {
		return fmt.Errorf("COMPLIANCE_WEIGHT_SUM_TOLERANCE must not be negative")
	}
	return nil
}
