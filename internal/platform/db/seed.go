package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed loads a small development dataset: one site, two guards with salary
// configurations, and the four reference compliance categories. It is gated
// behind RUN_SEED and never runs in a production path.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	siteID, err := ensureSite(ctx, pool, "Harbor Gate Complex", 12.9716, 77.5946)
	if err != nil {
		return err
	}

	guardIDs := map[string]string{}
	for _, g := range []struct{ name, badge string }{
		{"Ravi Kumar", "GRD-001"},
		{"Sunil Yadav", "GRD-002"},
	} {
		id, err := ensureGuard(ctx, pool, siteID, g.name, g.badge)
		if err != nil {
			return err
		}
		guardIDs[g.badge] = id
	}

	for badge, base := range map[string]float64{"GRD-001": 25000, "GRD-002": 18000} {
		if err := ensureSalaryConfig(ctx, pool, guardIDs[badge], base); err != nil {
			return err
		}
	}

	for _, c := range []struct {
		name   string
		weight float64
	}{
		{"PSARA Licenses", 0.30},
		{"Training", 0.25},
		{"Agreements", 0.20},
		{"Wage Compliance", 0.25},
	} {
		if err := ensureComplianceCategory(ctx, pool, c.name, c.weight); err != nil {
			return err
		}
	}

	return ensureGeofence(ctx, pool, siteID, "Harbor Gate Perimeter", 12.9716, 77.5946, 150)
}

func ensureSite(ctx context.Context, pool *pgxpool.Pool, name string, lat, lng float64) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM sites WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
    INSERT INTO sites (name, latitude, longitude)
    VALUES ($1,$2,$3)
    RETURNING id
  `, name, lat, lng).Scan(&id)
	return id, err
}

func ensureGuard(ctx context.Context, pool *pgxpool.Pool, siteID, name, badge string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM guards WHERE badge = $1", badge).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
    INSERT INTO guards (site_id, name, badge, status)
    VALUES ($1,$2,$3,'active')
    RETURNING id
  `, siteID, name, badge).Scan(&id)
	return id, err
}

func ensureSalaryConfig(ctx context.Context, pool *pgxpool.Pool, guardID string, base float64) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM salary_configs WHERE guard_id = $1", guardID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := pool.Exec(ctx, `
    INSERT INTO salary_configs
      (guard_id, base_salary, hourly_rate, overtime_multiplier,
       night_shift_allowance, weekend_allowance, holiday_allowance, effective_from)
    VALUES ($1,$2,$3,1.5,200,300,500,now())
  `, guardID, base, base/26/8)
	return err
}

func ensureComplianceCategory(ctx context.Context, pool *pgxpool.Pool, name string, weight float64) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO compliance_categories (name, weight)
    VALUES ($1,$2)
    ON CONFLICT (name) DO NOTHING
  `, name, weight)
	return err
}

func ensureGeofence(ctx context.Context, pool *pgxpool.Pool, siteID, name string, lat, lng, radius float64) error {
	_, err := pool.Exec(ctx, `
    INSERT INTO geofences (site_id, name, center_lat, center_lng, radius_m)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (name) DO NOTHING
  `, siteID, name, lat, lng, radius)
	return err
}
