package geofence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"guardops/internal/platform/db"
)

var ErrZoneNotFound = errors.New("geofence zone not found")

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

func (s *Store) CreateZone(ctx context.Context, zone Zone) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO geofences (site_id, name, center_lat, center_lng, radius_m)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, zone.SiteID, zone.Name, zone.CenterLat, zone.CenterLng, zone.RadiusM).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetZone(ctx context.Context, id string) (Zone, error) {
	var zone Zone
	err := s.DB.QueryRow(ctx, `
    SELECT id, site_id, name, center_lat, center_lng, radius_m, created_at
    FROM geofences
    WHERE id = $1
  `, id).Scan(&zone.ID, &zone.SiteID, &zone.Name, &zone.CenterLat, &zone.CenterLng, &zone.RadiusM, &zone.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Zone{}, ErrZoneNotFound
	}
	return zone, err
}

func (s *Store) ListZones(ctx context.Context) ([]Zone, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, site_id, name, center_lat, center_lng, radius_m, created_at
    FROM geofences
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []Zone
	for rows.Next() {
		var zone Zone
		if err := rows.Scan(&zone.ID, &zone.SiteID, &zone.Name, &zone.CenterLat, &zone.CenterLng, &zone.RadiusM, &zone.CreatedAt); err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}

// LastState returns the guard's zone state from the most recent event:
// whether the last event left the guard inside, and since when.
func (s *Store) LastState(ctx context.Context, zoneID, guardID string) (inside bool, since time.Time, err error) {
	var eventType string
	var at time.Time
	err = s.DB.QueryRow(ctx, `
    SELECT event_type, occurred_at
    FROM geofence_events
    WHERE zone_id = $1 AND guard_id = $2
    ORDER BY occurred_at DESC
    LIMIT 1
  `, zoneID, guardID).Scan(&eventType, &at)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, time.Time{}, nil
	}
	if err != nil {
		return false, time.Time{}, err
	}
	if eventType == EventEntry || eventType == EventLoiter {
		return true, at, nil
	}
	return false, time.Time{}, nil
}

func (s *Store) CreateEvent(ctx context.Context, event Event) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO geofence_events (zone_id, guard_id, event_type, latitude, longitude, distance_m, occurred_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, event.ZoneID, event.GuardID, event.Type, event.Latitude, event.Longitude, event.DistanceM, event.At).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListEvents(ctx context.Context, zoneID string, limit, offset int) ([]Event, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, zone_id, guard_id, event_type, latitude, longitude, distance_m, occurred_at
    FROM geofence_events
    WHERE ($1 = '' OR zone_id = $1::uuid)
    ORDER BY occurred_at DESC
    LIMIT $2 OFFSET $3
  `, zoneID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.ID, &event.ZoneID, &event.GuardID, &event.Type,
			&event.Latitude, &event.Longitude, &event.DistanceM, &event.At); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
