package geofence

import "time"

const (
	EventEntry   = "entry"
	EventExit    = "exit"
	EventLoiter  = "loiter"
)

// Zone is a named circular geofence around a site.
type Zone struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"siteId"`
	Name      string    `json:"name"`
	CenterLat float64   `json:"centerLat"`
	CenterLng float64   `json:"centerLng"`
	RadiusM   float64   `json:"radiusM"`
	CreatedAt time.Time `json:"createdAt"`
}

type Position struct {
	GuardID   string    `json:"guardId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	At        time.Time `json:"at"`
}

type Event struct {
	ID        string    `json:"id"`
	ZoneID    string    `json:"zoneId"`
	GuardID   string    `json:"guardId"`
	Type      string    `json:"type"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	DistanceM float64   `json:"distanceM"`
	At        time.Time `json:"at"`
}
