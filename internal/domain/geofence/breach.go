package geofence

import "time"

// loiterThreshold is how long a guard may dwell inside a restricted zone
// before a loiter event fires.
const loiterThreshold = 15 * time.Minute

// Evaluate classifies one position ping against a zone. wasInside is the
// zone state from the previous ping, insideSince the time the guard entered
// (zero when outside). The returned event type is empty when nothing fired.
func Evaluate(zone Zone, pos Position, wasInside bool, insideSince time.Time) (string, float64) {
	distance := DistanceM(zone.CenterLat, zone.CenterLng, pos.Latitude, pos.Longitude)
	inside := distance <= zone.RadiusM

	switch {
	case inside && !wasInside:
		return EventEntry, distance
	case !inside && wasInside:
		return EventExit, distance
	case inside && !insideSince.IsZero() && pos.At.Sub(insideSince) >= loiterThreshold:
		return EventLoiter, distance
	}
	return "", distance
}
