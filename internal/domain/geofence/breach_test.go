package geofence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testZone = Zone{
	Name:      "Harbor Gate Perimeter",
	CenterLat: 12.9716,
	CenterLng: 77.5946,
	RadiusM:   150,
}

func TestDistanceM(t *testing.T) {
	// ~1 degree of latitude is ~111 km.
	d := DistanceM(12.0, 77.0, 13.0, 77.0)
	assert.InDelta(t, 111195, d, 200)

	assert.InDelta(t, 0, DistanceM(12.9716, 77.5946, 12.9716, 77.5946), 0.001)
}

func TestZoneContains(t *testing.T) {
	assert.True(t, testZone.Contains(12.9716, 77.5946))
	// ~111 m north of center, inside the 150 m radius.
	assert.True(t, testZone.Contains(12.9726, 77.5946))
	// ~1.1 km north, well outside.
	assert.False(t, testZone.Contains(12.9816, 77.5946))
}

func TestEvaluateEntryExit(t *testing.T) {
	now := time.Now()

	event, _ := Evaluate(testZone, Position{Latitude: 12.9716, Longitude: 77.5946, At: now}, false, time.Time{})
	assert.Equal(t, EventEntry, event)

	event, _ = Evaluate(testZone, Position{Latitude: 12.9816, Longitude: 77.5946, At: now}, true, now.Add(-time.Minute))
	assert.Equal(t, EventExit, event)
}

func TestEvaluateLoiter(t *testing.T) {
	now := time.Now()
	inside := Position{Latitude: 12.9716, Longitude: 77.5946, At: now}

	event, _ := Evaluate(testZone, inside, true, now.Add(-20*time.Minute))
	assert.Equal(t, EventLoiter, event)

	event, _ = Evaluate(testZone, inside, true, now.Add(-5*time.Minute))
	assert.Empty(t, event, "dwell under threshold must not fire")
}

func TestEvaluateOutsideNoEvent(t *testing.T) {
	event, distance := Evaluate(testZone, Position{Latitude: 12.9816, Longitude: 77.5946, At: time.Now()}, false, time.Time{})
	assert.Empty(t, event)
	assert.Greater(t, distance, testZone.RadiusM)
}
