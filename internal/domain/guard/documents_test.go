package guard

import (
	"testing"
	"time"
)

func TestDocumentStatus(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	soon := now.AddDate(0, 0, 10)
	past := now.AddDate(0, 0, -1)

	cases := []struct {
		name   string
		expiry *time.Time
		number string
		want   string
	}{
		{"no expiry", nil, "PSARA-123", DocIncomplete},
		{"no number", &future, "", DocIncomplete},
		{"valid", &future, "PSARA-123", DocValid},
		{"expiring soon", &soon, "PSARA-123", DocExpiringSoon},
		{"expired", &past, "PSARA-123", DocExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DocumentStatus(tc.expiry, tc.number, now); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDocumentStatusBoundary(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	atWindow := now.AddDate(0, 0, 30)
	if got := DocumentStatus(&atWindow, "N-1", now); got != DocValid {
		t.Fatalf("expiry exactly at window edge is still valid, got %s", got)
	}
	justInside := now.AddDate(0, 0, 29)
	if got := DocumentStatus(&justInside, "N-1", now); got != DocExpiringSoon {
		t.Fatalf("expected expiring_soon inside window, got %s", got)
	}
}
