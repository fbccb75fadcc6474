package incident

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusOpen, StatusInvestigating, true},
		{StatusOpen, StatusResolved, true},
		{StatusInvestigating, StatusResolved, true},
		{StatusInvestigating, StatusOpen, false},
		{StatusResolved, StatusOpen, false},
		{StatusResolved, StatusInvestigating, false},
		{StatusOpen, StatusOpen, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestValidSeverity(t *testing.T) {
	for _, severity := range []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical} {
		if !ValidSeverity(severity) {
			t.Fatalf("expected %s to be valid", severity)
		}
	}
	if ValidSeverity("urgent") || ValidSeverity("") {
		t.Fatal("unknown severities must be rejected")
	}
}
