package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.Record(429, 0)
	c.RecordPayrollRun()
	c.RecordBreach()

	snap := c.Snapshot()
	if snap["requestsTotal"].(uint64) != 3 {
		t.Fatalf("expected 3 requests, got %v", snap["requestsTotal"])
	}
	if snap["errorsTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 error, got %v", snap["errorsTotal"])
	}
	if snap["rateLimitedTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 rate limited, got %v", snap["rateLimitedTotal"])
	}
	if snap["payrollRunsTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 payroll run, got %v", snap["payrollRunsTotal"])
	}
	if snap["breachEventsTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 breach, got %v", snap["breachEventsTotal"])
	}
}
