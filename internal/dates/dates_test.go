package dates

import (
	"testing"
	"time"
)

func TestWindow(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 45, 12, 0, time.UTC)
	from, to := Window(ts)
	if want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Errorf("from = %v, want %v", from, want)
	}
	if want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC); !to.Equal(want) {
		t.Errorf("to = %v, want %v", to, want)
	}
}

// Quota days are UTC days, whatever zone the input carries.
func TestWindowNormalizesZone(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2024, 3, 10, 2, 0, 0, 0, loc) // 2024-03-09T21:00Z
	from, _ := Window(ts)
	if got := Format(from); got != "2024-03-09" {
		t.Errorf("window day = %q, want 2024-03-09", got)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	d, err := Parse("2024-12-31")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := Format(d); got != "2024-12-31" {
		t.Errorf("Format(Parse()) = %q", got)
	}
	if _, err := Parse("31/12/2024"); err == nil {
		t.Error("Parse accepted a non-ISO date")
	}
}
