package planner

import (
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 9, hour, 15, 0, 0, time.UTC)
}

func TestPeakHour_EmptyHistory(t *testing.T) {
	if got := PeakHour(nil); got != DefaultPeakHour {
		t.Errorf("Expected default peak hour %d, got %d", DefaultPeakHour, got)
	}
}

func TestPeakHour_Mode(t *testing.T) {
	completions := []time.Time{at(8), at(14), at(14), at(20), at(14)}
	if got := PeakHour(completions); got != 14 {
		t.Errorf("Expected peak hour 14, got %d", got)
	}
}

func TestPeakHour_TieFirstEncountered(t *testing.T) {
	// При равных счетчиках побеждает час, первым достигший максимума
	completions := []time.Time{at(9), at(16), at(9), at(16)}
	if got := PeakHour(completions); got != 9 {
		t.Errorf("Expected peak hour 9 on tie, got %d", got)
	}
}
