package service

import (
	"testing"
	"time"

	"focusboard/internal/model"
)

func completionAt(day time.Time) model.HabitCompletion {
	return model.HabitCompletion{HabitID: 1, UserID: 1, CompletedAt: day}
}

func TestStreakOf(t *testing.T) {
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	daysAgo := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	tests := []struct {
		name        string
		completions []model.HabitCompletion
		want        int
	}{
		{"no completions", nil, 0},
		{"single today", []model.HabitCompletion{completionAt(now)}, 1},
		{"three consecutive ending today", []model.HabitCompletion{
			completionAt(daysAgo(2)), completionAt(daysAgo(1)), completionAt(now),
		}, 3},
		{"streak survives missing today", []model.HabitCompletion{
			completionAt(daysAgo(2)), completionAt(daysAgo(1)),
		}, 2},
		{"broken two days ago", []model.HabitCompletion{
			completionAt(daysAgo(4)), completionAt(daysAgo(3)),
		}, 0},
		{"gap in the middle", []model.HabitCompletion{
			completionAt(daysAgo(3)), completionAt(daysAgo(1)), completionAt(now),
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := streakOf(tt.completions, now); got != tt.want {
				t.Errorf("streakOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletedOn(t *testing.T) {
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	completions := []model.HabitCompletion{
		completionAt(time.Date(2026, 3, 10, 22, 15, 0, 0, time.UTC)),
	}

	if !completedOn(completions, day) {
		t.Error("Expected completion on the same calendar day to count")
	}
	if completedOn(completions, day.AddDate(0, 0, 1)) {
		t.Error("Expected no completion on the next day")
	}
}
