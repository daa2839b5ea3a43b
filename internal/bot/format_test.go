package bot

import (
	"strings"
	"testing"
	"time"

	"focusboard/internal/model"
	"focusboard/internal/planner"
	"focusboard/internal/service"
)

func TestFormatSubject(t *testing.T) {
	if got := formatSubject("computer science"); got != "Computer Science" {
		t.Errorf("formatSubject() = %q, want %q", got, "Computer Science")
	}
	if got := formatSubject(""); got != "" {
		t.Errorf("formatSubject(\"\") = %q, want empty", got)
	}
}

func TestFormatSchedule(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("empty schedule", func(t *testing.T) {
		text := FormatSchedule(day, nil)
		if !strings.Contains(text, "/plan") {
			t.Errorf("Expected hint about /plan, got %q", text)
		}
	})

	t.Run("with events", func(t *testing.T) {
		events := []model.CalendarEvent{
			{
				Title:    "Essay draft",
				Subject:  "history",
				StartsAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
				EndsAt:   time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC),
				Kind:     model.SessionKindAssignment,
				Priority: model.PriorityHigh,
			},
			{
				StartsAt: time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC),
				EndsAt:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
				Kind:     model.SessionKindBreak,
			},
		}

		text := FormatSchedule(day, events)
		if !strings.Contains(text, "09:00-09:45 Essay draft (History) !") {
			t.Errorf("Expected formatted session line, got %q", text)
		}
		if !strings.Contains(text, "09:45-10:00 Break") {
			t.Errorf("Expected break line, got %q", text)
		}
	})
}

func TestFormatOptimization(t *testing.T) {
	opt := &planner.Optimization{
		Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Sessions: []planner.Session{
			{
				Title:    "Essay draft",
				Subject:  "history",
				StartsAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
				EndsAt:   time.Date(2026, 3, 10, 9, 45, 0, 0, time.UTC),
				Kind:     model.SessionKindAssignment,
			},
		},
		StudyMinutes: 45,
		BreakMinutes: 15,
		Efficiency:   0.75,
		Suggestions:  []string{"Scheduled 1 productive sessions for the day."},
	}

	text := FormatOptimization(opt)
	if !strings.Contains(text, "efficiency: 75%") {
		t.Errorf("Expected efficiency line, got %q", text)
	}
	if !strings.Contains(text, "Scheduled 1 productive sessions") {
		t.Errorf("Expected suggestion in output, got %q", text)
	}
}

func TestFormatHabitStats(t *testing.T) {
	t.Run("no habits", func(t *testing.T) {
		text := FormatHabitStats(nil)
		if !strings.Contains(text, "No habits yet") {
			t.Errorf("Expected empty-state message, got %q", text)
		}
	})

	t.Run("with stats", func(t *testing.T) {
		stats := []service.HabitStats{
			{
				Habit:       model.Habit{Title: "Morning review"},
				Completions: 12,
				Streak:      3,
				XP:          120,
				Level:       2,
				DoneToday:   true,
			},
		}

		text := FormatHabitStats(stats)
		if !strings.Contains(text, "1. [x] Morning review") {
			t.Errorf("Expected numbered habit line with done mark, got %q", text)
		}
		if !strings.Contains(text, "streak 3") || !strings.Contains(text, "120 XP") {
			t.Errorf("Expected streak and XP in output, got %q", text)
		}
	})
}
