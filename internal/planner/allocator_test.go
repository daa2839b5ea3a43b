package planner

import (
	"fmt"
	"testing"
	"time"

	"focusboard/internal/model"
)

// seqIDs возвращает детерминированный генератор идентификаторов для тестов
func seqIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}
}

func testDay() time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
}

func testPrefs() Preferences {
	return Preferences{
		WorkStartMinutes: 9 * 60,
		WorkEndMinutes:   18 * 60,
		SessionMinutes:   45,
		BreakMinutes:     15,
	}
}

func TestAllocate_ConcreteScenario(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	prefs := Preferences{
		WorkStartMinutes: 9 * 60,
		WorkEndMinutes:   11 * 60,
		SessionMinutes:   45,
		BreakMinutes:     15,
	}

	assignments := []Assignment{
		{ID: 1, Title: "Essay Draft", Priority: model.PriorityHigh},
	}

	opt := alloc.Allocate(testDay(), prefs, assignments, nil)

	if len(opt.Sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(opt.Sessions))
	}

	first := opt.Sessions[0]
	if first.Title != "Essay Draft" || first.Kind != model.SessionKindAssignment {
		t.Errorf("Unexpected first session: %+v", first)
	}
	if first.StartsAt.Hour() != 9 || first.StartsAt.Minute() != 0 {
		t.Errorf("Expected first session at 09:00, got %v", first.StartsAt)
	}
	if first.EndsAt.Hour() != 9 || first.EndsAt.Minute() != 45 {
		t.Errorf("Expected first session to end at 09:45, got %v", first.EndsAt)
	}

	second := opt.Sessions[1]
	if second.Kind != model.SessionKindBreak {
		t.Errorf("Expected break session, got %s", second.Kind)
	}
	if second.EndsAt.Hour() != 10 || second.EndsAt.Minute() != 0 {
		t.Errorf("Expected break to end at 10:00, got %v", second.EndsAt)
	}

	if opt.StudyMinutes != 45 {
		t.Errorf("Expected 45 study minutes, got %d", opt.StudyMinutes)
	}
	if opt.BreakMinutes != 15 {
		t.Errorf("Expected 15 break minutes, got %d", opt.BreakMinutes)
	}
	if opt.Efficiency != 0.75 {
		t.Errorf("Expected efficiency 0.75, got %f", opt.Efficiency)
	}
}

func TestAllocate_SessionsOrderedAndBounded(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	due := testDay().Add(20 * time.Hour)
	assignments := []Assignment{
		{ID: 1, Title: "Math", Priority: model.PriorityHigh, DueAt: &due},
		{ID: 2, Title: "History", Priority: model.PriorityMedium},
		{ID: 3, Title: "Physics", Priority: model.PriorityLow},
	}
	habits := []Habit{
		{ID: 10, Title: "Reading"},
		{ID: 11, Title: "Vocabulary"},
	}

	opt := alloc.Allocate(testDay(), testPrefs(), assignments, habits)

	if len(opt.Sessions) == 0 {
		t.Fatal("Expected sessions to be produced")
	}

	dayStart := testDay().Add(9 * time.Hour)
	dayEnd := testDay().Add(18 * time.Hour)

	for i, s := range opt.Sessions {
		if s.StartsAt.Before(dayStart) || s.EndsAt.After(dayEnd) {
			t.Errorf("Session %d outside working hours: %v - %v", i, s.StartsAt, s.EndsAt)
		}
		if i > 0 && s.StartsAt.Before(opt.Sessions[i-1].EndsAt) {
			t.Errorf("Session %d overlaps previous: %v < %v", i, s.StartsAt, opt.Sessions[i-1].EndsAt)
		}
	}

	if opt.Efficiency < 0 || opt.Efficiency > 1 {
		t.Errorf("Efficiency out of range: %f", opt.Efficiency)
	}
}

func TestAllocate_PriorityOrdering(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	assignments := []Assignment{
		{ID: 1, Title: "Low", Priority: model.PriorityLow},
		{ID: 2, Title: "High", Priority: model.PriorityHigh},
	}

	opt := alloc.Allocate(testDay(), testPrefs(), assignments, nil)

	var lowStart, highStart time.Time
	for _, s := range opt.Sessions {
		switch s.Title {
		case "Low":
			lowStart = s.StartsAt
		case "High":
			highStart = s.StartsAt
		}
	}

	if highStart.IsZero() || lowStart.IsZero() {
		t.Fatal("Expected both assignments to be scheduled")
	}
	if highStart.After(lowStart) {
		t.Errorf("High-priority session starts after low-priority: %v > %v", highStart, lowStart)
	}
}

func TestAllocate_DueDateTieBreak(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	early := testDay().Add(12 * time.Hour)
	late := testDay().Add(48 * time.Hour)
	assignments := []Assignment{
		{ID: 1, Title: "No due", Priority: model.PriorityHigh},
		{ID: 2, Title: "Late", Priority: model.PriorityHigh, DueAt: &late},
		{ID: 3, Title: "Early", Priority: model.PriorityHigh, DueAt: &early},
	}

	opt := alloc.Allocate(testDay(), testPrefs(), assignments, nil)

	var order []string
	for _, s := range opt.Sessions {
		if s.Kind == model.SessionKindAssignment {
			order = append(order, s.Title)
		}
	}

	want := []string{"Early", "Late", "No due"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d assignment sessions, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Position %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestAllocate_CapacityBound(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	var assignments []Assignment
	for i := 0; i < 6; i++ {
		assignments = append(assignments, Assignment{
			ID:       int64(i + 1),
			Title:    fmt.Sprintf("Task %d", i+1),
			Priority: model.PriorityMedium,
		})
	}

	opt := alloc.Allocate(testDay(), testPrefs(), assignments, nil)

	count := 0
	for _, s := range opt.Sessions {
		if s.Kind == model.SessionKindAssignment {
			count++
		}
	}

	if count > 4 {
		t.Errorf("Expected at most 4 assignment sessions, got %d", count)
	}
}

func TestAllocate_HabitCapacityAndToday(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	today := testDay().Add(8 * time.Hour)
	habits := []Habit{
		{ID: 1, Title: "Done today", Completions: []time.Time{today}},
		{ID: 2, Title: "H2"},
		{ID: 3, Title: "H3"},
		{ID: 4, Title: "H4"},
		{ID: 5, Title: "H5"},
	}

	opt := alloc.Allocate(testDay(), testPrefs(), nil, habits)

	count := 0
	for _, s := range opt.Sessions {
		if s.HabitID != nil {
			count++
		}
		if s.Title == "Done today" {
			t.Error("Habit completed today must not be scheduled")
		}
	}

	if count != 3 {
		t.Errorf("Expected 3 habit sessions, got %d", count)
	}
}

func TestAllocate_NarrowWindow(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	prefs := Preferences{
		WorkStartMinutes: 9 * 60,
		WorkEndMinutes:   9*60 + 30,
		SessionMinutes:   45,
		BreakMinutes:     15,
	}

	assignments := []Assignment{
		{ID: 1, Title: "Essay", Priority: model.PriorityHigh},
	}

	opt := alloc.Allocate(testDay(), prefs, assignments, nil)

	if len(opt.Sessions) != 0 {
		t.Errorf("Expected no sessions in narrow window, got %d", len(opt.Sessions))
	}
	if opt.Efficiency != 0 {
		t.Errorf("Expected efficiency 0, got %f", opt.Efficiency)
	}

	found := false
	for _, s := range opt.Suggestions {
		if s == SuggestionAddTasks {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %q suggestion, got %v", SuggestionAddTasks, opt.Suggestions)
	}
}

func TestAllocate_InvertedWindow(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	prefs := Preferences{
		WorkStartMinutes: 18 * 60,
		WorkEndMinutes:   9 * 60,
		SessionMinutes:   45,
		BreakMinutes:     15,
	}

	opt := alloc.Allocate(testDay(), prefs, []Assignment{{ID: 1, Title: "X", Priority: model.PriorityHigh}}, nil)

	if len(opt.Sessions) != 0 {
		t.Errorf("Expected degenerate window to produce no sessions, got %d", len(opt.Sessions))
	}
}

func TestAllocate_Idempotence(t *testing.T) {
	assignments := []Assignment{
		{ID: 1, Title: "Essay", Priority: model.PriorityHigh},
		{ID: 2, Title: "Lab", Priority: model.PriorityMedium},
	}
	habits := []Habit{{ID: 3, Title: "Reading"}}

	first := NewAllocator(seqIDs()).Allocate(testDay(), testPrefs(), assignments, habits)
	second := NewAllocator(seqIDs()).Allocate(testDay(), testPrefs(), assignments, habits)

	if len(first.Sessions) != len(second.Sessions) {
		t.Fatalf("Session counts differ: %d vs %d", len(first.Sessions), len(second.Sessions))
	}
	for i := range first.Sessions {
		a, b := first.Sessions[i], second.Sessions[i]
		if !a.StartsAt.Equal(b.StartsAt) || !a.EndsAt.Equal(b.EndsAt) || a.Title != b.Title || a.Kind != b.Kind {
			t.Errorf("Session %d differs: %+v vs %+v", i, a, b)
		}
	}
	if first.Efficiency != second.Efficiency {
		t.Errorf("Efficiency differs: %f vs %f", first.Efficiency, second.Efficiency)
	}
}

func TestAllocate_InputsNotMutated(t *testing.T) {
	alloc := NewAllocator(seqIDs())

	assignments := []Assignment{
		{ID: 1, Title: "B", Priority: model.PriorityLow},
		{ID: 2, Title: "A", Priority: model.PriorityHigh},
	}

	alloc.Allocate(testDay(), testPrefs(), assignments, nil)

	if assignments[0].Title != "B" || assignments[1].Title != "A" {
		t.Error("Input slice order was mutated by the allocator")
	}
}
