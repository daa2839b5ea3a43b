package model

import (
	"testing"
	"time"
)

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	if !SameDay(morning, evening) {
		t.Error("Expected same day for morning and evening of 2026-03-10")
	}
	if SameDay(evening, nextDay) {
		t.Error("Expected different days across midnight")
	}
}

func TestHabit_Validate(t *testing.T) {
	habit := &Habit{UserID: 1, Title: "Morning review"}
	if err := habit.Validate(); err != nil {
		t.Errorf("Expected valid habit, got %v", err)
	}

	noTitle := &Habit{UserID: 1}
	if err := noTitle.Validate(); err == nil {
		t.Error("Expected error for habit without title")
	}

	noUser := &Habit{Title: "Morning review"}
	if err := noUser.Validate(); err == nil {
		t.Error("Expected error for habit without user")
	}
}
