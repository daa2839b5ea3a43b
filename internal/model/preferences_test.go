package model

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultSchedulePreferences(t *testing.T) {
	prefs := DefaultSchedulePreferences(42)

	if prefs.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", prefs.UserID)
	}
	if prefs.WorkStartMinutes != 9*60 || prefs.WorkEndMinutes != 18*60 {
		t.Errorf("Expected 09:00-18:00 window, got %d-%d", prefs.WorkStartMinutes, prefs.WorkEndMinutes)
	}
	if prefs.SessionMinutes != 45 || prefs.BreakMinutes != 15 {
		t.Errorf("Expected 45/15 session/break, got %d/%d", prefs.SessionMinutes, prefs.BreakMinutes)
	}
	if len(prefs.PreferredWeekdays) != 5 {
		t.Errorf("Expected 5 preferred weekdays, got %d", len(prefs.PreferredWeekdays))
	}

	if err := prefs.Validate(); err != nil {
		t.Errorf("Default preferences should be valid, got %v", err)
	}
}

func TestSchedulePreferences_Validate(t *testing.T) {
	valid := func() *SchedulePreferences {
		return &SchedulePreferences{
			UserID:            1,
			WorkStartMinutes:  8 * 60,
			WorkEndMinutes:    17 * 60,
			PreferredWeekdays: []time.Weekday{time.Monday},
			SessionMinutes:    50,
			BreakMinutes:      10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*SchedulePreferences)
		wantErr bool
	}{
		{"valid", func(p *SchedulePreferences) {}, false},
		{"missing user", func(p *SchedulePreferences) { p.UserID = 0 }, true},
		{"end before start", func(p *SchedulePreferences) { p.WorkEndMinutes = 7 * 60 }, true},
		{"end equals start", func(p *SchedulePreferences) { p.WorkEndMinutes = p.WorkStartMinutes }, true},
		{"start out of day", func(p *SchedulePreferences) { p.WorkStartMinutes = 25 * 60 }, true},
		{"zero session length", func(p *SchedulePreferences) { p.SessionMinutes = 0 }, true},
		{"negative break", func(p *SchedulePreferences) { p.BreakMinutes = -5 }, true},
		{"zero break allowed", func(p *SchedulePreferences) { p.BreakMinutes = 0 }, false},
		{"bad energy level", func(p *SchedulePreferences) {
			p.EnergyLevels = map[DayPart]EnergyLevel{DayPartMorning: "超"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := valid()
			tt.mutate(prefs)
			err := prefs.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSchedulePreferences_ValidateReturnsValidationErrors(t *testing.T) {
	prefs := &SchedulePreferences{UserID: 1, WorkStartMinutes: 18 * 60, WorkEndMinutes: 9 * 60, SessionMinutes: 45}

	err := prefs.Validate()
	if err == nil {
		t.Fatal("Expected validation error for inverted window")
	}

	var validationErrors ValidationErrors
	if !errors.As(err, &validationErrors) {
		t.Fatalf("Expected ValidationErrors, got %T", err)
	}
	if !validationErrors.HasErrors() {
		t.Error("Expected HasErrors to return true")
	}
}
