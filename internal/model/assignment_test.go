package model

import "testing"

func TestPriority_Weight(t *testing.T) {
	if PriorityHigh.Weight() <= PriorityMedium.Weight() {
		t.Error("Expected high priority to outweigh medium")
	}
	if PriorityMedium.Weight() <= PriorityLow.Weight() {
		t.Error("Expected medium priority to outweigh low")
	}
	if Priority("urgent").Weight() != 0 {
		t.Error("Expected unknown priority weight to be 0")
	}
}

func TestPriority_IsValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.IsValid() {
			t.Errorf("Expected %s to be valid", p)
		}
	}
	if Priority("urgent").IsValid() {
		t.Error("Expected 'urgent' to be invalid")
	}
	if Priority("").IsValid() {
		t.Error("Expected empty priority to be invalid")
	}
}

func TestAssignment_Validate(t *testing.T) {
	assignment := &Assignment{
		UserID:   1,
		Title:    "Essay draft",
		Priority: PriorityHigh,
	}

	if err := assignment.Validate(); err != nil {
		t.Errorf("Expected valid assignment, got %v", err)
	}

	noTitle := &Assignment{UserID: 1, Priority: PriorityMedium}
	if err := noTitle.Validate(); err == nil {
		t.Error("Expected error for assignment without title")
	}

	badPriority := &Assignment{UserID: 1, Title: "Essay", Priority: "urgent"}
	if err := badPriority.Validate(); err == nil {
		t.Error("Expected error for invalid priority")
	}
}
