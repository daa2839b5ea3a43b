// Package planner содержит алгоритм построения дневного расписания.
package planner

import (
	"fmt"

	"focusboard/internal/model"
)

// SuggestionAddTasks возвращается, когда расписание не содержит ни одной сессии
const SuggestionAddTasks = "No sessions scheduled. Add assignments or habits to fill your day."

// buildSuggestions формирует рекомендации по построенному расписанию
func buildSuggestions(sessions []Session, peakHour, studyMinutes, breakMinutes int) []string {
	if len(sessions) == 0 {
		return []string{SuggestionAddTasks}
	}

	productive := 0
	peakHit := false
	for _, s := range sessions {
		if s.IsBreak() {
			continue
		}
		productive++
		if s.Priority == model.PriorityHigh && s.StartsAt.Hour() == peakHour {
			peakHit = true
		}
	}

	suggestions := []string{
		fmt.Sprintf("Scheduled %d productive sessions for the day.", productive),
	}

	if peakHit {
		suggestions = append(suggestions,
			fmt.Sprintf("High-priority work lands in your peak hour (%02d:00).", peakHour))
	}

	// Перерывов меньше 20% учебного времени
	if studyMinutes > 0 && breakMinutes*5 < studyMinutes {
		suggestions = append(suggestions,
			"Break time is under 20% of study time. Consider adding more breaks.")
	}

	return suggestions
}
