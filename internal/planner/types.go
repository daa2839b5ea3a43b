// Package planner содержит алгоритм построения дневного расписания.
//
// Пакет не выполняет I/O: все входные данные передаются снимками,
// результат никогда не изменяет входные коллекции.
package planner

import (
	"time"

	"focusboard/internal/model"
)

// Preferences представляет настройки планирования, используемые аллокатором
type Preferences struct {
	WorkStartMinutes int
	WorkEndMinutes   int
	SessionMinutes   int
	BreakMinutes     int
}

// PreferencesFrom извлекает настройки аллокатора из модели настроек пользователя
func PreferencesFrom(p *model.SchedulePreferences) Preferences {
	return Preferences{
		WorkStartMinutes: p.WorkStartMinutes,
		WorkEndMinutes:   p.WorkEndMinutes,
		SessionMinutes:   p.SessionMinutes,
		BreakMinutes:     p.BreakMinutes,
	}
}

// Assignment представляет задание на входе аллокатора
type Assignment struct {
	ID         int64
	Title      string
	Subject    string
	DueAt      *time.Time
	Priority   model.Priority
	Difficulty int
	Completed  bool
}

// Habit представляет привычку на входе аллокатора
type Habit struct {
	ID          int64
	Title       string
	Completions []time.Time
}

// CompletedOn проверяет, выполнена ли привычка в указанный календарный день
func (h Habit) CompletedOn(day time.Time) bool {
	for _, ts := range h.Completions {
		if model.SameDay(ts.In(day.Location()), day) {
			return true
		}
	}
	return false
}

// Session представляет один блок времени в построенном расписании
type Session struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Subject      string            `json:"subject"`
	StartsAt     time.Time         `json:"starts_at"`
	EndsAt       time.Time         `json:"ends_at"`
	Kind         model.SessionKind `json:"kind"`
	Priority     model.Priority    `json:"priority"`
	Difficulty   int               `json:"difficulty"`
	AssignmentID *int64            `json:"assignment_id,omitempty"`
	HabitID      *int64            `json:"habit_id,omitempty"`
}

// Minutes возвращает длительность сессии в минутах
func (s Session) Minutes() int {
	return int(s.EndsAt.Sub(s.StartsAt) / time.Minute)
}

// IsBreak проверяет, является ли сессия перерывом
func (s Session) IsBreak() bool {
	return s.Kind == model.SessionKindBreak
}

// Optimization представляет построенное расписание на один день
type Optimization struct {
	Date         time.Time `json:"date"`
	PeakHour     int       `json:"peak_hour"`
	Sessions     []Session `json:"sessions"`
	StudyMinutes int       `json:"study_minutes"`
	BreakMinutes int       `json:"break_minutes"`
	Efficiency   float64   `json:"efficiency"`
	Suggestions  []string  `json:"suggestions"`
}
