// Package planner содержит алгоритм построения дневного расписания.
package planner

import (
	"sort"
	"time"

	"focusboard/internal/model"

	"github.com/google/uuid"
)

const (
	// maxAssignmentSessions ограничивает число сессий по заданиям в одном дне
	maxAssignmentSessions = 4
	// maxHabitSessions ограничивает число сессий по привычкам в одном дне
	maxHabitSessions = 3
	// habitSessionMinutes фиксированная длительность сессии привычки
	habitSessionMinutes = 30
)

// IDFunc генерирует идентификаторы сессий
type IDFunc func() string

// Allocator строит дневное расписание из заданий и привычек
type Allocator struct {
	newID IDFunc
}

// NewAllocator создает новый аллокатор
func NewAllocator(newID IDFunc) *Allocator {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Allocator{newID: newID}
}

// Allocate строит расписание на указанный день.
//
// Функция тотальна: некорректное окно рабочих часов дает пустое
// расписание, а не ошибку. Сессии не пересекаются, упорядочены по времени
// начала и лежат внутри [WorkStart, WorkEnd) целевого дня.
func (a *Allocator) Allocate(day time.Time, prefs Preferences, assignments []Assignment, habits []Habit) Optimization {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	cursor := dayStart.Add(time.Duration(prefs.WorkStartMinutes) * time.Minute)
	bound := dayStart.Add(time.Duration(prefs.WorkEndMinutes) * time.Minute)

	peak := a.peakHourOf(habits)

	sessions := make([]Session, 0, maxAssignmentSessions*2+maxHabitSessions)
	sessionDur := time.Duration(prefs.SessionMinutes) * time.Minute
	breakDur := time.Duration(prefs.BreakMinutes) * time.Minute

	// Сессии по заданиям: приоритетные первыми, после каждой перерыв, если влезает
	placed := 0
	for _, as := range sortPending(assignments) {
		if placed == maxAssignmentSessions {
			break
		}

		next := cursor.Add(sessionDur)
		if next.After(bound) {
			break
		}

		id := as.ID
		sessions = append(sessions, Session{
			ID:           a.newID(),
			Title:        as.Title,
			Subject:      as.Subject,
			StartsAt:     cursor,
			EndsAt:       next,
			Kind:         model.SessionKindAssignment,
			Priority:     as.Priority,
			Difficulty:   difficultyOf(as),
			AssignmentID: &id,
		})
		cursor = next
		placed++

		if prefs.BreakMinutes > 0 {
			breakEnd := cursor.Add(breakDur)
			if breakEnd.After(bound) {
				continue
			}
			sessions = append(sessions, Session{
				ID:       a.newID(),
				Title:    "Break",
				StartsAt: cursor,
				EndsAt:   breakEnd,
				Kind:     model.SessionKindBreak,
				Priority: model.PriorityLow,
			})
			cursor = breakEnd
		}
	}

	// Сессии по привычкам: фиксированные 30 минут, без завершающих перерывов
	placed = 0
	for _, h := range habits {
		if placed == maxHabitSessions {
			break
		}
		if h.CompletedOn(day) {
			continue
		}

		next := cursor.Add(habitSessionMinutes * time.Minute)
		if next.After(bound) {
			break
		}

		id := h.ID
		sessions = append(sessions, Session{
			ID:         a.newID(),
			Title:      h.Title,
			StartsAt:   cursor,
			EndsAt:     next,
			Kind:       model.SessionKindStudy,
			Priority:   model.PriorityMedium,
			Difficulty: 2,
			HabitID:    &id,
		})
		cursor = next
		placed++
	}

	study, rest := totals(sessions)

	return Optimization{
		Date:         dayStart,
		PeakHour:     peak,
		Sessions:     sessions,
		StudyMinutes: study,
		BreakMinutes: rest,
		Efficiency:   efficiency(study, rest),
		Suggestions:  buildSuggestions(sessions, peak, study, rest),
	}
}

// peakHourOf вычисляет пиковый час по всей истории выполнений привычек
func (a *Allocator) peakHourOf(habits []Habit) int {
	var completions []time.Time
	for _, h := range habits {
		completions = append(completions, h.Completions...)
	}
	return PeakHour(completions)
}

// sortPending отбирает незавершенные задания и сортирует их по приоритету,
// при равенстве приоритета раньше идет задание с более ранним дедлайном,
// задания без дедлайна идут последними
func sortPending(assignments []Assignment) []Assignment {
	pending := make([]Assignment, 0, len(assignments))
	for _, as := range assignments {
		if !as.Completed {
			pending = append(pending, as)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Priority.Weight() != pending[j].Priority.Weight() {
			return pending[i].Priority.Weight() > pending[j].Priority.Weight()
		}
		switch {
		case pending[i].DueAt == nil:
			return false
		case pending[j].DueAt == nil:
			return true
		default:
			return pending[i].DueAt.Before(*pending[j].DueAt)
		}
	})

	return pending
}

// difficultyOf возвращает оценку сложности задания
func difficultyOf(as Assignment) int {
	if as.Difficulty > 0 {
		return as.Difficulty
	}
	return as.Priority.Weight() + 1
}

// totals суммирует учебные минуты и минуты перерывов
func totals(sessions []Session) (study, rest int) {
	for _, s := range sessions {
		if s.IsBreak() {
			rest += s.Minutes()
		} else {
			study += s.Minutes()
		}
	}
	return study, rest
}

// efficiency вычисляет долю учебного времени в расписании
func efficiency(study, rest int) float64 {
	total := study + rest
	if total == 0 {
		return 0
	}
	return float64(study) / float64(total)
}
