// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: SessionKind, CalendarEvent, CalendarEventRepository
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// SessionKind представляет тип сессии в расписании
type SessionKind string

const (
	SessionKindStudy      SessionKind = "study"
	SessionKindReview     SessionKind = "review"
	SessionKindAssignment SessionKind = "assignment"
	SessionKindBreak      SessionKind = "break"
)

// IsValid проверяет валидность типа сессии
func (k SessionKind) IsValid() bool {
	switch k {
	case SessionKindStudy, SessionKindReview, SessionKindAssignment, SessionKindBreak:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление типа сессии
func (k SessionKind) String() string {
	return string(k)
}

// CalendarEvent представляет сохраненную сессию расписания в календаре
type CalendarEvent struct {
	bun.BaseModel `bun:"table:focusboard.calendar_events"`

	EventID      int64       `bun:"event_id,pk,autoincrement" json:"event_id"`
	UserID       int64       `bun:"user_id,notnull" json:"user_id"`
	SessionID    string      `bun:"session_id,notnull" json:"session_id"`
	Title        string      `bun:"title,notnull" json:"title"`
	Subject      string      `bun:"subject" json:"subject"`
	StartsAt     time.Time   `bun:"starts_at,notnull" json:"starts_at"`
	EndsAt       time.Time   `bun:"ends_at,notnull" json:"ends_at"`
	Kind         SessionKind `bun:"kind,notnull" json:"kind"`
	Priority     Priority    `bun:"priority,notnull,default:'medium'" json:"priority"`
	AssignmentID *int64      `bun:"assignment_id" json:"assignment_id"`
	HabitID      *int64      `bun:"habit_id" json:"habit_id"`
	PlanDate     time.Time   `bun:"plan_date,notnull" json:"plan_date"`
	Generated    bool        `bun:"generated,notnull,default:true" json:"generated"`
	CreatedAt    time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time   `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Duration возвращает длительность события
func (e *CalendarEvent) Duration() time.Duration {
	return e.EndsAt.Sub(e.StartsAt)
}

// CalendarEventRepository определяет интерфейс для работы с событиями календаря
type CalendarEventRepository interface {
	GetByUserIDAndDate(userID int64, date time.Time) ([]CalendarEvent, error)
	ReplaceGeneratedForDate(userID int64, date time.Time, events []CalendarEvent) error
	Create(event *CalendarEvent) error
	Delete(id int64) error
	DeleteGeneratedBefore(cutoff time.Time) (int64, error)
}
