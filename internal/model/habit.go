// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Habit, HabitCompletion, HabitRepository
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Habit представляет привычку пользователя
type Habit struct {
	bun.BaseModel `bun:"table:focusboard.habits"`

	HabitID   int64     `bun:"habit_id,pk,autoincrement" json:"habit_id"`
	UserID    int64     `bun:"user_id,notnull" json:"user_id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Archived  bool      `bun:"archived,notnull,default:false" json:"archived"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Validate проверяет валидность привычки
func (h *Habit) Validate() error {
	var errors ValidationErrors

	if h.UserID == 0 {
		errors = append(errors, ValidationError{Field: "user_id", Message: "user_id is required"})
	}

	if h.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// HabitCompletion представляет отметку о выполнении привычки
type HabitCompletion struct {
	bun.BaseModel `bun:"table:focusboard.habit_completions"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	HabitID     int64     `bun:"habit_id,notnull" json:"habit_id"`
	UserID      int64     `bun:"user_id,notnull" json:"user_id"`
	CompletedAt time.Time `bun:"completed_at,notnull,default:current_timestamp" json:"completed_at"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// SameDay проверяет, приходятся ли два момента времени на один календарный день
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// HabitRepository определяет интерфейс для работы с привычками
type HabitRepository interface {
	GetByID(id int64) (*Habit, error)
	GetActiveByUserID(userID int64) ([]Habit, error)
	Create(habit *Habit) error
	Update(habit *Habit) error
	Archive(id int64) error
	Delete(id int64) error
	AddCompletion(completion *HabitCompletion) error
	GetCompletionsByHabitID(habitID int64) ([]HabitCompletion, error)
	GetCompletionsByUserID(userID int64, since time.Time) ([]HabitCompletion, error)
}
