// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Priority, Assignment, AssignmentRepository
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Priority представляет приоритет задания
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid проверяет валидность приоритета
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Weight возвращает числовой вес приоритета для сортировки
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// String возвращает строковое представление приоритета
func (p Priority) String() string {
	return string(p)
}

// Assignment представляет учебное задание пользователя
type Assignment struct {
	bun.BaseModel `bun:"table:focusboard.assignments"`

	AssignmentID int64      `bun:"assignment_id,pk,autoincrement" json:"assignment_id"`
	UserID       int64      `bun:"user_id,notnull" json:"user_id"`
	Title        string     `bun:"title,notnull" json:"title"`
	Subject      string     `bun:"subject" json:"subject"`
	DueAt        *time.Time `bun:"due_at" json:"due_at"`
	Priority     Priority   `bun:"priority,notnull,default:'medium'" json:"priority"`
	Completed    bool       `bun:"completed,notnull,default:false" json:"completed"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Validate проверяет валидность задания
func (a *Assignment) Validate() error {
	var errors ValidationErrors

	if a.UserID == 0 {
		errors = append(errors, ValidationError{Field: "user_id", Message: "user_id is required"})
	}

	if a.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}

	if !a.Priority.IsValid() {
		errors = append(errors, ValidationError{Field: "priority", Message: "invalid priority"})
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// AssignmentRepository определяет интерфейс для работы с заданиями
type AssignmentRepository interface {
	GetByID(id int64) (*Assignment, error)
	GetByUserID(userID int64) ([]Assignment, error)
	GetPendingByUserID(userID int64) ([]Assignment, error)
	Create(assignment *Assignment) error
	CreateBatch(assignments []Assignment) error
	Update(assignment *Assignment) error
	MarkCompleted(id int64) error
	Delete(id int64) error
}
