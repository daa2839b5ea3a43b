// Package model содержит базовые модели и интерфейсы.
//
// Группа: BASE - Базовые компоненты
// Содержит: Repository[T], TimestampedModel
package model

import (
	"time"
)

// TimestampedModel представляет модель с временными метками
type TimestampedModel struct {
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Repository представляет базовый интерфейс репозитория
type Repository[T any] interface {
	GetByID(id int64) (*T, error)
	Create(entity *T) error
	Update(entity *T) error
	Delete(id int64) error
	GetAll() ([]T, error)
}
