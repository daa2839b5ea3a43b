// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: User, UserRepository
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// User представляет пользователя приложения
type User struct {
	bun.BaseModel `bun:"table:focusboard.users"`

	UserID        int64     `bun:"user_id,pk,autoincrement" json:"user_id"`
	ChatID        int64     `bun:"chat_id,unique" json:"chat_id"`
	Username      string    `bun:"username" json:"username"`
	Active        bool      `bun:"active,notnull,default:true" json:"active"`
	DigestEnabled bool      `bun:"digest_enabled,notnull,default:true" json:"digest_enabled"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// UserRepository определяет интерфейс для работы с пользователями
type UserRepository interface {
	GetByID(id int64) (*User, error)
	GetByChatID(chatID int64) (*User, error)
	GetActive() ([]User, error)
	GetDigestRecipients() ([]User, error)
	Create(user *User) error
	Update(user *User) error
	SetDigestEnabled(userID int64, enabled bool) error
}
