// Package repository содержит реализации репозиториев для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"focusboard/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserRepository реализует интерфейс model.UserRepository
type UserRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *bun.DB, logger *zap.Logger) model.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	ctx := context.Background()
	err := r.db.NewSelect().Model(&user).Where("user_id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// GetByChatID получает пользователя по идентификатору чата Telegram
func (r *UserRepository) GetByChatID(chatID int64) (*model.User, error) {
	var user model.User
	ctx := context.Background()
	err := r.db.NewSelect().Model(&user).Where("chat_id = ?", chatID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by chat ID: %w", err)
	}
	return &user, nil
}

// GetActive получает активных пользователей
func (r *UserRepository) GetActive() ([]model.User, error) {
	var users []model.User
	ctx := context.Background()
	err := r.db.NewSelect().Model(&users).Where("active = ?", true).Order("user_id").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active users: %w", err)
	}
	return users, nil
}

// GetDigestRecipients получает активных пользователей с включенной рассылкой
func (r *UserRepository) GetDigestRecipients() ([]model.User, error) {
	var users []model.User
	ctx := context.Background()
	err := r.db.NewSelect().Model(&users).
		Where("active = ? AND digest_enabled = ? AND chat_id != 0", true, true).
		Order("user_id").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get digest recipients: %w", err)
	}
	return users, nil
}

// Create создает нового пользователя
func (r *UserRepository) Create(user *model.User) error {
	ctx := context.Background()
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update обновляет пользователя
func (r *UserRepository) Update(user *model.User) error {
	ctx := context.Background()
	_, err := r.db.NewUpdate().Model(user).Where("user_id = ?", user.UserID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// SetDigestEnabled включает или выключает рассылку для пользователя
func (r *UserRepository) SetDigestEnabled(userID int64, enabled bool) error {
	ctx := context.Background()
	_, err := r.db.NewUpdate().Model((*model.User)(nil)).
		Set("digest_enabled = ?", enabled).
		Set("updated_at = NOW()").
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set digest enabled: %w", err)
	}
	return nil
}
