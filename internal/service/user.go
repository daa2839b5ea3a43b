// Package service содержит бизнес-логику приложения.
package service

import (
	"fmt"

	"focusboard/internal/model"
	"focusboard/internal/storage/repository"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserService содержит бизнес-логику для работы с пользователями
type UserService struct {
	repo   model.UserRepository
	logger *zap.Logger
}

// NewUserService создает новый сервис пользователей
func NewUserService(db *bun.DB, logger *zap.Logger) *UserService {
	return &UserService{
		repo:   repository.NewUserRepository(db, logger),
		logger: logger,
	}
}

// GetActive возвращает активных пользователей
func (s *UserService) GetActive() ([]model.User, error) {
	return s.repo.GetActive()
}

// GetDigestRecipients возвращает пользователей с включенной рассылкой
func (s *UserService) GetDigestRecipients() ([]model.User, error) {
	return s.repo.GetDigestRecipients()
}

// GetByChatID возвращает пользователя по идентификатору чата
func (s *UserService) GetByChatID(chatID int64) (*model.User, error) {
	return s.repo.GetByChatID(chatID)
}

// RegisterChat привязывает чат Telegram к пользователю, создавая его при необходимости
func (s *UserService) RegisterChat(chatID int64, username string) (*model.User, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by chat ID: %w", err)
	}

	if user != nil {
		if user.Username != username {
			user.Username = username
			if err := s.repo.Update(user); err != nil {
				return nil, fmt.Errorf("failed to update user: %w", err)
			}
		}
		return user, nil
	}

	user = &model.User{
		ChatID:        chatID,
		Username:      username,
		Active:        true,
		DigestEnabled: true,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.UserID),
		zap.Int64("chat_id", chatID),
		zap.String("username", username))

	return user, nil
}

// SetDigestEnabled включает или выключает рассылку для пользователя
func (s *UserService) SetDigestEnabled(userID int64, enabled bool) error {
	return s.repo.SetDigestEnabled(userID, enabled)
}
