// Package service содержит бизнес-логику приложения.
package service

import (
	"fmt"

	"focusboard/internal/model"
	"focusboard/internal/storage/repository"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// PreferenceService содержит бизнес-логику для работы с настройками планирования
type PreferenceService struct {
	repo   model.SchedulePreferencesRepository
	logger *zap.Logger
}

// NewPreferenceService создает новый сервис настроек
func NewPreferenceService(db *bun.DB, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{
		repo:   repository.NewPreferencesRepository(db, logger),
		logger: logger,
	}
}

// GetOrDefault возвращает настройки пользователя или настройки по умолчанию
func (s *PreferenceService) GetOrDefault(userID int64) (*model.SchedulePreferences, error) {
	prefs, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	if prefs == nil {
		s.logger.Debug("No stored preferences, using defaults", zap.Int64("user_id", userID))
		return model.DefaultSchedulePreferences(userID), nil
	}

	return prefs, nil
}

// Save валидирует и сохраняет настройки пользователя.
// Некорректное окно рабочих часов отклоняется здесь, а не в аллокаторе.
func (s *PreferenceService) Save(prefs *model.SchedulePreferences) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("preferences validation failed: %w", err)
	}

	if err := s.repo.Upsert(prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	s.logger.Info("Preferences saved",
		zap.Int64("user_id", prefs.UserID),
		zap.Int("work_start_minutes", prefs.WorkStartMinutes),
		zap.Int("work_end_minutes", prefs.WorkEndMinutes))

	return nil
}

// Reset удаляет сохраненные настройки пользователя
func (s *PreferenceService) Reset(userID int64) error {
	if err := s.repo.Delete(userID); err != nil {
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	return nil
}
