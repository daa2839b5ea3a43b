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

// PreferencesRepository реализует интерфейс model.SchedulePreferencesRepository
type PreferencesRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewPreferencesRepository создает новый репозиторий настроек планирования
func NewPreferencesRepository(db *bun.DB, logger *zap.Logger) model.SchedulePreferencesRepository {
	return &PreferencesRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID получает настройки пользователя
func (r *PreferencesRepository) GetByUserID(userID int64) (*model.SchedulePreferences, error) {
	var prefs model.SchedulePreferences
	ctx := context.Background()
	err := r.db.NewSelect().Model(&prefs).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get preferences by user ID: %w", err)
	}
	return &prefs, nil
}

// Upsert создает или обновляет настройки пользователя
func (r *PreferencesRepository) Upsert(prefs *model.SchedulePreferences) error {
	ctx := context.Background()
	_, err := r.db.NewInsert().
		Model(prefs).
		On("CONFLICT (user_id) DO UPDATE").
		Set("work_start_minutes = EXCLUDED.work_start_minutes").
		Set("work_end_minutes = EXCLUDED.work_end_minutes").
		Set("preferred_weekdays = EXCLUDED.preferred_weekdays").
		Set("session_minutes = EXCLUDED.session_minutes").
		Set("break_minutes = EXCLUDED.break_minutes").
		Set("energy_levels = EXCLUDED.energy_levels").
		Set("subject_overrides = EXCLUDED.subject_overrides").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return nil
}

// Delete удаляет настройки пользователя
func (r *PreferencesRepository) Delete(userID int64) error {
	ctx := context.Background()
	_, err := r.db.NewDelete().
		Model((*model.SchedulePreferences)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete preferences: %w", err)
	}
	return nil
}
