// Package repository содержит реализации репозиториев для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focusboard/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// HabitRepository реализует интерфейс model.HabitRepository
type HabitRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewHabitRepository создает новый репозиторий привычек
func NewHabitRepository(db *bun.DB, logger *zap.Logger) model.HabitRepository {
	return &HabitRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID получает привычку по ID
func (r *HabitRepository) GetByID(id int64) (*model.Habit, error) {
	var habit model.Habit
	ctx := context.Background()
	err := r.db.NewSelect().Model(&habit).Where("habit_id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get habit by ID: %w", err)
	}
	return &habit, nil
}

// GetActiveByUserID получает неархивированные привычки пользователя
func (r *HabitRepository) GetActiveByUserID(userID int64) ([]model.Habit, error) {
	var habits []model.Habit
	ctx := context.Background()
	err := r.db.NewSelect().Model(&habits).
		Where("user_id = ? AND archived = ?", userID, false).
		Order("created_at").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active habits: %w", err)
	}
	return habits, nil
}

// Create создает новую привычку
func (r *HabitRepository) Create(habit *model.Habit) error {
	ctx := context.Background()
	_, err := r.db.NewInsert().Model(habit).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}
	return nil
}

// Update обновляет привычку
func (r *HabitRepository) Update(habit *model.Habit) error {
	ctx := context.Background()
	_, err := r.db.NewUpdate().Model(habit).
		Where("habit_id = ?", habit.HabitID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return nil
}

// Archive архивирует привычку
func (r *HabitRepository) Archive(id int64) error {
	ctx := context.Background()
	_, err := r.db.NewUpdate().Model((*model.Habit)(nil)).
		Set("archived = ?", true).
		Set("updated_at = NOW()").
		Where("habit_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	return nil
}

// Delete удаляет привычку вместе с отметками о выполнении
func (r *HabitRepository) Delete(id int64) error {
	ctx := context.Background()

	if _, err := r.db.NewDelete().Model((*model.HabitCompletion)(nil)).
		Where("habit_id = ?", id).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete habit completions: %w", err)
	}

	if _, err := r.db.NewDelete().Model((*model.Habit)(nil)).
		Where("habit_id = ?", id).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	return nil
}

// AddCompletion добавляет отметку о выполнении привычки
func (r *HabitRepository) AddCompletion(completion *model.HabitCompletion) error {
	ctx := context.Background()
	_, err := r.db.NewInsert().Model(completion).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add habit completion: %w", err)
	}
	return nil
}

// GetCompletionsByHabitID получает отметки о выполнении привычки
func (r *HabitRepository) GetCompletionsByHabitID(habitID int64) ([]model.HabitCompletion, error) {
	var completions []model.HabitCompletion
	ctx := context.Background()
	err := r.db.NewSelect().Model(&completions).
		Where("habit_id = ?", habitID).
		Order("completed_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit completions: %w", err)
	}
	return completions, nil
}

// GetCompletionsByUserID получает отметки пользователя начиная с указанного момента
func (r *HabitRepository) GetCompletionsByUserID(userID int64, since time.Time) ([]model.HabitCompletion, error) {
	var completions []model.HabitCompletion
	ctx := context.Background()
	err := r.db.NewSelect().Model(&completions).
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Order("completed_at").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get completions by user ID: %w", err)
	}
	return completions, nil
}
