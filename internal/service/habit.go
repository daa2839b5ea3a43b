// Package service содержит бизнес-логику приложения.
package service

import (
	"fmt"
	"time"

	"focusboard/internal/model"
	"focusboard/internal/storage/repository"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

const (
	xpPerCompletion = 10
	xpPerLevel      = 100
)

// HabitStats представляет статистику привычки
type HabitStats struct {
	Habit       model.Habit `json:"habit"`
	Completions int         `json:"completions"`
	Streak      int         `json:"streak"`
	XP          int         `json:"xp"`
	Level       int         `json:"level"`
	DoneToday   bool        `json:"done_today"`
}

// HabitService содержит бизнес-логику для работы с привычками
type HabitService struct {
	repo   model.HabitRepository
	logger *zap.Logger
}

// NewHabitService создает новый сервис привычек
func NewHabitService(db *bun.DB, logger *zap.Logger) *HabitService {
	return &HabitService{
		repo:   repository.NewHabitRepository(db, logger),
		logger: logger,
	}
}

// GetActiveByUserID возвращает неархивированные привычки пользователя
func (s *HabitService) GetActiveByUserID(userID int64) ([]model.Habit, error) {
	return s.repo.GetActiveByUserID(userID)
}

// GetCompletionsByUserID возвращает отметки пользователя начиная с указанного момента
func (s *HabitService) GetCompletionsByUserID(userID int64, since time.Time) ([]model.HabitCompletion, error) {
	return s.repo.GetCompletionsByUserID(userID, since)
}

// Create создает новую привычку
func (s *HabitService) Create(habit *model.Habit) error {
	if err := habit.Validate(); err != nil {
		return fmt.Errorf("habit validation failed: %w", err)
	}

	if err := s.repo.Create(habit); err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	s.logger.Info("Habit created",
		zap.Int64("user_id", habit.UserID),
		zap.String("title", habit.Title))

	return nil
}

// CompleteToday добавляет отметку о выполнении привычки за сегодня.
// Повторная отметка в тот же день не добавляется.
func (s *HabitService) CompleteToday(habitID int64, now time.Time) error {
	habit, err := s.repo.GetByID(habitID)
	if err != nil {
		return fmt.Errorf("failed to get habit: %w", err)
	}
	if habit == nil {
		return fmt.Errorf("habit with ID %d not found", habitID)
	}

	completions, err := s.repo.GetCompletionsByHabitID(habitID)
	if err != nil {
		return fmt.Errorf("failed to get habit completions: %w", err)
	}

	for _, c := range completions {
		if model.SameDay(c.CompletedAt.In(now.Location()), now) {
			s.logger.Debug("Habit already completed today", zap.Int64("habit_id", habitID))
			return nil
		}
	}

	completion := &model.HabitCompletion{
		HabitID:     habitID,
		UserID:      habit.UserID,
		CompletedAt: now,
	}

	if err := s.repo.AddCompletion(completion); err != nil {
		return fmt.Errorf("failed to complete habit: %w", err)
	}

	return nil
}

// Archive архивирует привычку
func (s *HabitService) Archive(id int64) error {
	return s.repo.Archive(id)
}

// Delete удаляет привычку
func (s *HabitService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// GetStats возвращает статистику привычек пользователя
func (s *HabitService) GetStats(userID int64, now time.Time) ([]HabitStats, error) {
	habits, err := s.repo.GetActiveByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}

	stats := make([]HabitStats, 0, len(habits))
	for _, habit := range habits {
		completions, err := s.repo.GetCompletionsByHabitID(habit.HabitID)
		if err != nil {
			return nil, fmt.Errorf("failed to get completions for habit %d: %w", habit.HabitID, err)
		}

		xp := len(completions) * xpPerCompletion
		stats = append(stats, HabitStats{
			Habit:       habit,
			Completions: len(completions),
			Streak:      streakOf(completions, now),
			XP:          xp,
			Level:       xp/xpPerLevel + 1,
			DoneToday:   completedOn(completions, now),
		})
	}

	return stats, nil
}

// completedOn проверяет наличие отметки в указанный календарный день
func completedOn(completions []model.HabitCompletion, day time.Time) bool {
	for _, c := range completions {
		if model.SameDay(c.CompletedAt.In(day.Location()), day) {
			return true
		}
	}
	return false
}

// streakOf считает непрерывную серию дней с выполнением, заканчивающуюся
// сегодня или вчера
func streakOf(completions []model.HabitCompletion, now time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	day := now
	if !completedOn(completions, day) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for completedOn(completions, day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}
