// Package service содержит бизнес-логику приложения.
package service

import (
	"fmt"

	"focusboard/internal/model"
	"focusboard/internal/storage/repository"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AssignmentService содержит бизнес-логику для работы с заданиями
type AssignmentService struct {
	repo   model.AssignmentRepository
	logger *zap.Logger
}

// NewAssignmentService создает новый сервис заданий
func NewAssignmentService(db *bun.DB, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		repo:   repository.NewAssignmentRepository(db, logger),
		logger: logger,
	}
}

// GetByUserID возвращает все задания пользователя
func (s *AssignmentService) GetByUserID(userID int64) ([]model.Assignment, error) {
	return s.repo.GetByUserID(userID)
}

// GetPendingByUserID возвращает незавершенные задания пользователя
func (s *AssignmentService) GetPendingByUserID(userID int64) ([]model.Assignment, error) {
	return s.repo.GetPendingByUserID(userID)
}

// Create создает новое задание
func (s *AssignmentService) Create(assignment *model.Assignment) error {
	if assignment.Priority == "" {
		assignment.Priority = model.PriorityMedium
	}

	if err := assignment.Validate(); err != nil {
		return fmt.Errorf("assignment validation failed: %w", err)
	}

	if err := s.repo.Create(assignment); err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("Assignment created",
		zap.Int64("user_id", assignment.UserID),
		zap.String("title", assignment.Title),
		zap.String("priority", assignment.Priority.String()))

	return nil
}

// CreateBatch создает несколько заданий, например после импорта расписания
func (s *AssignmentService) CreateBatch(assignments []model.Assignment) error {
	for i := range assignments {
		if assignments[i].Priority == "" {
			assignments[i].Priority = model.PriorityMedium
		}
		if err := assignments[i].Validate(); err != nil {
			return fmt.Errorf("assignment %d validation failed: %w", i, err)
		}
	}

	if err := s.repo.CreateBatch(assignments); err != nil {
		return fmt.Errorf("failed to create assignments: %w", err)
	}

	s.logger.Info("Assignments created", zap.Int("count", len(assignments)))
	return nil
}

// MarkCompleted отмечает задание выполненным
func (s *AssignmentService) MarkCompleted(id int64) error {
	assignment, err := s.repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return fmt.Errorf("assignment with ID %d not found", id)
	}

	if err := s.repo.MarkCompleted(id); err != nil {
		return fmt.Errorf("failed to mark assignment completed: %w", err)
	}

	return nil
}

// Delete удаляет задание
func (s *AssignmentService) Delete(id int64) error {
	return s.repo.Delete(id)
}
