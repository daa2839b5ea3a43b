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

// AssignmentRepository реализует интерфейс model.AssignmentRepository
type AssignmentRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAssignmentRepository создает новый репозиторий заданий
func NewAssignmentRepository(db *bun.DB, logger *zap.Logger) model.AssignmentRepository {
	return &AssignmentRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID получает задание по ID
func (r *AssignmentRepository) GetByID(id int64) (*model.Assignment, error) {
	var assignment model.Assignment
	ctx := context.Background()
	err := r.db.NewSelect().Model(&assignment).Where("assignment_id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assignment by ID: %w", err)
	}
	return &assignment, nil
}

// GetByUserID получает все задания пользователя
func (r *AssignmentRepository) GetByUserID(userID int64) ([]model.Assignment, error) {
	var assignments []model.Assignment
	ctx := context.Background()
	err := r.db.NewSelect().Model(&assignments).
		Where("user_id = ?", userID).
		Order("due_at ASC NULLS LAST").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments by user ID: %w", err)
	}
	return assignments, nil
}

// GetPendingByUserID получает незавершенные задания пользователя
func (r *AssignmentRepository) GetPendingByUserID(userID int64) ([]model.Assignment, error) {
	var assignments []model.Assignment
	ctx := context.Background()
	err := r.db.NewSelect().Model(&assignments).
		Where("user_id = ? AND completed = ?", userID, false).
		Order("due_at ASC NULLS LAST").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending assignments: %w", err)
	}
	return assignments, nil
}

// Create создает новое задание
func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	ctx := context.Background()
	_, err := r.db.NewInsert().Model(assignment).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}

// CreateBatch создает несколько заданий одним запросом
func (r *AssignmentRepository) CreateBatch(assignments []model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	ctx := context.Background()
	_, err := r.db.NewInsert().Model(&assignments).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create assignments batch: %w", err)
	}
	return nil
}

// Update обновляет задание
func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	ctx := context.Background()
	_, err := r.db.NewUpdate().Model(assignment).
		Where("assignment_id = ?", assignment.AssignmentID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	return nil
}

// MarkCompleted отмечает задание выполненным
func (r *AssignmentRepository) MarkCompleted(id int64) error {
	ctx := context.Background()
	_, err := r.db.NewUpdate().Model((*model.Assignment)(nil)).
		Set("completed = ?", true).
		Set("updated_at = NOW()").
		Where("assignment_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark assignment completed: %w", err)
	}
	return nil
}

// Delete удаляет задание
func (r *AssignmentRepository) Delete(id int64) error {
	ctx := context.Background()
	_, err := r.db.NewDelete().Model((*model.Assignment)(nil)).
		Where("assignment_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}
