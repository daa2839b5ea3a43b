// Package repository содержит реализации репозиториев для работы с базой данных.
package repository

import (
	"context"
	"fmt"
	"time"

	"focusboard/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// CalendarEventRepository реализует интерфейс model.CalendarEventRepository
type CalendarEventRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewCalendarEventRepository создает новый репозиторий событий календаря
func NewCalendarEventRepository(db *bun.DB, logger *zap.Logger) model.CalendarEventRepository {
	return &CalendarEventRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserIDAndDate получает события пользователя на указанную дату
func (r *CalendarEventRepository) GetByUserIDAndDate(userID int64, date time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	ctx := context.Background()
	err := r.db.NewSelect().Model(&events).
		Where("user_id = ? AND plan_date = ?", userID, date.Format("2006-01-02")).
		Order("starts_at").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar events: %w", err)
	}
	return events, nil
}

// ReplaceGeneratedForDate заменяет сгенерированные события пользователя на дату одной транзакцией
func (r *CalendarEventRepository) ReplaceGeneratedForDate(userID int64, date time.Time, events []model.CalendarEvent) error {
	ctx := context.Background()

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*model.CalendarEvent)(nil)).
			Where("user_id = ? AND plan_date = ? AND generated = ?", userID, date.Format("2006-01-02"), true).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete generated events: %w", err)
		}

		if len(events) == 0 {
			return nil
		}

		if _, err := tx.NewInsert().Model(&events).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert generated events: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace generated events: %w", err)
	}

	return nil
}

// Create создает новое событие календаря
func (r *CalendarEventRepository) Create(event *model.CalendarEvent) error {
	ctx := context.Background()
	_, err := r.db.NewInsert().Model(event).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

// Delete удаляет событие календаря
func (r *CalendarEventRepository) Delete(id int64) error {
	ctx := context.Background()
	_, err := r.db.NewDelete().Model((*model.CalendarEvent)(nil)).
		Where("event_id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

// DeleteGeneratedBefore удаляет сгенерированные события старше указанной даты
func (r *CalendarEventRepository) DeleteGeneratedBefore(cutoff time.Time) (int64, error) {
	ctx := context.Background()
	res, err := r.db.NewDelete().Model((*model.CalendarEvent)(nil)).
		Where("generated = ? AND plan_date < ?", true, cutoff.Format("2006-01-02")).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old generated events: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}
