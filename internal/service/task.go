// Package service содержит бизнес-логику приложения.
package service

import (
	"context"
	"fmt"
	"time"

	"focusboard/internal/model"
	"focusboard/internal/storage/repository"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// TaskService содержит бизнес-логику для работы с задачами
type TaskService struct {
	repo   model.TaskRepository
	logger *zap.Logger
}

// NewTaskService создает новый сервис задач
func NewTaskService(db *bun.DB, logger *zap.Logger) *TaskService {
	return &TaskService{
		repo:   repository.NewTaskRepository(db, logger),
		logger: logger,
	}
}

// GetAllTasks возвращает все задачи
func (s *TaskService) GetAllTasks() ([]model.Task, error) {
	return s.repo.GetAll()
}

// GetActiveTasks возвращает активные задачи
func (s *TaskService) GetActiveTasks() ([]model.Task, error) {
	return s.repo.GetActive()
}

// GetDueTasks возвращает задачи, которые нужно выполнить
func (s *TaskService) GetDueTasks() ([]model.Task, error) {
	return s.repo.GetDueTasks()
}

// CreateTask создает новую задачу
func (s *TaskService) CreateTask(task *model.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("task validation failed: %w", err)
	}

	return s.repo.Create(task)
}

// UpdateTask обновляет задачу
func (s *TaskService) UpdateTask(task *model.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("task validation failed: %w", err)
	}

	return s.repo.Update(task)
}

// DeleteTask удаляет задачу
func (s *TaskService) DeleteTask(taskID int64) error {
	return s.repo.Delete(taskID)
}

// GetByName возвращает задачу по имени
func (s *TaskService) GetByName(name string) (*model.Task, error) {
	return s.repo.GetByName(name)
}

// UpdateRunStats обновляет статистику выполнения задачи
func (s *TaskService) UpdateRunStats(taskID int64, success bool, err error) error {
	return s.repo.UpdateRunStats(taskID, success, err)
}

// ExecuteTask выполняет задачу
func (s *TaskService) ExecuteTask(ctx context.Context, task *model.Task, executor TaskExecutor) error {
	s.logger.Info("Executing task",
		zap.String("task_name", task.Name),
		zap.String("task_type", task.TaskType.String()))

	startTime := time.Now()
	err := executor.Execute(ctx, task)
	duration := time.Since(startTime)

	success := err == nil
	if updateErr := s.UpdateRunStats(task.TaskID, success, err); updateErr != nil {
		s.logger.Error("Failed to update task run stats",
			zap.String("task_name", task.Name),
			zap.Error(updateErr))
	}

	if success {
		s.logger.Info("Task executed successfully",
			zap.String("task_name", task.Name),
			zap.Duration("duration", duration))
	} else {
		s.logger.Error("Task execution failed",
			zap.String("task_name", task.Name),
			zap.Duration("duration", duration),
			zap.Error(err))
	}

	return err
}

// TaskExecutor определяет интерфейс для выполнения задач
type TaskExecutor interface {
	Execute(ctx context.Context, task *model.Task) error
}

// DigestSender определяет интерфейс отправки дневного расписания пользователю
type DigestSender interface {
	SendDailySchedule(user model.User, day time.Time) error
}

// GeneratePlansTaskExecutor строит дневные расписания для всех активных пользователей
type GeneratePlansTaskExecutor struct {
	schedule *ScheduleService
	users    *UserService
	location *time.Location
	logger   *zap.Logger
}

// NewGeneratePlansTaskExecutor создает новый исполнитель генерации расписаний
func NewGeneratePlansTaskExecutor(schedule *ScheduleService, users *UserService, location *time.Location, logger *zap.Logger) *GeneratePlansTaskExecutor {
	return &GeneratePlansTaskExecutor{
		schedule: schedule,
		users:    users,
		location: location,
		logger:   logger,
	}
}

// Execute строит расписания на сегодня
func (e *GeneratePlansTaskExecutor) Execute(ctx context.Context, task *model.Task) error {
	users, err := e.users.GetActive()
	if err != nil {
		return fmt.Errorf("failed to get active users: %w", err)
	}

	day := time.Now().In(e.location)

	failed := 0
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := e.schedule.BuildDailyPlan(user.UserID, day); err != nil {
			failed++
			e.logger.Error("Failed to build daily plan",
				zap.Int64("user_id", user.UserID),
				zap.Error(err))
		}
	}

	e.logger.Info("Daily plans generated",
		zap.String("task_name", task.Name),
		zap.Int("users", len(users)),
		zap.Int("failed", failed))

	if failed == len(users) && len(users) > 0 {
		return fmt.Errorf("failed to build plans for all %d users", failed)
	}

	return nil
}

// SendDigestTaskExecutor отправляет дневное расписание подписанным пользователям
type SendDigestTaskExecutor struct {
	users    *UserService
	sender   DigestSender
	location *time.Location
	logger   *zap.Logger
}

// NewSendDigestTaskExecutor создает новый исполнитель рассылки расписаний
func NewSendDigestTaskExecutor(users *UserService, sender DigestSender, location *time.Location, logger *zap.Logger) *SendDigestTaskExecutor {
	return &SendDigestTaskExecutor{
		users:    users,
		sender:   sender,
		location: location,
		logger:   logger,
	}
}

// Execute отправляет рассылку
func (e *SendDigestTaskExecutor) Execute(ctx context.Context, task *model.Task) error {
	if e.sender == nil {
		return fmt.Errorf("digest sender is not configured")
	}

	recipients, err := e.users.GetDigestRecipients()
	if err != nil {
		return fmt.Errorf("failed to get digest recipients: %w", err)
	}

	day := time.Now().In(e.location)

	for _, user := range recipients {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := e.sender.SendDailySchedule(user, day); err != nil {
			e.logger.Error("Failed to send schedule digest",
				zap.Int64("user_id", user.UserID),
				zap.Int64("chat_id", user.ChatID),
				zap.Error(err))
		}
	}

	e.logger.Info("Schedule digest sent",
		zap.String("task_name", task.Name),
		zap.Int("recipients", len(recipients)))

	return nil
}

// CleanupEventsTaskExecutor удаляет старые сгенерированные события календаря
type CleanupEventsTaskExecutor struct {
	schedule *ScheduleService
	logger   *zap.Logger
}

// NewCleanupEventsTaskExecutor создает новый исполнитель очистки календаря
func NewCleanupEventsTaskExecutor(schedule *ScheduleService, logger *zap.Logger) *CleanupEventsTaskExecutor {
	return &CleanupEventsTaskExecutor{
		schedule: schedule,
		logger:   logger,
	}
}

// Execute удаляет события старше retention_days из конфигурации задачи
func (e *CleanupEventsTaskExecutor) Execute(ctx context.Context, task *model.Task) error {
	retentionDays := 30
	if days, ok := task.GetConfigInt("retention_days"); ok && days > 0 {
		retentionDays = days
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted, err := e.schedule.CleanupGeneratedBefore(cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup calendar events: %w", err)
	}

	e.logger.Info("Calendar cleanup finished",
		zap.String("task_name", task.Name),
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", cutoff))

	return nil
}
