// Package service содержит планировщик задач.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"focusboard/internal/model"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler управляет выполнением задач по расписанию
type Scheduler struct {
	taskService *TaskService
	executors   map[model.TaskType]TaskExecutor
	cron        *cron.Cron
	location    *time.Location
	logger      *zap.Logger
	mu          sync.RWMutex
	running     bool
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewScheduler создает новый планировщик
func NewScheduler(taskService *TaskService, location *time.Location, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		taskService: taskService,
		executors:   make(map[model.TaskType]TaskExecutor),
		cron:        cron.New(cron.WithLocation(location)),
		location:    location,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// RegisterExecutor регистрирует исполнитель для типа задачи
func (s *Scheduler) RegisterExecutor(taskType model.TaskType, executor TaskExecutor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executors[taskType] = executor
	s.logger.Info("Registered task executor", zap.String("task_type", taskType.String()))
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.logger.Info("Starting scheduler")

	tasks, err := s.taskService.GetActiveTasks()
	if err != nil {
		return fmt.Errorf("failed to get active tasks: %w", err)
	}

	s.logger.Info("Loaded active tasks from database", zap.Int("count", len(tasks)))
	for _, task := range tasks {
		if err := s.addTaskToCron(&task); err != nil {
			s.logger.Error("Failed to add task to cron",
				zap.String("task_name", task.Name),
				zap.String("task_type", task.TaskType.String()),
				zap.Error(err))
		}
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started successfully", zap.Int("tasks_count", len(tasks)))

	// Горутина для подхвата просроченных задач
	go s.runDueTasksChecker()

	return nil
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info("Stopping scheduler")

	s.cancel()
	s.cron.Stop()
	s.running = false

	s.logger.Info("Scheduler stopped")
}

// addTaskToCron добавляет задачу в cron
func (s *Scheduler) addTaskToCron(task *model.Task) error {
	executor, exists := s.executors[task.TaskType]
	if !exists {
		return fmt.Errorf("no executor registered for task type: %s", task.TaskType)
	}

	t := *task
	_, err := s.cron.AddFunc(task.CronExpression, func() {
		s.executeTask(&t, executor)
	})
	if err != nil {
		return fmt.Errorf("failed to add task to cron: %w", err)
	}

	s.logger.Info("Added task to cron",
		zap.String("task_name", task.Name),
		zap.String("cron_expression", task.CronExpression))

	return nil
}

// executeTask выполняет задачу
func (s *Scheduler) executeTask(task *model.Task, executor TaskExecutor) {
	s.logger.Info("Executing scheduled task", zap.String("task_name", task.Name))

	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Minute)
	defer cancel()

	if err := s.taskService.ExecuteTask(ctx, task, executor); err != nil {
		s.logger.Error("Scheduled task execution failed",
			zap.String("task_name", task.Name),
			zap.Error(err))
	}
}

// runDueTasksChecker проверяет и выполняет просроченные задачи
func (s *Scheduler) runDueTasksChecker() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.checkAndExecuteDueTasks()
		}
	}
}

// checkAndExecuteDueTasks проверяет и выполняет просроченные задачи
func (s *Scheduler) checkAndExecuteDueTasks() {
	tasks, err := s.taskService.GetDueTasks()
	if err != nil {
		s.logger.Error("Failed to get due tasks", zap.Error(err))
		return
	}

	if len(tasks) == 0 {
		return
	}

	s.logger.Info("Found due tasks", zap.Int("count", len(tasks)))

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, task := range tasks {
		executor, exists := s.executors[task.TaskType]
		if !exists {
			s.logger.Error("No executor for task type",
				zap.String("task_name", task.Name),
				zap.String("task_type", task.TaskType.String()))
			continue
		}

		t := task
		go s.executeTask(&t, executor)
	}
}

// EnsureDefaultTasks создает стандартные задачи, если их еще нет в базе
func (s *Scheduler) EnsureDefaultTasks() error {
	defaults := []model.Task{
		{
			Name:           "generate-daily-plans",
			Description:    "Build daily study plans for all active users",
			TaskType:       model.TaskTypeGeneratePlans,
			CronExpression: "0 6 * * *",
			IsActive:       true,
		},
		{
			Name:           "send-schedule-digest",
			Description:    "Send the daily schedule digest to subscribed users",
			TaskType:       model.TaskTypeSendDigest,
			CronExpression: "30 7 * * *",
			IsActive:       true,
		},
		{
			Name:           "cleanup-calendar",
			Description:    "Remove generated calendar events older than the retention window",
			TaskType:       model.TaskTypeCleanupEvents,
			CronExpression: "0 3 * * 0",
			IsActive:       true,
			Config:         map[string]interface{}{"retention_days": 30},
		},
	}

	for _, task := range defaults {
		existing, err := s.taskService.GetByName(task.Name)
		if err != nil {
			return fmt.Errorf("failed to check task %s: %w", task.Name, err)
		}
		if existing != nil {
			continue
		}

		t := task
		if err := s.taskService.CreateTask(&t); err != nil {
			return fmt.Errorf("failed to create default task %s: %w", task.Name, err)
		}

		s.logger.Info("Created default task", zap.String("task_name", task.Name))
	}

	return nil
}
