// Package service содержит бизнес-логику приложения.
package service

import (
	"focusboard/internal/config"
	"focusboard/internal/model"
	"focusboard/internal/storage"

	"go.uber.org/zap"
)

// Services содержит все сервисы приложения
type Services struct {
	Preference *PreferenceService
	Assignment *AssignmentService
	Habit      *HabitService
	Schedule   *ScheduleService
	User       *UserService
	Task       *TaskService
	Scheduler  *Scheduler
}

// NewServices создает все сервисы
func NewServices(db *storage.Postgres, cfg *config.Config, logger *zap.Logger) *Services {
	location := cfg.Location()

	preferenceService := NewPreferenceService(db.GetDB(), logger)
	assignmentService := NewAssignmentService(db.GetDB(), logger)
	habitService := NewHabitService(db.GetDB(), logger)
	scheduleService := NewScheduleService(db.GetDB(), preferenceService, assignmentService, habitService, logger)
	userService := NewUserService(db.GetDB(), logger)
	taskService := NewTaskService(db.GetDB(), logger)

	scheduler := NewScheduler(taskService, location, logger)

	// Регистрируем исполнителей задач
	scheduler.RegisterExecutor(model.TaskTypeGeneratePlans,
		NewGeneratePlansTaskExecutor(scheduleService, userService, location, logger))
	scheduler.RegisterExecutor(model.TaskTypeCleanupEvents,
		NewCleanupEventsTaskExecutor(scheduleService, logger))

	// Исполнитель рассылки регистрируется после создания бота,
	// см. RegisterDigestSender
	return &Services{
		Preference: preferenceService,
		Assignment: assignmentService,
		Habit:      habitService,
		Schedule:   scheduleService,
		User:       userService,
		Task:       taskService,
		Scheduler:  scheduler,
	}
}

// RegisterDigestSender подключает отправителя рассылки к планировщику
func (s *Services) RegisterDigestSender(sender DigestSender, cfg *config.Config, logger *zap.Logger) {
	s.Scheduler.RegisterExecutor(model.TaskTypeSendDigest,
		NewSendDigestTaskExecutor(s.User, sender, cfg.Location(), logger))
}
