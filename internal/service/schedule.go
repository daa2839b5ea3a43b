// Package service содержит бизнес-логику приложения.
package service

import (
	"fmt"
	"time"

	"focusboard/internal/model"
	"focusboard/internal/planner"
	"focusboard/internal/storage/repository"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// completionHistoryDays задает глубину истории выполнений для анализа пикового часа
const completionHistoryDays = 90

// ScheduleService строит и сохраняет дневные расписания
type ScheduleService struct {
	preferences *PreferenceService
	assignments *AssignmentService
	habits      *HabitService
	events      model.CalendarEventRepository
	allocator   *planner.Allocator
	logger      *zap.Logger
}

// NewScheduleService создает новый сервис расписаний
func NewScheduleService(db *bun.DB, preferences *PreferenceService, assignments *AssignmentService, habits *HabitService, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		preferences: preferences,
		assignments: assignments,
		habits:      habits,
		events:      repository.NewCalendarEventRepository(db, logger),
		allocator:   planner.NewAllocator(nil),
		logger:      logger,
	}
}

// BuildDailyPlan строит расписание пользователя на день и сохраняет его в календарь.
// Ранее сгенерированные события на этот день заменяются.
func (s *ScheduleService) BuildDailyPlan(userID int64, day time.Time) (*planner.Optimization, error) {
	opt, err := s.PreviewDailyPlan(userID, day)
	if err != nil {
		return nil, err
	}

	events := eventsFromSessions(userID, opt.Date, opt.Sessions)
	if err := s.events.ReplaceGeneratedForDate(userID, opt.Date, events); err != nil {
		return nil, fmt.Errorf("failed to store daily plan: %w", err)
	}

	s.logger.Info("Daily plan built",
		zap.Int64("user_id", userID),
		zap.Time("date", opt.Date),
		zap.Int("sessions", len(opt.Sessions)),
		zap.Float64("efficiency", opt.Efficiency))

	return opt, nil
}

// PreviewDailyPlan строит расписание пользователя на день без сохранения
func (s *ScheduleService) PreviewDailyPlan(userID int64, day time.Time) (*planner.Optimization, error) {
	prefs, err := s.preferences.GetOrDefault(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	pending, err := s.assignments.GetPendingByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	habits, err := s.habits.GetActiveByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	completions, err := s.habits.GetCompletionsByUserID(userID, day.AddDate(0, 0, -completionHistoryDays))
	if err != nil {
		return nil, fmt.Errorf("failed to load habit completions: %w", err)
	}

	opt := s.allocator.Allocate(day, planner.PreferencesFrom(prefs),
		plannerAssignments(pending, prefs), plannerHabits(habits, completions))

	return &opt, nil
}

// GetEventsForDate возвращает события календаря пользователя на дату
func (s *ScheduleService) GetEventsForDate(userID int64, day time.Time) ([]model.CalendarEvent, error) {
	return s.events.GetByUserIDAndDate(userID, day)
}

// CleanupGeneratedBefore удаляет сгенерированные события старше указанной даты
func (s *ScheduleService) CleanupGeneratedBefore(cutoff time.Time) (int64, error) {
	return s.events.DeleteGeneratedBefore(cutoff)
}

// plannerAssignments преобразует модели заданий во входные данные аллокатора
func plannerAssignments(assignments []model.Assignment, prefs *model.SchedulePreferences) []planner.Assignment {
	out := make([]planner.Assignment, 0, len(assignments))
	for _, a := range assignments {
		difficulty := 0
		if override, ok := prefs.SubjectOverrides[a.Subject]; ok {
			difficulty = override.Difficulty
		}
		out = append(out, planner.Assignment{
			ID:         a.AssignmentID,
			Title:      a.Title,
			Subject:    a.Subject,
			DueAt:      a.DueAt,
			Priority:   a.Priority,
			Difficulty: difficulty,
			Completed:  a.Completed,
		})
	}
	return out
}

// plannerHabits преобразует модели привычек во входные данные аллокатора
func plannerHabits(habits []model.Habit, completions []model.HabitCompletion) []planner.Habit {
	byHabit := make(map[int64][]time.Time, len(habits))
	for _, c := range completions {
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c.CompletedAt)
	}

	out := make([]planner.Habit, 0, len(habits))
	for _, h := range habits {
		out = append(out, planner.Habit{
			ID:          h.HabitID,
			Title:       h.Title,
			Completions: byHabit[h.HabitID],
		})
	}
	return out
}

// eventsFromSessions преобразует сессии расписания в события календаря
func eventsFromSessions(userID int64, planDate time.Time, sessions []planner.Session) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(sessions))
	for _, s := range sessions {
		events = append(events, model.CalendarEvent{
			UserID:       userID,
			SessionID:    s.ID,
			Title:        s.Title,
			Subject:      s.Subject,
			StartsAt:     s.StartsAt,
			EndsAt:       s.EndsAt,
			Kind:         s.Kind,
			Priority:     s.Priority,
			AssignmentID: s.AssignmentID,
			HabitID:      s.HabitID,
			PlanDate:     planDate,
			Generated:    true,
		})
	}
	return events
}
