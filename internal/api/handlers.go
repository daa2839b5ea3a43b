// Package api содержит HTTP API для веб-клиента.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"focusboard/internal/model"

	"go.uber.org/zap"
)

// pathID извлекает числовой идентификатор из пути запроса
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id in path")
	}
	return id, nil
}

// getPreferences возвращает настройки планирования пользователя
func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := s.services.Preference.GetOrDefault(userID)
	if err != nil {
		s.logger.Error("Failed to load preferences", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}

	s.writeJSON(w, http.StatusOK, prefs)
}

// putPreferences сохраняет настройки планирования пользователя
func (s *Server) putPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var prefs model.SchedulePreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prefs.UserID = userID

	if err := s.services.Preference.Save(&prefs); err != nil {
		var verr model.ValidationErrors
		if errors.As(err, &verr) {
			s.writeError(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		s.logger.Error("Failed to save preferences", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}

	s.writeJSON(w, http.StatusOK, prefs)
}

// listAssignments возвращает задания пользователя
func (s *Server) listAssignments(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var assignments []model.Assignment
	if r.URL.Query().Get("pending") == "true" {
		assignments, err = s.services.Assignment.GetPendingByUserID(userID)
	} else {
		assignments, err = s.services.Assignment.GetByUserID(userID)
	}
	if err != nil {
		s.logger.Error("Failed to list assignments", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list assignments")
		return
	}

	s.writeJSON(w, http.StatusOK, assignments)
}

// createAssignment создает задание пользователя
func (s *Server) createAssignment(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var assignment model.Assignment
	if err := json.NewDecoder(r.Body).Decode(&assignment); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	assignment.UserID = userID

	if err := s.services.Assignment.Create(&assignment); err != nil {
		var verr model.ValidationErrors
		if errors.As(err, &verr) {
			s.writeError(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		s.logger.Error("Failed to create assignment", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create assignment")
		return
	}

	s.writeJSON(w, http.StatusCreated, assignment)
}

// completeAssignment отмечает задание выполненным
func (s *Server) completeAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.services.Assignment.MarkCompleted(id); err != nil {
		s.logger.Error("Failed to complete assignment", zap.Int64("assignment_id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to complete assignment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteAssignment удаляет задание
func (s *Server) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.services.Assignment.Delete(id); err != nil {
		s.logger.Error("Failed to delete assignment", zap.Int64("assignment_id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete assignment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listHabits возвращает привычки пользователя со статистикой
func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := s.services.Habit.GetStats(userID, time.Now().In(s.location))
	if err != nil {
		s.logger.Error("Failed to list habits", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list habits")
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

// createHabit создает привычку пользователя
func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var habit model.Habit
	if err := json.NewDecoder(r.Body).Decode(&habit); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	habit.UserID = userID

	if err := s.services.Habit.Create(&habit); err != nil {
		var verr model.ValidationErrors
		if errors.As(err, &verr) {
			s.writeError(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		s.logger.Error("Failed to create habit", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to create habit")
		return
	}

	s.writeJSON(w, http.StatusCreated, habit)
}

// completeHabit отмечает привычку выполненной за сегодня
func (s *Server) completeHabit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.services.Habit.CompleteToday(id, time.Now().In(s.location)); err != nil {
		s.logger.Error("Failed to complete habit", zap.Int64("habit_id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to complete habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// generateSchedule строит и сохраняет расписание пользователя на день
func (s *Server) generateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	day := time.Now().In(s.location)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, s.location)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	opt, err := s.services.Schedule.BuildDailyPlan(userID, day)
	if err != nil {
		s.logger.Error("Failed to build schedule", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to build schedule")
		return
	}

	s.writeJSON(w, http.StatusOK, opt)
}

// todaySchedule возвращает сохраненное расписание на сегодня
func (s *Server) todaySchedule(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	day := time.Now().In(s.location)
	events, err := s.services.Schedule.GetEventsForDate(userID, day)
	if err != nil {
		s.logger.Error("Failed to load schedule", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}

	s.writeJSON(w, http.StatusOK, events)
}

// importRequest представляет запрос на импорт расписания
type importRequest struct {
	URL string `json:"url"`
}

// importTimetable импортирует задания из HTML-страницы расписания
func (s *Server) importTimetable(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	assignments, err := s.importer.ImportFromURL(req.URL, userID)
	if err != nil {
		s.logger.Error("Failed to import timetable",
			zap.Int64("user_id", userID),
			zap.String("url", req.URL),
			zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "failed to import timetable: "+err.Error())
		return
	}

	if err := s.services.Assignment.CreateBatch(assignments); err != nil {
		s.logger.Error("Failed to store imported assignments", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to store imported assignments")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported":    len(assignments),
		"assignments": assignments,
	})
}
