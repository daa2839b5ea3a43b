// Package api содержит HTTP API для веб-клиента.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"focusboard/internal/importer"
	"focusboard/internal/service"

	"go.uber.org/zap"
)

// Server представляет HTTP API сервер
type Server struct {
	server   *http.Server
	services *service.Services
	importer *importer.Importer
	location *time.Location
	logger   *zap.Logger
}

// NewServer создает новый API сервер
func NewServer(port string, services *service.Services, imp *importer.Importer, location *time.Location, logger *zap.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		services: services,
		importer: imp,
		location: location,
		logger:   logger,
	}

	// Регистрируем маршруты
	mux.HandleFunc("GET /api/v1/users/{id}/preferences", s.getPreferences)
	mux.HandleFunc("PUT /api/v1/users/{id}/preferences", s.putPreferences)
	mux.HandleFunc("GET /api/v1/users/{id}/assignments", s.listAssignments)
	mux.HandleFunc("POST /api/v1/users/{id}/assignments", s.createAssignment)
	mux.HandleFunc("POST /api/v1/assignments/{id}/complete", s.completeAssignment)
	mux.HandleFunc("DELETE /api/v1/assignments/{id}", s.deleteAssignment)
	mux.HandleFunc("GET /api/v1/users/{id}/habits", s.listHabits)
	mux.HandleFunc("POST /api/v1/users/{id}/habits", s.createHabit)
	mux.HandleFunc("POST /api/v1/habits/{id}/complete", s.completeHabit)
	mux.HandleFunc("POST /api/v1/users/{id}/schedule/generate", s.generateSchedule)
	mux.HandleFunc("GET /api/v1/users/{id}/schedule/today", s.todaySchedule)
	mux.HandleFunc("POST /api/v1/users/{id}/import", s.importTimetable)

	return s
}

// Start запускает API сервер
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Stop останавливает API сервер
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("Stopping API server")
	return s.server.Shutdown(ctx)
}

// errorResponse представляет тело ответа с ошибкой
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON пишет JSON-ответ
func (s *Server) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError пишет JSON-ответ с ошибкой
func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, errorResponse{Error: message})
}
