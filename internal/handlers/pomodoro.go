package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyflow-backend/internal/middleware"
	"studyflow-backend/internal/models"
	"studyflow-backend/internal/repository"
)

var validPhases = map[string]bool{
	"work":        true,
	"short-break": true,
	"long-break":  true,
}

type PomodoroHandler struct {
	pomodoroRepo *repository.PomodoroRepo
	redis        *redis.Client
}

func NewPomodoroHandler(pomodoroRepo *repository.PomodoroRepo, redisClient *redis.Client) *PomodoroHandler {
	return &PomodoroHandler{pomodoroRepo: pomodoroRepo, redis: redisClient}
}

// Start opens a new timer session, closing any session still running for
// this user, and mirrors the event to the user's other devices.
func (h *PomodoroHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phase        string  `json:"phase"`
		ActivityID   *string `json:"activity_id"`
		ScheduleDate *string `json:"schedule_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if !validPhases[req.Phase] {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Phase must be work, short-break or long-break", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	session := &models.PomodoroSession{
		UserID:       userID,
		Phase:        req.Phase,
		ActivityID:   req.ActivityID,
		ScheduleDate: req.ScheduleDate,
	}

	if err := h.pomodoroRepo.Start(r.Context(), session); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to start session", r))
		return
	}

	h.publishEvent(r, userID, models.PomodoroEvent{
		SessionID: session.ID,
		Phase:     session.Phase,
		Action:    "started",
		StartedAt: session.StartedAt,
	})

	writeJSON(w, http.StatusCreated, session)
}

// Heartbeat keeps a running session alive so abandoned timers can be
// cut off at the duration cap instead of growing forever.
func (h *PomodoroHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.pomodoroRepo.Heartbeat(r.Context(), sessionID, userID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No running session with this ID", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (h *PomodoroHandler) Stop(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.pomodoroRepo.Stop(r.Context(), sessionID, userID); err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No running session with this ID", r))
		return
	}

	h.publishEvent(r, userID, models.PomodoroEvent{
		SessionID: sessionID,
		Action:    "stopped",
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

func (h *PomodoroHandler) publishEvent(r *http.Request, userID uuid.UUID, event models.PomodoroEvent) {
	msg := models.WSMessage{Type: "pomodoro_event", Payload: event}
	data, _ := json.Marshal(msg)
	h.redis.Publish(r.Context(), fmt.Sprintf("user_updates:%s", userID.String()), string(data))
}
