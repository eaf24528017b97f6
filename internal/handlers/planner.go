package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studyflow-backend/internal/middleware"
	"studyflow-backend/internal/models"
	"studyflow-backend/internal/services"
)

type PlannerHandler struct {
	plannerService  *services.PlannerService
	scheduleService *services.ScheduleService
	suggestions     *services.SuggestionsService
}

func NewPlannerHandler(plannerService *services.PlannerService, scheduleService *services.ScheduleService, suggestions *services.SuggestionsService) *PlannerHandler {
	return &PlannerHandler{
		plannerService:  plannerService,
		scheduleService: scheduleService,
		suggestions:     suggestions,
	}
}

// GetSlots previews the free morning/afternoon windows for a date before
// the user commits any activities.
func (h *PlannerHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Query parameter 'date' is required", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	slots, err := h.plannerService.SlotsForDate(r.Context(), userID, date)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, slots)
}

// ComposeDay builds and stores the full daily schedule. Capacity overflows
// come back as warnings alongside the saved plan, not as errors.
func (h *PlannerHandler) ComposeDay(w http.ResponseWriter, r *http.Request) {
	var req services.ComposeDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	schedule, warnings, err := h.plannerService.ComposeDay(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"schedule": schedule,
		"warnings": warnings,
	})
}

func (h *PlannerHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	userID := middleware.GetUserID(r.Context())

	schedule, err := h.plannerService.GetDay(r.Context(), userID, date)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

func (h *PlannerHandler) UpdateActivityStatus(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	activityID := chi.URLParam(r, "activityID")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	schedule, err := h.plannerService.UpdateActivityStatus(r.Context(), userID, date, activityID, req.Status)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// Suggest asks Gemini for draft activities that fit the date's free windows.
func (h *PlannerHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Query parameter 'date' is required", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	slots, err := h.plannerService.SlotsForDate(r.Context(), userID, date)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	var courses []models.Course
	if imp, err := h.scheduleService.Latest(r.Context(), userID); err == nil {
		courses = imp.Courses
	}

	activities, err := h.suggestions.SuggestActivities(r.Context(), courses, slots)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":        date,
		"suggestions": activities,
	})
}
