package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studyflow-backend/internal/models"
	"studyflow-backend/internal/services"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"date": "bad"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"structural", &services.StructuralError{Message: "No valid course schedule data found"}, http.StatusBadRequest, "STRUCTURAL_ERROR"},
		{"conflict", &services.ConflictError{Message: "taken"}, http.StatusConflict, "CONFLICT"},
		{"not found", &services.NotFoundError{Message: "missing"}, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", &services.UnauthorizedError{Message: "nope"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"suggestions disabled", &services.SuggestionsDisabledError{}, http.StatusServiceUnavailable, "SUGGESTIONS_DISABLED"},
		{"unknown", http.ErrBodyNotAllowed, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			handleServiceError(rec, req, tc.err)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Status = %d, expected %d", rec.Code, tc.expectedStatus)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error body: %v", err)
			}
			if resp.Error.Code != tc.expectedCode {
				t.Errorf("Code = %s, expected %s", resp.Error.Code, tc.expectedCode)
			}
		})
	}
}

func TestGetSlotsRequiresDate(t *testing.T) {
	h := NewPlannerHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/planner/slots", nil)
	h.GetSlots(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, expected 400 without a date", rec.Code)
	}
}

func TestComposeDayRejectsBadBody(t *testing.T) {
	h := NewPlannerHandler(nil, nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/planner/days", strings.NewReader("{not json"))
	h.ComposeDay(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, expected 400 for malformed body", rec.Code)
	}
}

func TestPomodoroStartRejectsUnknownPhase(t *testing.T) {
	h := NewPomodoroHandler(nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pomodoro/sessions",
		strings.NewReader(`{"phase": "nap"}`))
	h.Start(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, expected 400 for unknown phase", rec.Code)
	}
}

func TestCurrentStreak(t *testing.T) {
	now, _ := time.Parse("2006-01-02", "2026-08-30")

	tests := []struct {
		name     string
		dates    []string
		expected int
	}{
		{"empty", nil, 0},
		{"today only", []string{"2026-08-30"}, 1},
		{"run ending yesterday", []string{"2026-08-29", "2026-08-28", "2026-08-27"}, 3},
		{"gap breaks run", []string{"2026-08-30", "2026-08-29", "2026-08-26"}, 2},
		{"stale run", []string{"2026-08-20", "2026-08-19"}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := currentStreak(tc.dates, now); got != tc.expected {
				t.Errorf("currentStreak(%v) = %d, expected %d", tc.dates, got, tc.expected)
			}
		})
	}
}
