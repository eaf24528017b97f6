package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyflow-backend/internal/middleware"
	"studyflow-backend/internal/models"
	"studyflow-backend/internal/repository"
	"studyflow-backend/internal/services"
)

const maxUploadBytes = 10 * 1024 * 1024 // 10MB is generous for a timetable workbook

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	jobRepo         *repository.JobRepo
	redis           *redis.Client
	storagePath     string
}

func NewScheduleHandler(scheduleService *services.ScheduleService, jobRepo *repository.JobRepo, redisClient *redis.Client, storagePath string) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		jobRepo:         jobRepo,
		redis:           redisClient,
		storagePath:     storagePath,
	}
}

// Upload accepts an .xlsx timetable export and queues it for asynchronous
// import. The response carries the job id; progress and the final result
// arrive over the user's WebSocket channel.
func (h *ScheduleHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File size exceeds 10MB limit", r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResp("UNSUPPORTED_FORMAT", "Only .xlsx workbooks are supported", r))
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	userID := middleware.GetUserID(r.Context())
	fileID := uuid.New().String()
	dir := filepath.Join(h.storagePath, "users", userID.String(), "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store uploaded file", r))
		return
	}

	dst := filepath.Join(dir, fileID+".xlsx")
	out, err := os.Create(dst)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store uploaded file", r))
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dst)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store uploaded file", r))
		return
	}
	out.Close()

	config, _ := json.Marshal(models.ImportJobConfig{FilePath: dst, ImportName: name})
	job := &models.Job{
		UserID:     userID,
		Type:       "schedule-import",
		ConfigJSON: config,
	}

	if err := h.jobRepo.Create(r.Context(), job); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create import job", r))
		return
	}

	jobBytes, _ := json.Marshal(job)
	if err := h.redis.LPush(r.Context(), "queue:schedule-import", string(jobBytes)).Err(); err != nil {
		log.Printf("Failed to enqueue import job %s: %v", job.ID, err)
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":   job.ID,
		"filename": header.Filename,
		"status":   job.Status,
	})
}

// CreateFromRows imports a schedule synchronously from already-extracted
// rows, the path used by clients that parse the workbook themselves.
func (h *ScheduleHandler) CreateFromRows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string                `json:"name"`
		Rows []models.RawCourseRow `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	imp, err := h.scheduleService.CreateImport(r.Context(), userID, req.Name, req.Rows)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, imp)
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	imports, err := h.scheduleService.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if imports == nil {
		imports = []models.ScheduleImport{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"imports": imports})
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid import ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	imp, err := h.scheduleService.Get(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, imp)
}

// GetGrid returns the week grid projection of one import.
func (h *ScheduleHandler) GetGrid(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid import ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	grid, err := h.scheduleService.Grid(r.Context(), userID, id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, grid)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid import ID", r))
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.scheduleService.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Schedule import deleted"})
}

// GetJob reports the status of an import job for polling clients.
func (h *ScheduleHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid job ID", r))
		return
	}

	job, err := h.jobRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Job not found", r))
		return
	}

	if job.UserID != middleware.GetUserID(r.Context()) {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "Access denied", r))
		return
	}

	writeJSON(w, http.StatusOK, job)
}
