package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studyflow-backend/internal/models"
	"studyflow-backend/internal/planner"
	"studyflow-backend/internal/repository"
	"studyflow-backend/internal/timetable"
)

type PlannerService struct {
	dailyRepo    *repository.DailyScheduleRepo
	scheduleRepo *repository.ScheduleRepo
}

func NewPlannerService(dailyRepo *repository.DailyScheduleRepo, scheduleRepo *repository.ScheduleRepo) *PlannerService {
	return &PlannerService{
		dailyRepo:    dailyRepo,
		scheduleRepo: scheduleRepo,
	}
}

type ComposeDayRequest struct {
	Date       string            `json:"date"`
	Activities []models.Activity `json:"activities"`
	Notes      string            `json:"notes"`
}

// DaySlotsView is the preview of plannable windows for a date, including
// the classes that carved them out.
type DaySlotsView struct {
	Date          string                    `json:"date"`
	DayOfWeek     int                       `json:"day_of_week"`
	HasClassToday bool                      `json:"has_class_today"`
	Morning       planner.TimeSlot          `json:"morning"`
	Afternoon     planner.TimeSlot          `json:"afternoon"`
	Classes       []planner.ClassOccurrence `json:"classes"`
}

// SlotsForDate computes the free morning/afternoon windows for a date from
// the user's latest imported class schedule. A user with no imports simply
// gets the full free-day windows.
func (s *PlannerService) SlotsForDate(ctx context.Context, userID uuid.UUID, date string) (*DaySlotsView, error) {
	day, err := s.resolveDay(date)
	if err != nil {
		return nil, err
	}

	occurrences, err := s.occurrencesFor(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	slots := planner.ComputeSlots(occurrences)
	return &DaySlotsView{
		Date:          date,
		DayOfWeek:     day,
		HasClassToday: slots.HasClassToday,
		Morning:       slots.Morning,
		Afternoon:     slots.Afternoon,
		Classes:       occurrences,
	}, nil
}

// ComposeDay sanitizes and validates the requested activities, assembles
// the daily schedule around that day's classes and persists it, replacing
// any previous plan for the same date.
func (s *PlannerService) ComposeDay(ctx context.Context, userID uuid.UUID, req ComposeDayRequest) (*models.DailySchedule, []string, error) {
	if r := planner.ValidateDate(req.Date); !r.IsValid {
		return nil, nil, &ValidationError{Fields: map[string]string{"date": strings.Join(r.Errors, "; ")}}
	}

	notes := planner.SanitizeString(req.Notes)
	if r := planner.ValidateNotes(notes); !r.IsValid {
		return nil, nil, &ValidationError{Fields: map[string]string{"notes": strings.Join(r.Errors, "; ")}}
	}

	activities := make([]models.Activity, len(req.Activities))
	for i, a := range req.Activities {
		activities[i] = planner.SanitizeActivity(a)
	}
	if r := planner.ValidateActivities(activities); !r.IsValid {
		return nil, nil, &ValidationError{Fields: map[string]string{"activities": strings.Join(r.Errors, "; ")}}
	}

	day, err := s.resolveDay(req.Date)
	if err != nil {
		return nil, nil, err
	}
	occurrences, err := s.occurrencesFor(ctx, userID, day)
	if err != nil {
		return nil, nil, err
	}

	schedule, warnings, err := planner.AssembleDailySchedule(planner.AssembleInput{
		Date:        req.Date,
		DayOfWeek:   day,
		Occurrences: occurrences,
		Activities:  activities,
		Notes:       notes,
	})
	if err != nil {
		if errors.Is(err, planner.ErrNoUsableWindow) {
			return nil, nil, &ConflictError{Message: "No usable time window remains on this date"}
		}
		return nil, nil, err
	}

	schedule.UserID = userID
	if err := s.dailyRepo.Save(ctx, schedule); err != nil {
		return nil, nil, err
	}
	return schedule, warnings, nil
}

func (s *PlannerService) GetDay(ctx context.Context, userID uuid.UUID, date string) (*models.DailySchedule, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &ValidationError{Fields: map[string]string{"date": "Date must be in YYYY-MM-DD format"}}
	}

	schedule, err := s.dailyRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "No schedule composed for this date"}
		}
		return nil, err
	}
	return schedule, nil
}

var validStatuses = map[string]bool{
	models.StatusPlanned:    true,
	models.StatusInProgress: true,
	models.StatusCompleted:  true,
	models.StatusSkipped:    true,
}

func (s *PlannerService) UpdateActivityStatus(ctx context.Context, userID uuid.UUID, date, activityID, status string) (*models.DailySchedule, error) {
	if !validStatuses[status] {
		return nil, &ValidationError{Fields: map[string]string{"status": "Status must be one of planned, in_progress, completed, skipped"}}
	}

	schedule, err := s.dailyRepo.UpdateActivityStatus(ctx, userID, date, activityID, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Activity not found in this date's schedule"}
		}
		return nil, err
	}
	return schedule, nil
}

// resolveDay maps a calendar date to the timetable day number. Sundays
// fall outside the class grid and plan as free days.
func (s *PlannerService) resolveDay(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, &ValidationError{Fields: map[string]string{"date": "Date must be in YYYY-MM-DD format"}}
	}
	day, ok := timetable.DayFromWeekday(t.Weekday())
	if !ok {
		return 0, nil
	}
	return day, nil
}

func (s *PlannerService) occurrencesFor(ctx context.Context, userID uuid.UUID, day int) ([]planner.ClassOccurrence, error) {
	if day == 0 {
		return nil, nil
	}

	imp, err := s.scheduleRepo.Latest(ctx, userID, "class")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return planner.OccurrencesOn(imp.Courses, day), nil
}
