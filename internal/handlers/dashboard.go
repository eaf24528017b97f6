package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"studyflow-backend/internal/middleware"
	"studyflow-backend/internal/repository"
)

type DashboardHandler struct {
	pool         *pgxpool.Pool
	dailyRepo    *repository.DailyScheduleRepo
	pomodoroRepo *repository.PomodoroRepo
}

func NewDashboardHandler(pool *pgxpool.Pool, dailyRepo *repository.DailyScheduleRepo, pomodoroRepo *repository.PomodoroRepo) *DashboardHandler {
	return &DashboardHandler{pool: pool, dailyRepo: dailyRepo, pomodoroRepo: pomodoroRepo}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	var plannedDays, completedActivities, totalActivities, plannedStudyMinutes int
	h.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM daily_schedules WHERE user_id = $1", userID).Scan(&plannedDays)
	h.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(completed_activities), 0),
		       COALESCE(SUM(total_activities), 0),
		       COALESCE(SUM(total_study_time), 0)
		FROM daily_schedules
		WHERE user_id = $1
		  AND date >= TO_CHAR(NOW() - INTERVAL '7 days', 'YYYY-MM-DD')
	`, userID).Scan(&completedActivities, &totalActivities, &plannedStudyMinutes)

	focusSecondsToday, _ := h.pomodoroRepo.FocusSecondsSince(ctx, userID, "1 day")
	focusSecondsWeek, _ := h.pomodoroRepo.FocusSecondsSince(ctx, userID, "7 days")

	streak := 0
	if dates, err := h.dailyRepo.RecentDates(ctx, userID, 60); err == nil {
		streak = currentStreak(dates, time.Now())
	}

	completionRate := 0.0
	if totalActivities > 0 {
		completionRate = float64(completedActivities) / float64(totalActivities)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"planned_days":          plannedDays,
		"completed_activities":  completedActivities,
		"total_activities":      totalActivities,
		"completion_rate":       completionRate,
		"planned_study_minutes": plannedStudyMinutes,
		"focus_minutes_today":   focusSecondsToday / 60,
		"focus_minutes_week":    focusSecondsWeek / 60,
		"streak_days":           streak,
	})
}

// currentStreak counts consecutive days with completed activities ending
// today or yesterday. dates must be sorted newest first.
func currentStreak(dates []string, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	// A streak survives until the end of today, so a run ending yesterday
	// still counts.
	if dates[0] != today && dates[0] != yesterday {
		return 0
	}

	prev, err := time.Parse("2006-01-02", dates[0])
	if err != nil {
		return 0
	}

	streak := 1
	for _, d := range dates[1:] {
		if d != prev.AddDate(0, 0, -1).Format("2006-01-02") {
			break
		}
		streak++
		prev, _ = time.Parse("2006-01-02", d)
	}
	return streak
}
