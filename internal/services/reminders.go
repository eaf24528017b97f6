package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/robfig/cron/v3"

	"studyflow-backend/internal/models"
	"studyflow-backend/internal/repository"
	"studyflow-backend/internal/timetable"
)

// ReminderService emails opted-in students every evening if they have not
// composed a plan for the next day yet.
type ReminderService struct {
	userRepo     *repository.UserRepo
	dailyRepo    *repository.DailyScheduleRepo
	scheduleRepo *repository.ScheduleRepo
	email        *EmailService
	cron         *cron.Cron
}

func NewReminderService(
	userRepo *repository.UserRepo,
	dailyRepo *repository.DailyScheduleRepo,
	scheduleRepo *repository.ScheduleRepo,
	email *EmailService,
) *ReminderService {
	return &ReminderService{
		userRepo:     userRepo,
		dailyRepo:    dailyRepo,
		scheduleRepo: scheduleRepo,
		email:        email,
		cron:         cron.New(),
	}
}

// Start schedules the nightly run at 21:00 server time.
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("0 21 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce sends reminders to every recipient without a plan for tomorrow.
// Failures are logged per user so one bad address never blocks the rest.
func (s *ReminderService) RunOnce(ctx context.Context) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	users, err := s.userRepo.ListReminderRecipients(ctx)
	if err != nil {
		log.Printf("Reminder run failed to list recipients: %v", err)
		return
	}

	sent := 0
	for _, user := range users {
		_, err := s.dailyRepo.GetByDate(ctx, user.ID, tomorrow)
		if err == nil {
			continue // already planned
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Reminder check failed for %s: %v", user.Email, err)
			continue
		}

		classes := s.classesOn(ctx, user, tomorrow)
		if err := s.email.SendPlanReminder(user.Email, user.FullName, tomorrow, classes); err != nil {
			log.Printf("Reminder email failed for %s: %v", user.Email, err)
			continue
		}
		sent++
	}
	log.Printf("Reminder run complete: %d/%d emails sent for %s", sent, len(users), tomorrow)
}

func (s *ReminderService) classesOn(ctx context.Context, user models.User, date string) []models.Course {
	imp, err := s.scheduleRepo.Latest(ctx, user.ID, "class")
	if err != nil {
		return nil
	}

	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	day, ok := timetable.DayFromDate(t)
	if !ok {
		return nil
	}

	grid := timetable.ProjectWeekGrid(imp.Courses)
	return grid.CoursesOn(day)
}
