package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"studyflow-backend/internal/models"
	"studyflow-backend/internal/repository"
	"studyflow-backend/internal/timetable"
)

// Colors assigned to imported courses in order, for timetable rendering.
var coursePalette = []string{
	"#6366f1", "#f59e0b", "#10b981", "#ef4444", "#8b5cf6",
	"#06b6d4", "#ec4899", "#84cc16", "#f97316", "#14b8a6",
}

var creditsPattern = regexp.MustCompile(`\d+`)

type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepo
	spreadsheet  *SpreadsheetService
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepo, spreadsheet *SpreadsheetService) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		spreadsheet:  spreadsheet,
	}
}

// BuildCourses converts raw spreadsheet rows into courses, parsing the
// schedule and week strings. Rows without a name or without any parseable
// schedule entry are logged and skipped rather than failing the import.
func (s *ScheduleService) BuildCourses(rows []models.RawCourseRow) []models.Course {
	var courses []models.Course
	for i, row := range rows {
		if row.Name == "" {
			log.Printf("Skipping row %d: missing course name", i+1)
			continue
		}

		entries := timetable.ParseScheduleString(row.ScheduleText)
		if len(entries) == 0 {
			log.Printf("Skipping course %q: no parseable schedule in %q", row.Name, row.ScheduleText)
			continue
		}

		course := models.Course{
			ID:              courseID(row),
			Name:            row.Name,
			Code:            row.Code,
			Credits:         parseCredits(row.CreditsText),
			Instructor:      row.Instructor,
			ScheduleEntries: entries,
			WeekRanges:      timetable.ParseWeekRanges(row.WeekText),
			Color:           coursePalette[len(courses)%len(coursePalette)],
		}
		courses = append(courses, course)
	}
	return courses
}

// CreateImport validates, builds and persists a schedule import from raw
// rows. An input yielding zero usable courses is a structural failure.
func (s *ScheduleService) CreateImport(ctx context.Context, userID uuid.UUID, name string, rows []models.RawCourseRow) (*models.ScheduleImport, error) {
	if name == "" {
		return nil, &ValidationError{Fields: map[string]string{"name": "Import name is required"}}
	}

	courses := s.BuildCourses(rows)
	if len(courses) == 0 {
		return nil, &StructuralError{Message: "No valid course schedule data found"}
	}

	imp := &models.ScheduleImport{
		UserID:  userID,
		Name:    name,
		Type:    "class",
		Courses: courses,
	}
	if err := s.scheduleRepo.Create(ctx, imp); err != nil {
		return nil, err
	}
	return imp, nil
}

// ImportFromFile is the worker entry point: read the uploaded workbook and
// persist the resulting import.
func (s *ScheduleService) ImportFromFile(ctx context.Context, userID uuid.UUID, name, path string) (*models.ScheduleImport, error) {
	rows, err := s.spreadsheet.ReadCourseRows(path)
	if err != nil {
		return nil, err
	}
	return s.CreateImport(ctx, userID, name, rows)
}

func (s *ScheduleService) List(ctx context.Context, userID uuid.UUID) ([]models.ScheduleImport, error) {
	return s.scheduleRepo.List(ctx, userID)
}

func (s *ScheduleService) Get(ctx context.Context, userID, id uuid.UUID) (*models.ScheduleImport, error) {
	imp, err := s.scheduleRepo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Schedule import not found"}
		}
		return nil, err
	}
	return imp, nil
}

// Latest returns the newest class-type import, the canonical weekly
// timetable for planning.
func (s *ScheduleService) Latest(ctx context.Context, userID uuid.UUID) (*models.ScheduleImport, error) {
	imp, err := s.scheduleRepo.Latest(ctx, userID, "class")
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "No class schedule imported yet"}
		}
		return nil, err
	}
	return imp, nil
}

func (s *ScheduleService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.scheduleRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &NotFoundError{Message: "Schedule import not found"}
	}
	return nil
}

// Week grid view types. The grid is always projected on demand from the
// stored course list, never persisted.

type GridCourseView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Room  string `json:"room"`
	Color string `json:"color"`
}

type GridCellView struct {
	Day       int              `json:"day"`
	Period    int              `json:"period"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Courses   []GridCourseView `json:"courses"`
}

type WeekGridView struct {
	ImportID string         `json:"import_id"`
	Cells    []GridCellView `json:"cells"`
}

// Grid projects the import's courses onto the week grid and returns the
// occupied cells in day-then-period order.
func (s *ScheduleService) Grid(ctx context.Context, userID, id uuid.UUID) (*WeekGridView, error) {
	imp, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	grid := timetable.ProjectWeekGrid(imp.Courses)
	view := &WeekGridView{ImportID: imp.ID.String(), Cells: []GridCellView{}}

	for day := timetable.DayMin; day <= timetable.DayMax; day++ {
		for period := timetable.PeriodMin; period <= timetable.PeriodMax; period++ {
			courses := grid.Cell(period, day)
			if len(courses) == 0 {
				continue
			}
			start, end := timetable.PeriodTime(period)
			cell := GridCellView{Day: day, Period: period, StartTime: start, EndTime: end}
			for _, c := range courses {
				room := ""
				for _, e := range c.ScheduleEntries {
					if e.Day == day && e.Room != "" {
						room = e.Room
						break
					}
				}
				cell.Courses = append(cell.Courses, GridCourseView{
					ID: c.ID, Name: c.Name, Room: room, Color: c.Color,
				})
			}
			view.Cells = append(view.Cells, cell)
		}
	}
	return view, nil
}

func courseID(row models.RawCourseRow) string {
	if row.Code != "" {
		return row.Code
	}
	return uuid.NewString()
}

func parseCredits(text string) int {
	m := creditsPattern.FindString(text)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
