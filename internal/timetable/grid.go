package timetable

import "studyflow-backend/internal/models"

// WeekGrid is the period×day projection of a course list. It is derived on
// demand from the courses and never persisted, so it cannot drift out of
// sync with them.
type WeekGrid struct {
	// Indexed by [period][day]; slots outside 1..10 × 2..7 stay unused.
	cells [PeriodMax + 1][DayMax + 1][]models.Course
}

// ProjectWeekGrid places every course into each (period, day) cell named by
// its schedule entries. Courses without entries are skipped, as are
// placements with out-of-range day or period values; a bad entry never
// aborts the whole projection. The input is not mutated, and cell ordering
// follows the order of the course list.
func ProjectWeekGrid(courses []models.Course) *WeekGrid {
	g := &WeekGrid{}
	for _, course := range courses {
		for _, entry := range course.ScheduleEntries {
			if entry.Day < DayMin || entry.Day > DayMax {
				continue
			}
			for _, p := range entry.Periods {
				if p < PeriodMin || p > PeriodMax {
					continue
				}
				g.cells[p][entry.Day] = append(g.cells[p][entry.Day], course)
			}
		}
	}
	return g
}

// Cell returns the courses meeting at (period, day), or nil when the cell is
// empty or out of range.
func (g *WeekGrid) Cell(period, day int) []models.Course {
	if period < PeriodMin || period > PeriodMax || day < DayMin || day > DayMax {
		return nil
	}
	return g.cells[period][day]
}

// CoursesOn returns the distinct courses meeting on a domain day, ordered by
// their first placement in the grid.
func (g *WeekGrid) CoursesOn(day int) []models.Course {
	if day < DayMin || day > DayMax {
		return nil
	}

	seen := make(map[string]bool)
	var courses []models.Course
	for p := PeriodMin; p <= PeriodMax; p++ {
		for _, c := range g.cells[p][day] {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			courses = append(courses, c)
		}
	}
	return courses
}
