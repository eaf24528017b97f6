package services

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"studyflow-backend/internal/models"
)

// SpreadsheetService reads exported timetable workbooks (.xlsx) into raw
// course rows. It only extracts text; all interpretation of schedule and
// week strings happens downstream.
type SpreadsheetService struct{}

func NewSpreadsheetService() *SpreadsheetService {
	return &SpreadsheetService{}
}

// Header aliases as they appear in university portal exports. Matching is
// case-insensitive and substring-based because portals pad headers with
// line breaks and numbering.
var headerAliases = map[string][]string{
	"name":       {"tên học phần", "tên môn", "course name"},
	"code":       {"mã học phần", "mã môn", "mã hp", "course code"},
	"credits":    {"số tín chỉ", "tín chỉ", "credits"},
	"instructor": {"giảng viên", "giáo viên", "instructor", "lecturer"},
	"schedule":   {"thời khóa biểu", "lịch học", "thứ", "schedule"},
	"weeks":      {"tuần học", "tuần", "weeks"},
}

// ReadCourseRows opens the workbook at path and returns one raw row per
// course line found under the header row of the first sheet.
func (s *SpreadsheetService) ReadCourseRows(path string) ([]models.RawCourseRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &StructuralError{Message: "Workbook contains no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	headerIdx, columns := locateHeader(rows)
	if headerIdx < 0 {
		return nil, &StructuralError{Message: "Could not locate the course table header row"}
	}

	var out []models.RawCourseRow
	for _, row := range rows[headerIdx+1:] {
		raw := models.RawCourseRow{
			Name:         cellAt(row, columns["name"]),
			Code:         cellAt(row, columns["code"]),
			CreditsText:  cellAt(row, columns["credits"]),
			Instructor:   cellAt(row, columns["instructor"]),
			ScheduleText: cellAt(row, columns["schedule"]),
			WeekText:     cellAt(row, columns["weeks"]),
		}
		if raw.Name == "" && raw.ScheduleText == "" {
			continue
		}
		out = append(out, raw)
	}

	return out, nil
}

// locateHeader scans the leading rows for one that names both a course
// column and a schedule column, and maps logical fields to column indexes.
func locateHeader(rows [][]string) (int, map[string]int) {
	limit := len(rows)
	if limit > 15 {
		limit = 15
	}

	for i := 0; i < limit; i++ {
		columns := map[string]int{}
		for field := range headerAliases {
			columns[field] = -1
		}
		for col, cell := range rows[i] {
			normalized := strings.ToLower(strings.Join(strings.Fields(cell), " "))
			if normalized == "" {
				continue
			}
			for field, aliases := range headerAliases {
				if columns[field] != -1 {
					continue
				}
				for _, alias := range aliases {
					if strings.Contains(normalized, alias) {
						columns[field] = col
						break
					}
				}
			}
		}
		if columns["name"] != -1 && columns["schedule"] != -1 {
			return i, columns
		}
	}
	return -1, nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
