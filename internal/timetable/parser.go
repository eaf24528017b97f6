package timetable

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"studyflow-backend/internal/models"
)

var (
	// "Thứ 4" with optional spacing; the digit is the domain day number.
	dayPattern = regexp.MustCompile(`(?i)thứ\s*(\d)`)
	// Inclusive period range, e.g. "1-2" or "6 - 7".
	periodRangePattern = regexp.MustCompile(`(\d{1,2})\s*-\s*(\d{1,2})`)
	// Room token: one uppercase letter, digits, optional .digits (E2.403, A141).
	roomPattern = regexp.MustCompile(`[A-Z]\d+(?:\.\d+)?`)

	entrySeparator = regexp.MustCompile(`[;\n]`)
)

// ParseScheduleString turns one spreadsheet cell's schedule text into zero or
// more schedule entries. A cell may carry several meeting times separated by
// ";" or newlines, e.g. "Thứ 4,1-2,E2.403; Thứ 5,6-7,A141".
//
// A candidate contributes an entry only when both a day and a period range
// were extracted; the room is optional. Unparseable candidates are logged and
// skipped, so an empty result means "no usable schedule", never an error.
func ParseScheduleString(cellText string) []models.ScheduleEntry {
	text := strings.TrimSpace(cellText)
	if text == "" {
		return nil
	}

	var entries []models.ScheduleEntry
	for _, candidate := range entrySeparator.Split(text, -1) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}

		entry, ok := parseCandidate(candidate)
		if !ok {
			log.Printf("timetable: skipping unparseable schedule candidate %q", candidate)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseCandidate(candidate string) (models.ScheduleEntry, bool) {
	day, ok := parseDay(candidate)
	if !ok {
		return models.ScheduleEntry{}, false
	}

	periods, ok := parsePeriods(candidate)
	if !ok {
		return models.ScheduleEntry{}, false
	}

	return models.ScheduleEntry{
		Day:     day,
		Periods: periods,
		Room:    roomPattern.FindString(candidate),
	}, true
}

func parseDay(s string) (int, bool) {
	m := dayPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < DayMin || day > DayMax {
		return 0, false
	}
	return day, true
}

// parsePeriods searches for the period range strictly after the first comma
// so the day number itself can never be mistaken for a range bound.
func parsePeriods(s string) ([]int, bool) {
	idx := strings.Index(s, ",")
	if idx < 0 || idx+1 >= len(s) {
		return nil, false
	}

	m := periodRangePattern.FindStringSubmatch(s[idx+1:])
	if m == nil {
		return nil, false
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if start < PeriodMin || end > PeriodMax || start > end {
		return nil, false
	}

	periods := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		periods = append(periods, p)
	}
	return periods, true
}

// ParseWeekRanges parses a teaching-week string such as "22-27;31-40" into
// inclusive ranges. Single numbers become one-week ranges; malformed parts
// are skipped.
func ParseWeekRanges(s string) []models.WeekRange {
	var ranges []models.WeekRange
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		bounds := strings.SplitN(part, "-", 2)
		start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			log.Printf("timetable: skipping malformed week range %q", part)
			continue
		}

		end := start
		if len(bounds) == 2 {
			end, err = strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil || end < start {
				log.Printf("timetable: skipping malformed week range %q", part)
				continue
			}
		}

		ranges = append(ranges, models.WeekRange{Start: start, End: end})
	}
	return ranges
}
