// Package timetable holds the pure timetable domain: the schedule-string
// parser, the fixed period clock table, and the derived week grid. Nothing
// in this package touches storage or the network.
package timetable

import "time"

// Domain day numbering inherited from the university system: 2 = Monday ..
// 7 = Saturday. Sunday carries no classes and has no domain day number.
const (
	DayMin = 2
	DayMax = 7

	PeriodMin = 1
	PeriodMax = 10
)

var dayNames = map[int]string{
	2: "Thứ 2",
	3: "Thứ 3",
	4: "Thứ 4",
	5: "Thứ 5",
	6: "Thứ 6",
	7: "Thứ 7",
}

// Periods are 50-minute blocks starting on the hour: 1..5 from 07:00 to
// 11:50, then a lunch gap, 6..10 from 12:30 to 17:20.
var periodStarts = map[int]string{
	1:  "07:00",
	2:  "08:00",
	3:  "09:00",
	4:  "10:00",
	5:  "11:00",
	6:  "12:30",
	7:  "13:30",
	8:  "14:30",
	9:  "15:30",
	10: "16:30",
}

var periodEnds = map[int]string{
	1:  "07:50",
	2:  "08:50",
	3:  "09:50",
	4:  "10:50",
	5:  "11:50",
	6:  "13:20",
	7:  "14:20",
	8:  "15:20",
	9:  "16:20",
	10: "17:20",
}

// PeriodTime returns the wall-clock start and end of a period. Unknown
// periods return empty strings rather than an error.
func PeriodTime(period int) (start, end string) {
	return periodStarts[period], periodEnds[period]
}

// ClassEndTime returns the effective end of a class whose last period is p:
// the start of the next period, reflecting back-to-back scheduling, or the
// period's own end when there is no next period.
func ClassEndTime(p int) string {
	if next, ok := periodStarts[p+1]; ok {
		return next
	}
	return periodEnds[p]
}

// DayName returns the display name for a domain day, or "" when out of range.
func DayName(day int) string {
	return dayNames[day]
}

// DayFromWeekday maps a calendar weekday onto the 2..7 domain numbering.
// Sunday is outside the class domain and reports ok=false, so date queries
// on a Sunday match no courses.
func DayFromWeekday(wd time.Weekday) (day int, ok bool) {
	if wd == time.Sunday {
		return 0, false
	}
	return int(wd) + 1, true
}

// DayFromDate is DayFromWeekday applied to a calendar date.
func DayFromDate(t time.Time) (day int, ok bool) {
	return DayFromWeekday(t.Weekday())
}
