package planner

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"studyflow-backend/internal/models"
)

const (
	maxTopicLength   = 200
	maxContentLength = 2000
	maxNotesLength   = 1000
	maxDaysAhead     = 365
)

var validActivityTypes = map[string]bool{
	"study":    true,
	"exercise": true,
	"meal":     true,
	"review":   true,
	"reading":  true,
	"personal": true,
	"rest":     true,
}

var validPriorities = map[string]bool{
	models.PriorityHigh:   true,
	models.PriorityMedium: true,
	models.PriorityLow:    true,
}

var validTimeSlots = map[string]bool{
	models.TimeSlotMorning:   true,
	models.TimeSlotAfternoon: true,
	models.TimeSlotAuto:      true,
}

var validStatuses = map[string]bool{
	models.StatusPlanned:    true,
	models.StatusInProgress: true,
	models.StatusCompleted:  true,
	models.StatusSkipped:    true,
}

// ValidationResult aggregates human-readable problems. It is returned, never
// raised; the caller decides whether a failure blocks the operation.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// CapacityResult reports whether a set of activities fits a time slot with
// the fixed inter-activity break applied.
type CapacityResult struct {
	IsValid       bool     `json:"is_valid"`
	CanFit        bool     `json:"can_fit"`
	TotalDuration int      `json:"total_duration"`
	AvailableTime int      `json:"available_time"`
	BreakTime     int      `json:"break_time"`
	RequiredTime  int      `json:"required_time"`
	RemainingTime int      `json:"remaining_time"`
	Overflow      int      `json:"overflow"`
	Errors        []string `json:"errors,omitempty"`
}

func result(errs []string) ValidationResult {
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateActivity checks a single activity against the field rules.
func ValidateActivity(a models.Activity) ValidationResult {
	var errs []string

	if strings.TrimSpace(a.ID) == "" {
		errs = append(errs, "activity id is required")
	}
	if a.Type == "" {
		errs = append(errs, "activity type is required")
	} else if !validActivityTypes[a.Type] {
		errs = append(errs, fmt.Sprintf("unknown activity type %q", a.Type))
	}

	if a.EstimatedDuration < minActivityMinutes || a.EstimatedDuration > maxActivityMinutes {
		errs = append(errs, fmt.Sprintf("duration must be between %d and %d minutes", minActivityMinutes, maxActivityMinutes))
	}

	if a.Priority != "" && !validPriorities[a.Priority] {
		errs = append(errs, fmt.Sprintf("priority must be high, medium or low, got %q", a.Priority))
	}
	if a.TimeSlot != "" && !validTimeSlots[a.TimeSlot] {
		errs = append(errs, fmt.Sprintf("time slot must be morning, afternoon or auto, got %q", a.TimeSlot))
	}
	if a.Status != "" && !validStatuses[a.Status] {
		errs = append(errs, fmt.Sprintf("unknown status %q", a.Status))
	}

	if len(a.Topic) > maxTopicLength {
		errs = append(errs, fmt.Sprintf("topic exceeds %d characters", maxTopicLength))
	}
	if len(a.Content) > maxContentLength {
		errs = append(errs, fmt.Sprintf("content exceeds %d characters", maxContentLength))
	}

	if a.Type == "study" && strings.TrimSpace(a.CourseName) == "" {
		errs = append(errs, "study activities require a course name")
	}

	return result(errs)
}

// ValidateActivities checks a whole submission: the list must be non-empty,
// every activity must be individually valid, and ids must be unique.
// Duplicate ids are collected and reported together, not fail-fast.
func ValidateActivities(activities []models.Activity) ValidationResult {
	if len(activities) == 0 {
		return result([]string{"at least one activity is required"})
	}

	var errs []string
	seen := make(map[string]bool)
	reported := make(map[string]bool)

	for i, a := range activities {
		if r := ValidateActivity(a); !r.IsValid {
			for _, e := range r.Errors {
				errs = append(errs, fmt.Sprintf("activity %d: %s", i+1, e))
			}
		}

		if a.ID == "" {
			continue
		}
		if seen[a.ID] && !reported[a.ID] {
			errs = append(errs, fmt.Sprintf("duplicate activity id %q", a.ID))
			reported[a.ID] = true
		}
		seen[a.ID] = true
	}

	return result(errs)
}

// ValidateDate accepts a YYYY-MM-DD date that is today or later and at most
// 365 days ahead. The comparison ignores time of day.
func ValidateDate(date string) ValidationResult {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return result([]string{fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date)})
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)

	var errs []string
	if target.Before(today) {
		errs = append(errs, "date must not be in the past")
	}
	if target.After(today.AddDate(0, 0, maxDaysAhead)) {
		errs = append(errs, fmt.Sprintf("date must be within %d days from today", maxDaysAhead))
	}
	return result(errs)
}

// ValidateNotes bounds the free-text notes field.
func ValidateNotes(notes string) ValidationResult {
	if len(notes) > maxNotesLength {
		return result([]string{fmt.Sprintf("notes exceed %d characters", maxNotesLength)})
	}
	return result(nil)
}

// ValidateTimeSlotCapacity reports whether the activities fit the slot.
// Required time is the duration sum plus a 10-minute break between each
// consecutive pair. Overflow is a soft signal — callers typically warn and
// let the user proceed; the scheduler will truncate.
func ValidateTimeSlotCapacity(activities []models.Activity, slot TimeSlot) CapacityResult {
	total := 0
	for _, a := range activities {
		total += a.EstimatedDuration
	}

	breaks := 0
	if len(activities) > 1 {
		breaks = (len(activities) - 1) * activityBreakMinutes
	}

	available := slot.DurationMinutes
	if available < 0 {
		available = 0
	}

	required := total + breaks
	overflow := required - available
	if overflow < 0 {
		overflow = 0
	}
	remaining := available - required
	if remaining < 0 {
		remaining = 0
	}

	res := CapacityResult{
		CanFit:        required <= available,
		TotalDuration: total,
		AvailableTime: available,
		BreakTime:     breaks,
		RequiredTime:  required,
		RemainingTime: remaining,
		Overflow:      overflow,
	}
	if !res.CanFit {
		res.Errors = append(res.Errors, fmt.Sprintf(
			"activities need %d minutes but only %d are available (%d over)",
			required, available, overflow))
	}
	res.IsValid = res.CanFit
	return res
}

var scriptTagPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)

// SanitizeString strips script tags and angle brackets from free text.
// Idempotent: sanitizing an already-sanitized value is a no-op.
func SanitizeString(s string) string {
	s = scriptTagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return strings.TrimSpace(s)
}

// SanitizeActivity cleans free-text fields and clamps the duration into the
// valid range, defaulting to the minimum when unset.
func SanitizeActivity(a models.Activity) models.Activity {
	a.Topic = SanitizeString(a.Topic)
	a.Content = SanitizeString(a.Content)
	a.CourseName = SanitizeString(a.CourseName)

	if a.EstimatedDuration < minActivityMinutes {
		a.EstimatedDuration = minActivityMinutes
	} else if a.EstimatedDuration > maxActivityMinutes {
		a.EstimatedDuration = maxActivityMinutes
	}
	return a
}
