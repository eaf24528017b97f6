package planner

import (
	"strings"
	"testing"
	"time"

	"studyflow-backend/internal/models"
)

func validActivity() models.Activity {
	return models.Activity{
		ID:                "a1",
		Type:              "study",
		CourseName:        "Giải tích 1",
		Priority:          models.PriorityHigh,
		EstimatedDuration: 60,
		TimeSlot:          models.TimeSlotMorning,
	}
}

func TestValidateActivity(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Activity)
		valid  bool
	}{
		{"valid", func(a *models.Activity) {}, true},
		{"missing id", func(a *models.Activity) { a.ID = "" }, false},
		{"missing type", func(a *models.Activity) { a.Type = "" }, false},
		{"unknown type", func(a *models.Activity) { a.Type = "gaming" }, false},
		{"duration too short", func(a *models.Activity) { a.EstimatedDuration = 10 }, false},
		{"duration too long", func(a *models.Activity) { a.EstimatedDuration = 481 }, false},
		{"duration at bounds", func(a *models.Activity) { a.EstimatedDuration = 480 }, true},
		{"bad priority", func(a *models.Activity) { a.Priority = "urgent" }, false},
		{"empty priority ok", func(a *models.Activity) { a.Priority = "" }, true},
		{"bad time slot", func(a *models.Activity) { a.TimeSlot = "evening" }, false},
		{"auto time slot ok", func(a *models.Activity) { a.TimeSlot = models.TimeSlotAuto }, true},
		{"topic too long", func(a *models.Activity) { a.Topic = strings.Repeat("x", 201) }, false},
		{"content too long", func(a *models.Activity) { a.Content = strings.Repeat("x", 2001) }, false},
		{"study without course", func(a *models.Activity) { a.CourseName = "" }, false},
		{"meal without course ok", func(a *models.Activity) { a.Type = "meal"; a.CourseName = "" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := validActivity()
			tc.mutate(&a)
			r := ValidateActivity(a)
			if r.IsValid != tc.valid {
				t.Errorf("IsValid = %v, expected %v (errors: %v)", r.IsValid, tc.valid, r.Errors)
			}
		})
	}
}

func TestValidateActivities_DuplicateIDs(t *testing.T) {
	a := validActivity()
	b := validActivity() // same id a1
	c := validActivity()
	c.ID = "a2"
	d := validActivity() // a1 a third time

	r := ValidateActivities([]models.Activity{a, b, c, d})
	if r.IsValid {
		t.Fatal("Expected duplicate ids to fail validation")
	}

	dupes := 0
	for _, e := range r.Errors {
		if strings.Contains(e, "duplicate activity id") {
			dupes++
		}
	}
	if dupes != 1 {
		t.Errorf("Expected the duplicate id reported once, got %d reports: %v", dupes, r.Errors)
	}
}

func TestValidateActivities_Empty(t *testing.T) {
	if r := ValidateActivities(nil); r.IsValid {
		t.Error("Expected empty list to be invalid")
	}
}

func TestValidateActivities_CollectsAllErrors(t *testing.T) {
	bad1 := validActivity()
	bad1.EstimatedDuration = 5
	bad2 := validActivity()
	bad2.ID = "a2"
	bad2.Type = ""

	r := ValidateActivities([]models.Activity{bad1, bad2})
	if r.IsValid {
		t.Fatal("Expected invalid result")
	}
	if len(r.Errors) < 2 {
		t.Errorf("Expected errors from both activities, got %v", r.Errors)
	}
}

func TestValidateDate(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	farFuture := time.Now().AddDate(0, 0, 400).Format("2006-01-02")

	tests := []struct {
		name  string
		date  string
		valid bool
	}{
		{"today", today, true},
		{"tomorrow", tomorrow, true},
		{"yesterday", yesterday, false},
		{"more than a year ahead", farFuture, false},
		{"malformed", "2026/01/01", false},
		{"nonsense", "not-a-date", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if r := ValidateDate(tc.date); r.IsValid != tc.valid {
				t.Errorf("ValidateDate(%q).IsValid = %v, expected %v", tc.date, r.IsValid, tc.valid)
			}
		})
	}
}

func TestValidateTimeSlotCapacity(t *testing.T) {
	slot := TimeSlot{StartTime: "08:00", EndTime: "09:40", DurationMinutes: 100}
	activities := []models.Activity{
		{ID: "a1", Type: "meal", EstimatedDuration: 30},
		{ID: "a2", Type: "rest", EstimatedDuration: 30},
		{ID: "a3", Type: "reading", EstimatedDuration: 30},
	}

	r := ValidateTimeSlotCapacity(activities, slot)
	if r.TotalDuration != 90 {
		t.Errorf("TotalDuration = %d, expected 90", r.TotalDuration)
	}
	if r.BreakTime != 20 {
		t.Errorf("BreakTime = %d, expected 20", r.BreakTime)
	}
	if r.RequiredTime != 110 {
		t.Errorf("RequiredTime = %d, expected 110", r.RequiredTime)
	}
	if r.CanFit {
		t.Error("Expected CanFit=false for 110 required in 100 available")
	}
	if r.Overflow != 10 {
		t.Errorf("Overflow = %d, expected 10", r.Overflow)
	}
}

func TestValidateTimeSlotCapacity_NegativeDurationSlot(t *testing.T) {
	slot := TimeSlot{StartTime: "07:00", EndTime: "06:30", DurationMinutes: -30}
	r := ValidateTimeSlotCapacity([]models.Activity{{EstimatedDuration: 30}}, slot)

	if r.AvailableTime != 0 {
		t.Errorf("AvailableTime = %d, expected 0 for an unusable slot", r.AvailableTime)
	}
	if r.CanFit {
		t.Error("Expected CanFit=false")
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "ôn tập chương 3", "ôn tập chương 3"},
		{"script tag", `hello <script>alert("x")</script> world`, "hello  world"},
		{"angle brackets", "a < b > c", "a  b  c"},
		{"mixed case script", `<SCRIPT src="x">bad</SCRIPT>ok`, "ok"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeString(tc.input)
			if got != tc.expected {
				t.Errorf("SanitizeString(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
			// Idempotence: sanitizing again must change nothing.
			if again := SanitizeString(got); again != got {
				t.Errorf("SanitizeString not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSanitizeActivity(t *testing.T) {
	a := models.Activity{
		ID:                "a1",
		Type:              "study",
		Topic:             "<b>chapter 1</b>",
		EstimatedDuration: 0,
	}

	clean := SanitizeActivity(a)
	if clean.Topic != "bchapter 1/b" {
		t.Errorf("Topic = %q", clean.Topic)
	}
	if clean.EstimatedDuration != 15 {
		t.Errorf("Duration = %d, expected clamp to 15", clean.EstimatedDuration)
	}

	a.EstimatedDuration = 900
	if clean := SanitizeActivity(a); clean.EstimatedDuration != 480 {
		t.Errorf("Duration = %d, expected clamp to 480", clean.EstimatedDuration)
	}
}
