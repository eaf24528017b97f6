package timetable

import (
	"reflect"
	"testing"

	"studyflow-backend/internal/models"
)

func TestParseScheduleString_SingleEntry(t *testing.T) {
	entries := ParseScheduleString("Thứ 4,1-2,E2.403")

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Day != 4 {
		t.Errorf("Expected day 4, got %d", e.Day)
	}
	if !reflect.DeepEqual(e.Periods, []int{1, 2}) {
		t.Errorf("Expected periods [1 2], got %v", e.Periods)
	}
	if e.Room != "E2.403" {
		t.Errorf("Expected room E2.403, got %q", e.Room)
	}
}

func TestParseScheduleString_MultipleEntries(t *testing.T) {
	entries := ParseScheduleString("Thứ 4,1-2,E2.403; Thứ 5,6-7,A141")

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	second := entries[1]
	if second.Day != 5 {
		t.Errorf("Expected day 5, got %d", second.Day)
	}
	if !reflect.DeepEqual(second.Periods, []int{6, 7}) {
		t.Errorf("Expected periods [6 7], got %v", second.Periods)
	}
	if second.Room != "A141" {
		t.Errorf("Expected room A141, got %q", second.Room)
	}
}

func TestParseScheduleString_NewlineSeparator(t *testing.T) {
	entries := ParseScheduleString("Thứ 2,3-5,B102\nThứ 6,8-10,C3.201")
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if !reflect.DeepEqual(entries[0].Periods, []int{3, 4, 5}) {
		t.Errorf("Expected periods [3 4 5], got %v", entries[0].Periods)
	}
	if entries[1].Room != "C3.201" {
		t.Errorf("Expected room C3.201, got %q", entries[1].Room)
	}
}

func TestParseScheduleString_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no day or period", "phòng E2.403"},
		{"day only", "Thứ 4"},
		{"day out of range", "Thứ 8,1-2,E2.403"},
		{"day one is sunday", "Thứ 1,1-2,E2.403"},
		{"period start above end", "Thứ 4,5-2,E2.403"},
		{"period out of bounds", "Thứ 4,9-11,E2.403"},
		{"period zero", "Thứ 4,0-2,E2.403"},
		{"no comma before range", "Thứ 4 1-2 E2.403"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if entries := ParseScheduleString(tc.text); len(entries) != 0 {
				t.Errorf("Expected no entries for %q, got %v", tc.text, entries)
			}
		})
	}
}

func TestParseScheduleString_RoomOptional(t *testing.T) {
	entries := ParseScheduleString("Thứ 3,4-6")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Room != "" {
		t.Errorf("Expected empty room, got %q", entries[0].Room)
	}
	if !reflect.DeepEqual(entries[0].Periods, []int{4, 5, 6}) {
		t.Errorf("Expected periods [4 5 6], got %v", entries[0].Periods)
	}
}

func TestParseScheduleString_DropsBadCandidateKeepsGood(t *testing.T) {
	// The second candidate has no period range and must not poison the first.
	entries := ParseScheduleString("Thứ 4,1-2,E2.403; Thứ 9")
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Day != 4 {
		t.Errorf("Expected day 4, got %d", entries[0].Day)
	}
}

func TestParseWeekRanges(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []models.WeekRange
	}{
		{"two ranges", "22-27;31-40", []models.WeekRange{{Start: 22, End: 27}, {Start: 31, End: 40}}},
		{"single range", "22-27", []models.WeekRange{{Start: 22, End: 27}}},
		{"single week", "14", []models.WeekRange{{Start: 14, End: 14}}},
		{"mixed", "5;10-12", []models.WeekRange{{Start: 5, End: 5}, {Start: 10, End: 12}}},
		{"empty", "", nil},
		{"malformed part skipped", "22-27;abc;31-40", []models.WeekRange{{Start: 22, End: 27}, {Start: 31, End: 40}}},
		{"reversed range skipped", "27-22", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseWeekRanges(tc.text)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ParseWeekRanges(%q) = %v, expected %v", tc.text, got, tc.expected)
			}
		})
	}
}
