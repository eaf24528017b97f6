package services

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("Bad cell coordinates: %v", err)
			}
			if err := f.SetCellValue("Sheet1", name, cell); err != nil {
				t.Fatalf("Failed to set cell %s: %v", name, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "timetable.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

func TestReadCourseRows(t *testing.T) {
	path := writeTestWorkbook(t, [][]string{
		{"THỜI KHÓA BIỂU HỌC KỲ 1"},
		{},
		{"STT", "Mã học phần", "Tên học phần", "Số tín chỉ", "Giảng viên", "Thời khóa biểu", "Tuần học"},
		{"1", "MAT1041", "Giải tích 1", "4", "Nguyễn Văn A", "Thứ 2, tiết 1-3, phòng A101", "22-27;31-40"},
		{"2", "PHI1006", "Triết học Mác - Lênin", "3", "", "Thứ 4, tiết 6-8", "22-35"},
		{"", "", "", "", "", "", ""},
	})

	svc := NewSpreadsheetService()
	rows, err := svc.ReadCourseRows(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Name != "Giải tích 1" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Code != "MAT1041" {
		t.Errorf("Code = %q", first.Code)
	}
	if first.ScheduleText != "Thứ 2, tiết 1-3, phòng A101" {
		t.Errorf("ScheduleText = %q", first.ScheduleText)
	}
	if first.WeekText != "22-27;31-40" {
		t.Errorf("WeekText = %q", first.WeekText)
	}

	if rows[1].Instructor != "" {
		t.Errorf("Expected empty instructor, got %q", rows[1].Instructor)
	}
}

func TestReadCourseRows_NoHeader(t *testing.T) {
	path := writeTestWorkbook(t, [][]string{
		{"just", "random", "cells"},
		{"no", "course", "table"},
	})

	svc := NewSpreadsheetService()
	_, err := svc.ReadCourseRows(path)
	if _, ok := err.(*StructuralError); !ok {
		t.Fatalf("Expected StructuralError, got %v", err)
	}
}

func TestReadCourseRows_MissingFile(t *testing.T) {
	svc := NewSpreadsheetService()
	if _, err := svc.ReadCourseRows(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
