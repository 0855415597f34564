package model

import (
	"testing"
	"time"
)

func TestAvailability_AddPreservesInsertionOrder(t *testing.T) {
	a := NewAvailability()

	day1 := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	a.Add(&TimeSlice{ID: "x-0", StaffName: "Alex", GroupDate: day1.Format(GroupDateFormat)}, day1)
	a.Add(&TimeSlice{ID: "y-0", StaffName: "Jordan", GroupDate: day1.Format(GroupDateFormat)}, day1)
	a.Add(&TimeSlice{ID: "x-1", StaffName: "Alex", GroupDate: day1.Format(GroupDateFormat)}, day1)
	a.Add(&TimeSlice{ID: "z-0", StaffName: "Alex", GroupDate: day2.Format(GroupDateFormat)}, day2)

	if len(a.Dates) != 2 {
		t.Fatalf("expected 2 date groups, got %d", len(a.Dates))
	}

	first := a.Dates[0]
	if first.Date != "March 09, 2026" || first.Weekday != "Monday" {
		t.Errorf("unexpected first group: %s / %s", first.Date, first.Weekday)
	}
	if len(first.Staff) != 2 {
		t.Fatalf("expected 2 staff groups, got %d", len(first.Staff))
	}
	if first.Staff[0].StaffName != "Alex" || first.Staff[1].StaffName != "Jordan" {
		t.Errorf("staff out of insertion order: %s, %s", first.Staff[0].StaffName, first.Staff[1].StaffName)
	}
	if len(first.Staff[0].Slices) != 2 {
		t.Errorf("expected Alex to have 2 slices on day 1, got %d", len(first.Staff[0].Slices))
	}
	if first.Staff[0].Slices[0].ID != "x-0" || first.Staff[0].Slices[1].ID != "x-1" {
		t.Errorf("slices out of insertion order: %s, %s",
			first.Staff[0].Slices[0].ID, first.Staff[0].Slices[1].ID)
	}

	if a.SliceCount() != 4 {
		t.Errorf("expected 4 slices total, got %d", a.SliceCount())
	}
}
