package model

import "time"

// GroupDateFormat is the layout for date group keys, e.g. "March 09, 2026".
const GroupDateFormat = "January 02, 2006"

// TimeSlice is one discrete, fixed-duration bookable unit carved out of a
// BookableItem. Slices are ephemeral: constructed for a single response and
// discarded.
type TimeSlice struct {
	ID          string    `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	StaffID     string    `json:"staff_id"`
	StaffName   string    `json:"staff_name"`
	GroupDate   string    `json:"group_date"`
	Excluded    bool      `json:"excluded"`
	Highlighted bool      `json:"highlighted,omitempty"`
	Token       string    `json:"token,omitempty"`
}

// StaffGroup holds the slices of one staff member within a date group, in
// the order they were produced.
type StaffGroup struct {
	StaffID   string       `json:"staff_id"`
	StaffName string       `json:"staff_name"`
	Slices    []*TimeSlice `json:"slices"`
}

// DateGroup holds one calendar day's staff groups. The weekday is recorded
// once per group for rendering.
type DateGroup struct {
	Date    string        `json:"date"`
	Weekday string        `json:"weekday"`
	Staff   []*StaffGroup `json:"staff"`
}

// Availability is the ordered result of an availability search: date groups
// in discovery order, staff groups in discovery order within each date.
type Availability struct {
	Dates []*DateGroup `json:"dates"`

	dateIndex map[string]*DateGroup
}

func NewAvailability() *Availability {
	return &Availability{
		Dates:     make([]*DateGroup, 0),
		dateIndex: make(map[string]*DateGroup),
	}
}

// Add inserts a slice under its group date and staff name, creating groups
// on first sight and preserving insertion order throughout.
func (a *Availability) Add(slice *TimeSlice, groupTime time.Time) {
	group, ok := a.dateIndex[slice.GroupDate]
	if !ok {
		group = &DateGroup{
			Date:    slice.GroupDate,
			Weekday: groupTime.Weekday().String(),
			Staff:   make([]*StaffGroup, 0, 1),
		}
		a.dateIndex[slice.GroupDate] = group
		a.Dates = append(a.Dates, group)
	}

	var staff *StaffGroup
	for _, sg := range group.Staff {
		if sg.StaffName == slice.StaffName {
			staff = sg
			break
		}
	}
	if staff == nil {
		staff = &StaffGroup{
			StaffID:   slice.StaffID,
			StaffName: slice.StaffName,
			Slices:    make([]*TimeSlice, 0, 4),
		}
		group.Staff = append(group.Staff, staff)
	}

	staff.Slices = append(staff.Slices, slice)
}

// SliceCount returns the total number of slices across all groups.
func (a *Availability) SliceCount() int {
	count := 0
	for _, date := range a.Dates {
		for _, staff := range date.Staff {
			count += len(staff.Slices)
		}
	}
	return count
}
