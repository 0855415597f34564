package model

import "time"

// BookableItem is a staffed appointment-type time block returned by the
// scheduling provider, before slicing into discrete bookable units.
// Items are read-only input: the slicer never mutates them.
type BookableItem struct {
	ID            string    `json:"id,omitempty"`
	StaffID       string    `json:"staff_id"`
	StaffName     string    `json:"staff_name"`
	StaffEmail    string    `json:"staff_email,omitempty"`
	StaffPhone    string    `json:"staff_phone,omitempty"`
	SessionTypeID string    `json:"session_type_id"`
	ProgramID     string    `json:"program_id"`
	DurationMin   int       `json:"duration_min"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}
