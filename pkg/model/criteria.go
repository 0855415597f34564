package model

// Trainer id value meaning "do not filter by trainer".
const TrainerAll = "all"

// Date range tokens accepted in search criteria. Each maps to a concrete
// span of days queried from the scheduling provider.
const (
	DateRangeShort  = "short"
	DateRangeMedium = "medium"
	DateRangeLong   = "long"
)

// DateRangeDays maps a date-range token to the number of days queried from
// the provider, starting at the current day.
var DateRangeDays = map[string]int{
	DateRangeShort:  7,
	DateRangeMedium: 30,
	DateRangeLong:   60,
}

// SliceCriteria is the caller-supplied filter set for an availability
// search. StartHour..EndHour is an inclusive time-of-day window; windows
// where StartHour > EndHour (wrapping midnight) are rejected by validation,
// not interpreted.
type SliceCriteria struct {
	LocationID    string `json:"location_id" validate:"required"`
	ProgramID     string `json:"program_id" validate:"required"`
	SessionTypeID string `json:"session_type_id" validate:"required"`
	TrainerID     string `json:"trainer_id" validate:"required"`
	DateRange     string `json:"date_range" validate:"required,oneof=short medium long"`
	StartHour     int    `json:"start_hour" validate:"min=0,max=23,ltefield=EndHour"`
	EndHour       int    `json:"end_hour" validate:"min=0,max=23"`
	TargetSliceID string `json:"target_slice_id,omitempty" validate:"omitempty,max=128"`
}
