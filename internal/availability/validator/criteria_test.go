package validator

import (
	"testing"

	"carve/pkg/logger"
	"carve/pkg/model"
)

func validCriteria() *model.SliceCriteria {
	return &model.SliceCriteria{
		LocationID:    "loc-1",
		ProgramID:     "prog-1",
		SessionTypeID: "st-1",
		TrainerID:     model.TrainerAll,
		DateRange:     model.DateRangeShort,
		StartHour:     9,
		EndHour:       17,
	}
}

func newValidator() *CriteriaValidator {
	return NewCriteriaValidator(logger.New(logger.Config{Level: "error", Service: "test"}))
}

func TestValidate_AcceptsValidCriteria(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name   string
		mutate func(*model.SliceCriteria)
	}{
		{"baseline", func(c *model.SliceCriteria) {}},
		{"specific trainer", func(c *model.SliceCriteria) { c.TrainerID = "staff-7" }},
		{"full day window", func(c *model.SliceCriteria) { c.StartHour = 0; c.EndHour = 23 }},
		{"single hour window", func(c *model.SliceCriteria) { c.StartHour = 12; c.EndHour = 12 }},
		{"with target slice", func(c *model.SliceCriteria) { c.TargetSliceID = "item1-2" }},
		{"long range", func(c *model.SliceCriteria) { c.DateRange = model.DateRangeLong }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := validCriteria()
			tt.mutate(criteria)
			if err := v.Validate(criteria); err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidate_RejectsInvalidCriteria(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name      string
		mutate    func(*model.SliceCriteria)
		wantField string
	}{
		{"missing location", func(c *model.SliceCriteria) { c.LocationID = "" }, "LocationID"},
		{"missing program", func(c *model.SliceCriteria) { c.ProgramID = "" }, "ProgramID"},
		{"missing session type", func(c *model.SliceCriteria) { c.SessionTypeID = "" }, "SessionTypeID"},
		{"missing trainer", func(c *model.SliceCriteria) { c.TrainerID = "" }, "TrainerID"},
		{"missing date range", func(c *model.SliceCriteria) { c.DateRange = "" }, "DateRange"},
		{"unknown date range", func(c *model.SliceCriteria) { c.DateRange = "eternity" }, "DateRange"},
		{"negative start hour", func(c *model.SliceCriteria) { c.StartHour = -1 }, "StartHour"},
		{"end hour past 23", func(c *model.SliceCriteria) { c.EndHour = 24 }, "EndHour"},
		{"window wraps midnight", func(c *model.SliceCriteria) { c.StartHour = 22; c.EndHour = 6 }, "StartHour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := validCriteria()
			tt.mutate(criteria)

			err := v.Validate(criteria)
			if err == nil {
				t.Fatal("expected validation error")
			}

			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}

			found := false
			for _, verr := range verrs {
				if verr.Field == tt.wantField {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected an error on field %s, got %v", tt.wantField, verrs)
			}
		})
	}
}
