package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"carve/pkg/model"
)

// SliceOptions carries the business rules applied on top of the caller's
// criteria. All values are explicit inputs: the slicer holds no state of its
// own and is safe to call concurrently.
type SliceOptions struct {
	// HideWindow hides slices starting within now+HideWindow. Zero or
	// negative disables the rule.
	HideWindow time.Duration

	// ExcludedProgramIDs marks slices from these programs as not bookable.
	ExcludedProgramIDs []string

	// ReservedStaffID is the internal test account filtered from results
	// unless CanViewTestStaff is set.
	ReservedStaffID  string
	CanViewTestStaff bool
}

// ComputeSlices expands raw bookable items into discrete bookable time
// slices, filtered by trainer, time-of-day window, hide window and remaining
// capacity, grouped by calendar date and then staff name in discovery order.
//
// The function is pure: identical inputs (including now) produce identical
// output, down to the synthetic slice ids.
func ComputeSlices(items []model.BookableItem, criteria *model.SliceCriteria, now time.Time, opts SliceOptions) *model.Availability {
	result := model.NewAvailability()

	excluded := make(map[string]struct{}, len(opts.ExcludedProgramIDs))
	for _, id := range opts.ExcludedProgramIDs {
		excluded[id] = struct{}{}
	}

	cutoff := now.Add(opts.HideWindow)

	for _, item := range items {
		if item.StaffID == opts.ReservedStaffID && opts.ReservedStaffID != "" && !opts.CanViewTestStaff {
			continue
		}
		if criteria.TrainerID != model.TrainerAll && item.StaffID != criteria.TrainerID {
			continue
		}
		if !withinWindow(item, criteria.StartHour, criteria.EndHour) {
			continue
		}
		if item.DurationMin <= 0 {
			continue
		}

		duration := time.Duration(item.DurationMin) * time.Minute
		groupDate := item.StartTime.Format(model.GroupDateFormat)
		_, inExcluded := excluded[item.ProgramID]
		itemID := itemIdentity(item)

		seq := 0
		for start := item.StartTime; start.Before(item.EndTime); start = start.Add(duration) {
			index := seq
			seq++

			// Hide-window rule: drop slices starting at or before the cutoff.
			if !start.After(cutoff) {
				continue
			}
			// Remaining-capacity rule: the parent block must still hold a
			// full session from this start.
			if item.EndTime.Sub(start) < duration {
				continue
			}

			slice := &model.TimeSlice{
				ID:        itemID + "-" + strconv.Itoa(index),
				StartTime: start,
				EndTime:   start.Add(duration),
				StaffID:   item.StaffID,
				StaffName: item.StaffName,
				GroupDate: groupDate,
				Excluded:  inExcluded,
			}
			slice.Highlighted = criteria.TargetSliceID != "" && criteria.TargetSliceID == slice.ID

			result.Add(slice, item.StartTime)
		}
	}

	return result
}

// withinWindow reports whether both the start and end hours of the item fall
// inside the inclusive time-of-day window. Hours are treated as members of a
// flat integer set; validation upstream guarantees startHour <= endHour.
func withinWindow(item model.BookableItem, startHour, endHour int) bool {
	sh := item.StartTime.Hour()
	eh := item.EndTime.Hour()
	return sh >= startHour && sh <= endHour && eh >= startHour && eh <= endHour
}

// itemIdentity returns the item's provider id, or a deterministic digest of
// its content when the provider sent none. Re-running the same query must
// yield the same synthetic ids: they feed both UI highlighting and the
// persisted token keyspace.
func itemIdentity(item model.BookableItem) string {
	if item.ID != "" {
		return item.ID
	}

	canonical := fmt.Sprintf("%s|%s|%s|%d|%d|%d",
		item.StaffID,
		item.SessionTypeID,
		item.ProgramID,
		item.DurationMin,
		item.StartTime.Unix(),
		item.EndTime.Unix(),
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:16]
}
