package service

import (
	"context"
	"errors"
	"time"

	availerrors "carve/internal/availability/errors"
	"carve/internal/availability/events"
	"carve/internal/availability/repository"
	"carve/internal/availability/validator"
	"carve/internal/provider"
	"carve/pkg/config"
	apperrors "carve/pkg/errors"
	"carve/pkg/model"
	"carve/pkg/token"
)

type AvailabilityService interface {
	// Search validates criteria, fetches bookable items from the provider,
	// slices them and persists booking metadata for each surviving slice.
	Search(ctx context.Context, criteria *model.SliceCriteria, canViewTestStaff bool) (*model.Availability, error)

	// VerifyBooking recomputes the token for the submitted booking
	// parameters. An invalid token is a result, not an error.
	VerifyBooking(ctx context.Context, params token.Params, presented string) (*model.TokenRecord, bool, error)
}

type availabilityService struct {
	items     provider.BookableItemsClient
	store     repository.TokenStore
	signer    *token.Signer
	publisher events.Publisher
	validator *validator.CriteriaValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewAvailabilityService(
	items provider.BookableItemsClient,
	store repository.TokenStore,
	signer *token.Signer,
	publisher events.Publisher,
	criteriaValidator *validator.CriteriaValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		items:     items,
		store:     store,
		signer:    signer,
		publisher: publisher,
		validator: criteriaValidator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *availabilityService) Search(ctx context.Context, criteria *model.SliceCriteria, canViewTestStaff bool) (*model.Availability, error) {
	if err := s.validator.Validate(criteria); err != nil {
		s.cfg.Log.Warn("Search criteria validation failed",
			"location_id", criteria.LocationID,
			"error", err,
		)
		return nil, apperrors.Validation("Search criteria validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	now := s.now()

	days, ok := model.DateRangeDays[criteria.DateRange]
	if !ok {
		return nil, apperrors.InvalidInput("Unknown date range: " + criteria.DateRange)
	}

	items, err := s.items.FetchBookableItems(ctx, provider.Query{
		LocationID:    criteria.LocationID,
		ProgramID:     criteria.ProgramID,
		SessionTypeID: criteria.SessionTypeID,
		TrainerID:     criteria.TrainerID,
		StartDate:     now,
		EndDate:       now.AddDate(0, 0, days),
	})
	if err != nil {
		if errors.Is(err, provider.ErrUpstreamUnavailable) {
			s.cfg.Log.Error("Scheduling provider unavailable", "error", err)
			return nil, apperrors.Unavailable("Scheduling provider", err)
		}
		s.cfg.Log.Error("Failed to fetch bookable items", "error", err)
		return nil, apperrors.Internal("Failed to fetch bookable items", err)
	}

	result := ComputeSlices(items, criteria, now, SliceOptions{
		HideWindow:         s.cfg.HideWindow,
		ExcludedProgramIDs: s.cfg.ExcludedProgramIDs,
		ReservedStaffID:    s.cfg.ReservedStaffID,
		CanViewTestStaff:   canViewTestStaff,
	})

	if err := s.attachTokens(ctx, result, criteria, items); err != nil {
		return nil, err
	}

	s.publisher.SearchPerformed(ctx, criteria, result.SliceCount())

	s.cfg.Log.Info("Availability search completed",
		"location_id", criteria.LocationID,
		"trainer_id", criteria.TrainerID,
		"date_range", criteria.DateRange,
		"items", len(items),
		"slices", result.SliceCount(),
	)

	return result, nil
}

// attachTokens signs each slice's booking parameters and persists the
// per-slice booking metadata under that token, once per surviving slice.
func (s *availabilityService) attachTokens(ctx context.Context, result *model.Availability, criteria *model.SliceCriteria, items []model.BookableItem) error {
	contacts := make(map[string]model.BookableItem, len(items))
	for _, item := range items {
		contacts[item.StaffID] = item
	}

	for _, date := range result.Dates {
		for _, staff := range date.Staff {
			for _, slice := range staff.Slices {
				if slice.Excluded {
					continue
				}

				slice.Token = s.signer.Generate(token.Params{
					LocationID:    criteria.LocationID,
					ProgramID:     criteria.ProgramID,
					SessionTypeID: criteria.SessionTypeID,
					TrainerID:     criteria.TrainerID,
					StartHour:     criteria.StartHour,
					EndHour:       criteria.EndHour,
					DateRange:     criteria.DateRange,
					SliceID:       slice.ID,
				})

				record := &model.TokenRecord{
					Token:     slice.Token,
					SliceID:   slice.ID,
					StaffID:   slice.StaffID,
					StaffName: slice.StaffName,
					StartTime: slice.StartTime,
				}
				if item, ok := contacts[slice.StaffID]; ok {
					record.StaffEmail = item.StaffEmail
					record.StaffPhone = item.StaffPhone
				}

				if err := s.store.SetWithExpire(ctx, record, s.cfg.TokenTTL); err != nil {
					s.cfg.Log.Error("Failed to persist booking metadata",
						"slice_id", slice.ID,
						"error", err,
					)
					return apperrors.Internal("Failed to persist booking metadata", err)
				}
			}
		}
	}

	return nil
}

func (s *availabilityService) VerifyBooking(ctx context.Context, params token.Params, presented string) (*model.TokenRecord, bool, error) {
	if presented == "" {
		return nil, false, nil
	}

	if !s.signer.Validate(params, presented) {
		s.cfg.Log.Warn("Booking token validation failed",
			"slice_id", params.SliceID,
			"location_id", params.LocationID,
		)
		return nil, false, nil
	}

	record, err := s.store.Get(ctx, presented)
	if err != nil {
		if errors.Is(err, availerrors.ErrRecordNotFound) {
			return nil, true, apperrors.NotFound("Booking metadata")
		}
		s.cfg.Log.Error("Failed to load booking metadata", "slice_id", params.SliceID, "error", err)
		return nil, true, apperrors.Internal("Failed to load booking metadata", err)
	}

	return record, true, nil
}
