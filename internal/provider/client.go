// Package provider is the HTTP client for the upstream scheduling provider.
// It fetches raw bookable appointment blocks and normalizes them into model
// types before the slicer ever sees them.
package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"carve/pkg/client"
	"carve/pkg/config"
	"carve/pkg/logger"
	"carve/pkg/model"
	"carve/pkg/sanitizer"
)

// timestampLayout matches the provider's zone-less local timestamps.
const timestampLayout = "2006-01-02T15:04:05"

type BookableItemsClient interface {
	FetchBookableItems(ctx context.Context, q Query) ([]model.BookableItem, error)
}

// Query identifies one upstream availability lookup.
type Query struct {
	LocationID    string
	ProgramID     string
	SessionTypeID string
	TrainerID     string // model.TrainerAll means no staff filter
	StartDate     time.Time
	EndDate       time.Time
}

type Client struct {
	http *client.HttpClient
	loc  *time.Location
	log  *logger.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http: client.NewHttpClient(cfg.ProviderBaseURL, cfg.ProviderTimeout),
		loc:  cfg.ProviderLocation(),
		log:  cfg.Log,
	}
}

// FetchBookableItems queries the provider once per call. Transport failures
// and non-2xx responses surface as ErrUpstreamUnavailable; individually
// malformed items are logged and skipped so one bad block never aborts the
// whole batch.
func (c *Client) FetchBookableItems(ctx context.Context, q Query) ([]model.BookableItem, error) {
	params := url.Values{}
	params.Set("location_id", q.LocationID)
	params.Set("program_id", q.ProgramID)
	params.Set("session_type_id", q.SessionTypeID)
	params.Set("start_date", q.StartDate.Format("2006-01-02"))
	params.Set("end_date", q.EndDate.Format("2006-01-02"))
	if q.TrainerID != "" && q.TrainerID != model.TrainerAll {
		params.Set("staff_id", q.TrainerID)
	}

	resp, err := c.http.GET(ctx, "/api/v1/bookable-items?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload searchResponse
	if err := resp.DecodeJSON(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	items := make([]model.BookableItem, 0, len(payload.Items))
	for _, raw := range payload.Items {
		item, err := c.normalize(raw)
		if err != nil {
			c.log.Warn("Skipping malformed bookable item",
				"item_id", raw.ID,
				"staff_id", raw.Staff.ID,
				"error", err,
			)
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

func (c *Client) normalize(raw rawItem) (model.BookableItem, error) {
	start, err := time.ParseInLocation(timestampLayout, raw.StartDateTime, c.loc)
	if err != nil {
		return model.BookableItem{}, fmt.Errorf("unparsable start time %q: %v", raw.StartDateTime, err)
	}
	end, err := time.ParseInLocation(timestampLayout, raw.EndDateTime, c.loc)
	if err != nil {
		return model.BookableItem{}, fmt.Errorf("unparsable end time %q: %v", raw.EndDateTime, err)
	}
	if !end.After(start) {
		return model.BookableItem{}, fmt.Errorf("end time %s not after start time %s", raw.EndDateTime, raw.StartDateTime)
	}
	if raw.SessionType.DefaultTimeLength <= 0 {
		return model.BookableItem{}, fmt.Errorf("non-positive session duration %d", raw.SessionType.DefaultTimeLength)
	}

	return model.BookableItem{
		ID:            sanitizer.NormalizeID(raw.ID),
		StaffID:       sanitizer.NormalizeID(raw.Staff.ID),
		StaffName:     sanitizer.NormalizeName(raw.Staff.Name),
		StaffEmail:    sanitizer.NormalizeID(raw.Staff.Email),
		StaffPhone:    sanitizer.NormalizeID(raw.Staff.Phone),
		SessionTypeID: sanitizer.NormalizeID(raw.SessionType.ID),
		ProgramID:     sanitizer.NormalizeID(raw.ProgramID),
		DurationMin:   raw.SessionType.DefaultTimeLength,
		StartTime:     start,
		EndTime:       end,
	}, nil
}
