package provider

import (
	"encoding/json"
	"testing"
	"time"

	"carve/pkg/logger"
)

func TestItemList_NormalizesSingleObject(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantItems int
	}{
		{
			name:      "array of items",
			payload:   `{"items":[{"id":"1"},{"id":"2"}]}`,
			wantItems: 2,
		},
		{
			name:      "single object instead of array",
			payload:   `{"items":{"id":"1"}}`,
			wantItems: 1,
		},
		{
			name:      "empty array",
			payload:   `{"items":[]}`,
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp searchResponse
			if err := json.Unmarshal([]byte(tt.payload), &resp); err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}
			if len(resp.Items) != tt.wantItems {
				t.Errorf("expected %d items, got %d", tt.wantItems, len(resp.Items))
			}
		})
	}
}

func testClient() *Client {
	return &Client{
		loc: time.UTC,
		log: logger.New(logger.Config{Level: "error", Service: "test"}),
	}
}

func validRaw() rawItem {
	return rawItem{
		ID: "item1",
		Staff: rawStaff{
			ID:   "staff-1",
			Name: "  Alex   Morgan ",
		},
		SessionType: rawSessionType{
			ID:                "st-1",
			DefaultTimeLength: 30,
		},
		ProgramID:     "prog-1",
		StartDateTime: "2026-03-09T09:00:00",
		EndDateTime:   "2026-03-09T10:30:00",
	}
}

func TestNormalize_ParsesLocalTimestamps(t *testing.T) {
	item, err := testClient().normalize(validRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStart := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
	if !item.StartTime.Equal(wantStart) {
		t.Errorf("expected start %s, got %s", wantStart, item.StartTime)
	}
	if item.StaffName != "Alex Morgan" {
		t.Errorf("expected normalized staff name, got %q", item.StaffName)
	}
	if item.DurationMin != 30 {
		t.Errorf("expected 30 minute duration, got %d", item.DurationMin)
	}
}

func TestNormalize_RejectsMalformedItems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*rawItem)
	}{
		{"unparsable start", func(r *rawItem) { r.StartDateTime = "not-a-time" }},
		{"unparsable end", func(r *rawItem) { r.EndDateTime = "2026-13-99T99:00:00" }},
		{"end before start", func(r *rawItem) {
			r.StartDateTime = "2026-03-09T11:00:00"
			r.EndDateTime = "2026-03-09T10:00:00"
		}},
		{"zero duration", func(r *rawItem) { r.SessionType.DefaultTimeLength = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)
			if _, err := testClient().normalize(raw); err == nil {
				t.Error("expected normalization to fail")
			}
		})
	}
}
