package service

import (
	"context"
	"testing"
	"time"

	availerrors "carve/internal/availability/errors"
	"carve/internal/availability/events"
	"carve/internal/availability/validator"
	"carve/internal/provider"
	"carve/pkg/config"
	apperrors "carve/pkg/errors"
	"carve/pkg/logger"
	"carve/pkg/model"
	"carve/pkg/token"
)

// Mock provider client for testing
type mockItemsClient struct {
	fetchFunc func(ctx context.Context, q provider.Query) ([]model.BookableItem, error)
}

func (m *mockItemsClient) FetchBookableItems(ctx context.Context, q provider.Query) ([]model.BookableItem, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, q)
	}
	return []model.BookableItem{}, nil
}

// Mock token store for testing
type mockTokenStore struct {
	records map[string]*model.TokenRecord
	setErr  error
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{records: make(map[string]*model.TokenRecord)}
}

func (m *mockTokenStore) SetWithExpire(_ context.Context, record *model.TokenRecord, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.records[record.Token] = record
	return nil
}

func (m *mockTokenStore) Get(_ context.Context, tok string) (*model.TokenRecord, error) {
	record, ok := m.records[tok]
	if !ok {
		return nil, availerrors.ErrRecordNotFound
	}
	return record, nil
}

type mockPublisher struct {
	searches int
}

func (m *mockPublisher) SearchPerformed(context.Context, *model.SliceCriteria, int) {
	m.searches++
}

func (m *mockPublisher) Close() {}

var _ events.Publisher = (*mockPublisher)(nil)

func newTestService(items *mockItemsClient, store *mockTokenStore) (*availabilityService, *mockPublisher) {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	cfg := &config.Config{
		Log:      log,
		TokenTTL: 24 * time.Hour,
	}
	publisher := &mockPublisher{}

	svc := &availabilityService{
		items:     items,
		store:     store,
		signer:    token.NewSigner("test-salt"),
		publisher: publisher,
		validator: validator.NewCriteriaValidator(log),
		cfg:       cfg,
		now: func() time.Time {
			return time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
		},
	}
	return svc, publisher
}

func searchCriteria() *model.SliceCriteria {
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

func TestSearch_PersistsTokenPerSlice(t *testing.T) {
	day := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	items := &mockItemsClient{
		fetchFunc: func(ctx context.Context, q provider.Query) ([]model.BookableItem, error) {
			return []model.BookableItem{{
				ID:            "item1",
				StaffID:       "staff-1",
				StaffName:     "Alex Morgan",
				StaffEmail:    "alex@example.com",
				SessionTypeID: "st-1",
				ProgramID:     "prog-1",
				DurationMin:   30,
				StartTime:     day.Add(9 * time.Hour),
				EndTime:       day.Add(10*time.Hour + 30*time.Minute),
			}}, nil
		},
	}
	store := newMockTokenStore()
	svc, publisher := newTestService(items, store)

	result, err := svc.Search(context.Background(), searchCriteria(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.SliceCount() != 3 {
		t.Fatalf("expected 3 slices, got %d", result.SliceCount())
	}
	if len(store.records) != 3 {
		t.Fatalf("expected 3 persisted records, got %d", len(store.records))
	}

	for _, date := range result.Dates {
		for _, staff := range date.Staff {
			for _, slice := range staff.Slices {
				if slice.Token == "" {
					t.Errorf("slice %s has no token attached", slice.ID)
					continue
				}
				record, ok := store.records[slice.Token]
				if !ok {
					t.Errorf("no record persisted under token for slice %s", slice.ID)
					continue
				}
				if record.SliceID != slice.ID {
					t.Errorf("record slice id %s does not match slice %s", record.SliceID, slice.ID)
				}
				if record.StaffEmail != "alex@example.com" {
					t.Errorf("staff contact not carried into record: %q", record.StaffEmail)
				}
			}
		}
	}

	if publisher.searches != 1 {
		t.Errorf("expected 1 search event, got %d", publisher.searches)
	}
}

func TestSearch_InvalidCriteriaNeverReachesProvider(t *testing.T) {
	called := false
	items := &mockItemsClient{
		fetchFunc: func(ctx context.Context, q provider.Query) ([]model.BookableItem, error) {
			called = true
			return nil, nil
		},
	}
	svc, _ := newTestService(items, newMockTokenStore())

	tests := []struct {
		name   string
		mutate func(*model.SliceCriteria)
	}{
		{"missing location", func(c *model.SliceCriteria) { c.LocationID = "" }},
		{"missing trainer", func(c *model.SliceCriteria) { c.TrainerID = "" }},
		{"unknown date range", func(c *model.SliceCriteria) { c.DateRange = "forever" }},
		{"window wraps midnight", func(c *model.SliceCriteria) { c.StartHour = 22; c.EndHour = 6 }},
		{"hour out of range", func(c *model.SliceCriteria) { c.EndHour = 24 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := searchCriteria()
			tt.mutate(criteria)

			_, err := svc.Search(context.Background(), criteria, false)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected %s, got %s", apperrors.CodeValidation, appErr.Code)
			}
			if called {
				t.Error("provider was called despite invalid criteria")
			}
		})
	}
}

func TestSearch_UpstreamUnavailable(t *testing.T) {
	items := &mockItemsClient{
		fetchFunc: func(ctx context.Context, q provider.Query) ([]model.BookableItem, error) {
			return nil, provider.ErrUpstreamUnavailable
		},
	}
	svc, publisher := newTestService(items, newMockTokenStore())

	_, err := svc.Search(context.Background(), searchCriteria(), false)
	if err == nil {
		t.Fatal("expected error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeUnavailable {
		t.Errorf("expected %s, got %s", apperrors.CodeUnavailable, appErr.Code)
	}
	if publisher.searches != 0 {
		t.Errorf("expected no search events on failure, got %d", publisher.searches)
	}
}

func TestSearch_EmptyUpstreamProducesEmptyResult(t *testing.T) {
	svc, _ := newTestService(&mockItemsClient{}, newMockTokenStore())

	result, err := svc.Search(context.Background(), searchCriteria(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SliceCount() != 0 {
		t.Errorf("expected empty result, got %d slices", result.SliceCount())
	}
}

func TestSearch_DateRangeSpansQuery(t *testing.T) {
	var gotQuery provider.Query
	items := &mockItemsClient{
		fetchFunc: func(ctx context.Context, q provider.Query) ([]model.BookableItem, error) {
			gotQuery = q
			return nil, nil
		},
	}
	svc, _ := newTestService(items, newMockTokenStore())

	criteria := searchCriteria()
	criteria.DateRange = model.DateRangeMedium

	if _, err := svc.Search(context.Background(), criteria, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantEnd := svc.now().AddDate(0, 0, model.DateRangeDays[model.DateRangeMedium])
	if !gotQuery.EndDate.Equal(wantEnd) {
		t.Errorf("expected end date %s, got %s", wantEnd, gotQuery.EndDate)
	}
}

func TestVerifyBooking(t *testing.T) {
	store := newMockTokenStore()
	svc, _ := newTestService(&mockItemsClient{}, store)

	params := token.Params{
		LocationID:    "loc-1",
		ProgramID:     "prog-1",
		SessionTypeID: "st-1",
		TrainerID:     model.TrainerAll,
		StartHour:     9,
		EndHour:       17,
		DateRange:     model.DateRangeShort,
		SliceID:       "item1-0",
	}
	tok := svc.signer.Generate(params)
	store.records[tok] = &model.TokenRecord{
		Token:   tok,
		SliceID: "item1-0",
		StaffID: "staff-1",
	}

	record, valid, err := svc.VerifyBooking(context.Background(), params, tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !valid {
		t.Fatal("expected token to be valid")
	}
	if record == nil || record.SliceID != "item1-0" {
		t.Fatalf("expected stored record for item1-0, got %+v", record)
	}

	// Tampering with any covered field invalidates the token.
	tampered := params
	tampered.SliceID = "item1-1"
	_, valid, err = svc.VerifyBooking(context.Background(), tampered, tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if valid {
		t.Error("expected tampered params to be invalid")
	}

	// Valid token whose record expired: valid signature, missing metadata.
	delete(store.records, tok)
	_, valid, err = svc.VerifyBooking(context.Background(), params, tok)
	if !valid {
		t.Error("expected signature to remain valid after expiry")
	}
	if err == nil {
		t.Fatal("expected not-found error for expired record")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, appErr.Code)
	}
}
