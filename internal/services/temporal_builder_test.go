package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"aerometrics/fleetdw/internal/constants"
)

// Mock temporal store
type mockTemporalStore struct {
	months   map[[2]int]int
	temporal map[string]int
	nextID   int

	monthCalls    int
	temporalCalls int
}

func newMockTemporalStore() *mockTemporalStore {
	return &mockTemporalStore{
		months:   make(map[[2]int]int),
		temporal: make(map[string]int),
		nextID:   1,
	}
}

func (m *mockTemporalStore) ResolveMonth(ctx context.Context, year, month int) (int, bool, error) {
	m.monthCalls++
	key := [2]int{year, month}
	if id, ok := m.months[key]; ok {
		return id, false, nil
	}
	id := m.nextID
	m.nextID++
	m.months[key] = id
	return id, true, nil
}

func (m *mockTemporalStore) ResolveTemporal(ctx context.Context, monthID int, periodStart time.Time) (int, bool, error) {
	m.temporalCalls++
	key := periodStart.Format("2006-01-02")
	if id, ok := m.temporal[key]; ok {
		return id, false, nil
	}
	id := m.nextID
	m.nextID++
	m.temporal[key] = id
	return id, true, nil
}

func TestTemporalKeyBuilder_SameMonthSharesMonthsRow(t *testing.T) {
	store := newMockTemporalStore()
	builder := NewTemporalKeyBuilder(store)
	ctx := context.Background()

	first, err := builder.PeriodKey(ctx, ts("2024-01-03T10:00:00Z"))
	if err != nil {
		t.Fatalf("PeriodKey returned error: %v", err)
	}
	second, err := builder.PeriodKey(ctx, ts("2024-01-28T23:00:00Z"))
	if err != nil {
		t.Fatalf("PeriodKey returned error: %v", err)
	}

	if first != second {
		t.Errorf("timestamps in the same month must share a period key: %d vs %d", first, second)
	}

	monthID, err := builder.MonthKey(ctx, ts("2024-01-15T00:00:00Z"))
	if err != nil {
		t.Fatalf("MonthKey returned error: %v", err)
	}
	if monthID != 1 {
		t.Errorf("expected first created month id 1, got %d", monthID)
	}

	// Memoization keeps repeated keys off the storage layer
	if store.monthCalls != 1 {
		t.Errorf("expected 1 month resolution, got %d", store.monthCalls)
	}
	if store.temporalCalls != 1 {
		t.Errorf("expected 1 temporal resolution, got %d", store.temporalCalls)
	}

	months, periods := builder.Created()
	if months != 1 || periods != 1 {
		t.Errorf("expected 1 month and 1 period created, got %d and %d", months, periods)
	}
}

func TestTemporalKeyBuilder_DistinctMonths(t *testing.T) {
	store := newMockTemporalStore()
	builder := NewTemporalKeyBuilder(store)
	ctx := context.Background()

	jan, err := builder.PeriodKey(ctx, ts("2024-01-31T23:59:00Z"))
	if err != nil {
		t.Fatalf("PeriodKey returned error: %v", err)
	}
	feb, err := builder.PeriodKey(ctx, ts("2024-02-01T00:01:00Z"))
	if err != nil {
		t.Fatalf("PeriodKey returned error: %v", err)
	}

	if jan == feb {
		t.Error("adjacent months must not share a period key")
	}

	months, periods := builder.Created()
	if months != 2 || periods != 2 {
		t.Errorf("expected 2 months and 2 periods created, got %d and %d", months, periods)
	}
}

func TestTemporalKeyBuilder_RejectsBadTimestamps(t *testing.T) {
	builder := NewTemporalKeyBuilder(newMockTemporalStore())
	ctx := context.Background()

	_, err := builder.PeriodKey(ctx, time.Time{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for zero timestamp, got %v", err)
	}
	if vErr.Code != constants.RejectMissingTimestamp {
		t.Errorf("expected %s, got %s", constants.RejectMissingTimestamp, vErr.Code)
	}

	_, err = builder.MonthKey(ctx, ts("2150-06-01T00:00:00Z"))
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for out-of-range timestamp, got %v", err)
	}
	if vErr.Code != constants.RejectTimestampRange {
		t.Errorf("expected %s, got %s", constants.RejectTimestampRange, vErr.Code)
	}
}
