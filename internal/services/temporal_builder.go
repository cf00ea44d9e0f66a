package services

import (
	"context"
	"time"

	"aerometrics/fleetdw/internal/constants"
)

// TemporalStore is the slice of the dimension repository used for time
// keys. Satisfied by repositories.DimensionRepository.
type TemporalStore interface {
	ResolveMonth(ctx context.Context, year, month int) (int, bool, error)
	ResolveTemporal(ctx context.Context, monthID int, periodStart time.Time) (int, bool, error)
}

type monthKey struct {
	year  int
	month int
}

// TemporalKeyBuilder derives month and reporting-period surrogate keys
// from timestamps. Two timestamps in the same calendar month share one
// Months row; the default deployment emits one reporting period per month
// (period start = first of the month), but the schema allows sub-month
// periods. Keys already resolved in this load are memoized.
//
// The builder is bound to one load transaction and is not safe for
// concurrent use, matching the single-writer transaction underneath it.
type TemporalKeyBuilder struct {
	store TemporalStore

	months  map[monthKey]int
	periods map[monthKey]int

	monthsCreated  int
	periodsCreated int
}

func NewTemporalKeyBuilder(store TemporalStore) *TemporalKeyBuilder {
	return &TemporalKeyBuilder{
		store:   store,
		months:  make(map[monthKey]int),
		periods: make(map[monthKey]int),
	}
}

// MonthKey resolves the Months surrogate key for a timestamp
func (b *TemporalKeyBuilder) MonthKey(ctx context.Context, ts time.Time) (int, error) {
	if err := checkTimestamp(ts); err != nil {
		return 0, err
	}

	key := monthKey{year: ts.Year(), month: int(ts.Month())}
	if id, ok := b.months[key]; ok {
		return id, nil
	}

	id, created, err := b.store.ResolveMonth(ctx, key.year, key.month)
	if err != nil {
		return 0, err
	}
	if created {
		b.monthsCreated++
	}

	b.months[key] = id
	return id, nil
}

// PeriodKey resolves the TemporalDimension surrogate key for a timestamp,
// creating the underlying Months row first when needed
func (b *TemporalKeyBuilder) PeriodKey(ctx context.Context, ts time.Time) (int, error) {
	monthID, err := b.MonthKey(ctx, ts)
	if err != nil {
		return 0, err
	}

	key := monthKey{year: ts.Year(), month: int(ts.Month())}
	if id, ok := b.periods[key]; ok {
		return id, nil
	}

	periodStart := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
	id, created, err := b.store.ResolveTemporal(ctx, monthID, periodStart)
	if err != nil {
		return 0, err
	}
	if created {
		b.periodsCreated++
	}

	b.periods[key] = id
	return id, nil
}

// Created reports how many Months and TemporalDimension rows this load
// brought into existence
func (b *TemporalKeyBuilder) Created() (months, periods int) {
	return b.monthsCreated, b.periodsCreated
}

func checkTimestamp(ts time.Time) error {
	if ts.IsZero() {
		return &ValidationError{RecordType: "timestamp", Code: constants.RejectMissingTimestamp}
	}
	if !timestampInRange(ts) {
		return &ValidationError{RecordType: "timestamp", Code: constants.RejectTimestampRange}
	}
	return nil
}
