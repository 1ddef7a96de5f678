package meals

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRecord = errors.New("invalid meal record")

// Store persists meal records.
type Store interface {
	UpsertWeek(ctx context.Context, records []Record) error
	Week(ctx context.Context, personRef string, from, to time.Time) ([]Record, error)
}

// Service validates and submits weekly meal plans.
type Service struct {
	store Store
}

func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("meals: nil store")
	}
	return &Service{store: store}, nil
}

// SubmitWeek validates the batch and writes it in one statement. Records
// for days already submitted are overwritten, so resubmitting a week is
// always safe.
func (s *Service) SubmitWeek(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no records", ErrInvalidRecord)
	}
	if len(records) > 7 {
		return fmt.Errorf("%w: at most 7 records per submission, got %d", ErrInvalidRecord, len(records))
	}
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if !r.PersonType.Valid() {
			return fmt.Errorf("%w: record %d: unknown person type %q", ErrInvalidRecord, i, r.PersonType)
		}
		if r.PersonRef == "" {
			return fmt.Errorf("%w: record %d: missing person_ref", ErrInvalidRecord, i)
		}
		if r.Date.IsZero() {
			return fmt.Errorf("%w: record %d: missing date", ErrInvalidRecord, i)
		}
		key := r.PersonRef + "|" + r.Date.Format("2006-01-02")
		if seen[key] {
			return fmt.Errorf("%w: record %d: duplicate day %s", ErrInvalidRecord, i, r.Date.Format("2006-01-02"))
		}
		seen[key] = true
	}
	return s.store.UpsertWeek(ctx, records)
}

// Week returns the records for one person inside [from, to].
func (s *Service) Week(ctx context.Context, personRef string, from, to time.Time) ([]Record, error) {
	if personRef == "" {
		return nil, fmt.Errorf("%w: missing person_ref", ErrInvalidRecord)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidRecord)
	}
	return s.store.Week(ctx, personRef, from, to)
}
