package coding

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a suggestion does not exist.
var ErrNotFound = errors.New("code suggestion not found")

type Repository interface {
	// ReplacePending drops the encounter's PENDING suggestions and stores
	// items in their place, assigning IDs.
	ReplacePending(ctx context.Context, encounterID string, items []*Suggestion) error
	ListByEncounter(ctx context.Context, encounterID, status string) ([]*Suggestion, error)
	GetByIDs(ctx context.Context, encounterID string, ids []int64) ([]*Suggestion, error)
	UpdateStatus(ctx context.Context, ids []int64, status string) error
	SaveRW(ctx context.Context, calc *RWCalculation) error
}
