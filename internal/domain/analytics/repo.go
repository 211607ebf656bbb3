package analytics

import (
	"context"
	"time"
)

// Repository reads the aggregates behind the analytics views. It never
// writes.
type Repository interface {
	EncounterScores(ctx context.Context) ([]EncounterScore, error)
	PendingCodeCount(ctx context.Context) (int, error)
	ScoresSince(ctx context.Context, since time.Time) ([]ScorePoint, error)
	RWSince(ctx context.Context, since time.Time) ([]RWPoint, error)
	TopSuggestedCodes(ctx context.Context, limit int) ([]CodeFrequency, error)
}
