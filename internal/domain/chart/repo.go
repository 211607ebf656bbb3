package chart

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a rule does not exist.
	ErrNotFound = errors.New("rule not found")
	// ErrDuplicate is returned when a rule_id is already taken.
	ErrDuplicate = errors.New("rule already exists")
)

type RuleRepository interface {
	Create(ctx context.Context, r *Rule) error
	GetByRuleID(ctx context.Context, ruleID string) (*Rule, error)
	List(ctx context.Context, activeOnly bool) ([]*Rule, error)
	Update(ctx context.Context, r *Rule) error
	Delete(ctx context.Context, ruleID string) error
	Count(ctx context.Context) (int, error)
}

// ScoreRepository stores evaluations. Save writes the score and its gaps
// atomically and sets s.ID.
type ScoreRepository interface {
	Save(ctx context.Context, s *Score) error
	History(ctx context.Context, encounterID string, limit int) ([]*Score, error)
}
