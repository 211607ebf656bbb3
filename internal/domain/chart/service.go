package chart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chartsense/chartsense/internal/domain/patient"
	"github.com/chartsense/chartsense/internal/platform/cache"
	"github.com/chartsense/chartsense/internal/platform/events"
)

// SnapshotLoader loads the clinical data an evaluation needs. The boolean
// reports that demo data stood in for an unknown encounter.
type SnapshotLoader interface {
	ChartSnapshotOrDemo(ctx context.Context, encounterID string) (*patient.Snapshot, bool, error)
}

// ScoreCache is satisfied by *cache.JSON[Score].
type ScoreCache interface {
	Get(ctx context.Context, key string) (*Score, error)
	Set(ctx context.Context, key string, s *Score) error
	Flush(ctx context.Context) (int, error)
}

const historyLimit = 50

type Service struct {
	rules     RuleRepository
	scores    ScoreRepository
	snapshots SnapshotLoader
	logger    zerolog.Logger

	cache     ScoreCache
	publisher events.Publisher
	metrics   *Metrics
	now       func() time.Time
}

func NewService(rules RuleRepository, scores ScoreRepository, snapshots SnapshotLoader, logger zerolog.Logger) *Service {
	return &Service{
		rules:     rules,
		scores:    scores,
		snapshots: snapshots,
		logger:    logger,
		publisher: events.Nop{},
		now:       time.Now,
	}
}

func (s *Service) SetCache(c ScoreCache)           { s.cache = c }
func (s *Service) SetPublisher(p events.Publisher) { s.publisher = p }
func (s *Service) SetMetrics(m *Metrics)           { s.metrics = m }

// Score returns the cached score of an encounter or, on a miss, a fresh
// evaluation that is cached but not persisted.
func (s *Service) Score(ctx context.Context, encounterID string) (*Score, error) {
	if cached := s.cached(ctx, encounterID); cached != nil {
		return cached, nil
	}
	score, _, err := s.compute(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, score)
	return score, nil
}

// Evaluate scores an encounter. Without forceRefresh a cached score is
// returned as is. Fresh scores of real encounters are persisted, cached
// and announced with a chart.evaluated event.
func (s *Service) Evaluate(ctx context.Context, encounterID string, forceRefresh bool) (*Score, error) {
	if encounterID == "" {
		return nil, fmt.Errorf("encounter_id is required")
	}
	if !forceRefresh {
		if cached := s.cached(ctx, encounterID); cached != nil {
			return cached, nil
		}
	}
	score, demo, err := s.compute(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if demo {
		return score, nil
	}
	if err := s.scores.Save(ctx, score); err != nil {
		return nil, fmt.Errorf("save chart score: %w", err)
	}
	s.store(ctx, score)
	s.publish(ctx, score)
	return score, nil
}

func (s *Service) History(ctx context.Context, encounterID string) ([]*Score, error) {
	scores, err := s.scores.History(ctx, encounterID, historyLimit)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []*Score{}
	}
	return scores, nil
}

func (s *Service) compute(ctx context.Context, encounterID string) (*Score, bool, error) {
	snap, demo, err := s.snapshots.ChartSnapshotOrDemo(ctx, encounterID)
	if err != nil {
		return nil, false, err
	}
	rules, err := s.rules.List(ctx, true)
	if err != nil {
		return nil, false, fmt.Errorf("list rules: %w", err)
	}
	if len(rules) == 0 && demo {
		rules = DefaultRules()
	}

	score := Evaluate(snap, rules)
	score.EvaluatedAt = s.now().UTC()
	score.Demo = demo
	if s.metrics != nil {
		source := "fresh"
		if demo {
			source = "demo"
		}
		s.metrics.Evaluations.WithLabelValues(score.Grade, source).Inc()
		s.metrics.Scores.Observe(score.TotalScore)
	}
	return score, demo, nil
}

func (s *Service) cached(ctx context.Context, encounterID string) *Score {
	if s.cache == nil {
		return nil
	}
	score, err := s.cache.Get(ctx, encounterID)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn().Err(err).Str("encounter_id", encounterID).Msg("chart score cache read failed")
		}
		return nil
	}
	score.Cached = true
	if s.metrics != nil {
		s.metrics.Evaluations.WithLabelValues(score.Grade, "cached").Inc()
	}
	return score
}

func (s *Service) store(ctx context.Context, score *Score) {
	if s.cache == nil || score.Demo {
		return
	}
	if err := s.cache.Set(ctx, score.EncounterID, score); err != nil {
		s.logger.Warn().Err(err).Str("encounter_id", score.EncounterID).Msg("chart score cache write failed")
	}
}

func (s *Service) publish(ctx context.Context, score *Score) {
	e, err := events.NewEvent(events.ChartEvaluated, "encounter", score.EncounterID, map[string]interface{}{
		"score_id":    score.ID,
		"total_score": score.TotalScore,
		"grade":       score.Grade,
		"gaps":        len(score.Gaps),
	})
	if err == nil {
		err = s.publisher.Publish(ctx, e)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("encounter_id", score.EncounterID).Msg("publish chart.evaluated failed")
	}
}

// invalidate drops every cached score after a rule change.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	n, err := s.cache.Flush(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("chart score cache flush failed")
		return
	}
	s.logger.Debug().Int("keys", n).Msg("chart score cache flushed")
}

// -- Rules --

func (s *Service) ListRules(ctx context.Context) ([]*Rule, error) {
	rules, err := s.rules.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []*Rule{}
	}
	return rules, nil
}

func (s *Service) GetRule(ctx context.Context, ruleID string) (*Rule, error) {
	return s.rules.GetByRuleID(ctx, ruleID)
}

func (s *Service) CountRules(ctx context.Context) (int, error) {
	return s.rules.Count(ctx)
}

func (s *Service) CreateRule(ctx context.Context, req *RuleCreateRequest) (*Rule, error) {
	if req.RuleID == "" {
		return nil, fmt.Errorf("rule_id is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Condition.Type == "" {
		return nil, fmt.Errorf("condition.type is required")
	}
	if !validCategory(req.Category) {
		return nil, fmt.Errorf("invalid category: %s", req.Category)
	}
	r := &Rule{
		RuleID:      req.RuleID,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Weight:      1,
		Condition:   req.Condition,
		Active:      true,
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, fmt.Errorf("weight must not be negative")
		}
		r.Weight = *req.Weight
	}
	if req.Active != nil {
		r.Active = *req.Active
	}
	if err := s.rules.Create(ctx, r); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return r, nil
}

// SeedRule stores r as given. Used by the seeder.
func (s *Service) SeedRule(ctx context.Context, r *Rule) error {
	return s.rules.Create(ctx, r)
}

func (s *Service) UpdateRule(ctx context.Context, ruleID string, req *RuleUpdateRequest) (*Rule, error) {
	r, err := s.rules.GetByRuleID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name must not be empty")
		}
		r.Name = *req.Name
	}
	if req.Description != nil {
		r.Description = req.Description
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, fmt.Errorf("weight must not be negative")
		}
		r.Weight = *req.Weight
	}
	if req.Condition != nil {
		if req.Condition.Type == "" {
			return nil, fmt.Errorf("condition.type is required")
		}
		r.Condition = *req.Condition
	}
	if req.Active != nil {
		r.Active = *req.Active
	}
	if err := s.rules.Update(ctx, r); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return r, nil
}

func (s *Service) DeleteRule(ctx context.Context, ruleID string) error {
	if err := s.rules.Delete(ctx, ruleID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func validCategory(c string) bool {
	for _, cw := range categoryWeights {
		if cw.category == c {
			return true
		}
	}
	return false
}
