package chart

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chartsense/chartsense/internal/domain/patient"
	"github.com/chartsense/chartsense/internal/platform/cache"
	"github.com/chartsense/chartsense/internal/platform/events"
)

// -- Mock Repositories --

type mockRuleRepo struct {
	mu     sync.Mutex
	rules  map[string]*Rule
	nextID int64
}

func newMockRuleRepo(seed ...*Rule) *mockRuleRepo {
	m := &mockRuleRepo{rules: make(map[string]*Rule)}
	for _, r := range seed {
		m.Create(context.Background(), r)
	}
	return m
}

func (m *mockRuleRepo) Create(_ context.Context, r *Rule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[r.RuleID]; ok {
		return ErrDuplicate
	}
	m.nextID++
	r.ID = m.nextID
	m.rules[r.RuleID] = r
	return nil
}

func (m *mockRuleRepo) GetByRuleID(_ context.Context, ruleID string) (*Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rules[ruleID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRuleRepo) List(_ context.Context, activeOnly bool) ([]*Rule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Rule
	for _, r := range m.rules {
		if activeOnly && !r.Active {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRuleRepo) Update(_ context.Context, r *Rule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[r.RuleID]; !ok {
		return ErrNotFound
	}
	m.rules[r.RuleID] = r
	return nil
}

func (m *mockRuleRepo) Delete(_ context.Context, ruleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[ruleID]; !ok {
		return ErrNotFound
	}
	delete(m.rules, ruleID)
	return nil
}

func (m *mockRuleRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rules), nil
}

type mockScoreRepo struct {
	mu     sync.Mutex
	saved  []*Score
	err    error
	nextID int64
}

func (m *mockScoreRepo) Save(_ context.Context, s *Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	s.ID = m.nextID
	m.saved = append(m.saved, s)
	return nil
}

func (m *mockScoreRepo) History(_ context.Context, encounterID string, limit int) ([]*Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Score
	for i := len(m.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if m.saved[i].EncounterID == encounterID {
			out = append(out, m.saved[i])
		}
	}
	return out, nil
}

type mockLoader struct {
	snaps    map[string]*patient.Snapshot
	demoMode bool
	loads    int
}

func (m *mockLoader) ChartSnapshotOrDemo(_ context.Context, encounterID string) (*patient.Snapshot, bool, error) {
	m.loads++
	if snap, ok := m.snaps[encounterID]; ok {
		return snap, false, nil
	}
	if m.demoMode {
		return patient.DemoChartSnapshot(encounterID), true, nil
	}
	return nil, false, patient.ErrNotFound
}

type testEnv struct {
	svc     *Service
	rules   *mockRuleRepo
	scores  *mockScoreRepo
	loader  *mockLoader
	events  *events.Recorder
	metrics *Metrics
	redis   *miniredis.Miniredis
	cache   *cache.JSON[Score]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	env := &testEnv{
		rules:  newMockRuleRepo(DefaultRules()...),
		scores: &mockScoreRepo{},
		loader: &mockLoader{snaps: map[string]*patient.Snapshot{
			"AN001": patient.DemoChartSnapshot("AN001"),
		}},
		events:  &events.Recorder{},
		metrics: NewMetrics(prometheus.NewRegistry()),
		redis:   mr,
		cache:   cache.NewJSON[Score](rdb, "chart_score", 10*time.Minute, nil),
	}
	env.svc = NewService(env.rules, env.scores, env.loader, zerolog.Nop())
	env.svc.SetCache(env.cache)
	env.svc.SetPublisher(env.events)
	env.svc.SetMetrics(env.metrics)
	env.svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return env
}

func TestService_Evaluate_PersistsCachesAndPublishes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	score, err := env.svc.Evaluate(ctx, "AN001", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.ID != 1 || score.Cached || score.Demo {
		t.Errorf("expected persisted fresh score, got %+v", score)
	}
	if score.TotalScore != 86.8 {
		t.Errorf("expected 86.8, got %v", score.TotalScore)
	}
	if !score.EvaluatedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected evaluated_at %v", score.EvaluatedAt)
	}
	if len(env.scores.saved) != 1 {
		t.Errorf("expected 1 saved score, got %d", len(env.scores.saved))
	}
	if !env.redis.Exists("chart_score:AN001") {
		t.Error("expected score cached")
	}

	published := env.events.Events()
	if len(published) != 1 || published[0].Type != events.ChartEvaluated || published[0].ResourceID != "AN001" {
		t.Errorf("unexpected events: %+v", published)
	}
	if got := testutil.ToFloat64(env.metrics.Evaluations.WithLabelValues("B", "fresh")); got != 1 {
		t.Errorf("expected 1 fresh evaluation, got %v", got)
	}
}

func TestService_Evaluate_ReturnsCachedUnlessForced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Evaluate(ctx, "AN001", false); err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	again, err := env.svc.Evaluate(ctx, "AN001", false)
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if !again.Cached || env.loader.loads != 1 || len(env.scores.saved) != 1 {
		t.Errorf("expected cached score without reload, cached=%v loads=%d saved=%d",
			again.Cached, env.loader.loads, len(env.scores.saved))
	}

	forced, err := env.svc.Evaluate(ctx, "AN001", true)
	if err != nil {
		t.Fatalf("forced evaluate: %v", err)
	}
	if forced.Cached || env.loader.loads != 2 || len(env.scores.saved) != 2 {
		t.Errorf("expected re-evaluation, cached=%v loads=%d saved=%d",
			forced.Cached, env.loader.loads, len(env.scores.saved))
	}
	if len(env.events.Events()) != 2 {
		t.Errorf("expected 2 events, got %d", len(env.events.Events()))
	}
}

func TestService_Score_CachesWithoutPersisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Score(ctx, "AN001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached || first.ID != 0 {
		t.Errorf("expected fresh unsaved score, got %+v", first)
	}
	second, err := env.svc.Score(ctx, "AN001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached || second.TotalScore != first.TotalScore {
		t.Errorf("expected cached copy, got %+v", second)
	}
	if len(env.scores.saved) != 0 || len(env.events.Events()) != 0 {
		t.Error("expected no persistence or events from a read")
	}
}

func TestService_Score_CacheExpires(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.svc.Score(ctx, "AN001")
	env.redis.FastForward(11 * time.Minute)
	score, err := env.svc.Score(ctx, "AN001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Cached || env.loader.loads != 2 {
		t.Errorf("expected a fresh evaluation after ttl, cached=%v loads=%d", score.Cached, env.loader.loads)
	}
}

func TestService_Demo(t *testing.T) {
	env := newTestEnv(t)
	env.loader.demoMode = true
	ctx := context.Background()

	score, err := env.svc.Evaluate(ctx, "AN-UNKNOWN", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !score.Demo || score.ID != 0 {
		t.Errorf("expected unsaved demo score, got %+v", score)
	}
	if len(env.scores.saved) != 0 || len(env.events.Events()) != 0 || env.redis.Exists("chart_score:AN-UNKNOWN") {
		t.Error("demo scores must not be persisted, cached or published")
	}
}

func TestService_Demo_FallsBackToDefaultRules(t *testing.T) {
	env := newTestEnv(t)
	env.loader.demoMode = true
	env.svc.rules = newMockRuleRepo()

	score, err := env.svc.Score(context.Background(), "AN-X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.TotalScore != 86.8 {
		t.Errorf("expected demo score 86.8 from default rules, got %v", score.TotalScore)
	}
}

func TestService_UnknownEncounter(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Evaluate(context.Background(), "AN404", true)
	if !errors.Is(err, patient.ErrNotFound) {
		t.Errorf("expected patient.ErrNotFound, got %v", err)
	}
}

func TestService_Evaluate_RequiresEncounterID(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.Evaluate(context.Background(), "", false); err == nil {
		t.Error("expected error for empty encounter id")
	}
}

func TestService_Evaluate_SaveErrorNotCached(t *testing.T) {
	env := newTestEnv(t)
	env.scores.err = errors.New("db down")

	if _, err := env.svc.Evaluate(context.Background(), "AN001", true); err == nil {
		t.Fatal("expected save error")
	}
	if env.redis.Exists("chart_score:AN001") || len(env.events.Events()) != 0 {
		t.Error("expected nothing cached or published after a failed save")
	}
}

func TestService_Evaluate_PublishFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.events.Err = errors.New("broker unavailable")

	if _, err := env.svc.Evaluate(context.Background(), "AN001", true); err != nil {
		t.Errorf("expected publish failure to be logged only, got %v", err)
	}
}

func TestService_WithoutCache(t *testing.T) {
	env := newTestEnv(t)
	env.svc.SetCache(nil)
	ctx := context.Background()

	env.svc.Score(ctx, "AN001")
	score, err := env.svc.Score(ctx, "AN001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Cached || env.loader.loads != 2 {
		t.Errorf("expected every read to evaluate, cached=%v loads=%d", score.Cached, env.loader.loads)
	}
}

func TestService_History(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	empty, err := env.svc.History(ctx, "AN001")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil history, got %v %v", empty, err)
	}
	env.svc.Evaluate(ctx, "AN001", true)
	env.svc.Evaluate(ctx, "AN001", true)
	history, _ := env.svc.History(ctx, "AN001")
	if len(history) != 2 || history[0].ID != 2 {
		t.Errorf("expected 2 scores newest first, got %+v", history)
	}
}

// -- Rules --

func TestService_CreateRule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.svc.Score(ctx, "AN001")

	r, err := env.svc.CreateRule(ctx, &RuleCreateRequest{
		RuleID:    "DO-06",
		Category:  CategoryDocumentation,
		Name:      "Discharge plan",
		Condition: Condition{Type: CondRequiredIf, Trigger: "discharged"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Weight != 1 || !r.Active {
		t.Errorf("expected default weight 1 and active, got %+v", r)
	}
	if env.redis.Exists("chart_score:AN001") {
		t.Error("expected cached scores invalidated")
	}

	_, err = env.svc.CreateRule(ctx, &RuleCreateRequest{
		RuleID: "DO-06", Category: CategoryDocumentation, Name: "dup", Condition: Condition{Type: CondRequiredIf},
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestService_CreateRule_Validation(t *testing.T) {
	env := newTestEnv(t)
	neg := -1.0
	tests := []struct {
		name string
		req  RuleCreateRequest
	}{
		{"missing rule id", RuleCreateRequest{Category: CategoryDiagnosis, Name: "n", Condition: Condition{Type: "X"}}},
		{"missing name", RuleCreateRequest{RuleID: "R", Category: CategoryDiagnosis, Condition: Condition{Type: "X"}}},
		{"missing condition type", RuleCreateRequest{RuleID: "R", Category: CategoryDiagnosis, Name: "n"}},
		{"bad category", RuleCreateRequest{RuleID: "R", Category: "BILLING", Name: "n", Condition: Condition{Type: "X"}}},
		{"negative weight", RuleCreateRequest{RuleID: "R", Category: CategoryDiagnosis, Name: "n", Weight: &neg, Condition: Condition{Type: "X"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.svc.CreateRule(context.Background(), &tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestService_UpdateRule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, _ := env.svc.Evaluate(ctx, "AN001", true)
	inactive := false
	weight := 20.0
	r, err := env.svc.UpdateRule(ctx, "DX-02", &RuleUpdateRequest{Active: &inactive, Weight: &weight})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Active || r.Weight != 20 || r.Name != "SDx: Hypertension (if BP↑)" {
		t.Errorf("unexpected rule after update: %+v", r)
	}

	after, _ := env.svc.Evaluate(ctx, "AN001", false)
	if after.Cached {
		t.Error("expected cache invalidated by rule update")
	}
	if after.TotalScore <= before.TotalScore {
		t.Errorf("expected score to rise once DX-02 is inactive, %v -> %v", before.TotalScore, after.TotalScore)
	}

	if _, err := env.svc.UpdateRule(ctx, "NOPE", &RuleUpdateRequest{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	empty := ""
	if _, err := env.svc.UpdateRule(ctx, "DX-01", &RuleUpdateRequest{Name: &empty}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestService_DeleteRule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if err := env.svc.DeleteRule(ctx, "DO-05"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := env.svc.CountRules(ctx); n != 19 {
		t.Errorf("expected 19 rules, got %d", n)
	}
	if err := env.svc.DeleteRule(ctx, "DO-05"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
