package analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chartsense/chartsense/internal/domain/knowledge"
	"github.com/chartsense/chartsense/internal/domain/patient"
	"github.com/chartsense/chartsense/pkg/format"
)

const (
	criticalScore = 60
	maxWeeks      = 52
	maxCodes      = 50
	week          = 7 * 24 * time.Hour
)

var groups = []struct {
	group string
	label string
}{
	{knowledge.GroupCAP, "CAP"},
	{knowledge.GroupDM, "DM Complications"},
	{knowledge.GroupHF, "Heart Failure"},
}

// ErrOutOfRange is returned for window or limit parameters outside the
// accepted bounds.
var ErrOutOfRange = errors.New("parameter out of range")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func complaint(es EncounterScore) string {
	if es.ChiefComplaint == nil {
		return ""
	}
	return *es.ChiefComplaint
}

// Dashboard summarises the ward. Unscored encounters are left out of the
// average and never count as critical.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		encounters []EncounterScore
		pending    int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		encounters, err = s.repo.EncounterScores(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.repo.PendingCodeCount(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		PendingCodes:       pending,
		CriticalEncounters: []CriticalEncounter{},
	}
	perGroup := map[string]int{}
	var sum float64
	var scored int
	for _, es := range encounters {
		if es.LatestScore != nil {
			sum += *es.LatestScore
			scored++
		}
		if es.Status != patient.StatusActive {
			continue
		}
		d.ActiveEncounters++
		perGroup[patient.DiseaseGroup(complaint(es))]++
		if es.LatestScore != nil && *es.LatestScore < criticalScore {
			d.CriticalEncounters = append(d.CriticalEncounters, CriticalEncounter{
				EncounterID: es.EncounterID,
				Score:       *es.LatestScore,
				Band:        format.ScoreBand(*es.LatestScore),
			})
		}
	}
	if scored > 0 {
		d.AverageScore = math.Round(sum / float64(scored))
	}
	d.AverageBand = format.ScoreBand(format.ClampPercent(d.AverageScore))
	for _, grp := range groups {
		d.DiseaseGroups = append(d.DiseaseGroups, GroupCount{Group: grp.group, Count: perGroup[grp.group]})
	}
	return d, nil
}

// Weekly buckets scores and RW calculations into calendar weeks starting on
// Monday (UTC), oldest first, ending with the current week.
func (s *Service) Weekly(ctx context.Context, weeks int) (*WeeklyReport, error) {
	if weeks < 1 || weeks > maxWeeks {
		return nil, fmt.Errorf("%w: weeks must be between 1 and %d", ErrOutOfRange, maxWeeks)
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	thisWeek := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	since := thisWeek.AddDate(0, 0, -7*(weeks-1))

	var (
		scores []ScorePoint
		rws    []RWPoint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scores, err = s.repo.ScoresSince(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		rws, err = s.repo.RWSince(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bucket := func(at time.Time) int {
		if at.Before(since) {
			return -1
		}
		i := int(at.Sub(since) / week)
		if i < 0 || i >= weeks {
			return -1
		}
		return i
	}
	type acc struct {
		sum        float64
		n          int
		encounters map[string]bool
	}
	accs := make([]acc, weeks)
	report := &WeeklyReport{Weeks: make([]WeekStats, weeks)}
	for i := range report.Weeks {
		start := since.AddDate(0, 0, 7*i)
		accs[i].encounters = map[string]bool{}
		report.Weeks[i] = WeekStats{
			Week:      fmt.Sprintf("สัปดาห์ %d", i+1),
			WeekStart: start,
			Label:     format.FormatThaiDate(start),
		}
	}
	for _, p := range scores {
		if i := bucket(p.EvaluatedAt); i >= 0 {
			accs[i].sum += p.Score
			accs[i].n++
			accs[i].encounters[p.EncounterID] = true
		}
	}
	// Each suggest or accept appends a calculation; only the newest one per
	// encounter in a week counts.
	latest := make([]map[string]RWPoint, weeks)
	for _, p := range rws {
		i := bucket(p.CalculatedAt)
		if i < 0 {
			continue
		}
		if latest[i] == nil {
			latest[i] = map[string]RWPoint{}
		}
		if prev, ok := latest[i][p.EncounterID]; !ok || !p.CalculatedAt.Before(prev.CalculatedAt) {
			latest[i][p.EncounterID] = p
		}
	}
	for i, byEncounter := range latest {
		for _, p := range byEncounter {
			report.Weeks[i].TotalRW += p.RWAfter
			report.Weeks[i].RevenueDelta += p.Revenue
		}
	}

	for i := range report.Weeks {
		w := &report.Weeks[i]
		if accs[i].n > 0 {
			w.AvgScore = round(accs[i].sum/float64(accs[i].n), 1)
		}
		w.Encounters = len(accs[i].encounters)
		w.TotalRW = round(w.TotalRW, 4)
		w.RevenueDelta = round(w.RevenueDelta, 2)
		w.RevenueDisplay = format.FormatTHB(w.RevenueDelta)
		report.TotalRevenue += w.RevenueDelta
	}
	report.TotalRevenue = round(report.TotalRevenue, 2)
	report.TotalRevenueDisplay = format.FormatTHB(report.TotalRevenue)
	report.ScoreImprovement = round(report.Weeks[weeks-1].AvgScore-report.Weeks[0].AvgScore, 1)
	return report, nil
}

// DiseaseGroups reports, per disease group, the number of encounters and
// the averages of their latest score and RW delta.
func (s *Service) DiseaseGroups(ctx context.Context) ([]GroupStats, error) {
	encounters, err := s.repo.EncounterScores(ctx)
	if err != nil {
		return nil, err
	}
	type acc struct {
		count            int
		scoreSum, rwSum  float64
		scored, weighted int
	}
	accs := map[string]*acc{}
	for _, g := range groups {
		accs[g.group] = &acc{}
	}
	for _, es := range encounters {
		a := accs[patient.DiseaseGroup(complaint(es))]
		a.count++
		if es.LatestScore != nil {
			a.scoreSum += *es.LatestScore
			a.scored++
		}
		if es.LatestRWDelta != nil {
			a.rwSum += *es.LatestRWDelta
			a.weighted++
		}
	}

	out := make([]GroupStats, 0, len(groups))
	for _, g := range groups {
		a := accs[g.group]
		gs := GroupStats{Group: g.group, Label: g.label, Count: a.count}
		if a.scored > 0 {
			gs.AvgScore = round(a.scoreSum/float64(a.scored), 1)
		}
		if a.weighted > 0 {
			gs.AvgRWDelta = round(a.rwSum/float64(a.weighted), 2)
		}
		out = append(out, gs)
	}
	return out, nil
}

// TopMissingCodes lists the most frequently suggested codes.
func (s *Service) TopMissingCodes(ctx context.Context, limit int) ([]CodeFrequency, error) {
	if limit < 1 || limit > maxCodes {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrOutOfRange, maxCodes)
	}
	codes, err := s.repo.TopSuggestedCodes(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range codes {
		codes[i].AvgRW = round(codes[i].AvgRW, 4)
	}
	return codes, nil
}
