package coding

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chartsense/chartsense/internal/domain/patient"
	"github.com/chartsense/chartsense/internal/platform/db"
	"github.com/chartsense/chartsense/internal/platform/events"
	"github.com/chartsense/chartsense/pkg/format"
)

// SnapshotLoader loads the clinical data suggestions are computed from.
type SnapshotLoader interface {
	SnapshotOrDemo(ctx context.Context, encounterID string) (*patient.Snapshot, bool, error)
}

// DiagnosisWriter records accepted codes on the encounter.
type DiagnosisWriter interface {
	AddAIDiagnoses(ctx context.Context, encounterID string, dxs []*patient.Diagnosis) ([]*patient.Diagnosis, error)
}

type Service struct {
	repo      Repository
	snapshots SnapshotLoader
	diagnoses DiagnosisWriter
	baseRate  float64
	logger    zerolog.Logger

	tx        db.TxBeginner
	publisher events.Publisher
	metrics   *Metrics
}

func NewService(repo Repository, snapshots SnapshotLoader, diagnoses DiagnosisWriter, baseRate float64, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		diagnoses: diagnoses,
		baseRate:  baseRate,
		logger:    logger,
		publisher: events.Nop{},
	}
}

// SetTxBeginner makes multi-table writes atomic. Without one they run
// on the context as given.
func (s *Service) SetTxBeginner(b db.TxBeginner)   { s.tx = b }
func (s *Service) SetPublisher(p events.Publisher) { s.publisher = p }
func (s *Service) SetMetrics(m *Metrics)           { s.metrics = m }

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.tx, fn)
}

// Suggest computes code suggestions and their RW impact for an encounter.
// For real encounters the suggestions replace the pending ones on file and
// the RW calculation is recorded.
func (s *Service) Suggest(ctx context.Context, encounterID string) (*SuggestionResponse, error) {
	snap, demo, err := s.snapshots.SnapshotOrDemo(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	items := Suggest(snap)
	current := snap.DiagnosisCodes()
	suggested := make([]string, 0, len(items))
	for _, it := range items {
		suggested = append(suggested, it.ICDCode)
	}
	rw := CalculateRW(current, suggested, s.baseRate)
	drg := DRG(primaryCode(snap), append(append([]string{}, current...), suggested...))

	if !demo {
		err := s.inTx(ctx, func(ctx context.Context) error {
			if err := s.repo.ReplacePending(ctx, encounterID, items); err != nil {
				return fmt.Errorf("save suggestions: %w", err)
			}
			return s.repo.SaveRW(ctx, &RWCalculation{
				EncounterID:   encounterID,
				DRG:           drg,
				RWBefore:      rw.Before,
				RWAfter:       rw.After,
				Delta:         rw.Delta,
				RevenueImpact: rw.Revenue,
			})
		})
		if err != nil {
			return nil, err
		}
	}
	if s.metrics != nil {
		for _, code := range suggested {
			s.metrics.Suggestions.WithLabelValues(code).Inc()
		}
	}

	return &SuggestionResponse{
		EncounterID:      encounterID,
		Suggestions:      items,
		RWBefore:         rw.Before,
		RWAfter:          rw.After,
		RWDelta:          rw.Delta,
		RevenueImpactTHB: rw.Revenue,
		RevenueDisplay:   format.FormatTHB(rw.Revenue),
		DRG:              drg,
		Demo:             demo,
	}, nil
}

// List returns the suggestions on file for an encounter, optionally
// filtered by status.
func (s *Service) List(ctx context.Context, encounterID, status string) ([]*Suggestion, error) {
	status = strings.ToUpper(status)
	switch status {
	case "", StatusPending, StatusAccepted, StatusRejected:
	default:
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	return s.repo.ListByEncounter(ctx, encounterID, status)
}

// Accept marks suggestions ACCEPTED and adds their codes to the encounter as
// AI-sourced secondary diagnoses. Demo encounters acknowledge the request
// without writing anything.
func (s *Service) Accept(ctx context.Context, encounterID string, ids []int64) (*AcceptResponse, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("suggestion_ids is required")
	}
	snap, demo, err := s.snapshots.SnapshotOrDemo(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if demo {
		return acceptResponse(encounterID, unique(ids), nil, []string{}, RWResult{}), nil
	}

	var (
		accepted, missing []int64
		rw                RWResult
	)
	codes := []string{}
	err = s.inTx(ctx, func(ctx context.Context) error {
		found, err := s.repo.GetByIDs(ctx, encounterID, ids)
		if err != nil {
			return fmt.Errorf("load suggestions: %w", err)
		}
		accepted, missing = partition(ids, found)
		if len(accepted) == 0 {
			return nil
		}
		if err := s.repo.UpdateStatus(ctx, accepted, StatusAccepted); err != nil {
			return fmt.Errorf("accept suggestions: %w", err)
		}

		dxs := make([]*patient.Diagnosis, 0, len(found))
		for _, f := range found {
			conf := f.Confidence
			dxs = append(dxs, &patient.Diagnosis{
				ICDCode:     f.ICDCode,
				Description: f.Description,
				Confidence:  &conf,
				Evidence:    f.Evidence,
			})
		}
		added, err := s.diagnoses.AddAIDiagnoses(ctx, encounterID, dxs)
		if err != nil {
			return err
		}
		for _, d := range added {
			codes = append(codes, d.ICDCode)
		}

		current := snap.DiagnosisCodes()
		rw = CalculateRW(current, codes, s.baseRate)
		return s.repo.SaveRW(ctx, &RWCalculation{
			EncounterID:   encounterID,
			DRG:           DRG(primaryCode(snap), append(append([]string{}, current...), codes...)),
			RWBefore:      rw.Before,
			RWAfter:       rw.After,
			Delta:         rw.Delta,
			RevenueImpact: rw.Revenue,
		})
	})
	if err != nil {
		return nil, err
	}

	if len(accepted) > 0 {
		if s.metrics != nil {
			s.metrics.Decisions.WithLabelValues(StatusAccepted).Add(float64(len(accepted)))
			if rw.Revenue > 0 {
				s.metrics.Revenue.Add(rw.Revenue)
			}
		}
		s.publishAccepted(ctx, encounterID, accepted, codes, rw)
	}
	return acceptResponse(encounterID, accepted, missing, codes, rw), nil
}

func acceptResponse(encounterID string, accepted, missing []int64, codes []string, rw RWResult) *AcceptResponse {
	return &AcceptResponse{
		Status:         "success",
		EncounterID:    encounterID,
		AcceptedIDs:    accepted,
		NotFoundIDs:    missing,
		AddedCodes:     codes,
		RWDelta:        rw.Delta,
		RevenueDisplay: format.FormatTHB(rw.Revenue),
		Message:        fmt.Sprintf("รับรหัส %d รายการเรียบร้อย", len(accepted)),
	}
}

func (s *Service) publishAccepted(ctx context.Context, encounterID string, ids []int64, codes []string, rw RWResult) {
	e, err := events.NewEvent(events.CodingCodesAccepted, "encounter", encounterID, map[string]interface{}{
		"suggestion_ids":     ids,
		"icd_codes":          codes,
		"rw_delta":           rw.Delta,
		"revenue_impact_thb": rw.Revenue,
	})
	if err == nil {
		err = s.publisher.Publish(ctx, e)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("encounter_id", encounterID).Msg("publish coding.codes_accepted failed")
	}
}

// Reject marks suggestions REJECTED.
func (s *Service) Reject(ctx context.Context, encounterID string, ids []int64) (*RejectResponse, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("suggestion_ids is required")
	}
	_, demo, err := s.snapshots.SnapshotOrDemo(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	resp := &RejectResponse{Status: "success", EncounterID: encounterID}
	if demo {
		resp.RejectedIDs = unique(ids)
		return resp, nil
	}

	found, err := s.repo.GetByIDs(ctx, encounterID, ids)
	if err != nil {
		return nil, fmt.Errorf("load suggestions: %w", err)
	}
	resp.RejectedIDs, resp.NotFoundIDs = partition(ids, found)
	if len(resp.RejectedIDs) > 0 {
		if err := s.repo.UpdateStatus(ctx, resp.RejectedIDs, StatusRejected); err != nil {
			return nil, fmt.Errorf("reject suggestions: %w", err)
		}
		if s.metrics != nil {
			s.metrics.Decisions.WithLabelValues(StatusRejected).Add(float64(len(resp.RejectedIDs)))
		}
	}
	return resp, nil
}

// partition splits requested into the IDs present in found and the rest,
// dropping repeats.
func partition(requested []int64, found []*Suggestion) (ids, missing []int64) {
	have := make(map[int64]bool, len(found))
	for _, f := range found {
		have[f.ID] = true
	}
	ids = []int64{}
	for _, id := range unique(requested) {
		if have[id] {
			ids = append(ids, id)
		} else {
			missing = append(missing, id)
		}
	}
	return ids, missing
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
