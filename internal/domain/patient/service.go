package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chartsense/chartsense/internal/platform/db"
)

type Service struct {
	repo     Repository
	demoMode bool
}

func NewService(repo Repository, demoMode bool) *Service {
	return &Service{repo: repo, demoMode: demoMode}
}

var validSex = map[string]bool{"M": true, "F": true}

var validObsTypes = map[string]bool{ObsVital: true, ObsLab: true, ObsImaging: true}

var validDxTypes = map[string]bool{DxPrimary: true, DxSecondary: true}

// -- Patients --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.HN == "" {
		return fmt.Errorf("hn is required")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Age < 0 || p.Age > 150 {
		return fmt.Errorf("age must be between 0 and 150")
	}
	if !validSex[p.Sex] {
		return fmt.Errorf("invalid sex: %s", p.Sex)
	}
	if p.PMH == nil {
		p.PMH = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	return s.repo.CreatePatient(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.ListPatients(ctx, limit, offset)
}

func (s *Service) CountPatients(ctx context.Context) (int, error) {
	return s.repo.CountPatients(ctx)
}

// PatientEncounters lists the encounters of an existing patient.
func (s *Service) PatientEncounters(ctx context.Context, patientID int64) ([]*Encounter, error) {
	if _, err := s.repo.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}
	encs, err := s.repo.ListEncountersByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if encs == nil {
		encs = []*Encounter{}
	}
	return encs, nil
}

// -- Encounters --

func (s *Service) CreateEncounter(ctx context.Context, e *Encounter) error {
	if e.EncounterID == "" {
		return fmt.Errorf("encounter_id is required")
	}
	if e.PatientID == 0 {
		return fmt.Errorf("patient_id is required")
	}
	if e.Ward == "" {
		return fmt.Errorf("ward is required")
	}
	if e.Status == "" {
		e.Status = StatusActive
	}
	if e.Status != StatusActive && e.Status != StatusDischarged {
		return fmt.Errorf("invalid status: %s", e.Status)
	}
	if e.AdmitDate.IsZero() {
		e.AdmitDate = time.Now().UTC()
	}
	if e.LOS < 0 {
		return fmt.Errorf("los must not be negative")
	}
	return s.repo.CreateEncounter(ctx, e)
}

func (s *Service) GetEncounter(ctx context.Context, encounterID string) (*Encounter, error) {
	return s.repo.GetEncounter(ctx, encounterID)
}

// Worklist returns worklist rows tagged with the disease group of their
// chief complaint.
func (s *Service) Worklist(ctx context.Context, status string) ([]*WorklistRow, error) {
	status = strings.ToUpper(status)
	if status != "" && status != StatusActive && status != StatusDischarged {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	rows, err := s.repo.ListWorklist(ctx, status)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*WorklistRow{}
	}
	for _, r := range rows {
		cc := ""
		if r.ChiefComplaint != nil {
			cc = *r.ChiefComplaint
		}
		r.DiseaseGroup = DiseaseGroup(cc)
	}
	return rows, nil
}

// -- Clinical records --

func (s *Service) AddDiagnosis(ctx context.Context, d *Diagnosis) error {
	if d.EncounterID == 0 {
		return fmt.Errorf("encounter_id is required")
	}
	if d.ICDCode == "" {
		return fmt.Errorf("icd_code is required")
	}
	if !validDxTypes[d.DxType] {
		return fmt.Errorf("invalid dx_type: %s", d.DxType)
	}
	if d.Source == "" {
		d.Source = SourceMD
	}
	return s.repo.AddDiagnosis(ctx, d)
}

func (s *Service) AddObservation(ctx context.Context, o *Observation) error {
	if o.EncounterID == 0 {
		return fmt.Errorf("encounter_id is required")
	}
	if !validObsTypes[o.ObsType] {
		return fmt.Errorf("invalid obs_type: %s", o.ObsType)
	}
	if o.Code == "" {
		return fmt.Errorf("code is required")
	}
	if o.DisplayName == "" {
		o.DisplayName = o.Code
	}
	if o.DateTime.IsZero() {
		o.DateTime = time.Now().UTC()
	}
	return s.repo.AddObservation(ctx, o)
}

func (s *Service) AddOrder(ctx context.Context, o *OrderRecord) error {
	if o.EncounterID == 0 {
		return fmt.Errorf("encounter_id is required")
	}
	if o.StandardCode == "" {
		return fmt.Errorf("standard_code is required")
	}
	if o.Status == "" {
		o.Status = "ORDERED"
	}
	if o.Priority == "" {
		o.Priority = "RECOMMENDED"
	}
	return s.repo.AddOrder(ctx, o)
}

func (s *Service) AddNote(ctx context.Context, n *ProgressNote) error {
	if n.EncounterID == 0 {
		return fmt.Errorf("encounter_id is required")
	}
	if strings.TrimSpace(n.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if n.DateTime.IsZero() {
		n.DateTime = time.Now().UTC()
	}
	return s.repo.AddNote(ctx, n)
}

// AddAIDiagnoses records dxs as AI-sourced secondary diagnoses of the
// encounter, skipping codes it already carries. It returns the rows added.
func (s *Service) AddAIDiagnoses(ctx context.Context, encounterID string, dxs []*Diagnosis) ([]*Diagnosis, error) {
	enc, err := s.repo.GetEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.ListDiagnoses(ctx, enc.ID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(existing))
	for _, d := range existing {
		have[d.ICDCode] = true
	}

	var added []*Diagnosis
	for _, d := range dxs {
		if have[d.ICDCode] {
			continue
		}
		have[d.ICDCode] = true
		d.EncounterID = enc.ID
		d.DxType = DxSecondary
		d.Source = SourceAI
		if err := s.repo.AddDiagnosis(ctx, d); err != nil {
			return nil, fmt.Errorf("add diagnosis %s: %w", d.ICDCode, err)
		}
		added = append(added, d)
	}
	return added, nil
}

// -- Snapshots --

// Snapshot loads an encounter and all its clinical records. The record
// lists are fetched concurrently unless ctx carries a transaction, whose
// connection cannot serve parallel queries.
func (s *Service) Snapshot(ctx context.Context, encounterID string) (*Snapshot, error) {
	enc, err := s.repo.GetEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Encounter: enc}
	g, gctx := errgroup.WithContext(ctx)
	if db.TxFromContext(ctx) != nil {
		g.SetLimit(1)
	}
	g.Go(func() (err error) {
		snap.Patient, err = s.repo.GetPatient(gctx, enc.PatientID)
		return err
	})
	g.Go(func() (err error) {
		snap.Diagnoses, err = s.repo.ListDiagnoses(gctx, enc.ID)
		return err
	})
	g.Go(func() (err error) {
		snap.Observations, err = s.repo.ListObservations(gctx, enc.ID)
		return err
	})
	g.Go(func() (err error) {
		snap.Orders, err = s.repo.ListOrders(gctx, enc.ID)
		return err
	})
	g.Go(func() (err error) {
		snap.Notes, err = s.repo.ListNotes(gctx, enc.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load encounter %s: %w", encounterID, err)
	}
	return snap, nil
}

// SnapshotOrDemo behaves like Snapshot but, in demo mode, answers unknown
// encounters with DemoSnapshot. The boolean reports whether demo data was used.
func (s *Service) SnapshotOrDemo(ctx context.Context, encounterID string) (*Snapshot, bool, error) {
	return s.snapshotOr(ctx, encounterID, DemoSnapshot)
}

// ChartSnapshotOrDemo is SnapshotOrDemo with DemoChartSnapshot as the
// stand-in.
func (s *Service) ChartSnapshotOrDemo(ctx context.Context, encounterID string) (*Snapshot, bool, error) {
	return s.snapshotOr(ctx, encounterID, DemoChartSnapshot)
}

func (s *Service) snapshotOr(ctx context.Context, encounterID string, demo func(string) *Snapshot) (*Snapshot, bool, error) {
	snap, err := s.Snapshot(ctx, encounterID)
	if err == nil {
		return snap, false, nil
	}
	if s.demoMode && errors.Is(err, ErrNotFound) {
		return demo(encounterID), true, nil
	}
	return nil, false, err
}

// Detail returns the admin view of an encounter.
func (s *Service) Detail(ctx context.Context, encounterID string) (*EncounterDetail, error) {
	snap, err := s.Snapshot(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	return &EncounterDetail{
		Encounter:     *snap.Encounter,
		Patient:       snap.Patient,
		Diagnoses:     nonNil(snap.Diagnoses),
		Observations:  nonNil(snap.Observations),
		Orders:        nonNil(snap.Orders),
		ProgressNotes: nonNil(snap.Notes),
	}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
