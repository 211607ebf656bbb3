// Package sandbox loads the demo ward: twelve patients with eleven
// admissions across the CAP, DM and HF groups, the default chart rules and
// the Thai CPG templates.
package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chartsense/chartsense/internal/domain/cds"
	"github.com/chartsense/chartsense/internal/domain/chart"
	"github.com/chartsense/chartsense/internal/domain/patient"
	"github.com/chartsense/chartsense/internal/platform/db"
)

// PatientStore is satisfied by *patient.Service.
type PatientStore interface {
	CountPatients(ctx context.Context) (int, error)
	CreatePatient(ctx context.Context, p *patient.Patient) error
	CreateEncounter(ctx context.Context, e *patient.Encounter) error
	AddDiagnosis(ctx context.Context, d *patient.Diagnosis) error
	AddObservation(ctx context.Context, o *patient.Observation) error
	AddOrder(ctx context.Context, o *patient.OrderRecord) error
	AddNote(ctx context.Context, n *patient.ProgressNote) error
}

type RuleStore interface {
	SeedRule(ctx context.Context, r *chart.Rule) error
}

type TemplateStore interface {
	CreateTemplate(ctx context.Context, t *cds.CPGTemplate) error
}

// SeedResult summarizes one Seed call.
type SeedResult struct {
	Skipped      bool          `json:"skipped"`
	Patients     int           `json:"patients"`
	Encounters   int           `json:"encounters"`
	Diagnoses    int           `json:"diagnoses"`
	Observations int           `json:"observations"`
	Orders       int           `json:"orders"`
	Notes        int           `json:"notes"`
	Rules        int           `json:"rules"`
	Templates    int           `json:"templates"`
	Duration     time.Duration `json:"duration"`
}

type patientFixture struct {
	hn        string
	name      string
	age       int
	sex       string
	pmh       []string
	allergies []string
}

type dxFixture struct {
	code        string
	description string
}

type obsFixture struct {
	code     string
	display  string
	value    string
	unit     string
	abnormal bool
	refRange string
}

type orderFixture struct {
	category string
	code     string
	display  string
}

type noteFixture struct {
	text   string
	author string
}

type encounterFixture struct {
	patient   int
	id        string
	ward      string
	los       int
	status    string
	complaint string
	primary   dxFixture
	secondary []dxFixture
	vitals    []obsFixture
	labs      []obsFixture
	orders    []orderFixture
	notes     []noteFixture
}

type templateFixture struct {
	id          string
	group       string
	name        string
	description string
	orders      []cds.TemplateOrder
	criteria    map[string]interface{}
}

// Seeder writes the demo data set through the domain services so the same
// validation applies as for API writes.
type Seeder struct {
	patients  PatientStore
	rules     RuleStore
	templates TemplateStore
	tx        db.TxBeginner
	logger    zerolog.Logger
	now       func() time.Time
}

func NewSeeder(patients PatientStore, rules RuleStore, templates TemplateStore, logger zerolog.Logger) *Seeder {
	return &Seeder{
		patients:  patients,
		rules:     rules,
		templates: templates,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetTxBeginner makes Seed all-or-nothing.
func (s *Seeder) SetTxBeginner(tx db.TxBeginner) { s.tx = tx }

// Seed loads the demo data unless patients already exist.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	start := time.Now()
	n, err := s.patients.CountPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}
	if n > 0 {
		s.logger.Info().Int("patients", n).Msg("database already seeded")
		return &SeedResult{Skipped: true}, nil
	}

	res := &SeedResult{}
	run := func(ctx context.Context) error {
		if err := s.seedPatients(ctx, res); err != nil {
			return err
		}
		if err := s.seedRules(ctx, res); err != nil {
			return err
		}
		return s.seedTemplates(ctx, res)
	}
	if s.tx != nil {
		err = db.WithTx(ctx, s.tx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return nil, err
	}

	res.Duration = time.Since(start)
	s.logger.Info().
		Int("patients", res.Patients).
		Int("encounters", res.Encounters).
		Int("rules", res.Rules).
		Int("templates", res.Templates).
		Dur("duration", res.Duration).
		Msg("database seeded")
	return res, nil
}

func (s *Seeder) seedPatients(ctx context.Context, res *SeedResult) error {
	ids := make([]int64, 0, len(patientFixtures))
	for _, f := range patientFixtures {
		p := &patient.Patient{HN: f.hn, Name: f.name, Age: f.age, Sex: f.sex, PMH: f.pmh, Allergies: f.allergies}
		if err := s.patients.CreatePatient(ctx, p); err != nil {
			return fmt.Errorf("seed patient %s: %w", f.hn, err)
		}
		ids = append(ids, p.ID)
		res.Patients++
	}

	now := s.now()
	for _, f := range encounterFixtures {
		if err := s.seedEncounter(ctx, f, ids[f.patient], now, res); err != nil {
			return fmt.Errorf("seed encounter %s: %w", f.id, err)
		}
	}
	return nil
}

// seedEncounter backdates the admission by its length of stay. Discharged
// encounters left yesterday.
func (s *Seeder) seedEncounter(ctx context.Context, f encounterFixture, patientID int64, now time.Time, res *SeedResult) error {
	admit := now.AddDate(0, 0, -f.los)
	enc := &patient.Encounter{
		EncounterID:    f.id,
		PatientID:      patientID,
		AdmitDate:      admit,
		Ward:           f.ward,
		LOS:            f.los,
		Status:         f.status,
		ChiefComplaint: strPtr(f.complaint),
	}
	if f.status == patient.StatusDischarged {
		dc := now.AddDate(0, 0, -1)
		enc.DCDate = &dc
	}
	if err := s.patients.CreateEncounter(ctx, enc); err != nil {
		return err
	}
	res.Encounters++

	dxs := []*patient.Diagnosis{{ICDCode: f.primary.code, Description: f.primary.description, DxType: patient.DxPrimary}}
	for _, d := range f.secondary {
		dxs = append(dxs, &patient.Diagnosis{ICDCode: d.code, Description: d.description, DxType: patient.DxSecondary})
	}
	for _, d := range dxs {
		d.EncounterID = enc.ID
		d.Source = patient.SourceMD
		if err := s.patients.AddDiagnosis(ctx, d); err != nil {
			return err
		}
		res.Diagnoses++
	}

	for _, group := range []struct {
		obsType string
		items   []obsFixture
	}{{patient.ObsVital, f.vitals}, {patient.ObsLab, f.labs}} {
		for _, o := range group.items {
			obs := &patient.Observation{
				EncounterID:    enc.ID,
				ObsType:        group.obsType,
				Code:           o.code,
				DisplayName:    o.display,
				Value:          o.value,
				Unit:           strPtr(o.unit),
				DateTime:       admit,
				AbnormalFlag:   o.abnormal,
				ReferenceRange: strPtr(o.refRange),
			}
			if err := s.patients.AddObservation(ctx, obs); err != nil {
				return err
			}
			res.Observations++
		}
	}

	for _, o := range f.orders {
		order := &patient.OrderRecord{EncounterID: enc.ID, Category: o.category, StandardCode: o.code, DisplayName: o.display, Status: "ORDERED"}
		if err := s.patients.AddOrder(ctx, order); err != nil {
			return err
		}
		res.Orders++
	}

	for i, n := range f.notes {
		note := &patient.ProgressNote{EncounterID: enc.ID, DateTime: admit.AddDate(0, 0, i), Text: n.text, Author: strPtr(n.author)}
		if err := s.patients.AddNote(ctx, note); err != nil {
			return err
		}
		res.Notes++
	}
	return nil
}

func (s *Seeder) seedRules(ctx context.Context, res *SeedResult) error {
	for _, r := range chart.DefaultRules() {
		if err := s.rules.SeedRule(ctx, r); err != nil {
			return fmt.Errorf("seed rule %s: %w", r.RuleID, err)
		}
		res.Rules++
	}
	return nil
}

func (s *Seeder) seedTemplates(ctx context.Context, res *SeedResult) error {
	for _, f := range templateFixtures {
		t := &cds.CPGTemplate{
			TemplateID:   f.id,
			DiseaseGroup: f.group,
			Name:         f.name,
			Description:  strPtr(f.description),
			Orders:       f.orders,
			Criteria:     f.criteria,
		}
		if err := s.templates.CreateTemplate(ctx, t); err != nil {
			return fmt.Errorf("seed template %s: %w", f.id, err)
		}
		res.Templates++
	}
	return nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
