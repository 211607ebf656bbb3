package cds

import (
	"context"
	"fmt"

	"github.com/chartsense/chartsense/internal/domain/knowledge"
)

type Service struct {
	templates TemplateRepository
	metrics   *Metrics
}

// NewService builds the decision support service. metrics may be nil.
func NewService(templates TemplateRepository, metrics *Metrics) *Service {
	return &Service{templates: templates, metrics: metrics}
}

// PreDiagnosis ranks differential diagnoses for a presentation. Symptoms
// found in the chief complaint are added to the given ones.
func (s *Service) PreDiagnosis(_ context.Context, req *PreDiagnosisRequest) (*PreDiagnosisResponse, error) {
	symptoms := req.Symptoms
	var extracted []string
	if req.ChiefComplaint != nil && *req.ChiefComplaint != "" {
		extracted = knowledge.ExtractSymptoms(*req.ChiefComplaint)
		symptoms = knowledge.MergeSymptoms(symptoms, extracted)
	}

	labCodes := make([]string, 0, len(req.Labs))
	for _, l := range req.Labs {
		labCodes = append(labCodes, l.Code)
	}
	sex := req.Sex
	if sex == "" {
		sex = "M"
	}

	results := knowledge.FindDifferentials(knowledge.Query{
		Symptoms: symptoms,
		Age:      ageOrDefault(req.Age),
		Sex:      sex,
		PMH:      req.PMH,
		LabCodes: labCodes,
	})

	resp := &PreDiagnosisResponse{
		Differentials:       make([]DifferentialDiagnosis, 0, len(results)),
		PrimaryDiseaseGroup: knowledge.GroupGeneral,
		ConfidenceNote:      "ไม่พบ differential diagnosis ที่สอดคล้อง",
		ExtractedSymptoms:   extracted,
	}
	for i, r := range results {
		resp.Differentials = append(resp.Differentials, DifferentialDiagnosis{
			Rank:          i + 1,
			ICDCode:       r.ICD,
			Description:   r.Description,
			DescriptionTH: r.DescTH,
			Probability:   r.Probability,
			Reasoning:     fmt.Sprintf("พบอาการ %d รายการที่สอดคล้องกับ %s", len(r.Evidence), r.Description),
			Evidence:      r.Evidence,
			CPGReference:  strRef(fmt.Sprintf("Thai CPG %s 2023", r.Group)),
		})
	}
	if len(results) > 0 {
		resp.PrimaryDiseaseGroup = results[0].Group
		resp.ConfidenceNote = "คำนวณจาก knowledge graph traversal"
	}
	if s.metrics != nil {
		s.metrics.PreDiagnoses.WithLabelValues(resp.PrimaryDiseaseGroup).Inc()
	}
	return resp, nil
}

// SuggestOrders returns the CPG order set of the diagnosis' disease group
// with patient-specific notes.
func (s *Service) SuggestOrders(_ context.Context, req *OrderSuggestionRequest) (*OrderSuggestionResponse, error) {
	if req.ICDCode == "" {
		return nil, fmt.Errorf("icd_code is required")
	}
	group := knowledge.GroupOf(req.ICDCode)
	return &OrderSuggestionResponse{
		Orders:               OrdersFor(group),
		DiseaseGroup:         group,
		PersonalizationNotes: PersonalizationNotes(req),
	}, nil
}

// AdmissionDecision scores the patient with CURB-65 (pneumonia group only)
// and qSOFA and recommends a disposition.
func (s *Service) AdmissionDecision(_ context.Context, req *AdmissionDecisionRequest) (*AdmissionDecisionResponse, error) {
	if req.ICDCode == "" {
		return nil, fmt.Errorf("icd_code is required")
	}
	var scores []RiskScoreDetail
	if knowledge.GroupOf(req.ICDCode) == knowledge.GroupCAP {
		scores = append(scores, CURB65(req))
	}
	scores = append(scores, QSOFA(req))

	resp := Recommend(scores)
	if s.metrics != nil {
		s.metrics.Admissions.WithLabelValues(resp.Recommendation).Inc()
	}
	return &resp, nil
}

// -- CPG templates --

var validGroups = map[string]bool{
	knowledge.GroupCAP: true,
	knowledge.GroupDM:  true,
	knowledge.GroupHF:  true,
}

func (s *Service) CreateTemplate(ctx context.Context, t *CPGTemplate) error {
	if t.TemplateID == "" {
		return fmt.Errorf("template_id is required")
	}
	if !validGroups[t.DiseaseGroup] {
		return fmt.Errorf("invalid disease_group: %s", t.DiseaseGroup)
	}
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}
	if t.Version == "" {
		t.Version = "1.0"
	}
	if t.Orders == nil {
		t.Orders = []TemplateOrder{}
	}
	if t.Criteria == nil {
		t.Criteria = map[string]interface{}{}
	}
	return s.templates.Create(ctx, t)
}

func (s *Service) GetTemplate(ctx context.Context, templateID string) (*CPGTemplate, error) {
	return s.templates.GetByTemplateID(ctx, templateID)
}

func (s *Service) ListTemplates(ctx context.Context, diseaseGroup string) ([]*CPGTemplate, error) {
	items, err := s.templates.List(ctx, diseaseGroup)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*CPGTemplate{}
	}
	return items, nil
}

func (s *Service) CountTemplates(ctx context.Context) (int, error) {
	return s.templates.Count(ctx)
}
