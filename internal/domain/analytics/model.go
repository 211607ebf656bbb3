package analytics

import (
	"time"

	"github.com/chartsense/chartsense/pkg/format"
)

// EncounterScore is an encounter with its most recent chart score and RW
// delta, either of which may be missing.
type EncounterScore struct {
	EncounterID    string
	Status         string
	ChiefComplaint *string
	LatestScore    *float64
	LatestRWDelta  *float64
}

type ScorePoint struct {
	EncounterID string
	Score       float64
	EvaluatedAt time.Time
}

type RWPoint struct {
	EncounterID  string
	RWAfter      float64
	Revenue      float64
	CalculatedAt time.Time
}

type CodeFrequency struct {
	ICDCode     string  `json:"code"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	AvgRW       float64 `json:"avg_rw"`
}

type CriticalEncounter struct {
	EncounterID string      `json:"encounter_id"`
	Score       float64     `json:"score"`
	Band        format.Band `json:"band"`
}

type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

type Dashboard struct {
	ActiveEncounters   int                 `json:"active_encounters"`
	PendingCodes       int                 `json:"pending_codes"`
	AverageScore       float64             `json:"average_score"`
	AverageBand        format.Band         `json:"average_band"`
	CriticalEncounters []CriticalEncounter `json:"critical_encounters"`
	DiseaseGroups      []GroupCount        `json:"disease_groups"`
}

type WeekStats struct {
	Week           string    `json:"week"`
	WeekStart      time.Time `json:"week_start"`
	Label          string    `json:"label"`
	AvgScore       float64   `json:"avg_score"`
	TotalRW        float64   `json:"total_rw"`
	RevenueDelta   float64   `json:"revenue_delta"`
	RevenueDisplay string    `json:"revenue_display"`
	Encounters     int       `json:"encounters"`
}

type WeeklyReport struct {
	Weeks               []WeekStats `json:"weeks"`
	TotalRevenue        float64     `json:"total_revenue"`
	TotalRevenueDisplay string      `json:"total_revenue_display"`
	ScoreImprovement    float64     `json:"score_improvement"`
}

type GroupStats struct {
	Group      string  `json:"group"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	AvgScore   float64 `json:"avg_score"`
	AvgRWDelta float64 `json:"avg_rw_delta"`
}
