package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) EncounterScores(ctx context.Context) ([]EncounterScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.encounter_id, e.status, e.chief_complaint, s.total_score, rc.delta
		FROM encounters e
		LEFT JOIN LATERAL (
			SELECT total_score FROM chart_scores cs
			WHERE cs.encounter_id = e.encounter_id
			ORDER BY cs.evaluated_at DESC, cs.id DESC LIMIT 1
		) s ON true
		LEFT JOIN LATERAL (
			SELECT delta FROM rw_calculations r
			WHERE r.encounter_id = e.encounter_id
			ORDER BY r.calculated_at DESC, r.id DESC LIMIT 1
		) rc ON true
		ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []EncounterScore
	for rows.Next() {
		var es EncounterScore
		if err := rows.Scan(&es.EncounterID, &es.Status, &es.ChiefComplaint, &es.LatestScore, &es.LatestRWDelta); err != nil {
			return nil, err
		}
		out = append(out, es)
	}
	return out, rows.Err()
}

func (r *repoPG) PendingCodeCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM code_suggestions WHERE status = 'PENDING'`).Scan(&n)
	return n, err
}

func (r *repoPG) ScoresSince(ctx context.Context, since time.Time) ([]ScorePoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT encounter_id, total_score, evaluated_at FROM chart_scores
		WHERE evaluated_at >= $1 ORDER BY evaluated_at`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ScorePoint
	for rows.Next() {
		var p ScorePoint
		if err := rows.Scan(&p.EncounterID, &p.Score, &p.EvaluatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repoPG) RWSince(ctx context.Context, since time.Time) ([]RWPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT encounter_id, rw_after, revenue_impact, calculated_at FROM rw_calculations
		WHERE calculated_at >= $1 ORDER BY calculated_at`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RWPoint
	for rows.Next() {
		var p RWPoint
		if err := rows.Scan(&p.EncounterID, &p.RWAfter, &p.Revenue, &p.CalculatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// TopSuggestedCodes ranks codes by how many encounters they were suggested
// for. Rejected suggestions do not count.
func (r *repoPG) TopSuggestedCodes(ctx context.Context, limit int) ([]CodeFrequency, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT icd_code, MIN(description), COUNT(DISTINCT encounter_id), AVG(rw_impact)::float8
		FROM code_suggestions
		WHERE status <> 'REJECTED'
		GROUP BY icd_code
		ORDER BY COUNT(DISTINCT encounter_id) DESC, icd_code
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CodeFrequency{}
	for rows.Next() {
		var f CodeFrequency
		if err := rows.Scan(&f.ICDCode, &f.Description, &f.Count, &f.AvgRW); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
