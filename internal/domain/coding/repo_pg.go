package coding

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chartsense/chartsense/internal/platform/db"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const suggestionCols = `id, encounter_id, icd_code, description, dx_type, confidence, evidence, rw_impact, status, created_at`

func scanSuggestions(rows pgx.Rows) ([]*Suggestion, error) {
	defer rows.Close()
	items := []*Suggestion{}
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.ID, &s.EncounterID, &s.ICDCode, &s.Description, &s.DxType,
			&s.Confidence, &s.Evidence, &s.RWImpact, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

func (r *repoPG) ReplacePending(ctx context.Context, encounterID string, items []*Suggestion) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		q := r.conn(ctx)
		if _, err := q.Exec(ctx,
			`DELETE FROM code_suggestions WHERE encounter_id = $1 AND status = $2`,
			encounterID, StatusPending); err != nil {
			return err
		}
		for _, s := range items {
			err := q.QueryRow(ctx, `
				INSERT INTO code_suggestions (encounter_id, icd_code, description, dx_type, confidence, evidence, rw_impact, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id, created_at`,
				encounterID, s.ICDCode, s.Description, s.DxType, s.Confidence, s.Evidence, s.RWImpact, s.Status,
			).Scan(&s.ID, &s.CreatedAt)
			if err != nil {
				return err
			}
			s.EncounterID = encounterID
		}
		return nil
	})
}

func (r *repoPG) ListByEncounter(ctx context.Context, encounterID, status string) ([]*Suggestion, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+suggestionCols+` FROM code_suggestions
		WHERE encounter_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY id`, encounterID, status)
	if err != nil {
		return nil, err
	}
	return scanSuggestions(rows)
}

func (r *repoPG) GetByIDs(ctx context.Context, encounterID string, ids []int64) ([]*Suggestion, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+suggestionCols+` FROM code_suggestions
		WHERE encounter_id = $1 AND id = ANY($2)
		ORDER BY id`, encounterID, ids)
	if err != nil {
		return nil, err
	}
	return scanSuggestions(rows)
}

func (r *repoPG) UpdateStatus(ctx context.Context, ids []int64, status string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE code_suggestions SET status = $2 WHERE id = ANY($1)`, ids, status)
	return err
}

func (r *repoPG) SaveRW(ctx context.Context, c *RWCalculation) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO rw_calculations (encounter_id, drg, rw_before, rw_after, delta, revenue_impact)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, calculated_at`,
		c.EncounterID, c.DRG, c.RWBefore, c.RWAfter, c.Delta, c.RevenueImpact,
	).Scan(&c.ID, &c.CalculatedAt)
}
