package chart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chartsense/chartsense/internal/platform/db"
)

const uniqueViolation = "23505"

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return pool
}

// -- Rules --

type ruleRepoPG struct {
	pool *pgxpool.Pool
}

func NewRuleRepo(pool *pgxpool.Pool) RuleRepository {
	return &ruleRepoPG{pool: pool}
}

const ruleCols = `id, rule_id, category, name, description, weight, condition, active, created_at, updated_at`

func scanRule(row pgx.Row) (*Rule, error) {
	var r Rule
	err := row.Scan(&r.ID, &r.RuleID, &r.Category, &r.Name, &r.Description,
		&r.Weight, &r.Condition, &r.Active, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (r *ruleRepoPG) Create(ctx context.Context, rule *Rule) error {
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO rules (rule_id, category, name, description, weight, condition, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		rule.RuleID, rule.Category, rule.Name, rule.Description, rule.Weight, rule.Condition, rule.Active,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (r *ruleRepoPG) GetByRuleID(ctx context.Context, ruleID string) (*Rule, error) {
	return scanRule(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+ruleCols+` FROM rules WHERE rule_id = $1`, ruleID))
}

func (r *ruleRepoPG) List(ctx context.Context, activeOnly bool) ([]*Rule, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+ruleCols+` FROM rules
		WHERE (NOT $1::boolean OR active)
		ORDER BY id`, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rule)
	}
	return items, rows.Err()
}

func (r *ruleRepoPG) Update(ctx context.Context, rule *Rule) error {
	err := conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE rules SET name = $2, description = $3, weight = $4, condition = $5, active = $6, updated_at = NOW()
		WHERE rule_id = $1
		RETURNING updated_at`,
		rule.RuleID, rule.Name, rule.Description, rule.Weight, rule.Condition, rule.Active,
	).Scan(&rule.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *ruleRepoPG) Delete(ctx context.Context, ruleID string) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM rules WHERE rule_id = $1`, ruleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ruleRepoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM rules`).Scan(&n)
	return n, err
}

// -- Scores --

type scoreRepoPG struct {
	pool *pgxpool.Pool
}

func NewScoreRepo(pool *pgxpool.Pool) ScoreRepository {
	return &scoreRepoPG{pool: pool}
}

func (r *scoreRepoPG) Save(ctx context.Context, s *Score) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		q := conn(ctx, r.pool)
		err := q.QueryRow(ctx, `
			INSERT INTO chart_scores (encounter_id, total_score, grade, breakdown, evaluated_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			s.EncounterID, s.TotalScore, s.Grade, s.Breakdown, s.EvaluatedAt,
		).Scan(&s.ID)
		if err != nil {
			return err
		}
		for _, g := range s.Gaps {
			_, err := q.Exec(ctx, `
				INSERT INTO chart_gaps (score_id, rule_id, category, description, severity, suggested_action, suggested_code)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				s.ID, g.RuleID, g.Category, g.Description, g.Severity, g.SuggestedAction, g.SuggestedCode)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// History returns the most recent scores of an encounter, newest first,
// with their gaps.
func (r *scoreRepoPG) History(ctx context.Context, encounterID string, limit int) ([]*Score, error) {
	q := conn(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT id, encounter_id, total_score, grade, breakdown, evaluated_at
		FROM chart_scores WHERE encounter_id = $1
		ORDER BY evaluated_at DESC, id DESC LIMIT $2`, encounterID, limit)
	if err != nil {
		return nil, err
	}
	var (
		scores []*Score
		ids    []int64
		byID   = map[int64]*Score{}
	)
	for rows.Next() {
		s := &Score{Gaps: []Gap{}}
		if err := rows.Scan(&s.ID, &s.EncounterID, &s.TotalScore, &s.Grade, &s.Breakdown, &s.EvaluatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		scores = append(scores, s)
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return scores, nil
	}

	gapRows, err := q.Query(ctx, `
		SELECT score_id, rule_id, category, description, severity, suggested_action, suggested_code
		FROM chart_gaps WHERE score_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer gapRows.Close()
	for gapRows.Next() {
		var (
			scoreID int64
			g       Gap
		)
		if err := gapRows.Scan(&scoreID, &g.RuleID, &g.Category, &g.Description, &g.Severity, &g.SuggestedAction, &g.SuggestedCode); err != nil {
			return nil, err
		}
		if s := byID[scoreID]; s != nil {
			s.Gaps = append(s.Gaps, g)
		}
	}
	return scores, gapRows.Err()
}
