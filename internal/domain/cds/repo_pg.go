package cds

import (
	"context"
	"errors"

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

type templateRepoPG struct {
	pool *pgxpool.Pool
}

func NewTemplateRepo(pool *pgxpool.Pool) TemplateRepository {
	return &templateRepoPG{pool: pool}
}

func (r *templateRepoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const templateCols = `id, template_id, disease_group, name, description, orders, criteria, version, created_at`

func scanTemplate(row pgx.Row) (*CPGTemplate, error) {
	var t CPGTemplate
	err := row.Scan(&t.ID, &t.TemplateID, &t.DiseaseGroup, &t.Name, &t.Description,
		&t.Orders, &t.Criteria, &t.Version, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *templateRepoPG) Create(ctx context.Context, t *CPGTemplate) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO cpg_templates (template_id, disease_group, name, description, orders, criteria, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		t.TemplateID, t.DiseaseGroup, t.Name, t.Description, t.Orders, t.Criteria, t.Version,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *templateRepoPG) GetByTemplateID(ctx context.Context, templateID string) (*CPGTemplate, error) {
	return scanTemplate(r.conn(ctx).QueryRow(ctx,
		`SELECT `+templateCols+` FROM cpg_templates WHERE template_id = $1`, templateID))
}

func (r *templateRepoPG) List(ctx context.Context, diseaseGroup string) ([]*CPGTemplate, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+templateCols+` FROM cpg_templates
		WHERE ($1::text = '' OR disease_group = $1)
		ORDER BY template_id`, diseaseGroup)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*CPGTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *templateRepoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM cpg_templates`).Scan(&n)
	return n, err
}
