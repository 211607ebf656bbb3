package patient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chartsense/chartsense/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// -- Patients --

const patientCols = `id, hn, name, age, sex, pmh, allergies, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(&p.ID, &p.HN, &p.Name, &p.Age, &p.Sex, &p.PMH, &p.Allergies, &p.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *repoPG) CreatePatient(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (hn, name, age, sex, pmh, allergies)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		p.HN, p.Name, p.Age, p.Sex, p.PMH, p.Allergies,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *repoPG) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	total, err := r.CountPatients(ctx)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) CountPatients(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n)
	return n, err
}

// -- Encounters --

const encCols = `id, encounter_id, patient_id, admit_date, dc_date, ward, los, status, chief_complaint`

func scanEncounter(row pgx.Row) (*Encounter, error) {
	var e Encounter
	if err := row.Scan(&e.ID, &e.EncounterID, &e.PatientID, &e.AdmitDate, &e.DCDate,
		&e.Ward, &e.LOS, &e.Status, &e.ChiefComplaint); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *repoPG) CreateEncounter(ctx context.Context, e *Encounter) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO encounters (encounter_id, patient_id, admit_date, dc_date, ward, los, status, chief_complaint)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		e.EncounterID, e.PatientID, e.AdmitDate, e.DCDate, e.Ward, e.LOS, e.Status, e.ChiefComplaint,
	).Scan(&e.ID)
}

func (r *repoPG) GetEncounter(ctx context.Context, encounterID string) (*Encounter, error) {
	return scanEncounter(r.conn(ctx).QueryRow(ctx, `SELECT `+encCols+` FROM encounters WHERE encounter_id = $1`, encounterID))
}

func (r *repoPG) ListEncountersByPatient(ctx context.Context, patientID int64) ([]*Encounter, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+encCols+` FROM encounters WHERE patient_id = $1 ORDER BY admit_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Encounter
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// ListWorklist joins encounters with their patient. An empty status lists
// every encounter.
func (r *repoPG) ListWorklist(ctx context.Context, status string) ([]*WorklistRow, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT e.encounter_id, p.hn, p.name, p.age, p.sex, e.ward, e.status, e.admit_date, e.chief_complaint
		FROM encounters e
		JOIN patients p ON p.id = e.patient_id
		WHERE ($1::text = '' OR e.status = $1)
		ORDER BY e.admit_date DESC, e.encounter_id`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*WorklistRow
	for rows.Next() {
		var w WorklistRow
		if err := rows.Scan(&w.EncounterID, &w.HN, &w.Name, &w.Age, &w.Sex, &w.Ward,
			&w.Status, &w.AdmitDate, &w.ChiefComplaint); err != nil {
			return nil, err
		}
		items = append(items, &w)
	}
	return items, rows.Err()
}

// -- Diagnoses --

func (r *repoPG) AddDiagnosis(ctx context.Context, d *Diagnosis) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO diagnoses (encounter_id, icd_code, description, dx_type, source, confidence, evidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		d.EncounterID, d.ICDCode, d.Description, d.DxType, d.Source, d.Confidence, d.Evidence,
	).Scan(&d.ID)
}

func (r *repoPG) ListDiagnoses(ctx context.Context, encounterID int64) ([]*Diagnosis, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, encounter_id, icd_code, description, dx_type, source, confidence, COALESCE(evidence, '{}')
		FROM diagnoses WHERE encounter_id = $1 ORDER BY id`, encounterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Diagnosis
	for rows.Next() {
		var d Diagnosis
		if err := rows.Scan(&d.ID, &d.EncounterID, &d.ICDCode, &d.Description, &d.DxType,
			&d.Source, &d.Confidence, &d.Evidence); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

// -- Observations --

func (r *repoPG) AddObservation(ctx context.Context, o *Observation) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO observations (encounter_id, obs_type, code, display_name, value, unit, date_time, abnormal_flag, reference_range)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		o.EncounterID, o.ObsType, o.Code, o.DisplayName, o.Value, o.Unit, o.DateTime, o.AbnormalFlag, o.ReferenceRange,
	).Scan(&o.ID)
}

func (r *repoPG) ListObservations(ctx context.Context, encounterID int64) ([]*Observation, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, encounter_id, obs_type, code, display_name, value, unit, date_time, abnormal_flag, reference_range
		FROM observations WHERE encounter_id = $1 ORDER BY date_time, id`, encounterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Observation
	for rows.Next() {
		var o Observation
		if err := rows.Scan(&o.ID, &o.EncounterID, &o.ObsType, &o.Code, &o.DisplayName, &o.Value,
			&o.Unit, &o.DateTime, &o.AbnormalFlag, &o.ReferenceRange); err != nil {
			return nil, err
		}
		items = append(items, &o)
	}
	return items, rows.Err()
}

// -- Orders --

func (r *repoPG) AddOrder(ctx context.Context, o *OrderRecord) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO order_records (encounter_id, category, standard_code, display_name, status, cpg_source, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		o.EncounterID, o.Category, o.StandardCode, o.DisplayName, o.Status, o.CPGSource, o.Priority,
	).Scan(&o.ID)
}

func (r *repoPG) ListOrders(ctx context.Context, encounterID int64) ([]*OrderRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, encounter_id, category, standard_code, display_name, status, cpg_source, priority
		FROM order_records WHERE encounter_id = $1 ORDER BY id`, encounterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*OrderRecord
	for rows.Next() {
		var o OrderRecord
		if err := rows.Scan(&o.ID, &o.EncounterID, &o.Category, &o.StandardCode, &o.DisplayName,
			&o.Status, &o.CPGSource, &o.Priority); err != nil {
			return nil, err
		}
		items = append(items, &o)
	}
	return items, rows.Err()
}

// -- Progress notes --

func (r *repoPG) AddNote(ctx context.Context, n *ProgressNote) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO progress_notes (encounter_id, date_time, text, author)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		n.EncounterID, n.DateTime, n.Text, n.Author,
	).Scan(&n.ID)
}

func (r *repoPG) ListNotes(ctx context.Context, encounterID int64) ([]*ProgressNote, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, encounter_id, date_time, text, author
		FROM progress_notes WHERE encounter_id = $1 ORDER BY date_time, id`, encounterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ProgressNote
	for rows.Next() {
		var n ProgressNote
		if err := rows.Scan(&n.ID, &n.EncounterID, &n.DateTime, &n.Text, &n.Author); err != nil {
			return nil, err
		}
		items = append(items, &n)
	}
	return items, rows.Err()
}
