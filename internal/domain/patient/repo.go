package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a patient or encounter does not exist.
var ErrNotFound = errors.New("not found")

type Repository interface {
	// Patients
	CreatePatient(ctx context.Context, p *Patient) error
	GetPatient(ctx context.Context, id int64) (*Patient, error)
	ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	CountPatients(ctx context.Context) (int, error)

	// Encounters
	CreateEncounter(ctx context.Context, e *Encounter) error
	GetEncounter(ctx context.Context, encounterID string) (*Encounter, error)
	ListEncountersByPatient(ctx context.Context, patientID int64) ([]*Encounter, error)
	ListWorklist(ctx context.Context, status string) ([]*WorklistRow, error)

	// Clinical records
	AddDiagnosis(ctx context.Context, d *Diagnosis) error
	ListDiagnoses(ctx context.Context, encounterID int64) ([]*Diagnosis, error)
	AddObservation(ctx context.Context, o *Observation) error
	ListObservations(ctx context.Context, encounterID int64) ([]*Observation, error)
	AddOrder(ctx context.Context, o *OrderRecord) error
	ListOrders(ctx context.Context, encounterID int64) ([]*OrderRecord, error)
	AddNote(ctx context.Context, n *ProgressNote) error
	ListNotes(ctx context.Context, encounterID int64) ([]*ProgressNote, error)
}
