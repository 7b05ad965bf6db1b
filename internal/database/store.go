// Package database implements the import engine's persistence contract over
// PostgreSQL.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Yahia89/meditrans/internal/importer"
)

// Store wraps a pgx pool and satisfies importer.Store and
// importer.ImportRecorder.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const findPatientsSQL = `
SELECT id, org_id, first_name, last_name, phone, date_of_birth
FROM patients
WHERE org_id = $1
  AND first_name ILIKE $2 ESCAPE '\'
  AND last_name ILIKE $3 ESCAPE '\'
ORDER BY created_at
`

// FindPatients matches patients in an organization by case-insensitive exact
// first/last name. ILIKE with fully escaped metacharacters gives exact-match
// semantics, not pattern search.
func (s *Store) FindPatients(ctx context.Context, orgID, firstName, lastName string) ([]importer.Patient, error) {
	rows, err := s.pool.Query(ctx, findPatientsSQL,
		orgID, escapeLike(firstName), escapeLike(lastName))
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	defer rows.Close()

	var patients []importer.Patient
	for rows.Next() {
		var p importer.Patient
		if err := rows.Scan(&p.ID, &p.OrgID, &p.FirstName, &p.LastName, &p.Phone, &p.DateOfBirth); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read patients: %w", err)
	}

	return patients, nil
}

const createPatientSQL = `
INSERT INTO patients (org_id, first_name, last_name, phone, date_of_birth)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, org_id, first_name, last_name, phone, date_of_birth
`

// CreatePatient inserts a patient and returns it with its assigned ID.
func (s *Store) CreatePatient(ctx context.Context, orgID string, np importer.NewPatient) (importer.Patient, error) {
	var p importer.Patient
	err := s.pool.QueryRow(ctx, createPatientSQL,
		orgID, np.FirstName, np.LastName, np.Phone, np.DateOfBirth,
	).Scan(&p.ID, &p.OrgID, &p.FirstName, &p.LastName, &p.Phone, &p.DateOfBirth)
	if err != nil {
		return importer.Patient{}, fmt.Errorf("insert patient: %w", err)
	}
	return p, nil
}

const insertTripSQL = `
INSERT INTO trips (patient_id, org_id, pickup_address, dropoff_address,
                   scheduled_at, trip_type, miles, ride_minutes, status,
                   notes, external_trip_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, patient_id, org_id, pickup_address, dropoff_address,
          scheduled_at, trip_type, miles, ride_minutes, status
`

// InsertTrips writes all trip drafts in one transaction using a single
// batch round trip. Any statement error rolls back the whole batch: trip
// insertion is all-or-nothing by contract.
func (s *Store) InsertTrips(ctx context.Context, drafts []importer.TripDraft) ([]importer.Trip, error) {
	if len(drafts) == 0 {
		return nil, nil
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, d := range drafts {
		batch.Queue(insertTripSQL,
			d.PatientID, d.OrgID, d.PickupAddress, d.DropoffAddress,
			d.ScheduledAt, d.TripType, d.Miles, d.RideMinutes, d.Status,
			d.Notes, d.ExternalTripID)
	}

	br := tx.SendBatch(ctx, batch)

	trips := make([]importer.Trip, 0, len(drafts))
	for range drafts {
		var t importer.Trip
		err := br.QueryRow().Scan(&t.ID, &t.PatientID, &t.OrgID,
			&t.PickupAddress, &t.DropoffAddress, &t.ScheduledAt,
			&t.TripType, &t.Miles, &t.RideMinutes, &t.Status)
		if err != nil {
			br.Close()
			return nil, fmt.Errorf("insert trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return trips, nil
}

const recordImportSQL = `
INSERT INTO import_sessions (session_id, template_id, file_name, org_id,
                             total_rows, inserted, skipped)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// RecordImport persists the history row for one completed import.
func (s *Store) RecordImport(ctx context.Context, rec importer.ImportRecord) error {
	_, err := s.pool.Exec(ctx, recordImportSQL,
		rec.SessionID, rec.TemplateID, rec.FileName, rec.OrgID,
		rec.TotalRows, rec.Inserted, rec.Skipped)
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return nil
}

// escapeLike escapes LIKE/ILIKE pattern metacharacters so a name is matched
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
