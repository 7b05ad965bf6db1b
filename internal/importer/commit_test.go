package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeStore is an in-memory Store for commit tests.
type fakeStore struct {
	patients []Patient

	findErr        error
	createErr      error
	failCreateName string // first name whose creation fails
	insertErr      error

	created  []NewPatient
	inserted []TripDraft
}

func newUUID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func (f *fakeStore) FindPatients(_ context.Context, orgID, firstName, lastName string) ([]Patient, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []Patient
	for _, p := range f.patients {
		if p.OrgID == orgID &&
			strings.EqualFold(p.FirstName, firstName) &&
			strings.EqualFold(p.LastName, lastName) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) CreatePatient(_ context.Context, orgID string, p NewPatient) (Patient, error) {
	if f.createErr != nil && (f.failCreateName == "" || strings.EqualFold(p.FirstName, f.failCreateName)) {
		return Patient{}, f.createErr
	}
	created := Patient{
		ID:          newUUID(),
		OrgID:       orgID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
	}
	f.patients = append(f.patients, created)
	f.created = append(f.created, p)
	return created, nil
}

func (f *fakeStore) InsertTrips(_ context.Context, drafts []TripDraft) ([]Trip, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	trips := make([]Trip, len(drafts))
	for i, d := range drafts {
		trips[i] = Trip{
			ID:             newUUID(),
			PatientID:      d.PatientID,
			OrgID:          d.OrgID,
			PickupAddress:  d.PickupAddress,
			DropoffAddress: d.DropoffAddress,
			ScheduledAt:    d.ScheduledAt,
			TripType:       d.TripType,
			Miles:          d.Miles,
			RideMinutes:    d.RideMinutes,
			Status:         d.Status,
		}
	}
	f.inserted = append(f.inserted, drafts...)
	return trips, nil
}

// ============================================================================
// Commit Tests
// ============================================================================

func TestCommit_InsertsAllValidRows(t *testing.T) {
	store := &fakeStore{}
	rows := []*ImportRow{
		validRow(2, "Jane", "Doe"),
		validRow(3, "Bob", "Ray"),
		validRow(4, "Ana", "Cruz"),
	}

	result, err := Commit(context.Background(), rows, "org-1", store)
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	if result.Inserted != 3 {
		t.Errorf("Inserted = %d, want 3", result.Inserted)
	}
	if len(result.Trips) != 3 {
		t.Errorf("got %d trips, want 3", len(result.Trips))
	}
	if len(result.Skipped) != 0 {
		t.Errorf("unexpected skips: %v", result.Skipped)
	}
	if len(store.created) != 3 {
		t.Errorf("created %d patients, want 3", len(store.created))
	}

	for _, trip := range result.Trips {
		if !trip.PatientID.Valid {
			t.Error("trip missing patient id")
		}
		if trip.Status != StatusPending {
			t.Errorf("trip status = %q, want %q", trip.Status, StatusPending)
		}
		if trip.TripType != DefaultTripType {
			t.Errorf("trip type = %q, want default %q", trip.TripType, DefaultTripType)
		}
		if trip.OrgID != "org-1" {
			t.Errorf("trip org = %q, want org-1", trip.OrgID)
		}
	}
}

func TestCommit_SkipsInvalidRows(t *testing.T) {
	invalid := validRow(3, "Bob", "Ray")
	invalid.Errors = []string{"trip date is required"}

	store := &fakeStore{}
	result, err := Commit(context.Background(), []*ImportRow{validRow(2, "Jane", "Doe"), invalid}, "org-1", store)
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	if result.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1 (invalid row excluded)", result.Inserted)
	}
}

func TestCommit_NoValidRows(t *testing.T) {
	row := validRow(2, "Jane", "Doe")
	row.Errors = []string{"trip date is required"}

	_, err := Commit(context.Background(), []*ImportRow{row}, "org-1", &fakeStore{})
	if !errors.Is(err, ErrNoValidRows) {
		t.Errorf("error = %v, want ErrNoValidRows", err)
	}
}

func TestCommit_MatchesExistingPatient(t *testing.T) {
	existing := Patient{ID: newUUID(), OrgID: "org-1", FirstName: "Jane", LastName: "Doe"}
	store := &fakeStore{patients: []Patient{existing}}

	result, err := Commit(context.Background(), []*ImportRow{validRow(2, "jane", "doe")}, "org-1", store)
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	if len(store.created) != 0 {
		t.Errorf("created %d patients, want 0 (existing match)", len(store.created))
	}
	if result.Trips[0].PatientID != existing.ID {
		t.Error("trip not linked to the existing patient")
	}
}

// TestCommit_CaseVariantsShareOnePatient: two rows naming the same person in
// different casing resolve to a single created patient within one commit.
func TestCommit_CaseVariantsShareOnePatient(t *testing.T) {
	store := &fakeStore{}
	rows := []*ImportRow{
		validRow(2, "john", "smith"),
		validRow(3, "JOHN", "SMITH"),
	}

	result, err := Commit(context.Background(), rows, "org-1", store)
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("created %d patients, want 1", len(store.created))
	}
	if result.Trips[0].PatientID != result.Trips[1].PatientID {
		t.Error("case-variant rows got different patients")
	}
}

// TestCommit_SkipsRowOnCreateFailure: a failed patient creation drops that row
// and commits the rest, surfacing the skip in the result.
func TestCommit_SkipsRowOnCreateFailure(t *testing.T) {
	store := &fakeStore{
		createErr:      fmt.Errorf("insert conflict"),
		failCreateName: "Bob",
	}
	rows := []*ImportRow{
		validRow(2, "Jane", "Doe"),
		validRow(3, "Bob", "Ray"),
	}

	result, err := Commit(context.Background(), rows, "org-1", store)
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	if result.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1", result.Inserted)
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("got %d skips, want 1", len(result.Skipped))
	}
	skip := result.Skipped[0]
	if skip.Line != 3 || skip.Name != "Bob Ray" {
		t.Errorf("skip = %+v, want line 3 Bob Ray", skip)
	}
	if !strings.Contains(skip.Reason, "create patient") {
		t.Errorf("skip reason = %q", skip.Reason)
	}
}

func TestCommit_AllRowsSkipped(t *testing.T) {
	store := &fakeStore{createErr: fmt.Errorf("insert conflict")}

	_, err := Commit(context.Background(), []*ImportRow{validRow(2, "Jane", "Doe")}, "org-1", store)
	if !errors.Is(err, ErrNoValidRows) {
		t.Errorf("error = %v, want ErrNoValidRows when every row is skipped", err)
	}
}

func TestCommit_BatchInsertFailureFailsCommit(t *testing.T) {
	store := &fakeStore{insertErr: fmt.Errorf("deadlock detected")}

	result, err := Commit(context.Background(), []*ImportRow{validRow(2, "Jane", "Doe")}, "org-1", store)
	if err == nil {
		t.Fatal("expected error from batch insert failure")
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on failed commit", result)
	}
}

func TestCommit_FullNameSplit(t *testing.T) {
	row := validRow(2, "", "")
	row.FullName = "Mary Ann Jones"

	store := &fakeStore{}
	if _, err := Commit(context.Background(), []*ImportRow{row}, "org-1", store); err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	if len(store.created) != 1 {
		t.Fatalf("created %d patients, want 1", len(store.created))
	}
	if p := store.created[0]; p.FirstName != "Mary" || p.LastName != "Ann Jones" {
		t.Errorf("split = %q / %q, want Mary / Ann Jones", p.FirstName, p.LastName)
	}
}

func TestCommit_RowWithoutNameIsSkipped(t *testing.T) {
	named := validRow(2, "Jane", "Doe")
	nameless := validRow(3, "", "")

	store := &fakeStore{}
	result, err := Commit(context.Background(), []*ImportRow{named, nameless}, "org-1", store)
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	if result.Inserted != 1 || len(result.Skipped) != 1 {
		t.Errorf("inserted %d skipped %d, want 1/1", result.Inserted, len(result.Skipped))
	}
}

// ============================================================================
// Trip Draft Tests
// ============================================================================

func TestCommit_PickupTimeWinsOverAppointment(t *testing.T) {
	row := validRow(2, "Jane", "Doe")
	row.PickupTime = "9:15 AM"
	row.AppointmentTime = "10:00 AM"

	store := &fakeStore{}
	if _, err := Commit(context.Background(), []*ImportRow{row}, "org-1", store); err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	at := store.inserted[0].ScheduledAt
	if !at.Valid || at.Time.Hour() != 9 || at.Time.Minute() != 15 {
		t.Errorf("ScheduledAt = %v, want 09:15", at.Time)
	}
}

func TestCommit_AppointmentTimeFallback(t *testing.T) {
	row := validRow(2, "Jane", "Doe")
	row.PickupTime = ""
	row.AppointmentTime = "10:00 AM"

	store := &fakeStore{}
	if _, err := Commit(context.Background(), []*ImportRow{row}, "org-1", store); err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	at := store.inserted[0].ScheduledAt
	if !at.Valid || at.Time.Hour() != 10 {
		t.Errorf("ScheduledAt = %v, want 10:00", at.Time)
	}
}

func TestCommit_DraftCarriesRowFields(t *testing.T) {
	row := validRow(2, "Jane", "Doe")
	row.TripType = "wheelchair"
	row.Miles = "6.2"
	row.Notes = "oxygen on board"
	row.ExternalTripID = "MC-10023"

	store := &fakeStore{}
	if _, err := Commit(context.Background(), []*ImportRow{row}, "org-1", store); err != nil {
		t.Fatalf("Commit error: %v", err)
	}

	draft := store.inserted[0]
	if draft.TripType != "wheelchair" {
		t.Errorf("TripType = %q", draft.TripType)
	}
	if !draft.Miles.Valid {
		t.Error("Miles not converted")
	}
	if !draft.Notes.Valid || draft.Notes.String != "oxygen on board" {
		t.Errorf("Notes = %+v", draft.Notes)
	}
	if !draft.ExternalTripID.Valid || draft.ExternalTripID.String != "MC-10023" {
		t.Errorf("ExternalTripID = %+v", draft.ExternalTripID)
	}
	if draft.PickupAddress == "" || draft.DropoffAddress == "" {
		t.Error("draft missing composed addresses")
	}
}
