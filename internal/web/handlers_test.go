package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Yahia89/meditrans/internal/config"
	"github.com/Yahia89/meditrans/internal/importer"
)

// memStore is a minimal in-memory importer.Store for handler tests.
type memStore struct {
	patients []importer.Patient
}

func (m *memStore) FindPatients(_ context.Context, orgID, firstName, lastName string) ([]importer.Patient, error) {
	var out []importer.Patient
	for _, p := range m.patients {
		if p.OrgID == orgID &&
			strings.EqualFold(p.FirstName, firstName) &&
			strings.EqualFold(p.LastName, lastName) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) CreatePatient(_ context.Context, orgID string, np importer.NewPatient) (importer.Patient, error) {
	p := importer.Patient{
		ID:        pgtype.UUID{Bytes: uuid.New(), Valid: true},
		OrgID:     orgID,
		FirstName: np.FirstName,
		LastName:  np.LastName,
	}
	m.patients = append(m.patients, p)
	return p, nil
}

func (m *memStore) InsertTrips(_ context.Context, drafts []importer.TripDraft) ([]importer.Trip, error) {
	trips := make([]importer.Trip, len(drafts))
	for i, d := range drafts {
		trips[i] = importer.Trip{
			ID:        pgtype.UUID{Bytes: uuid.New(), Valid: true},
			PatientID: d.PatientID,
			OrgID:     d.OrgID,
			Status:    d.Status,
		}
	}
	return trips, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = time.Minute
	cfg.Import.MaxFileSize = 1 << 20
	cfg.Import.CommitTimeout = time.Minute
	cfg.Rate.Enabled = false
	return cfg
}

func testServer(t *testing.T) *Server {
	t.Helper()

	importer.Register(importer.BrokerTemplate{
		ID:   "acme_rides",
		Name: "Acme Rides",
		Fields: []importer.TemplateField{
			{Column: "Member", Target: importer.AttrFullName, Required: true},
			{Column: "Pickup", Target: importer.AttrPickupAddress, Required: true},
			{Column: "Dropoff", Target: importer.AttrDropoffAddress, Required: true},
			{Column: "Date", Target: importer.AttrTripDate, Required: true},
		},
	})
	t.Cleanup(importer.Clear)

	svc := importer.NewService(&memStore{}, 1<<20)
	return NewServer(svc, testConfig())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func uploadManifest(t *testing.T, s *Server, sessionID, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fmt.Fprint(fw, content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+sessionID+"/manifest", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

// ============================================================================
// Handler Tests
// ============================================================================

func TestHandleHealth(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleListTemplates(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/templates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	views := decode[[]templateView](t, rec)
	if len(views) != 1 || views[0].ID != "acme_rides" {
		t.Errorf("templates = %+v", views)
	}
	if len(views[0].Fields) != 4 {
		t.Errorf("fields = %+v", views[0].Fields)
	}
}

func TestHandleGetTemplate_NotFound(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/templates/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	resp := decode[ErrorResponse](t, rec)
	if resp.Code != "TPL001" {
		t.Errorf("error code = %q, want TPL001", resp.Code)
	}
}

func TestHandleTemplateHeader(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/templates/acme_rides/header", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "Member,Pickup,Dropoff,Date" {
		t.Errorf("header row = %q", got)
	}
}

func TestImportFlowOverHTTP(t *testing.T) {
	s := testServer(t)

	// Create a session bound to the template.
	rec := doJSON(t, s, http.MethodPost, "/api/sessions", map[string]string{"templateId": "acme_rides"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, body %s", rec.Code, rec.Body.String())
	}
	sess := decode[importer.SessionView](t, rec)
	if sess.State != importer.StateAwaitingFile {
		t.Fatalf("state = %s, want awaiting_file", sess.State)
	}

	// Upload a manifest with one bad row.
	manifest := "Member,Pickup,Dropoff,Date\n" +
		"Jane Doe,450 W Thomas Rd,1919 E Thomas Rd,03/14/2025\n" +
		"Bob Ray,77 Center St,88 Main St,not-a-date\n"
	rec = uploadManifest(t, s, sess.ID, "trips.csv", manifest)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}
	view := decode[importer.SessionView](t, rec)
	if view.Summary == nil || view.Summary.Valid != 1 || view.Summary.Invalid != 1 {
		t.Fatalf("summary = %+v", view.Summary)
	}

	// The invalid row carries its error in the row listing.
	rec = doJSON(t, s, http.MethodGet, "/api/sessions/"+sess.ID+"/rows", nil)
	rows := decode[[]rowView](t, rec)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Valid == rows[1].Valid {
		t.Fatalf("expected exactly one invalid row: %+v", rows)
	}

	// Fix the bad date.
	rec = doJSON(t, s, http.MethodPatch, "/api/sessions/"+sess.ID+"/rows/1",
		map[string]string{"attribute": importer.AttrTripDate, "value": "03/15/2025"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, body %s", rec.Code, rec.Body.String())
	}
	if fixed := decode[rowView](t, rec); !fixed.Valid {
		t.Fatalf("row still invalid after correction: %+v", fixed)
	}

	// Commit.
	rec = doJSON(t, s, http.MethodPost, "/api/sessions/"+sess.ID+"/commit",
		map[string]string{"organizationId": "org-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("commit status = %d, body %s", rec.Code, rec.Body.String())
	}
	result := decode[commitView](t, rec)
	if result.InsertedCount != 2 || len(result.TripIDs) != 2 {
		t.Errorf("commit result = %+v", result)
	}

	// Session is terminal now.
	rec = doJSON(t, s, http.MethodGet, "/api/sessions/"+sess.ID, nil)
	final := decode[importer.SessionView](t, rec)
	if final.State != importer.StateSucceeded {
		t.Errorf("state = %s, want succeeded", final.State)
	}
}

func TestHandleCreateSession_UnknownTemplate(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/sessions", map[string]string{"templateId": "ghost"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleCommit_RequiresOrganization(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/sessions", map[string]string{"templateId": "acme_rides"})
	sess := decode[importer.SessionView](t, rec)

	rec = doJSON(t, s, http.MethodPost, "/api/sessions/"+sess.ID+"/commit", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleReopen_InvalidState(t *testing.T) {
	s := testServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/sessions", map[string]string{"templateId": "acme_rides"})
	sess := decode[importer.SessionView](t, rec)

	rec = doJSON(t, s, http.MethodPost, "/api/sessions/"+sess.ID+"/reopen", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}
