package web

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Yahia89/meditrans/internal/importer"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// templateFieldView is the JSON shape of one template column.
type templateFieldView struct {
	Column   string `json:"column"`
	Target   string `json:"target,omitempty"`
	Required bool   `json:"required"`
}

// templateView is the JSON shape of a broker template.
type templateView struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Fields []templateFieldView `json:"fields"`
}

func toTemplateView(t importer.BrokerTemplate) templateView {
	v := templateView{ID: t.ID, Name: t.Name, Fields: make([]templateFieldView, len(t.Fields))}
	for i, f := range t.Fields {
		v.Fields[i] = templateFieldView{Column: f.Column, Target: f.Target, Required: f.Required}
	}
	return v
}

// handleListTemplates returns all registered broker templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := s.service.ListTemplates()
	views := make([]templateView, len(templates))
	for i, t := range templates {
		views[i] = toTemplateView(t)
	}
	writeJSON(w, http.StatusOK, views)
}

// handleGetTemplate returns one broker template by ID.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.service.Template(chi.URLParam(r, "templateID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateView(tpl))
}

// handleTemplateHeader downloads a blank CSV with the partner's column headers,
// for manual manifest preparation.
func (s *Server) handleTemplateHeader(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.service.Template(chi.URLParam(r, "templateID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tpl.ID+"_header.csv"))

	cw := csv.NewWriter(w)
	cw.Write(tpl.Headers())
	cw.Flush()
}

// handleCreateSession starts an import session bound to the requested broker
// template.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"templateId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondErrorStatus(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	// Validate the template before allocating a session.
	if _, err := s.service.Template(req.TemplateID); err != nil {
		s.respondError(w, r, err)
		return
	}

	sess := s.service.CreateSession()
	if err := s.service.SelectTemplate(sess.ID, req.TemplateID); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sess.View())
}

// handleGetSession returns the session's state and validation summary.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.service.Session(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

// handleUploadManifest accepts the broker's manifest file as multipart form
// data, runs parse/map/validate, and returns the session snapshot with the
// validation summary and any per-row parse errors.
func (s *Server) handleUploadManifest(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", importer.ErrFileTooLarge, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondErrorStatus(w, r, fmt.Errorf("no file provided: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondErrorStatus(w, r, fmt.Errorf("failed to read file: %w", err), http.StatusInternalServerError)
		return
	}

	if _, err := s.service.LoadManifest(r.Context(), sessionID, header.Filename, data); err != nil {
		s.respondError(w, r, err)
		return
	}

	sess, err := s.service.Session(sessionID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

// rowView is the JSON shape of one working-set row.
type rowView struct {
	Index      int               `json:"index"`
	Line       int               `json:"line"`
	Attributes map[string]string `json:"attributes"`
	Errors     []string          `json:"errors,omitempty"`
	Valid      bool              `json:"valid"`
}

func toRowView(index int, row *importer.ImportRow) rowView {
	return rowView{
		Index:      index,
		Line:       row.Raw.Line,
		Attributes: row.Attributes(),
		Errors:     row.Errors,
		Valid:      row.Valid(),
	}
}

// handleListRows returns the working set with per-row validation errors.
func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	rows, err := s.service.Rows(chi.URLParam(r, "sessionID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	views := make([]rowView, len(rows))
	for i, row := range rows {
		views[i] = toRowView(i, row)
	}
	writeJSON(w, http.StatusOK, views)
}

// handleUpdateRow applies a single-field correction to one row and returns the
// re-validated row.
func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	rowIndex, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %q", importer.ErrRowOutOfRange, chi.URLParam(r, "row")))
		return
	}

	var req struct {
		Attribute string `json:"attribute"`
		Value     string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondErrorStatus(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	row, err := s.service.UpdateRow(sessionID, rowIndex, req.Attribute, req.Value)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRowView(rowIndex, row))
}

// commitView is the JSON shape of a successful commit.
type commitView struct {
	InsertedCount int                   `json:"insertedCount"`
	TripIDs       []string              `json:"tripIds"`
	Skipped       []importer.SkippedRow `json:"skipped,omitempty"`
}

// handleCommit runs the commit pipeline over the session's error-free rows.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req struct {
		OrganizationID string `json:"organizationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondErrorStatus(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.OrganizationID) == "" {
		s.respondErrorStatus(w, r, fmt.Errorf("organizationId is required"), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.cfg.Import.CommitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Import.CommitTimeout)
		defer cancel()
	}

	result, err := s.service.CommitSession(ctx, sessionID, req.OrganizationID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	view := commitView{
		InsertedCount: result.Inserted,
		TripIDs:       make([]string, len(result.Trips)),
		Skipped:       result.Skipped,
	}
	for i, trip := range result.Trips {
		view.TripIDs[i] = importer.PgUUIDToString(trip.ID)
	}
	writeJSON(w, http.StatusOK, view)
}

// handleReopen returns a failed session to review so corrections can resume.
func (s *Server) handleReopen(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.service.Reopen(sessionID); err != nil {
		s.respondError(w, r, err)
		return
	}

	sess, err := s.service.Session(sessionID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}
