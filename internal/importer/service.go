package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionTTL is how long an idle session survives before the sweeper drops it.
var SessionTTL = 2 * time.Hour

// ImportRecord is the history row persisted after a successful commit.
type ImportRecord struct {
	SessionID  string
	TemplateID string
	FileName   string
	OrgID      string
	TotalRows  int
	Inserted   int
	Skipped    int
}

// ImportRecorder is an optional capability of the persistence collaborator:
// stores that implement it get an import history row per successful commit.
type ImportRecorder interface {
	RecordImport(ctx context.Context, rec ImportRecord) error
}

// Service owns the import sessions and drives the pipeline against the
// persistence collaborator.
type Service struct {
	store       Store
	maxFileSize int64

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService creates a Service. maxFileSize bounds uploaded manifests in
// bytes; zero means no bound.
func NewService(store Store, maxFileSize int64) *Service {
	return &Service{
		store:       store,
		maxFileSize: maxFileSize,
		sessions:    make(map[string]*Session),
	}
}

// ListTemplates returns the registered broker templates.
func (s *Service) ListTemplates() []BrokerTemplate {
	return All()
}

// Template returns one template by ID.
func (s *Service) Template(id string) (BrokerTemplate, error) {
	tpl, ok := Get(id)
	if !ok {
		return BrokerTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return tpl, nil
}

// CreateSession starts a new import session in SelectingTemplate.
func (s *Service) CreateSession() *Session {
	sess := &Session{
		ID:        uuid.New().String(),
		state:     StateSelectingTemplate,
		touchedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Session returns a session by ID.
func (s *Service) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// SelectTemplate binds a registered template to the session and advances it
// to AwaitingFile.
func (s *Service) SelectTemplate(sessionID, templateID string) error {
	sess, err := s.Session(sessionID)
	if err != nil {
		return err
	}
	tpl, ok := Get(templateID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.transition(StateAwaitingFile); err != nil {
		return err
	}
	sess.template = tpl
	return nil
}

// LoadManifest parses, maps, and validates an uploaded file, advancing the
// session to Reviewing. Parse errors for individual rows are kept on the
// session; they never abort the load as long as a header was read.
func (s *Service) LoadManifest(ctx context.Context, sessionID, fileName string, data []byte) (Summary, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return Summary{}, err
	}

	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return Summary{}, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), s.maxFileSize)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != StateAwaitingFile {
		return Summary{}, fmt.Errorf("%w: manifest load in state %s", ErrInvalidTransition, sess.state)
	}

	parsed, err := ParseManifest(fileName, data)
	if err != nil {
		// Aborting mid-parse is side-effect free: session stays AwaitingFile.
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	if err := sess.transition(StateReviewing); err != nil {
		return Summary{}, err
	}

	sess.fileName = fileName
	sess.parseErrors = parsed.ParseErrors
	sess.review = NewReviewSet(parsed.Rows, sess.template)

	summary := sess.review.Summarize()

	slog.Info("manifest loaded",
		"session_id", sess.ID,
		"template", sess.template.ID,
		"file", fileName,
		"rows", summary.Total,
		"valid", summary.Valid,
		"parse_errors", len(parsed.ParseErrors),
	)

	return summary, nil
}

// Rows returns the session's working set.
func (s *Service) Rows(sessionID string) ([]*ImportRow, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.review == nil {
		return nil, fmt.Errorf("%w: no manifest loaded", ErrInvalidTransition)
	}
	return sess.review.Rows, nil
}

// UpdateRow applies a point edit and re-validates that row only. Edits are
// accepted only while Reviewing; the working set is read-only during a
// commit.
func (s *Service) UpdateRow(sessionID string, rowIndex int, attribute, value string) (*ImportRow, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state != StateReviewing {
		return nil, fmt.Errorf("%w: edit in state %s", ErrInvalidTransition, sess.state)
	}

	if err := sess.review.UpdateField(rowIndex, attribute, value); err != nil {
		return nil, err
	}
	sess.touchedAt = time.Now()
	return sess.review.Rows[rowIndex], nil
}

// Summary reports the session's current validation summary.
func (s *Service) Summary(sessionID string) (Summary, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return Summary{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.review == nil {
		return Summary{}, fmt.Errorf("%w: no manifest loaded", ErrInvalidTransition)
	}
	return sess.review.Summarize(), nil
}

// CommitSession runs the commit pipeline over the session's working set in
// the given organization scope. Once the batched insert has been issued the
// commit runs to completion; cancellation is only honored between phases.
func (s *Service) CommitSession(ctx context.Context, sessionID, orgID string) (*CommitResult, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if err := sess.transition(StateCommitting); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	rows := sess.review.Rows
	tplID := sess.template.ID
	fileName := sess.fileName
	sess.mu.Unlock()

	result, err := Commit(ctx, rows, orgID, s.store)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err != nil {
		sess.lastError = err.Error()
		_ = sess.transition(StateFailed)
		return nil, err
	}

	sess.lastError = ""
	sess.result = result
	_ = sess.transition(StateSucceeded)

	if rec, ok := s.store.(ImportRecorder); ok {
		record := ImportRecord{
			SessionID:  sess.ID,
			TemplateID: tplID,
			FileName:   fileName,
			OrgID:      orgID,
			TotalRows:  len(rows),
			Inserted:   result.Inserted,
			Skipped:    len(result.Skipped),
		}
		if err := rec.RecordImport(ctx, record); err != nil {
			// History is best-effort; a committed import is never rolled
			// back because its trail could not be written.
			slog.Warn("import history record failed", "session_id", sess.ID, "error", err)
		}
	}

	return result, nil
}

// Reopen returns a failed session to Reviewing so corrections can resume.
func (s *Service) Reopen(sessionID string) error {
	sess, err := s.Session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.transition(StateReviewing)
}

// Sweep drops sessions idle past the TTL and returns how many were removed.
func (s *Service) Sweep() int {
	cutoff := time.Now().Add(-SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.touchedAt.Before(cutoff) && sess.state != StateCommitting
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSessionSweeper runs Sweep on an interval until ctx is cancelled.
func (s *Service) StartSessionSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("expired import sessions swept", "count", n)
			}
		}
	}
}
