package importer

// session.go models one import session's lifecycle:
//
//	SelectingTemplate -> AwaitingFile -> Reviewing -> Committing -> Succeeded
//	                                                             -> Failed -> Reviewing
//
// All transitions are forward-only except the Failed -> Reviewing back-edge.
// While Committing the working set is read-only: edits are rejected until the
// commit finishes or fails.

import (
	"fmt"
	"sync"
	"time"
)

// SessionState is the lifecycle phase of an import session.
type SessionState string

const (
	StateSelectingTemplate SessionState = "selecting_template"
	StateAwaitingFile      SessionState = "awaiting_file"
	StateReviewing         SessionState = "reviewing"
	StateCommitting        SessionState = "committing"
	StateSucceeded         SessionState = "succeeded"
	StateFailed            SessionState = "failed"
)

// transitions enumerates the legal state edges.
var transitions = map[SessionState][]SessionState{
	StateSelectingTemplate: {StateAwaitingFile},
	StateAwaitingFile:      {StateReviewing},
	StateReviewing:         {StateCommitting},
	StateCommitting:        {StateSucceeded, StateFailed},
	StateFailed:            {StateReviewing},
}

// Session is one in-flight import: a selected template, the parsed file's
// working set, and the commit outcome. Access is serialized through mu; the
// product is single-user per session but the HTTP layer is not.
type Session struct {
	ID string

	mu          sync.Mutex
	state       SessionState
	template    BrokerTemplate
	fileName    string
	review      *ReviewSet
	parseErrors []string
	result      *CommitResult
	lastError   string
	touchedAt   time.Time
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// transition moves the session to next, enforcing the state machine.
// Callers must hold s.mu.
func (s *Session) transition(next SessionState) error {
	for _, allowed := range transitions[s.state] {
		if allowed == next {
			s.state = next
			s.touchedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, next)
}

// SessionView is the JSON-safe snapshot of a session.
type SessionView struct {
	ID          string       `json:"id"`
	State       SessionState `json:"state"`
	TemplateID  string       `json:"templateId,omitempty"`
	FileName    string       `json:"fileName,omitempty"`
	ParseErrors []string     `json:"parseErrors,omitempty"`
	Summary     *Summary     `json:"summary,omitempty"`
	LastError   string       `json:"lastError,omitempty"`
}

// View snapshots the session for API responses.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := SessionView{
		ID:          s.ID,
		State:       s.state,
		TemplateID:  s.template.ID,
		FileName:    s.fileName,
		ParseErrors: s.parseErrors,
		LastError:   s.lastError,
	}
	if s.review != nil {
		sum := s.review.Summarize()
		v.Summary = &sum
	}
	return v
}
