package capture

import (
	"fmt"
	"path/filepath"
)

// Store is the metadata store collaborator the tracker persists through.
// Write must be atomic from the tracker's perspective.
type Store interface {
	// Read loads the previously persisted session, or an error
	// satisfying the store's not-found condition on first runs.
	Read() (*Session, error)

	// Write persists the session, replacing any previous state.
	Write(session *Session) error
}

// DefaultArtifactPath derives the artifact location for a task when the
// caller does not supply one.
func DefaultArtifactPath(outputDir, taskID, ext string) string {
	return filepath.Join(outputDir, fmt.Sprintf("%s.%s", taskID, ext))
}

// Tracker applies session state transitions and persists the session
// through the store at every checkpoint. The state machine itself lives
// on Session; Tracker only adds persistence.
//
// Tracker performs no locking. Callers that parallelize capture work
// must serialize access to a shared session themselves.
type Tracker struct {
	store Store
}

// NewTracker creates a tracker persisting through the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Load constructs a fresh session from definitions. No side effects
// beyond reading the input; the session is first persisted by
// StartSession.
func (t *Tracker) Load(defs []TaskDefinition, outputDir, ext string) *Session {
	return NewSession(defs, outputDir, ext)
}

// Resume reads the persisted session from the store, preserving task
// statuses from the previous run. Returns the store's not-found error
// when no prior state exists; the caller then falls back to Load.
func (t *Tracker) Resume() (*Session, error) {
	session, err := t.store.Read()
	if err != nil {
		return nil, err
	}
	session.Normalize()
	return session, nil
}

// StartSession moves the session to capturing and persists it.
func (t *Tracker) StartSession(session *Session) error {
	session.Start()
	if err := t.store.Write(session); err != nil {
		return fmt.Errorf("failed to persist session start: %w", err)
	}
	return nil
}

// MarkCaptured records a successful capture and persists the session.
func (t *Tracker) MarkCaptured(session *Session, taskID, artifactPath string) error {
	if err := session.MarkCaptured(taskID, artifactPath); err != nil {
		return err
	}
	return t.persist(session, taskID)
}

// MarkFailed records a failed capture and persists the session.
func (t *Tracker) MarkFailed(session *Session, taskID, message string) error {
	if err := session.MarkFailed(taskID, message); err != nil {
		return err
	}
	return t.persist(session, taskID)
}

// MarkSkipped records a skipped task and persists the session.
func (t *Tracker) MarkSkipped(session *Session, taskID, reason string) error {
	if err := session.MarkSkipped(taskID, reason); err != nil {
		return err
	}
	return t.persist(session, taskID)
}

// FinishSession computes the final rollup status and persists the
// session with its embedded summary.
func (t *Tracker) FinishSession(session *Session) error {
	session.Finish()
	if err := t.store.Write(session); err != nil {
		return fmt.Errorf("failed to persist session finish: %w", err)
	}
	return nil
}

func (t *Tracker) persist(session *Session, taskID string) error {
	if err := t.store.Write(session); err != nil {
		return fmt.Errorf("failed to persist status of task %q: %w", taskID, err)
	}
	return nil
}
