package capture

import (
	"iter"
	"time"
)

// TaskDefinition is the load-time description of a task, before any
// status is attached.
type TaskDefinition struct {
	ID           string
	Target       Target
	RequiresAuth bool
}

// NewSession constructs a session from task definitions with every task
// pending. outputDir and ext configure default artifact paths.
func NewSession(defs []TaskDefinition, outputDir, ext string) *Session {
	tasks := make([]*Task, 0, len(defs))
	for _, def := range defs {
		tasks = append(tasks, &Task{
			ID:           def.ID,
			Target:       def.Target,
			RequiresAuth: def.RequiresAuth,
			Status:       StatusPending,
		})
	}

	return &Session{
		Status:    SessionPlaceholder,
		OutputDir: outputDir,
		Ext:       ext,
		Tasks:     tasks,
	}
}

// Normalize fills in defaults on a session loaded from persisted state:
// tasks with no recorded status are treated as pending, and an empty
// rollup status becomes placeholder.
func (s *Session) Normalize() {
	if s.Status == "" {
		s.Status = SessionPlaceholder
	}
	for _, task := range s.Tasks {
		if task.Status == "" {
			task.Status = StatusPending
		}
	}
}

// Start marks the session as capturing and records the start time.
func (s *Session) Start() {
	now := time.Now()
	s.Status = SessionCapturing
	s.StartedAt = &now
}

// findTask returns the task with the given id, or a TaskNotFoundError.
func (s *Session) findTask(id string) (*Task, error) {
	for _, task := range s.Tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return nil, &TaskNotFoundError{ID: id}
}

// MarkCaptured records a successful capture for the task. If
// artifactPath is empty, the session-level default
// {outputDir}/{id}.{ext} is used. Re-invoking simply overwrites, so the
// operation is idempotent, and a previously failed task may be
// re-captured.
func (s *Session) MarkCaptured(id, artifactPath string) error {
	task, err := s.findTask(id)
	if err != nil {
		return err
	}

	if artifactPath == "" {
		artifactPath = DefaultArtifactPath(s.OutputDir, id, s.Ext)
	}

	now := time.Now()
	task.Status = StatusCaptured
	task.ArtifactPath = artifactPath
	task.ErrorMessage = ""
	task.Timestamp = &now
	return nil
}

// MarkFailed records a failed capture attempt with a descriptive
// message. The message is opaque to the tracker.
func (s *Session) MarkFailed(id, message string) error {
	task, err := s.findTask(id)
	if err != nil {
		return err
	}

	now := time.Now()
	task.Status = StatusFailed
	task.ErrorMessage = message
	task.Timestamp = &now
	return nil
}

// MarkSkipped records that the task was deliberately not attempted.
func (s *Session) MarkSkipped(id, reason string) error {
	task, err := s.findTask(id)
	if err != nil {
		return err
	}

	now := time.Now()
	task.Status = StatusSkipped
	task.ErrorMessage = reason
	task.Timestamp = &now
	return nil
}

// PendingTasks yields tasks that are still pending. The sequence is
// recomputed from current session state on every range, never cached.
func (s *Session) PendingTasks() iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for _, task := range s.Tasks {
			if task.Status != StatusPending {
				continue
			}
			if !yield(task) {
				return
			}
		}
	}
}

// TasksRequiringAuth yields tasks whose target needs an authenticated
// browser session.
func (s *Session) TasksRequiringAuth() iter.Seq[*Task] {
	return s.tasksByAuth(true)
}

// TasksNotRequiringAuth yields tasks capturable without authentication.
func (s *Session) TasksNotRequiringAuth() iter.Seq[*Task] {
	return s.tasksByAuth(false)
}

func (s *Session) tasksByAuth(requiresAuth bool) iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for _, task := range s.Tasks {
			if task.RequiresAuth != requiresAuth {
				continue
			}
			if !yield(task) {
				return
			}
		}
	}
}

// Progress counts tasks by status across the whole session.
func (s *Session) Progress() Progress {
	p := Progress{Total: len(s.Tasks)}
	for _, task := range s.Tasks {
		switch task.Status {
		case StatusCaptured:
			p.Captured++
		case StatusFailed:
			p.Failed++
		case StatusSkipped:
			p.Skipped++
		default:
			p.Pending++
		}
	}
	return p
}

// Finish computes the terminal rollup status from task counts and
// freezes the session. The rollup is always recomputed here, never set
// directly, so it cannot drift from the task-level counts.
//
// Policy, first match wins:
//  1. every task captured  -> captured
//  2. at least one capture -> partial
//  3. otherwise            -> failed
func (s *Session) Finish() {
	p := s.Progress()

	switch {
	case p.Captured == p.Total:
		s.Status = SessionCaptured
	case p.Captured > 0:
		s.Status = SessionPartial
	default:
		s.Status = SessionFailed
	}

	now := time.Now()
	s.FinishedAt = &now
	s.Summary = &Summary{
		Total:    p.Total,
		Captured: p.Captured,
		Failed:   p.Failed,
		Skipped:  p.Skipped,
	}
}
