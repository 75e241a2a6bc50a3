package capture

import (
	"fmt"
	"time"
)

// TaskStatus represents the capture state of a single task.
type TaskStatus string

const (
	// StatusPending means the task has not been attempted yet
	StatusPending TaskStatus = "pending"

	// StatusCaptured means an artifact was produced for the task
	StatusCaptured TaskStatus = "captured"

	// StatusFailed means the capture attempt failed
	StatusFailed TaskStatus = "failed"

	// StatusSkipped means the task was deliberately not attempted
	StatusSkipped TaskStatus = "skipped"
)

// SessionStatus represents the rollup state of a capture session.
type SessionStatus string

const (
	// SessionPlaceholder is the state before the session is started
	SessionPlaceholder SessionStatus = "placeholder"

	// SessionCapturing means the session is in progress
	SessionCapturing SessionStatus = "capturing"

	// SessionCaptured means every task produced an artifact
	SessionCaptured SessionStatus = "captured"

	// SessionPartial means some but not all tasks produced artifacts
	SessionPartial SessionStatus = "partial"

	// SessionFailed means no task produced an artifact
	SessionFailed SessionStatus = "failed"
)

// Target describes where a capture happens. The tracker never interprets
// it; the browser driver does.
type Target struct {
	// URL is the page to navigate to before capturing
	URL string `json:"url" yaml:"url"`

	// Description is an optional human-readable label for reports
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Action is an optional pre-capture interaction to perform
	Action *Action `json:"action,omitempty" yaml:"action,omitempty"`
}

// Task is one unit of capture work: one target, one expected artifact.
type Task struct {
	// ID uniquely identifies the task, stable across runs
	ID string `json:"id" yaml:"id"`

	// Target is where the capture happens
	Target Target `json:"target" yaml:"target"`

	// RequiresAuth marks tasks that need an authenticated browser
	// session. Set at load time, never mutated by the tracker.
	RequiresAuth bool `json:"requires_auth" yaml:"requires_auth"`

	// Status is the current capture state
	Status TaskStatus `json:"status" yaml:"status"`

	// ArtifactPath is set only while Status is captured
	ArtifactPath string `json:"artifact_path,omitempty" yaml:"artifact_path,omitempty"`

	// ErrorMessage is set only while Status is failed or skipped
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`

	// Timestamp records the most recent terminal transition
	Timestamp *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Summary holds the final task counts embedded in a persisted session.
type Summary struct {
	Total    int `json:"total"`
	Captured int `json:"captured"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// Progress holds task counts for an in-flight session.
type Progress struct {
	Total    int `json:"total"`
	Captured int `json:"captured"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
	Pending  int `json:"pending"`
}

// Session is the full ordered batch of tasks plus rollup status for one
// capture run. OutputDir and Ext are session-level configuration used to
// derive default artifact paths.
type Session struct {
	// Status is the rollup status. Terminal values are only ever set by
	// Finish, which recomputes them from task counts.
	Status SessionStatus `json:"session_status"`

	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Summary is populated by Finish
	Summary *Summary `json:"summary,omitempty"`

	// OutputDir is where artifacts are written
	OutputDir string `json:"output_dir"`

	// Ext is the artifact file extension (without dot)
	Ext string `json:"ext"`

	// Tasks is the ordered task list. Order is caller-significant for
	// reporting only.
	Tasks []*Task `json:"tasks"`
}

// TaskNotFoundError indicates a mark operation referenced an id that is
// not in the session. It signals a caller/metadata mismatch and is never
// recovered internally.
type TaskNotFoundError struct {
	ID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %q not found in session", e.ID)
}
