// Package runner orchestrates a capture run: it drives the browser to
// each task target and records the outcome through the capture tracker,
// persisting session state at every checkpoint.
package runner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/entrhq/snapdoc/pkg/browser"
	"github.com/entrhq/snapdoc/pkg/capture"
	"github.com/entrhq/snapdoc/pkg/config"
	"github.com/entrhq/snapdoc/pkg/export"
	"github.com/entrhq/snapdoc/pkg/logging"
	"github.com/entrhq/snapdoc/pkg/metadata"
)

// Driver is the browser capability the runner consumes. browser.Session
// satisfies it; tests substitute a scripted fake.
type Driver interface {
	Navigate(url string, opts browser.NavigateOptions) error
	Perform(action *capture.Action) error
	Screenshot(path string, fullPage bool) error
	PDF(path string) error
	IsAuthenticated(probeSelector string) bool
	Login(form browser.LoginForm, creds browser.Credentials) error
	Metadata() (*browser.PageMetadata, error)
}

// Runner executes one capture session against a driver.
type Runner struct {
	driver  Driver
	tracker *capture.Tracker
	cfg     *config.Config
	logger  *logging.Logger
}

// New creates a runner. The config must already be validated.
func New(driver Driver, tracker *capture.Tracker, cfg *config.Config, logger *logging.Logger) *Runner {
	return &Runner{
		driver:  driver,
		tracker: tracker,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run executes the capture session and returns the finalized session.
// Per-task failures never abort the run; they are recorded on the task
// and reflected in the rollup status. Cancellation between tasks leaves
// the remaining tasks pending and still finalizes the session.
func (r *Runner) Run(ctx context.Context) (*capture.Session, error) {
	session, err := r.loadSession()
	if err != nil {
		return nil, err
	}

	if err := r.applyFilters(session); err != nil {
		return nil, err
	}

	if err := r.tracker.StartSession(session); err != nil {
		return nil, err
	}
	r.logger.Infof("session started: %d tasks", len(session.Tasks))

	// Unauthenticated targets first, so an unavailable login flow can
	// only ever affect the tasks that need it.
	r.capturePartition(ctx, session, session.TasksNotRequiringAuth())
	r.captureAuthPartition(ctx, session)

	if err := r.tracker.FinishSession(session); err != nil {
		return nil, err
	}

	p := session.Progress()
	r.logger.Infof("session finished: %s (%d/%d captured)", session.Status, p.Captured, p.Total)

	if err := r.writeReport(session); err != nil {
		r.logger.Errorf("failed to write report: %v", err)
	}

	if r.cfg.Export.PDF {
		r.exportPDF(session)
	}

	return session, nil
}

// loadSession resumes the persisted session if one exists, otherwise
// builds a fresh one from the configured task definitions.
func (r *Runner) loadSession() (*capture.Session, error) {
	session, err := r.tracker.Resume()
	if err == nil {
		r.logger.Infof("resuming persisted session from previous run")
		return session, nil
	}
	if !errors.Is(err, metadata.ErrStoreNotFound) {
		return nil, fmt.Errorf("failed to resume session: %w", err)
	}

	return r.tracker.Load(r.cfg.Definitions(), r.cfg.OutputDir, r.cfg.Format), nil
}

// applyFilters skips pending tasks excluded by the id glob filters.
func (r *Runner) applyFilters(session *capture.Session) error {
	filter, err := r.cfg.Filters.Compile()
	if err != nil {
		return err
	}

	for task := range session.PendingTasks() {
		if filter.Match(task.ID) {
			continue
		}
		if err := r.tracker.MarkSkipped(session, task.ID, "excluded by task filter"); err != nil {
			return err
		}
		r.logger.Infof("task %s: excluded by filter", task.ID)
	}
	return nil
}

// capturePartition captures every still-pending task in the sequence,
// one at a time, stopping between tasks on cancellation.
func (r *Runner) capturePartition(ctx context.Context, session *capture.Session, tasks iter.Seq[*capture.Task]) {
	for task := range tasks {
		if task.Status != capture.StatusPending {
			continue
		}
		if ctx.Err() != nil {
			r.logger.Warnf("run cancelled, leaving remaining tasks pending")
			return
		}
		r.captureTask(session, task)
	}
}

// captureAuthPartition establishes authentication, then captures the
// auth-requiring tasks. If authentication cannot be established, those
// tasks are skipped with the reason recorded; the run continues.
func (r *Runner) captureAuthPartition(ctx context.Context, session *capture.Session) {
	pending := false
	for task := range session.TasksRequiringAuth() {
		if task.Status == capture.StatusPending {
			pending = true
			break
		}
	}
	if !pending || ctx.Err() != nil {
		return
	}

	if err := r.ensureAuthenticated(); err != nil {
		r.logger.Warnf("authentication unavailable: %v", err)
		reason := fmt.Sprintf("authentication unavailable: %v", err)
		for task := range session.TasksRequiringAuth() {
			if task.Status != capture.StatusPending {
				continue
			}
			if markErr := r.tracker.MarkSkipped(session, task.ID, reason); markErr != nil {
				r.logger.Errorf("failed to record skip for %s: %v", task.ID, markErr)
			}
		}
		return
	}

	r.capturePartition(ctx, session, session.TasksRequiringAuth())
}

// ensureAuthenticated probes the session and drives the login form if
// needed. Credentials come from the environment variables the auth
// config names.
func (r *Runner) ensureAuthenticated() error {
	auth := r.cfg.Auth
	if auth == nil {
		return fmt.Errorf("no auth configuration")
	}

	if r.driver.IsAuthenticated(auth.ProbeSelector) {
		return nil
	}

	creds := browser.Credentials{
		Username: os.Getenv(auth.UsernameEnv),
		Password: os.Getenv(auth.PasswordEnv),
	}
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials not set in %s/%s", auth.UsernameEnv, auth.PasswordEnv)
	}

	form := browser.LoginForm{
		URL:              auth.LoginURL,
		UsernameSelector: auth.UsernameSelector,
		PasswordSelector: auth.PasswordSelector,
		SubmitSelector:   auth.SubmitSelector,
		ProbeSelector:    auth.ProbeSelector,
	}
	if err := r.driver.Login(form, creds); err != nil {
		return err
	}
	return nil
}

// captureTask performs the navigate/act/capture alternation for one
// task and records exactly one status transition for it.
func (r *Runner) captureTask(session *capture.Session, task *capture.Task) {
	r.logger.Infof("task %s: capturing %s", task.ID, task.Target.URL)

	artifactPath, err := r.attemptCapture(task)
	if err != nil {
		r.logger.Warnf("task %s: %v", task.ID, err)
		if markErr := r.tracker.MarkFailed(session, task.ID, err.Error()); markErr != nil {
			r.logger.Errorf("failed to record failure for %s: %v", task.ID, markErr)
		}
		return
	}

	// MarkCaptured persists, so the description must be in place first.
	r.describeFromPage(task)

	if err := r.tracker.MarkCaptured(session, task.ID, artifactPath); err != nil {
		r.logger.Errorf("failed to record capture for %s: %v", task.ID, err)
	}
}

// describeFromPage fills an empty task description with the captured
// page's title, so the report names every page even when the task list
// does not.
func (r *Runner) describeFromPage(task *capture.Task) {
	if task.Target.Description != "" {
		return
	}

	meta, err := r.driver.Metadata()
	if err != nil {
		r.logger.Warnf("task %s: page metadata: %v", task.ID, err)
		return
	}
	if meta.Title != "" {
		task.Target.Description = meta.Title
	}
}

// attemptCapture drives the browser for one task and returns the
// artifact path. All failures are returned as plain errors; the tracker
// records them as opaque text.
func (r *Runner) attemptCapture(task *capture.Task) (string, error) {
	opts := browser.NavigateOptions{
		WaitUntil: r.cfg.Navigation.WaitUntil,
		Timeout:   float64(r.cfg.Navigation.Timeout.Milliseconds()),
	}
	if err := r.driver.Navigate(task.Target.URL, opts); err != nil {
		return "", err
	}

	if task.Target.Action != nil {
		if err := r.driver.Perform(task.Target.Action); err != nil {
			return "", err
		}
	}

	artifactPath := capture.DefaultArtifactPath(r.cfg.OutputDir, task.ID, r.cfg.Format)
	if err := r.driver.Screenshot(artifactPath, r.cfg.FullPage); err != nil {
		return "", err
	}

	if r.cfg.Export.PDF {
		pdfPath := export.TaskPDFPath(r.cfg.OutputDir, task.ID)
		if err := r.driver.PDF(pdfPath); err != nil {
			// The screenshot is already on disk; a missing PDF page only
			// degrades the merged export.
			r.logger.Warnf("task %s: pdf rendering failed: %v", task.ID, err)
		}
	}

	return artifactPath, nil
}

// writeReport renders the session report next to the artifacts.
func (r *Runner) writeReport(session *capture.Session) error {
	if err := os.MkdirAll(r.cfg.OutputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(r.cfg.OutputDir, "report.md")
	report := capture.GenerateReport(session)
	if err := os.WriteFile(path, []byte(report), 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// exportPDF merges the per-task PDF pages into one session document.
// Export failures never affect session status; capture is already
// finalized by the time this runs.
func (r *Runner) exportPDF(session *capture.Session) {
	out, err := export.MergeSessionPDF(session, r.cfg.OutputDir)
	if err != nil {
		r.logger.Warnf("pdf export: %v", err)
		return
	}
	r.logger.Infof("pdf export: wrote %s", out)
}
