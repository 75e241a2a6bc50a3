package browser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/snapdoc/pkg/capture"
)

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	_, err := s.Page.Goto(url, playwrightOpts)
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	return nil
}

// Perform executes a pre-capture action on the current page,
// dispatching on the action kind and recursing over sequence steps.
func (s *Session) Perform(action *capture.Action) error {
	switch action.Kind {
	case capture.ActionClick:
		if err := s.Page.Click(action.Selector); err != nil {
			return fmt.Errorf("click %q failed: %w", action.Selector, err)
		}

	case capture.ActionHover:
		if err := s.Page.Hover(action.Selector); err != nil {
			return fmt.Errorf("hover %q failed: %w", action.Selector, err)
		}

	case capture.ActionInput:
		if err := s.Page.Fill(action.Selector, action.Value); err != nil {
			return fmt.Errorf("fill %q failed: %w", action.Selector, err)
		}

	case capture.ActionScroll:
		if err := s.Page.Mouse().Wheel(float64(action.DeltaX), float64(action.DeltaY)); err != nil {
			return fmt.Errorf("scroll failed: %w", err)
		}

	case capture.ActionWait:
		playwrightOpts := playwright.PageWaitForSelectorOptions{}
		if action.State != "" {
			state := playwright.WaitForSelectorState(action.State)
			playwrightOpts.State = &state
		}
		if action.Timeout > 0 {
			playwrightOpts.Timeout = &action.Timeout
		}
		if _, err := s.Page.WaitForSelector(action.Selector, playwrightOpts); err != nil {
			return fmt.Errorf("wait for %q failed: %w", action.Selector, err)
		}

	case capture.ActionSequence:
		for i := range action.Steps {
			if err := s.Perform(&action.Steps[i]); err != nil {
				return fmt.Errorf("sequence step %d: %w", i, err)
			}
		}

	default:
		return fmt.Errorf("unknown action kind: %q", action.Kind)
	}

	return nil
}

// Screenshot captures the current page to the given path. The image
// format follows the file extension (.png or .jpeg).
func (s *Session) Screenshot(path string, fullPage bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	opts := playwright.PageScreenshotOptions{
		Path:     &path,
		FullPage: &fullPage,
	}

	switch filepath.Ext(path) {
	case ".jpeg", ".jpg":
		opts.Type = playwright.ScreenshotTypeJpeg
	default:
		opts.Type = playwright.ScreenshotTypePng
	}

	if _, err := s.Page.Screenshot(opts); err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}

	return nil
}

// PDF prints the current page to a PDF file. Only supported by headless
// Chromium.
func (s *Session) PDF(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	opts := playwright.PagePdfOptions{
		Path: &path,
	}

	if _, err := s.Page.PDF(opts); err != nil {
		return fmt.Errorf("pdf export failed: %w", err)
	}

	return nil
}

// IsAuthenticated reports whether the probe selector is present on the
// current page. The probe identifies an element only rendered for
// authenticated users.
func (s *Session) IsAuthenticated(probeSelector string) bool {
	element, err := s.Page.QuerySelector(probeSelector)
	return err == nil && element != nil
}

// Login drives the described login form: navigate to the form, fill
// credentials, submit, then wait for the probe selector to confirm the
// authenticated state.
func (s *Session) Login(form LoginForm, creds Credentials) error {
	if err := s.Navigate(form.URL, NavigateOptions{WaitUntil: "load"}); err != nil {
		return fmt.Errorf("login page: %w", err)
	}

	if err := s.Page.Fill(form.UsernameSelector, creds.Username); err != nil {
		return fmt.Errorf("username field: %w", err)
	}

	if err := s.Page.Fill(form.PasswordSelector, creds.Password); err != nil {
		return fmt.Errorf("password field: %w", err)
	}

	if err := s.Page.Click(form.SubmitSelector); err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	if _, err := s.Page.WaitForSelector(form.ProbeSelector); err != nil {
		return fmt.Errorf("authentication not confirmed: %w", err)
	}

	return nil
}

// Metadata extracts title and meta description from the current page
// HTML.
func (s *Session) Metadata() (*PageMetadata, error) {
	content, err := s.Page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}

	return extractPageMetadata(content)
}
