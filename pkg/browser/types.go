package browser

import (
	"github.com/playwright-community/playwright-go"
)

// Session represents an active browser session with its associated
// resources.
type Session struct {
	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// LoginForm describes how to drive an authentication flow: where the
// login form lives and the selectors of its fields. The probe selector
// identifies an element only present when authenticated.
type LoginForm struct {
	// URL of the login page
	URL string

	// UsernameSelector identifies the username input
	UsernameSelector string

	// PasswordSelector identifies the password input
	PasswordSelector string

	// SubmitSelector identifies the submit control
	SubmitSelector string

	// ProbeSelector identifies an element visible only when logged in
	ProbeSelector string
}

// Credentials carries login credentials resolved by the caller.
type Credentials struct {
	Username string
	Password string
}

// PageMetadata holds metadata extracted from the current page HTML.
type PageMetadata struct {
	Title       string
	Description string
}

// Default values for various operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1440
	DefaultViewportHeight = 900
)
