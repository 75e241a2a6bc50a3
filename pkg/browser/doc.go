// Package browser drives a real browser through Playwright for
// documentation screenshot capture.
//
// The package is built around two concepts:
//
//  1. Manager: owns the Playwright lifecycle and launches the browser
//  2. Session: a browser context + page the capture run operates on
//
// A capture run uses one session: the runner navigates it to each task
// target, performs the task's pre-capture action, and captures a
// screenshot (and optionally a print-to-PDF rendering). Authentication
// is handled per session: a probe selector decides whether the session
// is already authenticated, and a selector-described login form is
// driven when it is not.
//
// All operations return errors rather than recording status; status
// bookkeeping belongs to the capture tracker, which only ever sees
// driver failures as opaque message strings.
//
// Example usage:
//
//	manager := browser.NewManager()
//	if err := manager.Initialize(); err != nil { ... }
//	defer manager.Shutdown()
//
//	session, err := manager.NewSession(browser.SessionOptions{
//	    Headless: true,
//	    Viewport: &browser.Viewport{Width: 1440, Height: 900},
//	})
//	if err != nil { ... }
//
//	err = session.Navigate("https://docs.example.com", browser.NavigateOptions{
//	    WaitUntil: "networkidle",
//	})
//	err = session.Screenshot("shots/home.png", true)
package browser
