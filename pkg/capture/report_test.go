package capture

import (
	"strings"
	"testing"
)

func TestGenerateReport(t *testing.T) {
	session := NewSession([]TaskDefinition{
		{ID: "home", Target: Target{URL: "https://docs.example.com/", Description: "Landing page"}},
		{ID: "settings", Target: Target{URL: "https://docs.example.com/settings"}, RequiresAuth: true},
		{ID: "billing", Target: Target{URL: "https://docs.example.com/billing"}, RequiresAuth: true},
	}, "shots", "png")
	session.Start()
	session.MarkCaptured("home", "shots/home.png")
	session.MarkFailed("settings", "navigation timed out")
	session.MarkSkipped("billing", "authentication unavailable")
	session.Finish()

	report := GenerateReport(session)

	// Every task id appears exactly once as a heading.
	for _, id := range []string{"home", "settings", "billing"} {
		heading := "### " + id + "\n"
		if n := strings.Count(report, heading); n != 1 {
			t.Errorf("expected heading for %s exactly once, found %d", id, n)
		}
	}

	if !strings.Contains(report, "1 captured, 1 failed, 1 skipped, 0 pending") {
		t.Errorf("report missing counts line:\n%s", report)
	}
	if !strings.Contains(report, "Landing page") {
		t.Error("report missing task description")
	}
	if !strings.Contains(report, "`shots/home.png`") {
		t.Error("report missing artifact path")
	}
	if !strings.Contains(report, "navigation timed out") {
		t.Error("report missing failure message")
	}
	if !strings.Contains(report, "authentication unavailable") {
		t.Error("report missing skip reason")
	}
	if !strings.Contains(report, string(SessionPartial)) {
		t.Error("report missing session status")
	}
}

func TestGenerateReportNoIO(t *testing.T) {
	// Calling twice on unchanged state yields identical output.
	session := NewSession([]TaskDefinition{
		{ID: "home", Target: Target{URL: "https://docs.example.com/"}},
	}, "shots", "png")

	if GenerateReport(session) != GenerateReport(session) {
		t.Error("report is not a pure function of session state")
	}
}
