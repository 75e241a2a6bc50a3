package runner

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/snapdoc/pkg/capture"
)

// Color palette for the console summary.
var (
	mintGreen  = lipgloss.Color("#A8E6CF") // captured
	salmonPink = lipgloss.Color("#FFB3BA") // failed
	softAmber  = lipgloss.Color("#FFDFBA") // skipped
	mutedGray  = lipgloss.Color("#6B7280") // pending, secondary text
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	capturedStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	failedStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	skippedStyle = lipgloss.NewStyle().
			Foreground(softAmber)

	pendingStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	detailStyle = lipgloss.NewStyle().
			Foreground(mutedGray)
)

// statusStyle returns the style for a task status.
func statusStyle(status capture.TaskStatus) lipgloss.Style {
	switch status {
	case capture.StatusCaptured:
		return capturedStyle
	case capture.StatusFailed:
		return failedStyle
	case capture.StatusSkipped:
		return skippedStyle
	default:
		return pendingStyle
	}
}

// sessionStyle returns the style for a rollup status.
func sessionStyle(status capture.SessionStatus) lipgloss.Style {
	switch status {
	case capture.SessionCaptured:
		return capturedStyle
	case capture.SessionPartial:
		return skippedStyle
	case capture.SessionFailed:
		return failedStyle
	default:
		return pendingStyle
	}
}

// RenderSummary renders a styled console summary of a session: the
// rollup line, counts, and one line per task.
func RenderSummary(session *capture.Session) string {
	var b strings.Builder

	p := session.Progress()

	b.WriteString(headerStyle.Render("Capture session: ") +
		sessionStyle(session.Status).Render(string(session.Status)))
	b.WriteString("\n")
	b.WriteString(detailStyle.Render(fmt.Sprintf(
		"%d total · %d captured · %d failed · %d skipped · %d pending",
		p.Total, p.Captured, p.Failed, p.Skipped, p.Pending)))
	b.WriteString("\n\n")

	for _, task := range session.Tasks {
		b.WriteString(statusStyle(task.Status).Render(fmt.Sprintf("%-9s", task.Status)))
		b.WriteString(" " + task.ID)
		switch {
		case task.ArtifactPath != "":
			b.WriteString(detailStyle.Render("  " + task.ArtifactPath))
		case task.ErrorMessage != "":
			b.WriteString(detailStyle.Render("  " + task.ErrorMessage))
		}
		b.WriteString("\n")
	}

	return b.String()
}
