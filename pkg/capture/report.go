package capture

import (
	"fmt"
	"strings"
	"time"
)

// GenerateReport renders a human-readable summary of the session: a
// counts header followed by one block per task. Pure function of
// session state; performs no I/O.
func GenerateReport(session *Session) string {
	var md strings.Builder

	p := session.Progress()

	// Header
	md.WriteString("# Capture Session Report\n\n")
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", session.Status))
	if session.StartedAt != nil {
		md.WriteString(fmt.Sprintf("**Started:** %s\n\n", session.StartedAt.Format(time.RFC3339)))
	}
	if session.FinishedAt != nil {
		md.WriteString(fmt.Sprintf("**Finished:** %s\n\n", session.FinishedAt.Format(time.RFC3339)))
	}
	md.WriteString(fmt.Sprintf("**Tasks:** %d total — %d captured, %d failed, %d skipped, %d pending\n\n",
		p.Total, p.Captured, p.Failed, p.Skipped, p.Pending))

	// Per-task blocks
	md.WriteString("## Tasks\n\n")
	for _, task := range session.Tasks {
		md.WriteString(fmt.Sprintf("### %s\n\n", task.ID))
		if task.Target.Description != "" {
			md.WriteString(fmt.Sprintf("%s\n\n", task.Target.Description))
		}
		md.WriteString(fmt.Sprintf("- **URL:** %s\n", task.Target.URL))
		md.WriteString(fmt.Sprintf("- **Status:** %s\n", task.Status))
		if task.ArtifactPath != "" {
			md.WriteString(fmt.Sprintf("- **Artifact:** `%s`\n", task.ArtifactPath))
		}
		if task.ErrorMessage != "" {
			md.WriteString(fmt.Sprintf("- **Error:** %s\n", task.ErrorMessage))
		}
		md.WriteString("\n")
	}

	return md.String()
}
