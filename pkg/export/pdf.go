// Package export produces post-run artifacts from a finalized capture
// session.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/entrhq/snapdoc/pkg/capture"
)

// pdfSubdir is where per-task PDF pages are rendered, relative to the
// session output directory.
const pdfSubdir = "pdf"

// TaskPDFPath returns the location of the per-task PDF page.
func TaskPDFPath(outputDir, taskID string) string {
	return filepath.Join(outputDir, pdfSubdir, taskID+".pdf")
}

// SessionPDFPath returns the location of the merged session document.
func SessionPDFPath(outputDir string) string {
	return filepath.Join(outputDir, "session.pdf")
}

// MergeSessionPDF merges the per-task PDF pages of all captured tasks
// into a single document, in task order. Tasks without a rendered page
// are skipped. Returns the output path.
func MergeSessionPDF(session *capture.Session, outputDir string) (string, error) {
	var inputs []string
	for _, task := range session.Tasks {
		if task.Status != capture.StatusCaptured {
			continue
		}
		path := TaskPDFPath(outputDir, task.ID)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		inputs = append(inputs, path)
	}

	if len(inputs) == 0 {
		return "", fmt.Errorf("no pdf pages to merge")
	}

	out := SessionPDFPath(outputDir)
	if err := api.MergeCreateFile(inputs, out, false, nil); err != nil {
		return "", fmt.Errorf("failed to merge pdf pages: %w", err)
	}

	return out, nil
}
