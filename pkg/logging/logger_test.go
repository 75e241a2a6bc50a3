package logging

import (
	"os"
	"strings"
	"sync"
	"testing"
)

// setupTestDir points the logger at a temp directory and resets the
// package globals after the test.
func setupTestDir(t *testing.T) {
	t.Helper()

	logDir = t.TempDir()
	initErr = nil
	initOnce = sync.Once{}
	// Consume the once so initLogDirectory keeps the temp dir
	initOnce.Do(func() {})

	t.Cleanup(func() {
		logDir = ""
		initErr = nil
		initOnce = sync.Once{}
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("runner")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "runner" {
		t.Errorf("Expected component 'runner', got %q", logger.component)
	}

	if logger.RunID() == "" {
		t.Error("Expected non-empty run ID")
	}

	if _, err := os.Stat(logger.LogPath()); os.IsNotExist(err) {
		t.Errorf("Log file does not exist at %s", logger.LogPath())
	}
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("tracker")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infof("captured %d of %d", 2, 3)
	logger.Warnf("slow navigation")
	logger.Errorf("capture failed")
	logger.Close()

	data, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"[tracker] [INFO] captured 2 of 3",
		"[tracker] [WARN] slow navigation",
		"[tracker] [ERROR] capture failed",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Log missing %q:\n%s", want, content)
		}
	}
}

func TestLoggerSharedFile(t *testing.T) {
	setupTestDir(t)

	first, err := NewLogger("runner")
	if err != nil {
		t.Fatalf("Failed to create first logger: %v", err)
	}
	defer first.Close()

	second, err := NewLogger("browser")
	if err != nil {
		t.Fatalf("Failed to create second logger: %v", err)
	}
	defer second.Close()

	// Components of the same run share one log file
	if first.LogPath() != second.LogPath() {
		t.Errorf("Expected shared log file, got %s and %s", first.LogPath(), second.LogPath())
	}
	if first.RunID() != second.RunID() {
		t.Error("Expected shared run ID")
	}
}

func TestLoggerCloseIdempotent(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("runner")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}
