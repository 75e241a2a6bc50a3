package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/entrhq/snapdoc/pkg/capture"
)

func TestFileStoreRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	store := NewFileStore(filepath.Join(tempDir, "nested", "session.json"))

	session := capture.NewSession([]capture.TaskDefinition{
		{ID: "home", Target: capture.Target{URL: "https://docs.example.com/"}},
		{ID: "settings", Target: capture.Target{URL: "https://docs.example.com/settings"}, RequiresAuth: true},
	}, "shots", "png")
	session.Start()
	if err := session.MarkCaptured("home", "shots/home.png"); err != nil {
		t.Fatal(err)
	}
	if err := session.MarkFailed("settings", "login wall"); err != nil {
		t.Fatal(err)
	}
	session.Finish()

	if err := store.Write(session); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := store.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if loaded.Status != capture.SessionPartial {
		t.Errorf("expected partial status, got %s", loaded.Status)
	}
	if loaded.Summary == nil || loaded.Summary.Captured != 1 {
		t.Errorf("summary not preserved: %+v", loaded.Summary)
	}
	if len(loaded.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(loaded.Tasks))
	}

	// Order and per-task fields survive the round trip.
	if loaded.Tasks[0].ID != "home" || loaded.Tasks[1].ID != "settings" {
		t.Errorf("task order not preserved: %s, %s", loaded.Tasks[0].ID, loaded.Tasks[1].ID)
	}
	if loaded.Tasks[0].ArtifactPath != "shots/home.png" {
		t.Errorf("artifact path not preserved: %q", loaded.Tasks[0].ArtifactPath)
	}
	if loaded.Tasks[1].ErrorMessage != "login wall" {
		t.Errorf("error message not preserved: %q", loaded.Tasks[1].ErrorMessage)
	}
	if !loaded.Tasks[1].RequiresAuth {
		t.Error("requires_auth not preserved")
	}
}

func TestFileStoreReadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	_, err := store.Read()
	if !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestFileStoreReadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	_, err := store.Read()
	if err == nil {
		t.Fatal("expected decode error for corrupt store")
	}
	if errors.Is(err, ErrStoreNotFound) {
		t.Error("corrupt store must not be reported as not found")
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	session := capture.NewSession([]capture.TaskDefinition{
		{ID: "home", Target: capture.Target{URL: "https://docs.example.com/"}},
	}, "shots", "png")

	if err := store.Write(session); err != nil {
		t.Fatal(err)
	}

	if err := session.MarkCaptured("home", ""); err != nil {
		t.Fatal(err)
	}
	if err := store.Write(session); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Read()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Tasks[0].Status != capture.StatusCaptured {
		t.Errorf("expected overwritten state, got %s", loaded.Tasks[0].Status)
	}

	// No temp file left behind.
	if _, err := os.Stat(store.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after write")
	}
}

func TestFileStoreDefaultPath(t *testing.T) {
	store := NewFileStore("")
	want := filepath.Join(".snapdoc", "session.json")
	if store.Path() != want {
		t.Errorf("expected default path %s, got %s", want, store.Path())
	}
}
