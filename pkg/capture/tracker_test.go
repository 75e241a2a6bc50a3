package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoState = errors.New("no persisted session")

// memStore is an in-memory Store recording every checkpoint write.
type memStore struct {
	session *Session
	writes  int
	failing bool
}

func (m *memStore) Read() (*Session, error) {
	if m.session == nil {
		return nil, errNoState
	}
	return m.session, nil
}

func (m *memStore) Write(session *Session) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.session = session
	m.writes++
	return nil
}

func TestTrackerPersistsAtCheckpoints(t *testing.T) {
	store := &memStore{}
	tracker := NewTracker(store)

	session := tracker.Load([]TaskDefinition{
		{ID: "home", Target: Target{URL: "https://docs.example.com/"}},
		{ID: "api", Target: Target{URL: "https://docs.example.com/api"}},
	}, "shots", "png")

	// Load alone has no side effects.
	assert.Equal(t, 0, store.writes)

	require.NoError(t, tracker.StartSession(session))
	assert.Equal(t, 1, store.writes)
	assert.Equal(t, SessionCapturing, session.Status)
	assert.NotNil(t, session.StartedAt)

	require.NoError(t, tracker.MarkCaptured(session, "home", ""))
	require.NoError(t, tracker.MarkFailed(session, "api", "click failed: element not found"))
	assert.Equal(t, 3, store.writes)

	require.NoError(t, tracker.FinishSession(session))
	assert.Equal(t, 4, store.writes)
	assert.Equal(t, SessionPartial, session.Status)
	require.NotNil(t, session.Summary)
	assert.Equal(t, Summary{Total: 2, Captured: 1, Failed: 1}, *session.Summary)
}

func TestTrackerUnknownTaskDoesNotPersist(t *testing.T) {
	store := &memStore{}
	tracker := NewTracker(store)

	session := tracker.Load([]TaskDefinition{
		{ID: "home", Target: Target{URL: "https://docs.example.com/"}},
	}, "shots", "png")

	var notFound *TaskNotFoundError

	err := tracker.MarkCaptured(session, "missing", "")
	require.ErrorAs(t, err, &notFound)

	err = tracker.MarkSkipped(session, "missing", "whatever")
	require.ErrorAs(t, err, &notFound)

	// A failed lookup never reaches the store.
	assert.Equal(t, 0, store.writes)
}

func TestTrackerSurfacesStoreErrors(t *testing.T) {
	store := &memStore{failing: true}
	tracker := NewTracker(store)

	session := tracker.Load([]TaskDefinition{
		{ID: "home", Target: Target{URL: "https://docs.example.com/"}},
	}, "shots", "png")

	err := tracker.StartSession(session)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestTrackerResume(t *testing.T) {
	store := &memStore{
		session: &Session{
			Status:    SessionCapturing,
			OutputDir: "shots",
			Ext:       "png",
			Tasks: []*Task{
				{ID: "home", Status: StatusCaptured, ArtifactPath: "shots/home.png"},
				{ID: "api"}, // status absent in persisted state
			},
		},
	}
	tracker := NewTracker(store)

	session, err := tracker.Resume()
	require.NoError(t, err)

	assert.Equal(t, StatusCaptured, session.Tasks[0].Status)
	assert.Equal(t, StatusPending, session.Tasks[1].Status)

	// Only the task that was never captured is pending.
	var pending []string
	for task := range session.PendingTasks() {
		pending = append(pending, task.ID)
	}
	assert.Equal(t, []string{"api"}, pending)
}

func TestTrackerResumeNoState(t *testing.T) {
	tracker := NewTracker(&memStore{})

	_, err := tracker.Resume()
	require.ErrorIs(t, err, errNoState)
}
