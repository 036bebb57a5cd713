package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akinalp/quickchat/database"
	"github.com/akinalp/quickchat/models"
	"github.com/akinalp/quickchat/pkg/logger"
	"github.com/akinalp/quickchat/repository"
	"github.com/akinalp/quickchat/ws"
)

type testStore struct {
	users    repository.UserRepository
	messages repository.MessageRepository
}

func newTestStore(t *testing.T) testStore {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "chat.db"), database.Migrations(), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return testStore{
		users:    repository.NewSQLiteUserRepo(db.Conn),
		messages: repository.NewSQLiteMessageRepo(db.Conn),
	}
}

func (s testStore) createUser(t *testing.T, name, lang string) *models.User {
	t.Helper()
	u := &models.User{FullName: name, Email: name + "@example.com", PreferredLanguage: lang}
	require.NoError(t, s.users.Create(context.Background(), u))
	return u
}

// fakeNotifier records pushes for the users marked online.
type fakeNotifier struct {
	mu     sync.Mutex
	online map[string]bool
	pushed map[string][]ws.Event
}

func newFakeNotifier(online ...string) *fakeNotifier {
	n := &fakeNotifier{online: map[string]bool{}, pushed: map[string][]ws.Event{}}
	for _, id := range online {
		n.online[id] = true
	}
	return n
}

func (n *fakeNotifier) SendToUser(userID string, event ws.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.online[userID] {
		return ws.ErrUserOffline
	}
	n.pushed[userID] = append(n.pushed[userID], event)
	return nil
}

func (n *fakeNotifier) events(userID string) []ws.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ws.Event(nil), n.pushed[userID]...)
}

// fakeAssets hands out predictable references, or fails when err is set.
type fakeAssets struct {
	mu      sync.Mutex
	err     error
	uploads []string
}

func (a *fakeAssets) Upload(_ context.Context, dataURI string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.uploads = append(a.uploads, dataURI)
	return PublicUploadPrefix + "fake.png", nil
}

var errBackendDown = errors.New("backend down")

func textOf(t *testing.T, m *models.Message) string {
	t.Helper()
	require.NotNil(t, m.Text)
	return *m.Text
}

func pushedView(t *testing.T, e ws.Event) models.MessageView {
	t.Helper()
	require.Equal(t, ws.OpNewMessage, e.Op)
	view, ok := e.Data.(models.MessageView)
	require.True(t, ok, "push payload must be a MessageView, got %T", e.Data)
	return view
}
