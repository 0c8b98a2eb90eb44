package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"tutorai-be/internal/pkg/logger"
	"tutorai-be/pkg/storage"
	"tutorai-be/pkg/tutor/chat"
	"tutorai-be/pkg/tutor/dispatch"
	"tutorai-be/pkg/tutor/workspace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliFixture struct {
	server *httptest.Server
	dbPath string
	dir    string
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ask", r.URL.Path)
		var req dispatch.AskRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "Answer to " + req.Question})
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &cliFixture{server: srv, dbPath: filepath.Join(dir, "tutorchat.db"), dir: dir}
}

func (f *cliFixture) run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{
		"--server", f.server.URL,
		"--db", f.dbPath,
		"--user", "cli-user",
		"--log", filepath.Join(f.dir, "tutorchat.log"),
	}, args...))
	return cmd.Execute()
}

// reopen loads the state the commands left in the SQLite file.
func (f *cliFixture) reopen(t *testing.T) *workspace.Workspace {
	t.Helper()
	backend, err := storage.NewSQLiteBackend(f.dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	client := dispatch.NewHTTPClient(f.server.URL)
	return workspace.Open(context.Background(), "cli-user", backend, client, client, logger.NewNop())
}

func TestChatCommandPersistsTranscript(t *testing.T) {
	f := newCLIFixture(t)

	require.NoError(t, f.run(t, "chat", "What", "is", "torque?"))

	_, msgs, err := f.reopen(t).Transcript(context.Background(), "")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(msgs), 2)
	assert.Equal(t, chat.SenderUser, msgs[len(msgs)-2].Sender)
	assert.Equal(t, "What is torque?", msgs[len(msgs)-2].Content)
	assert.Equal(t, "Answer to What is torque?", msgs[len(msgs)-1].Content)
}

func TestChatCommandBlankQuestion(t *testing.T) {
	f := newCLIFixture(t)

	require.NoError(t, f.run(t, "chat", "   "))

	_, msgs, err := f.reopen(t).Transcript(context.Background(), "")
	require.NoError(t, err)
	for _, m := range msgs {
		assert.NotEqual(t, chat.SenderUser, m.Sender)
	}
}

func TestSessionAndCourseCommands(t *testing.T) {
	f := newCLIFixture(t)

	require.NoError(t, f.run(t, "new", "Exam", "prep"))
	require.NoError(t, f.run(t, "sessions"))
	require.NoError(t, f.run(t, "courses", "add", "Physics"))
	require.NoError(t, f.run(t, "courses"))
	assert.Error(t, f.run(t, "courses", "add", "astrology"))
	assert.Error(t, f.run(t, "switch", "no-such-session"))

	ws := f.reopen(t)
	sessions, activeID := ws.Sessions()
	require.Len(t, sessions, 2)
	for _, s := range sessions {
		if s.ID == activeID {
			assert.Equal(t, "Exam prep", s.Title)
		}
	}
	slots := ws.Slots()
	require.Len(t, slots, 1)
	assert.Equal(t, "physics", slots[0].Course)
}

func TestUploadCommandMissingFile(t *testing.T) {
	f := newCLIFixture(t)

	assert.Error(t, f.run(t, "upload", filepath.Join(f.dir, "missing.pdf")))
}

func TestFlagDefaultsFromEnv(t *testing.T) {
	t.Setenv("TUTOR_BASE_URL", "http://tutor.internal:5000")
	t.Setenv("SQLITE_PATH", "")

	flags := NewRootCommand().PersistentFlags()

	assert.Equal(t, "http://tutor.internal:5000", flags.Lookup("server").DefValue)
	assert.Equal(t, "tutorchat.db", flags.Lookup("db").DefValue)
	assert.Equal(t, "local", flags.Lookup("user").DefValue)
}
