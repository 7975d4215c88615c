package bootstrap_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finpro/internal/bootstrap"
	"finpro/internal/platform/config"
)

const twoLessonCatalog = `modules:
  - id: m1
    title: Basics
    lessons:
      - {id: l1, title: Intro, completed: true}
      - {id: l2, title: Budget, completed: false}
`

type progressServer struct {
	mu    sync.Mutex
	gets  []string
	posts []map[string]any
}

func (s *progressServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			s.gets = append(s.gets, r.URL.Query().Get("telegram_id"))
			_, _ = io.WriteString(w, `{"progress":[{"lesson_id":"l2","is_completed":true},{"lesson_id":"zz","is_completed":true}]}`)
		case http.MethodPost:
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			s.posts = append(s.posts, body)
			_, _ = io.WriteString(w, `{"success":true}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (s *progressServer) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.gets), len(s.posts)
}

func newApp(t *testing.T, endpoint string, telegramID int64) *bootstrap.App {
	t.Helper()
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(twoLessonCatalog), 0o600))
	app, err := bootstrap.New(context.Background(), config.Config{
		Endpoint:    endpoint,
		CatalogPath: catalogPath,
		HTTPTimeout: 5 * time.Second,
		LogMode:     "prod",
		LogPath:     filepath.Join(t.TempDir(), "finpro.log"),
		Redact:      true,
		Identity:    config.Identity{TelegramID: telegramID, FirstName: "Ann"},
	})
	require.NoError(t, err)
	return app
}

func lessonFlag(t *testing.T, app *bootstrap.App, id string) bool {
	t.Helper()
	lesson, err := app.CatalogCLI.GetLesson(context.Background(), id)
	require.NoError(t, err)
	return lesson.Completed
}

func TestLoadMergesRemoteProgressAndToggleSyncs(t *testing.T) {
	t.Parallel()
	remote := &progressServer{}
	srv := httptest.NewServer(remote.handler(t))
	t.Cleanup(srv.Close)
	app := newApp(t, srv.URL, 42)
	ctx := context.Background()

	load, err := app.ProgressCLI.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, load.Applied)
	assert.Equal(t, 1, load.Ignored)
	assert.True(t, lessonFlag(t, app, "l1"))
	assert.True(t, lessonFlag(t, app, "l2"))

	overview, err := app.CatalogCLI.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, overview.Overall.Percent)

	out, err := app.ProgressCLI.Toggle(ctx, "m1", "l1")
	require.NoError(t, err)
	assert.False(t, out.Completed)
	assert.False(t, lessonFlag(t, app, "l1"))
	require.NoError(t, app.Close(ctx))

	remote.mu.Lock()
	defer remote.mu.Unlock()
	require.Equal(t, []string{"42"}, remote.gets)
	require.Len(t, remote.posts, 1)
	assert.Equal(t, "l1", remote.posts[0]["lesson_id"])
	assert.Equal(t, false, remote.posts[0]["is_completed"])
	assert.Equal(t, float64(42), remote.posts[0]["telegram_id"])
}

func TestNoIdentityIsLocalOnly(t *testing.T) {
	t.Parallel()
	remote := &progressServer{}
	srv := httptest.NewServer(remote.handler(t))
	t.Cleanup(srv.Close)
	app := newApp(t, srv.URL, 0)
	ctx := context.Background()

	load, err := app.ProgressCLI.Load(ctx)
	require.NoError(t, err)
	assert.True(t, load.LocalOnly)

	out, err := app.ProgressCLI.Toggle(ctx, "m1", "l1")
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.True(t, lessonFlag(t, app, "l1"))
	require.NoError(t, app.Close(ctx))

	gets, posts := remote.counts()
	assert.Zero(t, gets)
	assert.Zero(t, posts)
}

func TestUnreachableServerKeepsDefaults(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	app := newApp(t, srv.URL, 42)
	ctx := context.Background()

	load, err := app.ProgressCLI.Load(ctx)
	require.NoError(t, err)
	assert.True(t, load.Degraded)
	assert.True(t, lessonFlag(t, app, "l1"))
	assert.False(t, lessonFlag(t, app, "l2"))

	out, err := app.ProgressCLI.Toggle(ctx, "m1", "l2")
	require.NoError(t, err)
	assert.True(t, out.Completed)
	require.NoError(t, app.Close(ctx))

	status, err := app.ProgressCLI.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Failed)
	assert.True(t, lessonFlag(t, app, "l2"), "failed submit must not roll back")
}

func TestLocalModeRunsWithoutEndpoint(t *testing.T) {
	t.Parallel()
	app := newApp(t, "", 0)
	ctx := context.Background()

	load, err := app.ProgressCLI.Load(ctx)
	require.NoError(t, err)
	assert.True(t, load.LocalOnly)

	out, err := app.ProgressCLI.Toggle(ctx, "m1", "l2")
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.False(t, lessonFlag(t, app, "l2"))
	require.NoError(t, app.Close(ctx))
}
