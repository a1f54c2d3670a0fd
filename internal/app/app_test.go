package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/pump-signal/internal/config"
	"github.com/ninja0404/pump-signal/internal/pipeline"
)

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`scanner:
  scan_interval: 1
  error_backoff: 1
upstream:
  base_url: %q
  max_retries: 0
database:
  driver: memory
logger:
  discard: true
`, baseURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitializeReadOnly(t *testing.T) {
	application := New()
	require.NoError(t, application.InitializeReadOnly(writeConfig(t, "http://127.0.0.1:1")))
	defer application.Close()

	stats, err := application.Reports().Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TokenCount)
	assert.Equal(t, "Never", stats.LastUpdateText())
	assert.Nil(t, application.Scheduler())
}

func TestInitializeMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scanner: [oops"), 0o644))

	application := New()
	err := application.InitializeReadOnly(path)
	application.Close()

	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, path, cfgErr.Path)
}

func TestInitializeAndShutdownWithoutRun(t *testing.T) {
	application := New()
	require.NoError(t, application.Initialize(context.Background(), writeConfig(t, "http://127.0.0.1:1")))

	require.NotNil(t, application.Scheduler())
	assert.Equal(t, pipeline.StateStopped, application.Scheduler().State())
	assert.Equal(t, "none", application.guard.GetType())
	assert.Len(t, application.publishers.Publishers(), 1)

	application.Shutdown()
}

func TestStartReleasesComponentsOnInitFailure(t *testing.T) {
	path := writeConfig(t, "http://127.0.0.1:1")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("dedup:\n  cooldown: 1h\n  backend: memory\nreport:\n  cron: \"not a cron\"\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	application := New()
	err = application.Start(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule report")

	assert.Nil(t, application.guard)
	assert.Nil(t, application.publishers)
	assert.Nil(t, application.Scheduler())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pairs":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := New()
	require.NoError(t, application.Initialize(ctx, writeConfig(t, srv.URL)))

	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool { return hits.Load() > 0 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, pipeline.StateStopped, application.Scheduler().State())
	assert.GreaterOrEqual(t, application.Scheduler().Stats().Cycles, int64(1))
}
