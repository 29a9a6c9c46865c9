package cli

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerHandler_ServesFilesWithHeaders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"), []byte(`{"ok":true}`), 0644))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(newViewerHandler(dir, log))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/index.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get("Cache-Control"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestViewerHandler_NotFound(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(newViewerHandler(t.TempDir(), log))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/missing.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServe_ApplyOverrides(t *testing.T) {
	cfg := setupTestCorpus(t)
	cmd := &ServeCommand{Host: "0.0.0.0", Port: 9000, Dir: "/elsewhere"}
	cmd.applyOverrides(cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "/elsewhere", cfg.Output.Dir)
}
