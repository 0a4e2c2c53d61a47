package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "preclear.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 20, cfg.MaxReports)
	assert.Equal(t, ":8000", cfg.Server.Addr)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	p := writeConfig(t, `server:
  addr: "127.0.0.1:9090"
  shutdown_timeout: 3s
max_reports: 5
seed: 99
log:
  level: debug
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.MaxReports)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "static", cfg.StaticDir)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	p := writeConfig(t, "max_reportz: 5\n")
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_reportz")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	p := writeConfig(t, "max_reports: 0\n")
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_reports must be > 0")
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
