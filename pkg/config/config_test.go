package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
database:
  host: "db.local"
  user: "sync"
  password: "secret"
source:
  snapshot_path: "events.csv"
targets:
  datasource_url: "http://datasource:8001"
  destination_url: "http://destination:8002"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, "2022-01-29T00:00:00Z", cfg.Source.EpochAnchor)
	require.Equal(t, time.Minute, cfg.Sync.EventsInterval)
	require.Equal(t, 5*time.Minute, cfg.Sync.MonthlyInterval)
	require.True(t, cfg.Monitoring.Enabled)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
server:
  port: 9090
sync:
  events_interval: 15s
logging:
  level: "debug"
  format: "console"
`))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 15*time.Second, cfg.Sync.EventsInterval)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingTargets(t *testing.T) {
	_, err := Load(writeConfig(t, `
database:
  host: "db.local"
source:
  snapshot_path: "events.csv"
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "datasource_url")
}

func TestLoad_BadEpochAnchor(t *testing.T) {
	_, err := Load(writeConfig(t, `
database:
  host: "db.local"
source:
  snapshot_path: "events.csv"
  epoch_anchor: "29/01/2022"
targets:
  datasource_url: "http://datasource:8001"
  destination_url: "http://destination:8002"
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "epoch_anchor")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestEpochAnchorTime(t *testing.T) {
	c := SourceConfig{EpochAnchor: "2022-01-29T00:00:00Z"}
	epoch, err := c.EpochAnchorTime()
	require.NoError(t, err)
	require.Equal(t, time.Date(2022, 1, 29, 0, 0, 0, 0, time.UTC), epoch.UTC())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger, err = NewLogger(LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = NewLogger(LoggingConfig{Level: "loud", Format: "json"})
	require.Error(t, err)

	_, err = NewLogger(LoggingConfig{Level: "info", Format: "logfmt"})
	require.Error(t, err)
}
