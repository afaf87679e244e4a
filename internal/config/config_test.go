package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shipvoid-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHIPVOID_DC", "")
	t.Setenv("SHIPVOID_SOURCE_PATH", "")
	t.Setenv("SHIPVOID_PORT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8050, cfg.Server.Port)
	assert.Equal(t, "6006", cfg.Sources.DC)
	assert.Equal(t, DefaultDCs()["6006"].BasePath, cfg.Sources.ShipvoidPath)
	assert.Equal(t, []string{"Shipvoid*.xlsm", "Shipvoid*.xlsx", "Shipvoid*.xls"}, cfg.Sources.ShipvoidPatterns())
	assert.Equal(t, "Legacy*.csv", cfg.Sources.LegacyPattern)
	assert.Equal(t, 12*time.Hour, cfg.Redis.ResultTTL)
	assert.Len(t, cfg.DCs, 3)
	assert.Equal(t, "127.0.0.1:8050", cfg.Addr())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
sources:
  dc: "6040"
  legacy_pattern: "Legacy Unbilled*.csv"
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("SHIPVOID_DC", "")
	t.Setenv("SHIPVOID_SOURCE_PATH", "")
	t.Setenv("SHIPVOID_PORT", "9100")
	t.Setenv("LEGACY_SOURCE_PATH", "/data/legacy")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "6040", cfg.Sources.DC)
	assert.Equal(t, DefaultDCs()["6040"].BasePath, cfg.Sources.ShipvoidPath)
	assert.Equal(t, "/data/legacy", cfg.Sources.LegacyPath)
	assert.Equal(t, "Legacy Unbilled*.csv", cfg.Sources.LegacyPattern)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_UnknownDC(t *testing.T) {
	t.Setenv("SHIPVOID_DC", "9999")
	t.Setenv("SHIPVOID_SOURCE_PATH", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown DC: 9999")
	assert.Contains(t, err.Error(), "6006, 6031, 6040")
}

func TestDCPath(t *testing.T) {
	cfg := &Config{DCs: DefaultDCs()}
	at := time.Date(2026, time.January, 15, 12, 0, 0, 0, timeutil.Location)

	p, err := cfg.DCPath("6031", at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(DefaultDCs()["6031"].BasePath, "2026", "JAN 2026"), p)

	p, err = cfg.DCPath("6006", at)
	require.NoError(t, err)
	assert.Equal(t, DefaultDCs()["6006"].BasePath, p)

	_, err = cfg.DCPath("1", at)
	assert.Error(t, err)
}

func TestAvailableDCs(t *testing.T) {
	cfg := &Config{DCs: DefaultDCs()}
	assert.Equal(t, []DCInfo{
		{Code: "6006", Name: "DC 6006"},
		{Code: "6031", Name: "DC 6031"},
		{Code: "6040", Name: "DC 6040"},
	}, cfg.AvailableDCs())
}

func TestValidate(t *testing.T) {
	cfg := &Config{DCs: DefaultDCs()}
	cfg.Server.Port = 8050
	cfg.Sources.DC = "6006"
	cfg.Sources.ShipvoidPattern = "Shipvoid*.xlsm"
	cfg.Sources.LegacyPattern = "Legacy*.csv"
	require.NoError(t, cfg.Validate())

	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
	cfg.Server.Port = 8050

	cfg.Remote.Enabled = true
	assert.Error(t, cfg.Validate())
}
