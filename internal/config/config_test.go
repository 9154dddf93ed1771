package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sa6mwa/scanlaunch"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scanlaunch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, DefaultListen, cfg.Listen)
	require.Equal(t, scanlaunch.DefaultScannerUtility, cfg.ScannerUtility)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
	require.Equal(t, []string{DefaultOrigin}, cfg.CORS.AllowOrigins)
	require.Empty(t, cfg.Platform)
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
listen: "0.0.0.0:9000"
scanner_utility: 'C:\Tools\scan.exe'
platform: windows
debug: true
metrics:
  enabled: false
  path: /prom
cors:
  allow_origins: ["http://localhost:5173"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.Listen)
	require.Equal(t, `C:\Tools\scan.exe`, cfg.ScannerUtility)
	require.Equal(t, "windows", cfg.Platform)
	require.True(t, cfg.Debug)
	require.False(t, cfg.Metrics.Enabled)
	require.Equal(t, "/prom", cfg.Metrics.Path)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowOrigins)
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, DefaultListen, cfg.Listen)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"listen":        "listen: localhost\n",
		"metrics path":  "metrics:\n  path: prom\n",
		"empty origin":  "cors:\n  allow_origins: [\"\"]\n",
		"wildcard":      "cors:\n  allow_origins: [\"*\"]\n",
		"unknown field": "scanner: nope\n",
		"bad yaml":      "listen: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "open config:"))
}

func TestValidateAfterOverride(t *testing.T) {
	cfg := Default()
	cfg.Listen = " "
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultListen, cfg.Listen)

	var nilCfg *Config
	require.Error(t, nilCfg.Validate())
}
