package internal_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbomb79/Siphon/internal"
	"github.com/hbomb79/Siphon/internal/download"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	var config internal.SiphonConfig
	require.NoError(t, config.Load(""))

	assert.Equal(t, "0.0.0.0", config.Rest.HostAddr)
	assert.Equal(t, 8080, config.Rest.HostPort)
	assert.Equal(t, "0.0.0.0:8080", config.Rest.Address())
	assert.Equal(t, "Instagram Downloader", config.Rest.ServiceName)
	assert.True(t, config.Rest.MetricsEnabled)
	assert.Equal(t, download.DefaultFormat, config.Download.Format)
	assert.Zero(t, config.Download.Timeout)
	assert.False(t, config.Download.YtdlpAutoInstall)
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HOST_PORT", "9090")
	t.Setenv("SERVICE_NAME", "Siphon")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("DOWNLOAD_TIMEOUT", "90s")
	t.Setenv("TEMP_DIR", "~/siphon")
	t.Setenv("LOG_LEVEL", "debug")

	var config internal.SiphonConfig
	require.NoError(t, config.Load(""))

	home, err := homedir.Dir()
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Rest.HostPort)
	assert.Equal(t, "Siphon", config.Rest.ServiceName)
	assert.False(t, config.Rest.MetricsEnabled)
	assert.Equal(t, 90*time.Second, config.Download.Timeout)
	assert.Equal(t, filepath.Join(home, "siphon"), config.Download.TempDir)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rest:
  port: 7070
download:
  format: "best"
  ytdlp_path: /opt/yt-dlp
`), 0o644))

	var config internal.SiphonConfig
	require.NoError(t, config.Load(path))

	assert.Equal(t, 7070, config.Rest.HostPort)
	assert.Equal(t, "0.0.0.0", config.Rest.HostAddr)
	assert.Equal(t, "best", config.Download.Format)
	assert.Equal(t, "/opt/yt-dlp", config.Download.YtdlpPath)
}

func TestLoad_MissingFile(t *testing.T) {
	var config internal.SiphonConfig
	assert.Error(t, config.Load(filepath.Join(t.TempDir(), "missing.yaml")))
}
