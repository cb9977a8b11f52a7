package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Model, cfg.Model)
	assert.True(t, cfg.Render.Align)
	assert.True(t, cfg.Render.Denoise)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
model:
  endpoint: http://model:9000
  timeout: 30s
  max_in_flight: 4
styles: /srv/styles
render:
  align: false
  denoise: true
`
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://model:9000", cfg.Model.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Model.Timeout)
	assert.Equal(t, int64(4), cfg.Model.MaxInFlight)
	assert.Equal(t, "/srv/styles", cfg.Styles)
	assert.False(t, cfg.Render.Align)
	// unset keys keep their defaults
	assert.Equal(t, Default().Listen, cfg.Listen)
}

func TestLoadFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("modle: {}\n"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	os.Setenv(EnvModelURL, "http://env:1")
	os.Setenv(EnvModelToken, "tok")
	os.Setenv(EnvStyles, "/env/styles")
	defer os.Unsetenv(EnvModelURL)
	defer os.Unsetenv(EnvModelToken)
	defer os.Unsetenv(EnvStyles)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://env:1", cfg.Model.Endpoint)
	assert.Equal(t, "tok", cfg.Model.Token)
	assert.Equal(t, "/env/styles", cfg.Styles)
}

func TestConfigPathFromEnv(t *testing.T) {
	os.Setenv(EnvConfig, "/tmp/rmscribe.yaml")
	defer os.Unsetenv(EnvConfig)

	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rmscribe.yaml", p)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Model.Timeout = time.Minute
	require.NoError(t, cfg.Save(path))

	read, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, read)
}
