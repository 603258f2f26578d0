// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
host: "127.0.0.1"
port: 9090
hub-base-url: "https://hub.example.com/api"
hub-token: "file-token"
hub-timeout-seconds: 5
cache-dir: "/models/cache"
debug: true
log-json: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://hub.example.com/api", cfg.HubBaseURL)
	assert.Equal(t, "file-token", cfg.HubToken)
	assert.Equal(t, 5, cfg.HubTimeoutSeconds)
	assert.Equal(t, "/models/cache", cfg.CacheDir)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.LogJSON)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigOptional_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfigOptional(filepath.Join(t.TempDir(), "absent.yaml"), true)
	require.NoError(t, err)

	assert.Equal(t, DefaultHubBaseURL, cfg.HubBaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30, cfg.HubTimeoutSeconds)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\nhub-token: file-token\n"), 0o644))

	t.Setenv("PORT", "7070")
	t.Setenv("HUB_TOKEN", "env-token")
	t.Setenv("HUB_CACHE_DIR", "/env/cache")
	t.Setenv("DEBUG", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "env-token", cfg.HubToken)
	assert.Equal(t, "/env/cache", cfg.CacheDir)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_InvalidEnvValuesIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\n"), 0o644))

	t.Setenv("PORT", "not-a-number")
	t.Setenv("DEBUG", "maybe")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
