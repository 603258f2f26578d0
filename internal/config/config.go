// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config provides configuration management for the hubproxy server.
// Settings are loaded from an optional YAML file and then overridden by
// environment variables, so containerized deployments can run without a
// config file at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"gopkg.in/yaml.v3"
)

// DefaultHubBaseURL is the upstream catalog API used when no override is set.
const DefaultHubBaseURL = "https://huggingface.co/api"

// Config represents the application's configuration, loaded from a YAML file
// with environment overrides.
type Config struct {
	// Host is the network host/interface on which the API server will bind.
	// Default is empty ("") to bind all interfaces. Use "127.0.0.1" for local-only access.
	Host string `yaml:"host"`
	// Port is the network port on which the API server will listen.
	Port int `yaml:"port"`

	// HubBaseURL is the base URL of the upstream model catalog API.
	HubBaseURL string `yaml:"hub-base-url"`
	// HubToken is the bearer token sent with upstream catalog requests, if any.
	HubToken string `yaml:"hub-token"`
	// HubTimeoutSeconds bounds each upstream catalog request.
	HubTimeoutSeconds int `yaml:"hub-timeout-seconds"`

	// CacheDir is the root of the local model cache scanned for available artifacts.
	CacheDir string `yaml:"cache-dir"`

	// Debug enables or disables debug-level logging.
	Debug bool `yaml:"debug"`
	// LogJSON switches log output to JSON lines for log collectors.
	LogJSON bool `yaml:"log-json"`
	// LoggingToFile controls whether application logs are written to rotating files or stdout.
	LoggingToFile bool `yaml:"logging-to-file"`
	// LogDir is the directory for rotating log files when LoggingToFile is set.
	LogDir string `yaml:"log-dir"`
}

// LoadConfig reads the configuration file at the given path.
func LoadConfig(configFile string) (*Config, error) {
	return LoadConfigOptional(configFile, false)
}

// LoadConfigOptional reads the configuration file at the given path. When
// optional is true a missing file yields the default configuration instead of
// an error; environment overrides are applied either way.
func LoadConfigOptional(configFile string, optional bool) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(configFile)
	if err != nil {
		if optional && (os.IsNotExist(err) || errors.Is(err, syscall.EISDIR)) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func defaultConfig() *Config {
	home, _ := os.UserHomeDir()
	cacheDir := ""
	if home != "" {
		cacheDir = home + "/.cache/huggingface/hub"
	}
	return &Config{
		Host:              "",
		Port:              8080,
		HubBaseURL:        DefaultHubBaseURL,
		HubTimeoutSeconds: 30,
		CacheDir:          cacheDir,
		Debug:             false,
		LogJSON:           false,
		LoggingToFile:     false,
		LogDir:            "logs",
	}
}

// applyEnv overlays environment variables onto the configuration.
// Environment always wins over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("HUB_API_BASE_URL"); v != "" {
		c.HubBaseURL = v
	}
	if v := os.Getenv("HUB_TOKEN"); v != "" {
		c.HubToken = v
	}
	if v := os.Getenv("HUB_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.HubTimeoutSeconds = secs
		}
	}
	if v := os.Getenv("HUB_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.Debug = parseBool(v)
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		c.LogJSON = parseBool(v)
	}
	if v := os.Getenv("LOGGING_TO_FILE"); v != "" {
		c.LoggingToFile = parseBool(v)
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		c.LogDir = v
	}
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
