// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package main provides the entry point for the hubproxy server, a proxy in
// front of an upstream model catalog that reconciles the remote listing with
// the local model cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/traylinx/hubproxy/internal/api"
	"github.com/traylinx/hubproxy/internal/buildinfo"
	"github.com/traylinx/hubproxy/internal/cache"
	"github.com/traylinx/hubproxy/internal/config"
	"github.com/traylinx/hubproxy/internal/hub"
	"github.com/traylinx/hubproxy/internal/logging"
	"github.com/traylinx/hubproxy/internal/reconcile"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// init initializes the shared logger setup.
func init() {
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "path to the YAML configuration file")
		showVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("hubproxy %s (commit %s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.BuildDate)
		return
	}

	// A local .env is a convenience for development; absence is normal.
	_ = godotenv.Load()

	cfg, err := config.LoadConfigOptional(*configPath, true)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.ConfigureFormat(cfg.LogJSON)
	logging.ConfigureLevel(cfg.Debug)
	if err := logging.ConfigureLogOutput(cfg.LoggingToFile, cfg.LogDir); err != nil {
		log.Fatalf("Failed to configure log output: %v", err)
	}

	log.WithFields(log.Fields{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	}).Info("Starting hubproxy")

	index := cache.NewIndex(cfg.CacheDir)
	client := hub.NewClient(cfg.HubBaseURL, cfg.HubToken, time.Duration(cfg.HubTimeoutSeconds)*time.Second)
	engine := reconcile.NewEngine(index, client)
	server := api.NewServer(engine)

	watcher := config.NewWatcher(*configPath)
	if err := watcher.Start(func(updated *config.Config) {
		logging.ConfigureFormat(updated.LogJSON)
		logging.ConfigureLevel(updated.Debug)
	}); err != nil {
		log.Debugf("Config watcher disabled: %v", err)
	} else {
		defer watcher.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.Host, cfg.Port); err != nil {
		log.Errorf("Server exited with error: %v", err)
		os.Exit(1)
	}

	log.Info("Shutdown complete")
}
