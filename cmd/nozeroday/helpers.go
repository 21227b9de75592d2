// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/nozeroday/nozeroday/cmd/nozeroday/config"
	"github.com/nozeroday/nozeroday/pkg/logging"
	"github.com/nozeroday/nozeroday/services/tracker"
	"github.com/nozeroday/nozeroday/services/tracker/storage"
)

// app bundles the wired components a command needs: config, logger,
// store, and the tracker engine. One-shot commands open it, act, and
// Close; the interactive session keeps it for its whole lifetime.
type app struct {
	cfg     config.AppConfig
	logger  *logging.Logger
	store   *storage.SnapshotStore
	tracker *tracker.Tracker
}

// openApp builds the component stack around the given notifier. The
// logger goes file-only: stdout belongs to the command output and
// stderr to cobra.
func openApp(notifier tracker.Notifier) (*app, error) {
	cfg := config.Global

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "nozeroday",
		JSON:    cfg.Logging.JSON,
		Quiet:   true,
	})

	storeCfg := storage.DefaultConfig(cfg.DataDir)
	storeCfg.Logger = logger.Slog()
	store, err := storage.Open(storeCfg)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open data store: %w", err)
	}

	// Notices go to the display boundary and the log file both.
	tr, err := tracker.New(store,
		tracker.WithNotifier(tracker.MultiNotifier{notifier, tracker.LogNotifier{Logger: logger}}),
		tracker.WithLogger(logger),
	)
	if err != nil {
		store.Close()
		logger.Close()
		return nil, fmt.Errorf("load tracker state: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		tracker: tr,
	}, nil
}

// Close releases the store and the log file.
func (a *app) Close() {
	a.store.Close()
	a.logger.Close()
}

// fail prints a styled error and exits non-zero.
func fail(err error) {
	fmt.Fprintln(os.Stderr, styled(styles.Error, "Error: "+err.Error()))
	os.Exit(1)
}

// mustOpenApp is the common command prologue.
func mustOpenApp(notifier tracker.Notifier) *app {
	a, err := openApp(notifier)
	if err != nil {
		fail(err)
	}
	return a
}
