// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
)

// AppConfig is the on-disk application configuration. Everything that
// belongs to the tracked state (streak, settings, calendar) lives in the
// snapshot store instead; this file only covers where things go on the
// machine and how the process behaves.
type AppConfig struct {
	// DataDir is the directory for the snapshot database.
	DataDir string `yaml:"data_dir"`

	// Logging controls the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Sound: ring the terminal bell with system notifications.
	Sound bool `yaml:"sound"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // empty disables file logging
	JSON  bool   `yaml:"json"`  // JSON lines on stderr as well
}

// DefaultConfig returns the first-run configuration rooted under the
// user's home directory.
func DefaultConfig() AppConfig {
	base := "~/.nozeroday"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".nozeroday")
	}
	return AppConfig{
		DataDir: filepath.Join(base, "data"),
		Logging: LoggingConfig{
			Level: "info",
			Dir:   filepath.Join(base, "logs"),
		},
		Sound: true,
	}
}
