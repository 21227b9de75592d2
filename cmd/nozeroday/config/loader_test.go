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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Logging.Dir)
	assert.True(t, cfg.Sound)
}

func TestReadFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nozeroday.yaml")
	require.NoError(t, createDefault(path))

	cfg, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestReadFile_MissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestReadFile_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nozeroday.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /tmp/elsewhere\n"), 0644))

	cfg, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/elsewhere", cfg.DataDir)
	assert.Equal(t, "info", cfg.Logging.Level, "omitted fields fall back to defaults")
	assert.True(t, cfg.Sound)
}

func TestReadFile_MalformedYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nozeroday.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0644))

	_, err := ReadFile(path)
	require.Error(t, err)
}
