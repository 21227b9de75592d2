// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozeroday/nozeroday/services/tracker"
)

// The store must satisfy the engine's persistence boundary.
var _ tracker.Store = (*SnapshotStore)(nil)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Empty store reads as absent, not as an error.
	data, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	payload := []byte(`{"streak":5}`)
	require.NoError(t, store.SaveSnapshot(ctx, payload))

	data, err = store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// A second write replaces the whole record.
	require.NoError(t, store.SaveSnapshot(ctx, []byte(`{"streak":6}`)))
	data, err = store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"streak":6}`), data)
}

func TestLastReminderDay_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day, err := store.LastReminderDay(ctx)
	require.NoError(t, err)
	assert.Empty(t, day)

	require.NoError(t, store.SetLastReminderDay(ctx, "2026-08-29"))
	day, err = store.LastReminderDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", day)
}

func TestClear_RemovesBothRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, []byte(`{}`)))
	require.NoError(t, store.SetLastReminderDay(ctx, "2026-08-29"))
	require.NoError(t, store.Clear(ctx))

	data, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	day, err := store.LastReminderDay(ctx)
	require.NoError(t, err)
	assert.Empty(t, day)

	// Clearing an empty store is a no-op, not an error.
	require.NoError(t, store.Clear(ctx))
}

func TestPersistentStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := DefaultConfig(dir)
	cfg.SyncWrites = false // keep the test fast

	store, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, store.SaveSnapshot(ctx, []byte(`{"streak":3}`)))
	require.NoError(t, store.Close())

	store, err = Open(cfg)
	require.NoError(t, err)
	defer store.Close()

	data, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"streak":3}`), data)
}

func TestContextCancellation(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.LoadSnapshot(ctx)
	assert.Error(t, err)
	assert.Error(t, store.SaveSnapshot(ctx, []byte(`{}`)))
	assert.Error(t, store.Clear(ctx))
}
