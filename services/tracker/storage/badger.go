// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package storage persists the tracker aggregate in BadgerDB.
//
// BadgerDB gives us an embedded, crash-safe key-value store without a
// server process. The store holds exactly two records: the
// whole-aggregate snapshot and the last-reminder-day marker. Writes
// replace whole records; there is no partial update, which is what
// makes the engine's mutate-then-persist discipline safe.
//
// License: BadgerDB is Apache 2.0 licensed (github.com/dgraph-io/badger).
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// Record keys. A single aggregate, a single marker.
var (
	keySnapshot        = []byte("nozeroday/state")
	keyLastReminderDay = []byte("nozeroday/last-reminder-day")
)

// Config holds configuration for the snapshot store.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Required unless InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	// Default: true for production, false for testing.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging. If nil, Badger's
	// logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns the production configuration for the given
// data directory: synchronous writes, internal logging off unless a
// logger is attached later.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
	}
}

// InMemoryConfig returns a configuration for tests: no disk I/O, no
// sync overhead.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// SnapshotStore is the BadgerDB-backed implementation of the engine's
// Store boundary.
//
// Thread Safety: safe for concurrent use; BadgerDB transactions
// provide the isolation.
type SnapshotStore struct {
	db *badger.DB
}

// Open creates and opens the snapshot store.
//
// The data directory is created if it doesn't exist. Callers must
// Close() the store when done. Only one process can hold the store at
// a time; Badger's directory lock enforces that.
func Open(cfg Config) (*SnapshotStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create data directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// OpenInMemory is a convenience for tests. Data is lost on Close.
func OpenInMemory() (*SnapshotStore, error) {
	return Open(InMemoryConfig())
}

// Close releases the database and its directory lock.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// LoadSnapshot returns the stored aggregate payload, or (nil, nil)
// when nothing has been stored yet.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) ([]byte, error) {
	return s.get(ctx, keySnapshot)
}

// SaveSnapshot replaces the stored aggregate payload.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, data []byte) error {
	return s.set(ctx, keySnapshot, data)
}

// LastReminderDay returns the DateKey of the last sent reminder, or
// "" when none was recorded.
func (s *SnapshotStore) LastReminderDay(ctx context.Context) (string, error) {
	data, err := s.get(ctx, keyLastReminderDay)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetLastReminderDay records the DateKey of the reminder just sent.
func (s *SnapshotStore) SetLastReminderDay(ctx context.Context, key string) error {
	return s.set(ctx, keyLastReminderDay, []byte(key))
}

// Clear removes both records. Used by the full reset.
func (s *SnapshotStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(keySnapshot); err != nil {
			return err
		}
		return txn.Delete(keyLastReminderDay)
	})
	if err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

func (s *SnapshotStore) get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *SnapshotStore) set(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
