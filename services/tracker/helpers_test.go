// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nozeroday/nozeroday/pkg/logging"
)

// memStore is an in-memory Store double that counts writes so tests
// can assert the mutate-then-persist discipline.
type memStore struct {
	mu       sync.Mutex
	snapshot []byte
	lastDay  string
	saves    int
	failSave bool
}

func (m *memStore) LoadSnapshot(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot, nil
}

func (m *memStore) SaveSnapshot(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("disk full")
	}
	m.snapshot = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *memStore) LastReminderDay(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastDay, nil
}

func (m *memStore) SetLastReminderDay(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastDay = key
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
	m.lastDay = ""
	return nil
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// recordNotifier captures everything crossing the notice boundary.
type recordNotifier struct {
	mu      sync.Mutex
	notices []Notice
	system  []SystemNotification
	haptics [][]int
}

func (r *recordNotifier) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordNotifier) SystemNotify(n SystemNotification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.system = append(r.system, n)
}

func (r *recordNotifier) Vibrate(pattern []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.haptics = append(r.haptics, pattern)
}

func (r *recordNotifier) noticeMessages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notices))
	for i, n := range r.notices {
		out[i] = n.Message
	}
	return out
}

func (r *recordNotifier) systemTags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.system))
	for i, n := range r.system {
		out[i] = n.Tag
	}
	return out
}

func quietLogger() *logging.Logger {
	return logging.New(logging.Config{Quiet: true})
}

// newTestTracker builds a Tracker over a fresh memStore pinned to the
// given instant.
func newTestTracker(t *testing.T, now time.Time) (*Tracker, *memStore, *recordNotifier) {
	t.Helper()
	store := &memStore{}
	notifier := &recordNotifier{}
	tr, err := New(store,
		WithClock(func() time.Time { return now }),
		WithNotifier(notifier),
		WithLogger(quietLogger()),
	)
	require.NoError(t, err)
	return tr, store, notifier
}

// mustDay builds a local time on the given day at the given clock.
func mustDay(t *testing.T, day string, hour, minute int) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(DayKeyLayout, day, time.Local)
	require.NoError(t, err)
	return parsed.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}
