// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestScheduler pins tracker and scheduler to the same instant. The
// reminder target stays hours away, so armed timers never fire during a
// test run.
func newTestScheduler(t *testing.T, now time.Time) (*Scheduler, *Tracker, *memStore, *recordNotifier) {
	t.Helper()
	tr, store, _ := newTestTracker(t, now)
	notifier := &recordNotifier{}
	s := NewScheduler(tr, store,
		WithSchedulerNotifier(notifier),
		WithSchedulerLogger(quietLogger()),
		WithSchedulerClock(func() time.Time { return now }),
	)
	t.Cleanup(s.Cancel)
	return s, tr, store, notifier
}

func TestNextReminder(t *testing.T) {
	settings := DefaultSettings() // reminder at 18:00

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before target fires today",
			now:  mustDay(t, "2026-08-29", 10, 0),
			want: mustDay(t, "2026-08-29", 18, 0),
		},
		{
			name: "after target fires tomorrow",
			now:  mustDay(t, "2026-08-29", 19, 30),
			want: mustDay(t, "2026-08-30", 18, 0),
		},
		{
			name: "exactly at target fires tomorrow",
			now:  mustDay(t, "2026-08-29", 18, 0),
			want: mustDay(t, "2026-08-30", 18, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextReminder(settings, tt.now)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}

	t.Run("malformed time is an error", func(t *testing.T) {
		bad := settings
		bad.ReminderTime = "6pm"
		_, err := NextReminder(bad, mustDay(t, "2026-08-29", 10, 0))
		require.Error(t, err)
	})
}

func TestSchedule_ArmsAndCancels(t *testing.T) {
	now := mustDay(t, "2026-08-29", 10, 0)
	s, _, _, _ := newTestScheduler(t, now)

	assert.False(t, s.Armed())

	s.Schedule()
	assert.True(t, s.Armed())

	// Re-scheduling from Armed stays Armed: the old timer is replaced.
	s.Schedule()
	assert.True(t, s.Armed())

	s.Cancel()
	assert.False(t, s.Armed())

	// Cancel from Idle is a no-op.
	s.Cancel()
	assert.False(t, s.Armed())
}

func TestSchedule_NotificationsDisabledGoesIdle(t *testing.T) {
	now := mustDay(t, "2026-08-29", 10, 0)
	s, tr, _, _ := newTestScheduler(t, now)

	settings := tr.Snapshot().Settings
	settings.Notifications = false
	require.NoError(t, tr.UpdateSettings(settings))

	s.Schedule()
	assert.False(t, s.Armed())

	// Disabling after arming disarms on the next Schedule call.
	settings.Notifications = true
	require.NoError(t, tr.UpdateSettings(settings))
	s.Schedule()
	require.True(t, s.Armed())

	settings.Notifications = false
	require.NoError(t, tr.UpdateSettings(settings))
	s.Schedule()
	assert.False(t, s.Armed())
}

func TestCheckDailyReminder_BeforeTargetDoesNothing(t *testing.T) {
	now := mustDay(t, "2026-08-29", 10, 0)
	s, _, store, notifier := newTestScheduler(t, now)

	s.CheckDailyReminder()

	assert.Empty(t, notifier.systemTags())
	last, err := store.LastReminderDay(t.Context())
	require.NoError(t, err)
	assert.Empty(t, last)
}

func TestCheckDailyReminder_EmitsOnceAfterTarget(t *testing.T) {
	now := mustDay(t, "2026-08-29", 19, 0)
	s, _, store, notifier := newTestScheduler(t, now)

	s.CheckDailyReminder()
	s.CheckDailyReminder()

	assert.Equal(t, []string{"daily-reminder"}, notifier.systemTags())
	last, err := store.LastReminderDay(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", last)
}

func TestCheckDailyReminder_SkipsWhenTodayValidated(t *testing.T) {
	now := mustDay(t, "2026-08-29", 19, 0)
	s, tr, _, notifier := newTestScheduler(t, now)

	tr.ToggleExercise(1)
	require.NoError(t, tr.ValidateDay())

	s.CheckDailyReminder()
	assert.Empty(t, notifier.systemTags())
}

func TestCheckDailyReminder_SkipsWhenNotificationsDisabled(t *testing.T) {
	now := mustDay(t, "2026-08-29", 19, 0)
	s, tr, _, notifier := newTestScheduler(t, now)

	settings := tr.Snapshot().Settings
	settings.Notifications = false
	require.NoError(t, tr.UpdateSettings(settings))

	s.CheckDailyReminder()
	assert.Empty(t, notifier.systemTags())
}

func TestReminderPaths_ShareTheDayMarker(t *testing.T) {
	now := mustDay(t, "2026-08-29", 19, 0)
	s, _, store, notifier := newTestScheduler(t, now)

	// The other path already sent today's reminder; the startup guard
	// must stay quiet.
	require.NoError(t, store.SetLastReminderDay(t.Context(), "2026-08-29"))

	s.CheckDailyReminder()
	assert.Empty(t, notifier.systemTags())
}
