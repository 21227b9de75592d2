// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FreshDefaults(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	snap := tr.Snapshot()
	assert.Equal(t, "2026-08-29", snap.Today)
	assert.Equal(t, 0, snap.Streak)
	assert.Equal(t, LevelBeginner, snap.Settings.Level)
	assert.Len(t, snap.Exercises, 4)
	assert.Len(t, snap.Calendar, CalendarWindowDays)
	assert.Len(t, snap.Achievements, 6)
	assert.False(t, snap.TodayCompleted)
}

func TestNew_NilStore(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestSnapshot_IsACopy(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	snap := tr.Snapshot()
	snap.Streak = 99
	snap.Exercises[0].Completed = true
	snap.Calendar["2026-08-29"] = DayRecord{Completed: true}
	snap.Achievements[0].Unlocked = true

	fresh := tr.Snapshot()
	assert.Equal(t, 0, fresh.Streak)
	assert.False(t, fresh.Exercises[0].Completed)
	assert.False(t, fresh.Calendar["2026-08-29"].Completed)
	assert.False(t, fresh.Achievements[0].Unlocked)
}

func TestToggleExercise_CounterConsistency(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	countCompleted := func() int {
		n := 0
		for _, ex := range tr.Snapshot().Exercises {
			if ex.Completed {
				n++
			}
		}
		return n
	}

	// Toggle every exercise on, then a few off; the counter must track
	// the flags after every call.
	for _, id := range []int{1, 2, 3, 4, 2, 3} {
		tr.ToggleExercise(id)
		snap := tr.Snapshot()
		assert.Equal(t, countCompleted(), snap.CompletedExercises,
			"after toggling %d", id)
	}

	assert.Equal(t, 2, tr.Snapshot().CompletedExercises)
}

func TestToggleExercise_UnknownIDIsNoOp(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, store, _ := newTestTracker(t, now)

	before := tr.Snapshot()
	saves := store.saveCount()

	tr.ToggleExercise(42)

	after := tr.Snapshot()
	assert.Equal(t, before.CompletedExercises, after.CompletedExercises)
	assert.Equal(t, before.Exercises, after.Exercises)
	assert.Equal(t, saves, store.saveCount(), "no-op must not persist")
}

func TestToggleExercise_Persists(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, store, _ := newTestTracker(t, now)

	tr.ToggleExercise(1)

	var stored AppState
	require.NoError(t, json.Unmarshal(store.snapshot, &stored))
	assert.Equal(t, 1, stored.CompletedExercises)
	assert.True(t, stored.Exercises[0].Completed)
}

// Scenario: fresh beginner defaults, one exercise done, day validated.
func TestValidateDay_FirstDay(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, notifier := newTestTracker(t, now)

	tr.ToggleExercise(1)
	require.NoError(t, tr.ValidateDay())

	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.Streak)
	assert.Equal(t, 1, snap.BestStreak)
	assert.Equal(t, 1, snap.TotalDays)
	assert.Equal(t, 1, snap.CompletedDays)
	assert.Equal(t, 30, snap.TotalSeconds) // beginner plank
	assert.True(t, snap.TodayCompleted)

	rec := snap.Calendar["2026-08-29"]
	assert.True(t, rec.Completed)
	assert.Equal(t, 1, rec.Exercises)
	assert.Equal(t, 30, rec.Seconds)

	assert.Contains(t, notifier.noticeMessages(), "🔥 New streak: 1 days!")
	assert.NotEmpty(t, notifier.haptics)
}

func TestValidateDay_RejectsEmptyDay(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, store, _ := newTestTracker(t, now)

	before := tr.Snapshot()
	saves := store.saveCount()

	err := tr.ValidateDay()
	require.ErrorIs(t, err, ErrNoExercisesDone)

	after := tr.Snapshot()
	assert.Equal(t, before.Streak, after.Streak)
	assert.False(t, after.TodayCompleted)
	assert.Equal(t, saves, store.saveCount(), "rejection must not persist")
}

func TestValidateDay_OncePerDay(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	tr.ToggleExercise(1)
	require.NoError(t, tr.ValidateDay())

	before := tr.Snapshot()
	err := tr.ValidateDay()
	require.ErrorIs(t, err, ErrAlreadyValidated)
	assert.Equal(t, before, tr.Snapshot())
}

func TestValidateDay_SumsCompletedSecondsOnly(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	tr.ToggleExercise(1) // 30s
	tr.ToggleExercise(2) // 60s
	tr.ToggleExercise(3) // 45s
	tr.ToggleExercise(3) // off again
	require.NoError(t, tr.ValidateDay())

	snap := tr.Snapshot()
	assert.Equal(t, 90, snap.TotalSeconds)
	assert.Equal(t, 90, snap.Calendar["2026-08-29"].Seconds)
}

func TestBestStreak_NeverBelowStreak(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	tr.ToggleExercise(1)
	require.NoError(t, tr.ValidateDay())

	snap := tr.Snapshot()
	assert.GreaterOrEqual(t, snap.BestStreak, snap.Streak)
}

// Scenario: all beginner exercises completed unlocks "Perfect day"
// exactly once; untoggling does not re-lock it.
func TestAchievements_PerfectDayMonotonic(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, notifier := newTestTracker(t, now)

	for _, id := range []int{1, 2, 3, 4} {
		tr.ToggleExercise(id)
	}

	perfect := tr.Snapshot().achievement(6)
	require.NotNil(t, perfect)
	assert.True(t, perfect.Unlocked)

	unlockCount := 0
	for _, msg := range notifier.noticeMessages() {
		if msg == "Achievement unlocked: Perfect day!" {
			unlockCount++
		}
	}
	assert.Equal(t, 1, unlockCount)

	// Toggle one back off; the badge stays unlocked and no second
	// notice is emitted.
	tr.ToggleExercise(1)
	tr.ToggleExercise(1)

	assert.True(t, tr.Snapshot().achievement(6).Unlocked)
	unlockCount = 0
	for _, msg := range notifier.noticeMessages() {
		if msg == "Achievement unlocked: Perfect day!" {
			unlockCount++
		}
	}
	assert.Equal(t, 1, unlockCount)
}

func TestAchievements_StreakBadges(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	tr.ToggleExercise(1)
	require.NoError(t, tr.ValidateDay())

	snap := tr.Snapshot()
	assert.True(t, snap.achievement(1).Unlocked, "first day badge")
	assert.False(t, snap.achievement(2).Unlocked, "three in a row needs streak 3")
	assert.False(t, snap.achievement(4).Unlocked, "full month needs streak 30")
}

func TestCompleteTired_Plank(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	tr.CompleteTired(TiredPlank)

	snap := tr.Snapshot()
	assert.True(t, snap.Exercises[0].Completed)
	assert.Equal(t, 1, snap.CompletedExercises)
	assert.True(t, snap.achievement(5).Unlocked)
}

func TestCompleteTired_SquatsUnlocksOnce(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, notifier := newTestTracker(t, now)

	tr.CompleteTired(TiredSquats)
	tr.CompleteTired(TiredSquats)

	snap := tr.Snapshot()
	assert.Equal(t, 2, snap.CompletedExercises)
	assert.False(t, snap.Exercises[0].Completed, "squats do not touch exercise flags")
	assert.True(t, snap.achievement(5).Unlocked)

	unlockCount := 0
	for _, msg := range notifier.noticeMessages() {
		if msg == "Achievement unlocked: Tired mode!" {
			unlockCount++
		}
	}
	assert.Equal(t, 1, unlockCount)
}

func TestSetLevel_ReplacesWorkingSet(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	tr.ToggleExercise(1)
	require.NoError(t, tr.SetLevel(LevelAdvanced))

	snap := tr.Snapshot()
	assert.Equal(t, LevelAdvanced, snap.Settings.Level)
	assert.Len(t, snap.Exercises, 6)
	assert.Equal(t, 0, snap.CompletedExercises)
	assert.False(t, snap.TodayCompleted)
	for _, ex := range snap.Exercises {
		assert.False(t, ex.Completed)
	}
}

func TestSetLevel_Unknown(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	err := tr.SetLevel(Level("olympian"))
	require.ErrorIs(t, err, ErrUnknownLevel)
}

func TestSetTheme(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	require.NoError(t, tr.SetTheme(ThemeLight))
	assert.Equal(t, ThemeLight, tr.Snapshot().Settings.Theme)

	require.ErrorIs(t, tr.SetTheme(Theme("neon")), ErrInvalidSettings)
}

func TestUpdateSettings(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	s := tr.Snapshot().Settings
	s.ReminderTime = "21:30"
	s.Notifications = false
	require.NoError(t, tr.UpdateSettings(s))

	snap := tr.Snapshot()
	assert.Equal(t, "21:30", snap.Settings.ReminderTime)
	assert.False(t, snap.Settings.Notifications)

	s.ReminderTime = "25:99"
	require.ErrorIs(t, tr.UpdateSettings(s), ErrInvalidSettings)
}

func TestUpdateSettings_LevelChangeResetsDay(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	tr.ToggleExercise(1)

	s := tr.Snapshot().Settings
	s.Level = LevelIntermediate
	require.NoError(t, tr.UpdateSettings(s))

	snap := tr.Snapshot()
	assert.Len(t, snap.Exercises, 5)
	assert.Equal(t, 0, snap.CompletedExercises)
}

func TestExportJSON(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, _, _ := newTestTracker(t, now)

	tr.ToggleExercise(1)
	data, err := tr.ExportJSON()
	require.NoError(t, err)

	var exported AppState
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, "2026-08-29", exported.Today)
	assert.Equal(t, 1, exported.CompletedExercises)
}

func TestReset_ReinstallsDefaults(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, store, _ := newTestTracker(t, now)

	tr.ToggleExercise(1)
	require.NoError(t, tr.ValidateDay())
	require.NoError(t, tr.Reset())

	snap := tr.Snapshot()
	assert.Equal(t, 0, snap.Streak)
	assert.Equal(t, 0, snap.TotalDays)
	assert.False(t, snap.TodayCompleted)

	// The fresh defaults are persisted immediately.
	var stored AppState
	require.NoError(t, json.Unmarshal(store.snapshot, &stored))
	assert.Equal(t, 0, stored.Streak)
}

func TestPersistFailure_IsNotFatal(t *testing.T) {
	now := mustDay(t, "2026-08-29", 9, 0)
	tr, store, notifier := newTestTracker(t, now)

	store.mu.Lock()
	store.failSave = true
	store.mu.Unlock()

	tr.ToggleExercise(1)

	// In-memory state stays authoritative and the failure surfaces as
	// an error notice.
	assert.Equal(t, 1, tr.Snapshot().CompletedExercises)
	assert.Contains(t, notifier.noticeMessages(), "Save failed")
}
