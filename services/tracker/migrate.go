// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate checks migrated snapshots and settings updates. The custom
// reminderclock rule accepts "HH:MM" wall-clock strings.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag; the tag is a constant.
	_ = v.RegisterValidation("reminderclock", func(fl validator.FieldLevel) bool {
		_, _, err := ParseReminderTime(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseReminderTime parses an "HH:MM" reminder time into its hour and
// minute components.
func ParseReminderTime(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("reminder time %q is not HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("reminder time %q has invalid hour", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("reminder time %q has invalid minute", s)
	}
	return hour, minute, nil
}

func validateSettings(s Settings) error {
	return validate.Struct(s)
}

// Migrate turns a raw stored payload into a validated AppState.
//
// What happens when a field is missing is explicit here rather than an
// implicit merge: absent payloads yield defaults, unversioned payloads
// (the version-0 shape) are upgraded field by field, and anything that
// still fails validation is rejected so the caller substitutes
// defaults. Repairs that preserve user data (re-seeding an empty
// working set, raising bestStreak to streak) are applied before
// validation.
func Migrate(raw []byte, now time.Time) (*AppState, error) {
	if len(raw) == 0 {
		return DefaultState(now), nil
	}

	var state AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if state.Version > SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported %d",
			state.Version, SnapshotVersion)
	}

	// Version 0 is the unversioned legacy shape; field names match, so
	// upgrading is defaulting the holes.
	state.Version = SnapshotVersion

	if state.Settings.Theme == "" {
		state.Settings.Theme = ThemeDark
	}
	if state.Settings.Level == "" {
		state.Settings.Level = LevelBeginner
	}
	if state.Settings.ReminderTime == "" {
		state.Settings.ReminderTime = DefaultSettings().ReminderTime
	}

	if state.Today == "" {
		state.Today = DateKey(now)
	}
	if len(state.Exercises) == 0 {
		state.Exercises = ExercisesForLevel(state.Settings.Level)
		state.CompletedExercises = 0
	}
	if len(state.Calendar) == 0 {
		state.Calendar = NewCalendar(now)
	}
	state.Achievements = mergeAchievements(state.Achievements)

	if state.BestStreak < state.Streak {
		state.BestStreak = state.Streak
	}
	if state.CompletedExercises < 0 {
		state.CompletedExercises = 0
	}
	if state.CompletedExercises > len(state.Exercises) {
		state.CompletedExercises = len(state.Exercises)
	}

	if err := validate.Struct(&state); err != nil {
		return nil, fmt.Errorf("snapshot failed validation: %w", err)
	}
	return &state, nil
}

// mergeAchievements reconciles stored unlock flags with the catalog:
// every catalog entry is present exactly once, stored unlocks are
// preserved, and unknown ids are dropped.
func mergeAchievements(stored []Achievement) []Achievement {
	unlocked := make(map[int]bool, len(stored))
	for _, a := range stored {
		if a.Unlocked {
			unlocked[a.ID] = true
		}
	}
	out := DefaultAchievements()
	for i := range out {
		if unlocked[out[i].ID] {
			out[i].Unlocked = true
		}
	}
	return out
}
