// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tracker implements the streak and day-state engine behind the
// nozeroday habit tracker.
//
// The package owns a single persisted aggregate (AppState) and every
// operation that mutates it: the day reconciler that runs on load, the
// exercise toggle / day validation paths, achievement evaluation, the
// rolling 31-day calendar ledger, and the daily reminder scheduler.
// Persistence and user-facing notification are injected collaborators
// (Store and Notifier), so the engine can be exercised in tests without
// a database or a terminal.
//
// # Mutation Discipline
//
// Every mutating operation follows mutate-then-persist: the in-memory
// aggregate is updated first and the whole snapshot is written
// immediately after, so a crash between two operations loses at most
// the latest action and never corrupts the stored snapshot.
//
// # Thread Safety
//
// Tracker is safe for concurrent use. The reminder timer callback is
// the only asynchronous entry point; it takes the same lock as user
// actions, so aggregate mutations never interleave.
package tracker

import "time"

// SnapshotVersion is the current schema version of the persisted
// aggregate. Migrate upgrades older or unversioned snapshots.
const SnapshotVersion = 1

// CalendarWindowDays is the size of the rolling calendar ledger:
// today plus the 30 preceding days.
const CalendarWindowDays = 31

// DayKeyLayout is the time.Format layout for calendar-day identifiers.
const DayKeyLayout = "2006-01-02"

// Level selects which exercise template set is active.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether the level names a known template set.
func (l Level) Valid() bool {
	_, ok := exerciseTemplates[l]
	return ok
}

// Theme is a display preference carried in settings. The engine never
// interprets it; the presentation layer does.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Exercise is one entry of today's working set. The set is a daily
// copy of the selected level's template; Completed is local to the
// current day and cleared on rollover.
type Exercise struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Duration  string `json:"duration"` // display string, e.g. "30 seconds"
	Seconds   int    `json:"time"`     // counted into totalTime at validation
	Icon      string `json:"icon"`
	Completed bool   `json:"completed"`
}

// DayRecord is the durable per-day summary in the calendar ledger.
// It is written once, by ValidateDay.
type DayRecord struct {
	Completed bool `json:"completed"`
	Exercises int  `json:"exercises"`
	Seconds   int  `json:"time"`
}

// Achievement is a one-way unlockable badge. Unlocked is monotonic:
// once true it is never reset, not even when its predicate would no
// longer hold.
type Achievement struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Icon     string `json:"icon"`
	Unlocked bool   `json:"unlocked"`
}

// Settings are the user preferences carried inside the aggregate.
type Settings struct {
	Theme         Theme  `json:"theme" validate:"oneof=dark light"`
	Level         Level  `json:"level" validate:"oneof=beginner intermediate advanced"`
	Notifications bool   `json:"notifications"`
	ReminderTime  string `json:"reminderTime" validate:"reminderclock"`
	Vibration     bool   `json:"vibration"`
}

// AppState is the single persisted aggregate.
//
// Invariants maintained by the engine:
//   - BestStreak >= Streak after every update
//   - TotalDays, CompletedDays, TotalSeconds never decrease
//   - TodayCompleted becomes true at most once per day
//   - CompletedExercises == number of set Completed flags, except for
//     quick squats (see Tracker.CompleteTired)
//   - Streak increments only inside ValidateDay
type AppState struct {
	Version int `json:"version"`

	Streak        int `json:"streak" validate:"gte=0"`
	BestStreak    int `json:"bestStreak" validate:"gte=0,gtefield=Streak"`
	TotalDays     int `json:"totalDays" validate:"gte=0"`
	CompletedDays int `json:"completedDays" validate:"gte=0"`
	TotalSeconds  int `json:"totalTime" validate:"gte=0"`

	Today              string `json:"today"`
	TodayCompleted     bool   `json:"todayCompleted"`
	CompletedExercises int    `json:"completedExercises" validate:"gte=0"`

	Exercises []Exercise `json:"exercises"`

	Calendar map[string]DayRecord `json:"calendar"`

	Settings Settings `json:"settings"`

	Achievements []Achievement `json:"achievements"`
}

// exerciseTemplates maps each level to its daily working set.
// IDs are stable across levels so a toggle survives a level change in
// display terms, but SetLevel always replaces the whole set.
var exerciseTemplates = map[Level][]Exercise{
	LevelBeginner: {
		{ID: 1, Name: "Plank", Duration: "30 seconds", Seconds: 30, Icon: "🛏️"},
		{ID: 2, Name: "Jump rope", Duration: "1 minute", Seconds: 60, Icon: "🏃"},
		{ID: 3, Name: "Push-ups", Duration: "5 reps", Seconds: 45, Icon: "💪"},
		{ID: 4, Name: "Superman", Duration: "30 seconds", Seconds: 30, Icon: "🦸"},
	},
	LevelIntermediate: {
		{ID: 1, Name: "Plank", Duration: "45 seconds", Seconds: 45, Icon: "🛏️"},
		{ID: 2, Name: "Jump rope", Duration: "2 minutes", Seconds: 120, Icon: "🏃"},
		{ID: 3, Name: "Push-ups", Duration: "10 reps", Seconds: 60, Icon: "💪"},
		{ID: 4, Name: "Superman", Duration: "45 seconds", Seconds: 45, Icon: "🦸"},
		{ID: 5, Name: "Squats", Duration: "15 reps", Seconds: 45, Icon: "🦵"},
	},
	LevelAdvanced: {
		{ID: 1, Name: "Plank", Duration: "1 minute", Seconds: 60, Icon: "🛏️"},
		{ID: 2, Name: "Jump rope", Duration: "3 minutes", Seconds: 180, Icon: "🏃"},
		{ID: 3, Name: "Push-ups", Duration: "15 reps", Seconds: 75, Icon: "💪"},
		{ID: 4, Name: "Superman", Duration: "1 minute", Seconds: 60, Icon: "🦸"},
		{ID: 5, Name: "Squats", Duration: "20 reps", Seconds: 60, Icon: "🦵"},
		{ID: 6, Name: "Burpees", Duration: "10 reps", Seconds: 90, Icon: "⚡"},
	},
}

// achievementCatalog is the fixed badge set. Predicates live in
// checkAchievements; the catalog only seeds state.
var achievementCatalog = []Achievement{
	{ID: 1, Name: "First day", Desc: "Validate your first day", Icon: "🎯"},
	{ID: 2, Name: "Three in a row", Desc: "3 consecutive days", Icon: "🔥"},
	{ID: 3, Name: "Full week", Desc: "7 consecutive days", Icon: "🏆"},
	{ID: 4, Name: "Full month", Desc: "30 consecutive days", Icon: "🚀"},
	{ID: 5, Name: "Tired mode", Desc: "Use the tired-mode shortcut", Icon: "😴"},
	{ID: 6, Name: "Perfect day", Desc: "Every exercise done", Icon: "⭐"},
}

// ExercisesForLevel returns a fresh working-set copy of the level's
// template with all Completed flags cleared. Unknown levels fall back
// to beginner.
func ExercisesForLevel(level Level) []Exercise {
	tmpl, ok := exerciseTemplates[level]
	if !ok {
		tmpl = exerciseTemplates[LevelBeginner]
	}
	out := make([]Exercise, len(tmpl))
	copy(out, tmpl)
	return out
}

// DefaultAchievements returns a fresh, fully locked achievement set.
func DefaultAchievements() []Achievement {
	out := make([]Achievement, len(achievementCatalog))
	copy(out, achievementCatalog)
	return out
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeDark,
		Level:         LevelBeginner,
		Notifications: true,
		ReminderTime:  "18:00",
		Vibration:     true,
	}
}

// DefaultState builds the first-run aggregate for the given instant:
// zero counters, beginner working set, a pre-populated 31-day
// calendar, and the full locked achievement catalog.
func DefaultState(now time.Time) *AppState {
	return &AppState{
		Version:      SnapshotVersion,
		Today:        DateKey(now),
		Exercises:    ExercisesForLevel(LevelBeginner),
		Calendar:     NewCalendar(now),
		Settings:     DefaultSettings(),
		Achievements: DefaultAchievements(),
	}
}

// Clone returns a deep copy of the aggregate. Callers on the render
// boundary receive clones so display code can never mutate engine
// state.
func (s *AppState) Clone() *AppState {
	out := *s
	out.Exercises = make([]Exercise, len(s.Exercises))
	copy(out.Exercises, s.Exercises)
	out.Achievements = make([]Achievement, len(s.Achievements))
	copy(out.Achievements, s.Achievements)
	out.Calendar = make(map[string]DayRecord, len(s.Calendar))
	for k, v := range s.Calendar {
		out.Calendar[k] = v
	}
	return &out
}

// Exercise returns a copy of the working-set entry with the given id.
func (s *AppState) Exercise(id int) (Exercise, bool) {
	if ex := s.exercise(id); ex != nil {
		return *ex, true
	}
	return Exercise{}, false
}

// exercise returns a pointer into the working set, or nil when the id
// is unknown.
func (s *AppState) exercise(id int) *Exercise {
	for i := range s.Exercises {
		if s.Exercises[i].ID == id {
			return &s.Exercises[i]
		}
	}
	return nil
}

// achievement returns a pointer into the achievement set, or nil.
func (s *AppState) achievement(id int) *Achievement {
	for i := range s.Achievements {
		if s.Achievements[i].ID == id {
			return &s.Achievements[i]
		}
	}
	return nil
}
