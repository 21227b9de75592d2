// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nozeroday/nozeroday/pkg/logging"
)

// TiredKind selects one of the tired-mode shortcut paths.
type TiredKind string

const (
	// TiredPlank toggles the first exercise of the working set.
	TiredPlank TiredKind = "plank"

	// TiredSquats bumps the completion counter without touching an
	// exercise flag; a quick "anything counts" action.
	TiredSquats TiredKind = "squats"
)

// Tracker owns the AppState aggregate and every operation that
// mutates it. Construct with New, which loads (or defaults) the
// snapshot and runs the day reconciler.
//
// Thread Safety: safe for concurrent use. All operations, including
// the reminder timer callback, serialize on one mutex, so aggregate
// mutations never interleave.
type Tracker struct {
	mu       sync.Mutex
	state    *AppState
	store    Store
	notifier Notifier
	logger   *logging.Logger
	clock    func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNotifier sets the notice boundary. Default: NopNotifier.
func WithNotifier(n Notifier) Option {
	return func(t *Tracker) { t.notifier = n }
}

// WithLogger sets the structured logger. Default: logging.Default().
func WithLogger(l *logging.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithClock injects the time source. Tests use this to drive
// rollovers deterministically. Default: time.Now.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// New loads the persisted aggregate (substituting defaults when the
// store is empty or the payload is corrupt), reconciles it against the
// current day, and returns a ready Tracker.
//
// A nil store is rejected; every other failure degrades to defaults.
func New(store Store, opts ...Option) (*Tracker, error) {
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}

	t := &Tracker{
		store:    store,
		notifier: NopNotifier{},
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logging.Default()
	}

	now := t.clock()
	raw, err := store.LoadSnapshot(context.Background())
	if err != nil {
		t.logger.Warn("snapshot load failed, starting from defaults", "error", err)
		raw = nil
	}

	state, err := Migrate(raw, now)
	if err != nil {
		t.logger.Warn("snapshot rejected, starting from defaults", "error", err)
		state = DefaultState(now)
	}
	t.state = state

	t.reconcile(now)
	return t, nil
}

// Snapshot returns a deep copy of the aggregate for the render
// boundary.
func (t *Tracker) Snapshot() *AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Reconcile re-runs the day-rollover check against the current clock.
// A long-running session calls this on wake-up events (timer fire,
// terminal focus) so state never straddles midnight. Idempotent within
// a calendar day.
func (t *Tracker) Reconcile() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reconcile(t.clock())
}

// ToggleExercise flips one exercise's completed flag and adjusts the
// completion counter. An unknown id is a silent no-op: the presentation
// layer only offers ids from the working set, so there is nobody to
// surface the error to.
func (t *Tracker) ToggleExercise(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toggleLocked(id)
}

func (t *Tracker) toggleLocked(id int) {
	ex := t.state.exercise(id)
	if ex == nil {
		t.logger.Debug("toggle ignored, unknown exercise", "id", id)
		return
	}

	ex.Completed = !ex.Completed
	if ex.Completed {
		t.state.CompletedExercises++
	} else {
		t.state.CompletedExercises--
	}

	t.persist()
	t.checkAchievements()
}

// ValidateDay finalizes today's completion: it sums the completed
// exercises' seconds, advances the streak and lifetime counters, and
// writes the durable calendar record. This is the only place the
// streak increments.
//
// Returns ErrAlreadyValidated or ErrNoExercisesDone without mutating
// state.
func (t *Tracker) ValidateDay() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.TodayCompleted {
		return ErrAlreadyValidated
	}
	if t.state.CompletedExercises == 0 {
		return ErrNoExercisesDone
	}

	daySeconds := 0
	for _, ex := range t.state.Exercises {
		if ex.Completed {
			daySeconds += ex.Seconds
		}
	}

	t.state.TodayCompleted = true
	t.state.Streak++
	t.state.TotalDays++
	t.state.CompletedDays++
	t.state.TotalSeconds += daySeconds
	if t.state.Streak > t.state.BestStreak {
		t.state.BestStreak = t.state.Streak
	}

	t.state.Calendar[t.state.Today] = DayRecord{
		Completed: true,
		Exercises: t.state.CompletedExercises,
		Seconds:   daySeconds,
	}

	t.persist()
	t.logger.Info("day validated",
		"day", t.state.Today,
		"streak", t.state.Streak,
		"exercises", t.state.CompletedExercises,
		"seconds", daySeconds,
	)

	t.notifier.Notify(NewNotice(NoticeSuccess,
		fmt.Sprintf("🔥 New streak: %d days!", t.state.Streak)))
	if t.state.Settings.Vibration {
		t.notifier.Vibrate([]int{100, 50, 100})
	}

	t.checkAchievements()
	return nil
}

// SetLevel switches the active exercise template. The working set is
// replaced and today's completion state resets, mirroring a fresh day
// on the new level.
func (t *Tracker) SetLevel(level Level) error {
	if !level.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Settings.Level = level
	t.state.Exercises = ExercisesForLevel(level)
	t.state.CompletedExercises = 0
	t.state.TodayCompleted = false

	t.persist()
	t.notifier.Notify(NewNotice(NoticeSuccess, fmt.Sprintf("Level %s activated", level)))
	return nil
}

// SetTheme updates the display theme preference.
func (t *Tracker) SetTheme(theme Theme) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidSettings, theme)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Settings.Theme = theme
	t.persist()
	t.notifier.Notify(NewNotice(NoticeSuccess, fmt.Sprintf("%s theme activated", theme)))
	return nil
}

// UpdateSettings replaces the settings block after validation. Level
// changes go through SetLevel so the working set follows; this method
// covers reminder time, notification and vibration toggles, and theme.
//
// The caller owns rescheduling: after a successful update, re-arm the
// reminder scheduler so the one-shot timer matches the new settings.
func (t *Tracker) UpdateSettings(s Settings) error {
	if err := validateSettings(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if s.Level != t.state.Settings.Level {
		t.state.Exercises = ExercisesForLevel(s.Level)
		t.state.CompletedExercises = 0
		t.state.TodayCompleted = false
	}
	t.state.Settings = s

	t.persist()
	return nil
}

// CompleteTired runs one of the tired-mode shortcuts and unlocks the
// tired-mode achievement. Plank toggles the first exercise; squats
// count as a completion without an exercise flag, which is why the
// completion-counter invariant is scoped to ToggleExercise.
func (t *Tracker) CompleteTired(kind TiredKind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch kind {
	case TiredPlank:
		if len(t.state.Exercises) > 0 {
			t.toggleLocked(t.state.Exercises[0].ID)
		}
	case TiredSquats:
		t.state.CompletedExercises++
		t.persist()
	}

	if a := t.state.achievement(5); a != nil && !a.Unlocked {
		a.Unlocked = true
		t.persist()
		t.notifier.Notify(NewNotice(NoticeSuccess, "Achievement unlocked: Tired mode!"))
	}

	t.notifier.Notify(NewNotice(NoticeSuccess, "Quick exercise added!"))
}

// ExportJSON returns the current snapshot pretty-printed for backup.
func (t *Tracker) ExportJSON() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := json.MarshalIndent(t.state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Reset wipes the store and reinstalls first-run defaults. The caller
// must cancel any armed reminder first; the new state re-arms it.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Clear(context.Background()); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}

	t.state = DefaultState(t.clock())
	t.persist()
	t.logger.Info("state reset to defaults")
	t.notifier.Notify(NewNotice(NoticeSuccess, "Data reset"))
	if t.state.Settings.Vibration {
		t.notifier.Vibrate([]int{200, 100, 200})
	}
	return nil
}

// checkAchievements evaluates the unlock predicates. Order-independent
// over current state; each id unlocks exactly once, and every
// transition emits a notice and a persistence write. Callers hold the
// lock.
func (t *Tracker) checkAchievements() {
	type predicate struct {
		id int
		ok bool
	}
	predicates := []predicate{
		{1, t.state.Streak >= 1},
		{2, t.state.Streak >= 3},
		{3, t.state.Streak >= 7},
		{4, t.state.Streak >= 30},
		// id 5 (tired mode) is externally triggered; see CompleteTired.
		{6, len(t.state.Exercises) > 0 &&
			t.state.CompletedExercises == len(t.state.Exercises)},
	}

	unlocked := false
	for _, p := range predicates {
		if !p.ok {
			continue
		}
		a := t.state.achievement(p.id)
		if a == nil || a.Unlocked {
			continue
		}
		a.Unlocked = true
		unlocked = true
		t.logger.Info("achievement unlocked", "id", a.ID, "name", a.Name)
		t.notifier.Notify(NewNotice(NoticeSuccess,
			fmt.Sprintf("Achievement unlocked: %s!", a.Name)))
	}

	if unlocked {
		t.persist()
	}
}

// persist writes the whole aggregate. Write failures are logged and
// surfaced as an error notice but never propagated: the in-memory
// state stays authoritative for the session. Callers hold the lock.
func (t *Tracker) persist() {
	data, err := json.Marshal(t.state)
	if err != nil {
		t.logger.Error("snapshot marshal failed", "error", err)
		return
	}
	if err := t.store.SaveSnapshot(context.Background(), data); err != nil {
		t.logger.Error("snapshot write failed", "error", err)
		t.notifier.Notify(NewNotice(NoticeError, "Save failed"))
	}
}
