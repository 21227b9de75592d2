// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/nozeroday/nozeroday/pkg/logging"
)

// Scheduler arms the once-per-day reminder.
//
// It is a two-state machine: Idle (no timer) and Armed (one one-shot
// timer pending). Schedule computes the delay to the next configured
// reminder time and arms a single cancellable timer; when the timer
// fires, the reminder is emitted if today is still unvalidated and the
// scheduler immediately re-arms itself for the next day. Timers do not
// survive process restarts, so CheckDailyReminder covers the missed
// window at startup. Both paths share the persisted last-sent day key,
// which is what makes "at most one reminder per calendar day" hold.
//
// Thread Safety: safe for concurrent use; the timer callback and the
// public methods serialize on one mutex.
type Scheduler struct {
	mu      sync.Mutex
	armed   bool
	timer   *time.Timer
	tracker *Tracker
	store   Store

	notifier Notifier
	logger   *logging.Logger
	clock    func() time.Time
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerNotifier sets the notice boundary for reminders.
func WithSchedulerNotifier(n Notifier) SchedulerOption {
	return func(s *Scheduler) { s.notifier = n }
}

// WithSchedulerLogger sets the structured logger.
func WithSchedulerLogger(l *logging.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// WithSchedulerClock injects the time source for tests.
func WithSchedulerClock(clock func() time.Time) SchedulerOption {
	return func(s *Scheduler) { s.clock = clock }
}

// NewScheduler builds a scheduler in the Idle state. The store is
// used only for the last-sent day marker.
func NewScheduler(tracker *Tracker, store Store, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		tracker:  tracker,
		store:    store,
		notifier: NopNotifier{},
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s
}

// NextReminder computes the next instant the reminder should fire:
// today at the configured time, or the same time tomorrow when that
// has already passed.
func NextReminder(settings Settings, now time.Time) (time.Time, error) {
	hour, minute, err := ParseReminderTime(settings.ReminderTime)
	if err != nil {
		return time.Time{}, err
	}
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target, nil
}

// Schedule (re)arms the one-shot timer from current settings. When
// notifications are disabled, any pending timer is cancelled and the
// scheduler goes Idle. Always cancels before re-arming, so a stale
// callback can never fire against updated settings.
func (s *Scheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()

	snap := s.tracker.Snapshot()
	if !snap.Settings.Notifications {
		s.logger.Debug("reminder scheduling skipped, notifications disabled")
		return
	}

	now := s.clock()
	target, err := NextReminder(snap.Settings, now)
	if err != nil {
		s.logger.Warn("reminder not scheduled", "error", err)
		return
	}

	delay := target.Sub(now)
	s.timer = time.AfterFunc(delay, s.fire)
	s.armed = true
	s.logger.Info("reminder armed", "at", target.Format(time.RFC3339), "in", delay.Round(time.Second).String())
}

// Cancel disarms a pending timer. No-op from Idle.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Armed reports whether a timer is pending.
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.armed = false
}

// fire is the timer callback: emit (guarded) and self-renew.
func (s *Scheduler) fire() {
	s.mu.Lock()
	s.armed = false
	s.timer = nil
	s.mu.Unlock()

	// The timer may be the first event after midnight; make sure the
	// aggregate has rolled over before reading today's state.
	s.tracker.Reconcile()
	s.emitIfDue(s.clock())

	// Self-renewing: always re-arm for the following day.
	s.Schedule()
}

// CheckDailyReminder is the startup guard for the restart window: the
// armed timer died with the previous process, so if the configured
// time has already passed today, today is unvalidated, and nothing was
// sent today, it emits the reminder now.
func (s *Scheduler) CheckDailyReminder() {
	now := s.clock()
	snap := s.tracker.Snapshot()

	target := time.Time{}
	if hour, minute, err := ParseReminderTime(snap.Settings.ReminderTime); err == nil {
		target = time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	} else {
		s.logger.Warn("reminder check skipped", "error", err)
		return
	}

	if now.Before(target) {
		return
	}
	s.emitIfDue(now)
}

// emitIfDue sends the reminder when all guards pass and records the
// day key so the other path cannot send a second one.
func (s *Scheduler) emitIfDue(now time.Time) {
	snap := s.tracker.Snapshot()
	if !snap.Settings.Notifications || snap.TodayCompleted {
		return
	}

	today := DateKey(now)
	last, err := s.store.LastReminderDay(context.Background())
	if err != nil {
		s.logger.Warn("last reminder day unavailable", "error", err)
	}
	if last == today {
		return
	}

	s.notifier.SystemNotify(SystemNotification{
		Title:              "🔥 No Zero Day - Reminder!",
		Body:               "Did you forget your routine today? Don't break the chain!",
		Tag:                "daily-reminder",
		RequireInteraction: true,
		AutoClose:          10 * time.Second,
	})
	if err := s.store.SetLastReminderDay(context.Background(), today); err != nil {
		s.logger.Warn("could not record reminder day", "error", err)
	}
	s.logger.Info("daily reminder sent", "day", today)
}
