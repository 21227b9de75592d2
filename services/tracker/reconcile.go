// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import (
	"fmt"
	"time"
)

// reconcile compares the aggregate's day against now and performs the
// rollover when a new calendar day has begun. Idempotent within a day:
// once Today matches, further calls are no-ops. Callers hold the lock
// (New runs before the Tracker is shared).
//
// Streak-break rule: the streak is zeroed only when yesterday's ledger
// entry exists and is incomplete. When yesterday is absent entirely
// (the app was unused for two or more days past the initialized
// window) the streak is left as stored; today's entry is back-filled
// so every day-to-day gap from here on is detectable.
func (t *Tracker) reconcile(now time.Time) {
	today := DateKey(now)
	if t.state.Today == today {
		return
	}

	previous := t.state.Today
	t.state.Today = today
	t.state.TodayCompleted = false
	t.state.CompletedExercises = 0
	for i := range t.state.Exercises {
		t.state.Exercises[i].Completed = false
	}
	t.state.ensureCalendarDay(today)

	broken := false
	yesterday := Yesterday(now)
	if rec, ok := t.state.Calendar[yesterday]; ok && !rec.Completed {
		t.state.Streak = 0
		broken = true
	}

	t.persist()
	t.logger.Info("day rollover",
		"from", previous,
		"to", today,
		"streak", t.state.Streak,
		"streak_broken", broken,
	)

	if broken {
		t.notifier.Notify(NewNotice(NoticeWarning, "Streak broken 😢 Start again today!"))
	}
	if t.state.Settings.Notifications {
		t.notifier.SystemNotify(SystemNotification{
			Title:     "🔥 New day!",
			Body:      fmt.Sprintf("Current streak: %d days. Do your routine today!", t.state.Streak),
			Tag:       "new-day",
			Silent:    true,
			AutoClose: 5 * time.Second,
		})
	}
}
