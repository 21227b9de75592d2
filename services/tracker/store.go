// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import "context"

// Store is the persistence boundary: a single opaque snapshot record
// plus the last-reminder-day marker. The engine treats storage as
// synchronous and fast; implementations live in services/tracker/storage.
//
// Load semantics: (nil, nil) means "no snapshot yet". A non-nil error
// or a payload that fails migration is treated identically by the
// engine: it substitutes freshly-initialized defaults rather than
// failing.
type Store interface {
	// LoadSnapshot returns the stored aggregate payload, or (nil, nil)
	// when nothing has been stored yet.
	LoadSnapshot(ctx context.Context) ([]byte, error)

	// SaveSnapshot replaces the whole stored payload.
	SaveSnapshot(ctx context.Context, data []byte) error

	// LastReminderDay returns the DateKey of the last day a reminder
	// was sent, or "" when none was recorded.
	LastReminderDay(ctx context.Context) (string, error)

	// SetLastReminderDay records the DateKey of the reminder just sent.
	SetLastReminderDay(ctx context.Context, key string) error

	// Clear removes the snapshot and the reminder marker. Used by the
	// user-initiated full reset.
	Clear(ctx context.Context) error
}
