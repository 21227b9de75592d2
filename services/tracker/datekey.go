// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import "time"

// DateKey maps an instant to its calendar-day identifier (YYYY-MM-DD)
// in the instant's location. The key is independent of time-of-day, so
// every instant of one wall-clock day maps to the same key.
func DateKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// Yesterday returns the DateKey of the calendar day before t.
//
// AddDate handles month and year boundaries and DST transitions; a
// manual -24h subtraction would mis-key days around DST changes.
func Yesterday(t time.Time) string {
	return DateKey(t.AddDate(0, 0, -1))
}

// DaysAgo returns the DateKey of the day n days before t. n may be 0.
func DaysAgo(t time.Time, n int) string {
	return DateKey(t.AddDate(0, 0, -n))
}

// ParseDayKey parses a DateKey back into a time at local midnight.
// Returns the zero time for malformed keys.
func ParseDayKey(key string) time.Time {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
