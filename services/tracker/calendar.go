// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import "time"

// NewCalendar builds the rolling ledger window: today and the 30
// preceding days, each pre-populated with an empty DayRecord so reads
// never need default-construction.
//
// Entries older than the window are retained once written; the window
// is an initialization shape, not an actively pruned bound.
func NewCalendar(now time.Time) map[string]DayRecord {
	calendar := make(map[string]DayRecord, CalendarWindowDays)
	for i := CalendarWindowDays - 1; i >= 0; i-- {
		calendar[DaysAgo(now, i)] = DayRecord{}
	}
	return calendar
}

// ensureCalendarDay back-fills a ledger entry for the given key. Used
// at rollover so the new day is always present in the window.
func (s *AppState) ensureCalendarDay(key string) {
	if s.Calendar == nil {
		s.Calendar = make(map[string]DayRecord, CalendarWindowDays)
	}
	if _, ok := s.Calendar[key]; !ok {
		s.Calendar[key] = DayRecord{}
	}
}

// ChainDay is one cell of the week-chain read model.
type ChainDay struct {
	Key        string
	DayOfMonth int
	IsToday    bool
	Completed  bool
}

// WeekChain returns the last seven days (oldest first) for the
// week-chain view.
func WeekChain(s *AppState, now time.Time) []ChainDay {
	out := make([]ChainDay, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := DateKey(day)
		rec := s.Calendar[key]
		out = append(out, ChainDay{
			Key:        key,
			DayOfMonth: day.Day(),
			IsToday:    i == 0,
			Completed:  rec.Completed,
		})
	}
	return out
}

// GridCell is one cell of the month-grid read model. Blank cells pad
// the first week so the grid starts on Sunday.
type GridCell struct {
	Blank      bool
	DayOfMonth int
	IsToday    bool
	Completed  bool
}

// MonthGrid returns the current month as a flat cell sequence,
// Sunday-aligned, for the calendar view.
func MonthGrid(s *AppState, now time.Time) []GridCell {
	firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastDay := firstDay.AddDate(0, 1, -1)

	cells := make([]GridCell, 0, int(firstDay.Weekday())+lastDay.Day())
	for i := 0; i < int(firstDay.Weekday()); i++ {
		cells = append(cells, GridCell{Blank: true})
	}
	for day := 1; day <= lastDay.Day(); day++ {
		date := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
		rec := s.Calendar[DateKey(date)]
		cells = append(cells, GridCell{
			DayOfMonth: day,
			IsToday:    day == now.Day(),
			Completed:  rec.Completed,
		})
	}
	return cells
}
