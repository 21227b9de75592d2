// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nozeroday/nozeroday/cmd/nozeroday/config"
	"github.com/nozeroday/nozeroday/services/tracker"
)

// runStats prints the lifetime counters.
func runStats(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	snap := a.tracker.Snapshot()

	fmt.Println(styled(styles.Title, "Statistics"))
	fmt.Printf("  %-16s %s\n", "Current streak", styled(styles.Bold, fmt.Sprintf("%d days", snap.Streak)))
	fmt.Printf("  %-16s %d days\n", "Best streak", snap.BestStreak)
	fmt.Printf("  %-16s %d\n", "Days tracked", snap.TotalDays)
	fmt.Printf("  %-16s %d\n", "Days completed", snap.CompletedDays)
	fmt.Printf("  %-16s %d min\n", "Total exercise", snap.TotalSeconds/60)
}

// runChain prints the last seven days, oldest first.
func runChain(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	snap := a.tracker.Snapshot()
	chain := tracker.WeekChain(snap, time.Now())

	fmt.Println(styled(styles.Title, "Last 7 days"))
	var cells []string
	for _, day := range chain {
		cell := fmt.Sprintf("%2d", day.DayOfMonth)
		switch {
		case day.Completed:
			cell = styled(styles.Success, "🔥"+cell)
		case day.IsToday:
			cell = styled(styles.Bold, "·"+cell)
		default:
			cell = styled(styles.Muted, "·"+cell)
		}
		cells = append(cells, cell)
	}
	fmt.Println("  " + strings.Join(cells, "  "))
}

// runCalendar prints the current month as a Sunday-aligned grid.
func runCalendar(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	now := time.Now()
	snap := a.tracker.Snapshot()
	grid := tracker.MonthGrid(snap, now)

	fmt.Println(styled(styles.Title, now.Format("January 2006")))
	fmt.Println(styled(styles.Muted, "  Su  Mo  Tu  We  Th  Fr  Sa"))

	var row strings.Builder
	row.WriteString("  ")
	for i, cell := range grid {
		switch {
		case cell.Blank:
			row.WriteString("    ")
		case cell.Completed:
			row.WriteString(styled(styles.Success, fmt.Sprintf("%3d✓", cell.DayOfMonth)))
		case cell.IsToday:
			row.WriteString(styled(styles.Bold, fmt.Sprintf("%3d ", cell.DayOfMonth)))
		default:
			row.WriteString(styled(styles.Muted, fmt.Sprintf("%3d ", cell.DayOfMonth)))
		}
		if (i+1)%7 == 0 {
			fmt.Println(row.String())
			row.Reset()
			row.WriteString("  ")
		}
	}
	if row.Len() > 2 {
		fmt.Println(row.String())
	}
}

// runAchievements lists the badge catalog with unlock state.
func runAchievements(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	snap := a.tracker.Snapshot()

	fmt.Println(styled(styles.Title, "Achievements"))
	for _, ach := range snap.Achievements {
		if ach.Unlocked {
			fmt.Printf("  %s %s  %s\n", ach.Icon,
				styled(styles.Success, ach.Name),
				styled(styles.Muted, ach.Desc))
		} else {
			fmt.Printf("  🔒 %s  %s\n",
				styled(styles.Muted, ach.Name),
				styled(styles.Muted, ach.Desc))
		}
	}
}
