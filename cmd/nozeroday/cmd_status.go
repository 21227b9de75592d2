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

	"github.com/spf13/cobra"

	"github.com/nozeroday/nozeroday/cmd/nozeroday/config"
)

// runStatus prints today's checklist with the streak header. This is
// the read-only cousin of the interactive session: same data, no keys.
func runStatus(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	snap := a.tracker.Snapshot()

	fmt.Println(styled(styles.Title, "🔥 No Zero Day"))
	fmt.Printf("%s %s\n\n",
		styled(styles.Bold, fmt.Sprintf("%d day streak", snap.Streak)),
		styled(styles.Muted, fmt.Sprintf("(best %d) · %s", snap.BestStreak, snap.Today)))

	for _, ex := range snap.Exercises {
		if ex.Completed {
			fmt.Println(styled(styles.Success, fmt.Sprintf("  [x] %s %s  %s", ex.Icon, ex.Name, ex.Duration)))
		} else {
			fmt.Printf("  [ ] %s %s  %s\n", ex.Icon, ex.Name, styled(styles.Muted, ex.Duration))
		}
	}

	done := snap.CompletedExercises
	total := len(snap.Exercises)
	fmt.Printf("\n%s %d/%d\n", progressBar(done, total, 20), done, total)

	switch {
	case snap.TodayCompleted:
		fmt.Println(styled(styles.Success, "\n✅ Day validated. See you tomorrow!"))
	case done > 0:
		fmt.Println(styled(styles.Muted, "\nRun 'nozeroday validate' to lock in today."))
	default:
		fmt.Println(styled(styles.Muted, "\nNo zero days. Do at least one exercise."))
	}
}

// progressBar renders a fixed-width ASCII bar. Quick-squat overshoot
// clamps to full.
func progressBar(done, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if filled == width {
		return styled(styles.Success, bar)
	}
	return styled(styles.Bold, bar)
}
