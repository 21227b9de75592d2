// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nozeroday/nozeroday/cmd/nozeroday/config"
	"github.com/nozeroday/nozeroday/services/tracker"
)

// runToggle flips one exercise by its checklist id.
func runToggle(cmd *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fail(fmt.Errorf("exercise id must be a number, got %q", args[0]))
	}

	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	ex, ok := a.tracker.Snapshot().Exercise(id)
	if !ok {
		fail(fmt.Errorf("no exercise with id %d today; run 'nozeroday status' for the list", id))
	}

	a.tracker.ToggleExercise(id)
	snap := a.tracker.Snapshot()
	fmt.Printf("%s  %d/%d done\n",
		styled(styles.Bold, ex.Name),
		snap.CompletedExercises, len(snap.Exercises))
}

// runValidate locks in today and extends the streak.
func runValidate(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	if err := a.tracker.ValidateDay(); err != nil {
		fail(err)
	}
}

// runTired logs a minimal effort: a single plank toggle or a set of
// quick squats.
func runTired(cmd *cobra.Command, args []string) {
	var kind tracker.TiredKind
	switch args[0] {
	case "plank":
		kind = tracker.TiredPlank
	case "squats":
		kind = tracker.TiredSquats
	default:
		fail(fmt.Errorf("unknown tired action %q, expected plank or squats", args[0]))
	}

	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	a.tracker.CompleteTired(kind)
}
