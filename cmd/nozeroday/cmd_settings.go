// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nozeroday/nozeroday/cmd/nozeroday/config"
	"github.com/nozeroday/nozeroday/services/tracker"
)

// runSettings edits all preferences in one interactive form.
func runSettings(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	current := a.tracker.Snapshot().Settings
	theme := string(current.Theme)
	level := string(current.Level)
	reminderTime := current.ReminderTime
	notifications := current.Notifications
	vibration := current.Vibration

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Exercise level").
				Description("Changing the level resets today's checklist").
				Options(huh.NewOptions("beginner", "intermediate", "advanced")...).
				Value(&level),
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions("dark", "light")...).
				Value(&theme),
			huh.NewConfirm().
				Title("Daily reminder").
				Value(&notifications),
			huh.NewInput().
				Title("Reminder time").
				Description("24h wall clock, HH:MM").
				Validate(func(s string) error {
					_, _, err := tracker.ParseReminderTime(s)
					return err
				}).
				Value(&reminderTime),
			huh.NewConfirm().
				Title("Haptic feedback").
				Value(&vibration),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return
		}
		fail(err)
	}

	updated := tracker.Settings{
		Theme:         tracker.Theme(theme),
		Level:         tracker.Level(level),
		Notifications: notifications,
		ReminderTime:  reminderTime,
		Vibration:     vibration,
	}
	if err := a.tracker.UpdateSettings(updated); err != nil {
		fail(err)
	}
	fmt.Println(styled(styles.Success, "Settings saved"))
}

// runLevel is the non-interactive level switch.
func runLevel(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	if err := a.tracker.SetLevel(tracker.Level(args[0])); err != nil {
		fail(err)
	}
}

// runTheme is the non-interactive theme switch.
func runTheme(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	if err := a.tracker.SetTheme(tracker.Theme(args[0])); err != nil {
		fail(err)
	}
}
