// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	exportOutput string
	resetForce   bool

	rootCmd = &cobra.Command{
		Use:   "nozeroday",
		Short: "A cli for the No Zero Day daily habit tracker",
		Long: `No Zero Day tracks a small set of daily exercises, a consecutive-day
				streak, and a rolling calendar. Validate at least one exercise
				every day and don't break the chain.`,
	}

	// --- Today ---
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show today's checklist, streak, and progress",
		Run:   runStatus, // Defined in cmd_status.go
	}
	toggleCmd = &cobra.Command{
		Use:   "toggle [exercise-id]",
		Short: "Toggle one of today's exercises done/undone",
		Args:  cobra.ExactArgs(1),
		Run:   runToggle, // Defined in cmd_day.go
	}
	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate today and extend the streak",
		Run:   runValidate, // Defined in cmd_day.go
	}
	tiredCmd = &cobra.Command{
		Use:   "tired [plank|squats]",
		Short: "Too tired for the full routine? Log a minimal effort instead",
		Args:  cobra.ExactArgs(1),
		Run:   runTired, // Defined in cmd_day.go
	}

	// --- Session ---
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Start the interactive session with the reminder scheduler",
		Run:   runSession, // Defined in cmd_run.go
	}

	// --- Views ---
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show lifetime statistics",
		Run:   runStats, // Defined in cmd_stats.go
	}
	chainCmd = &cobra.Command{
		Use:   "chain",
		Short: "Show the last seven days of the chain",
		Run:   runChain, // Defined in cmd_stats.go
	}
	calendarCmd = &cobra.Command{
		Use:   "calendar",
		Short: "Show the current month as a completion grid",
		Run:   runCalendar, // Defined in cmd_stats.go
	}
	achievementsCmd = &cobra.Command{
		Use:   "achievements",
		Short: "Show unlocked and locked achievements",
		Run:   runAchievements, // Defined in cmd_stats.go
	}

	// --- Preferences ---
	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Edit level, theme, and reminder preferences interactively",
		Run:   runSettings, // Defined in cmd_settings.go
	}
	levelCmd = &cobra.Command{
		Use:   "level [beginner|intermediate|advanced]",
		Short: "Switch the exercise level",
		Args:  cobra.ExactArgs(1),
		Run:   runLevel, // Defined in cmd_settings.go
	}
	themeCmd = &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Switch the display theme",
		Args:  cobra.ExactArgs(1),
		Run:   runTheme, // Defined in cmd_settings.go
	}

	// --- Data ---
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export all tracked data as a JSON backup",
		Run:   runExport, // Defined in cmd_data.go
	}
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "DANGER: Deletes all tracked data and starts over",
		Run:   runReset, // Defined in cmd_data.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tiredCmd)

	rootCmd.AddCommand(runCmd)

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(achievementsCmd)

	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(themeCmd)

	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"Backup file path (default no-zero-day-backup-<date>.json)")
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Required to confirm the deletion of all data.")
}
