// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nozeroday/nozeroday/cmd/nozeroday/config"
	"github.com/nozeroday/nozeroday/services/tracker"
	"github.com/nozeroday/nozeroday/services/tracker/tui"
)

// runSession hosts the long-running interactive session: the checklist
// UI, the reminder scheduler, and the config watcher all live for the
// duration of the bubbletea program.
func runSession(cmd *cobra.Command, args []string) {
	notifier := tui.NewChannelNotifier()
	a := mustOpenApp(notifier)
	defer a.Close()

	scheduler := tracker.NewScheduler(a.tracker, a.store,
		tracker.WithSchedulerNotifier(notifier),
		tracker.WithSchedulerLogger(a.logger),
	)
	scheduler.Schedule()
	// The armed timer died with the previous process; cover the missed
	// window before handing the terminal to the UI.
	scheduler.CheckDailyReminder()
	defer scheduler.Cancel()

	model := tui.New(a.tracker, notifier, tui.WithSound(a.cfg.Sound))
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Config edits reach the running session without a restart.
	if cfgPath, err := config.Path(); err == nil {
		watcher, err := config.NewWatcher(cfgPath, func(c config.AppConfig) {
			p.Send(tui.SetSoundMsg{Enabled: c.Sound})
		}, nil)
		if err == nil && watcher.Start(context.Background()) == nil {
			defer watcher.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		fail(err)
	}
}
