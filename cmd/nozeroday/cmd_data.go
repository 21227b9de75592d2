// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nozeroday/nozeroday/cmd/nozeroday/config"
	"github.com/nozeroday/nozeroday/services/tracker"
)

// runExport writes the pretty-printed snapshot next to the caller.
func runExport(cmd *cobra.Command, args []string) {
	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	data, err := a.tracker.ExportJSON()
	if err != nil {
		fail(err)
	}

	path := exportOutput
	if path == "" {
		path = fmt.Sprintf("no-zero-day-backup-%s.json", tracker.DateKey(time.Now()))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fail(fmt.Errorf("write backup: %w", err))
	}
	fmt.Println(styled(styles.Success, "Backup written to "+path))
}

// runReset wipes everything. Destructive, so it hides behind --force
// the same way other irreversible commands do.
func runReset(cmd *cobra.Command, args []string) {
	if !resetForce {
		fail(fmt.Errorf("this deletes all tracked data; re-run with --force to confirm"))
	}

	a := mustOpenApp(newTerminalNotifier(config.Global.Sound))
	defer a.Close()

	if err := a.tracker.Reset(); err != nil {
		fail(err)
	}
}
