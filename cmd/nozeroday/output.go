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

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nozeroday/nozeroday/services/tracker"
)

// colorEnabled gates styling: piped output (scripts, CI) gets plain
// text so it stays grep-able.
var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// No Zero Day palette - ember oranges over a dark slate.
var (
	colorEmber   = lipgloss.Color("#FF6B35")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A89")
)

var styles = struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Banner  lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorEmber),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Success: lipgloss.NewStyle().Foreground(colorSuccess),
	Warning: lipgloss.NewStyle().Foreground(colorWarning),
	Error:   lipgloss.NewStyle().Foreground(colorError),
	Banner: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorEmber).
		Padding(0, 1),
}

// styled renders s with st when stdout is a terminal, plain otherwise.
func styled(st lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return st.Render(s)
}

// terminalNotifier is the engine's notice boundary for one-shot
// commands: notices print as styled lines, system notifications as a
// banner with an optional terminal bell. Haptics have no terminal
// equivalent and are dropped.
type terminalNotifier struct {
	sound bool
}

func newTerminalNotifier(sound bool) *terminalNotifier {
	return &terminalNotifier{sound: sound}
}

func (t *terminalNotifier) Notify(n tracker.Notice) {
	switch n.Kind {
	case tracker.NoticeSuccess:
		fmt.Println(styled(styles.Success, "✔ "+n.Message))
	case tracker.NoticeWarning:
		fmt.Println(styled(styles.Warning, "⚠ "+n.Message))
	case tracker.NoticeError:
		fmt.Println(styled(styles.Error, "✖ "+n.Message))
	default:
		fmt.Println(styled(styles.Muted, "• "+n.Message))
	}
}

func (t *terminalNotifier) SystemNotify(n tracker.SystemNotification) {
	fmt.Println(styled(styles.Banner, fmt.Sprintf("%s\n%s", n.Title, n.Body)))
	if t.sound {
		fmt.Print("\a")
	}
}

func (t *terminalNotifier) Vibrate([]int) {}
