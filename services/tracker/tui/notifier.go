// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import "github.com/nozeroday/nozeroday/services/tracker"

// ChannelNotifier bridges the engine's notice boundary into the
// bubbletea event loop. The engine and the reminder scheduler call it
// from their own goroutines; the model drains the channels with
// tea.Cmds, so notices become ordinary messages.
//
// Sends never block. When a channel is full the oldest behavior is to
// drop the notice; a toast the user cannot see anyway is not worth
// stalling the engine for.
type ChannelNotifier struct {
	notices chan tracker.Notice
	system  chan tracker.SystemNotification
	haptics chan []int
}

// NewChannelNotifier builds a notifier with small buffered channels.
func NewChannelNotifier() *ChannelNotifier {
	return &ChannelNotifier{
		notices: make(chan tracker.Notice, 16),
		system:  make(chan tracker.SystemNotification, 4),
		haptics: make(chan []int, 4),
	}
}

func (c *ChannelNotifier) Notify(n tracker.Notice) {
	select {
	case c.notices <- n:
	default:
	}
}

func (c *ChannelNotifier) SystemNotify(n tracker.SystemNotification) {
	select {
	case c.system <- n:
	default:
	}
}

func (c *ChannelNotifier) Vibrate(pattern []int) {
	select {
	case c.haptics <- pattern:
	default:
	}
}
