// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/nozeroday/nozeroday/pkg/logging"
)

// NoticeKind classifies transient user-facing notices (toasts).
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient message for the presentation layer. The ID
// lets a renderer track auto-dismissal of individual toasts.
type Notice struct {
	ID      string
	Kind    NoticeKind
	Message string
}

// NewNotice builds a Notice with a fresh identifier.
func NewNotice(kind NoticeKind, message string) Notice {
	return Notice{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
	}
}

// SystemNotification is an OS-level notification request. Reminder
// notifications require interaction; new-day notifications are silent
// and auto-dismiss.
type SystemNotification struct {
	Title              string
	Body               string
	Tag                string // dedupe tag, e.g. "daily-reminder"
	RequireInteraction bool
	Silent             bool
	AutoClose          time.Duration
}

// Notifier is the notice boundary. The engine emits abstract notices
// and fire-and-forget feedback requests; how they are displayed is the
// caller's concern. Implementations must not block and must not call
// back into the Tracker.
type Notifier interface {
	// Notify displays a transient toast.
	Notify(n Notice)

	// SystemNotify requests an OS-level notification. Implementations
	// without notification support degrade to a silent no-op.
	SystemNotify(n SystemNotification)

	// Vibrate requests haptic feedback as alternating on/off
	// millisecond durations. Fire-and-forget.
	Vibrate(pattern []int)
}

// NopNotifier discards everything. Used by one-shot CLI commands that
// render state directly, and by tests that don't inspect notices.
type NopNotifier struct{}

func (NopNotifier) Notify(Notice)                   {}
func (NopNotifier) SystemNotify(SystemNotification) {}
func (NopNotifier) Vibrate([]int)                   {}

// LogNotifier writes notices to the structured log. The long-running
// session wraps it so notices reach both the screen and the log file.
type LogNotifier struct {
	Logger *logging.Logger
}

func (l LogNotifier) Notify(n Notice) {
	l.Logger.Info("notice", "kind", string(n.Kind), "message", n.Message)
}

func (l LogNotifier) SystemNotify(n SystemNotification) {
	l.Logger.Info("system notification",
		"tag", n.Tag,
		"title", n.Title,
		"require_interaction", n.RequireInteraction,
	)
}

func (l LogNotifier) Vibrate(pattern []int) {
	l.Logger.Debug("vibration requested", "pattern", pattern)
}

// MultiNotifier fans a notice out to every wrapped notifier in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(n Notice) {
	for _, w := range m {
		w.Notify(n)
	}
}

func (m MultiNotifier) SystemNotify(n SystemNotification) {
	for _, w := range m {
		w.SystemNotify(n)
	}
}

func (m MultiNotifier) Vibrate(pattern []int) {
	for _, w := range m {
		w.Vibrate(pattern)
	}
}
