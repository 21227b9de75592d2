// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tui implements the interactive session for the tracker.
//
// # Description
//
// The session is a bubbletea program over the engine's snapshot read
// model: a navigable checklist of today's exercises, a per-exercise
// countdown, a completion progress bar, and a toast area for engine
// notices. All mutations go through the Tracker operations; the model
// itself holds no tracked state beyond the latest snapshot clone.
//
// # Thread Safety
//
// The model runs single-threaded inside the bubbletea event loop.
// Engine notices arriving from other goroutines cross over via
// ChannelNotifier and become ordinary messages.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nozeroday/nozeroday/services/tracker"
)

const toastLifetime = 3 * time.Second

// =============================================================================
// Messages
// =============================================================================

// noticeMsg carries an engine notice into the event loop.
type noticeMsg tracker.Notice

// systemMsg carries a system notification (reminder, new day).
type systemMsg tracker.SystemNotification

// hapticMsg carries a vibration pattern; the terminal renders it as a
// bell when sound is enabled.
type hapticMsg []int

// secondTickMsg drives the exercise countdown.
type secondTickMsg time.Time

// minuteTickMsg keeps the aggregate reconciled across midnight.
type minuteTickMsg time.Time

// SetSoundMsg is sent from outside the loop (config reload) to flip the
// terminal bell on or off.
type SetSoundMsg struct {
	Enabled bool
}

// =============================================================================
// Model
// =============================================================================

type toast struct {
	id      string
	kind    tracker.NoticeKind
	message string
	expires time.Time
}

type countdown struct {
	exerciseID int
	remaining  int
}

// Model is the bubbletea model for the interactive session.
type Model struct {
	tracker  *tracker.Tracker
	notifier *ChannelNotifier
	snapshot *tracker.AppState

	cursor    int
	active    *countdown
	toasts    []toast
	banner    string
	bannerEnd time.Time

	bar   progress.Model
	width int
	sound bool
	clock func() time.Time

	quitting bool
}

// ModelOption configures the session model.
type ModelOption func(*Model)

// WithModelClock injects the time source for tests.
func WithModelClock(clock func() time.Time) ModelOption {
	return func(m *Model) { m.clock = clock }
}

// WithSound sets the initial terminal-bell preference.
func WithSound(enabled bool) ModelOption {
	return func(m *Model) { m.sound = enabled }
}

// New builds the session model. The notifier must be the one the
// Tracker and Scheduler were constructed with, or notices never reach
// the screen.
func New(tr *tracker.Tracker, notifier *ChannelNotifier, opts ...ModelOption) Model {
	m := Model{
		tracker:  tr,
		notifier: notifier,
		snapshot: tr.Snapshot(),
		bar:      progress.New(progress.WithDefaultGradient()),
		width:    80,
		sound:    true,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init arms the notice drains and the reconcile tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitNotice(), m.waitSystem(), m.waitHaptic(), minuteTick())
}

func (m Model) waitNotice() tea.Cmd {
	return func() tea.Msg { return noticeMsg(<-m.notifier.notices) }
}

func (m Model) waitSystem() tea.Cmd {
	return func() tea.Msg { return systemMsg(<-m.notifier.system) }
}

func (m Model) waitHaptic() tea.Cmd {
	return func() tea.Msg { return hapticMsg(<-m.notifier.haptics) }
}

func secondTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return secondTickMsg(t) })
}

func minuteTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return minuteTickMsg(t) })
}

// refresh re-reads the snapshot and clamps the cursor to the working
// set, which may have shrunk after a level change.
func (m *Model) refresh() {
	m.snapshot = m.tracker.Snapshot()
	if m.cursor >= len(m.snapshot.Exercises) {
		m.cursor = len(m.snapshot.Exercises) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) pushToast(kind tracker.NoticeKind, message string) {
	m.toasts = append(m.toasts, toast{
		id:      tracker.NewNotice(kind, message).ID,
		kind:    kind,
		message: message,
		expires: m.clock().Add(toastLifetime),
	})
}

func (m *Model) pruneToasts() {
	now := m.clock()
	kept := m.toasts[:0]
	for _, tst := range m.toasts {
		if tst.expires.After(now) {
			kept = append(kept, tst)
		}
	}
	m.toasts = kept
	if !m.bannerEnd.IsZero() && !m.bannerEnd.After(now) {
		m.banner = ""
		m.bannerEnd = time.Time{}
	}
}

// Update handles session events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-8, 50)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case noticeMsg:
		m.pruneToasts()
		m.toasts = append(m.toasts, toast{
			id:      msg.ID,
			kind:    msg.Kind,
			message: msg.Message,
			expires: m.clock().Add(toastLifetime),
		})
		m.refresh()
		return m, m.waitNotice()

	case systemMsg:
		m.banner = fmt.Sprintf("%s %s", msg.Title, msg.Body)
		if msg.AutoClose > 0 {
			m.bannerEnd = m.clock().Add(msg.AutoClose)
		}
		m.refresh()
		cmds := []tea.Cmd{m.waitSystem()}
		if m.sound {
			cmds = append(cmds, tea.Println("\a"))
		}
		return m, tea.Batch(cmds...)

	case hapticMsg:
		cmds := []tea.Cmd{m.waitHaptic()}
		if m.sound {
			cmds = append(cmds, tea.Println("\a"))
		}
		return m, tea.Batch(cmds...)

	case secondTickMsg:
		return m.handleCountdownTick()

	case minuteTickMsg:
		m.tracker.Reconcile()
		m.refresh()
		m.pruneToasts()
		return m, minuteTick()

	case SetSoundMsg:
		m.sound = msg.Enabled
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snapshot.Exercises)-1 {
			m.cursor++
		}

	case " ":
		if m.cursor < len(m.snapshot.Exercises) {
			m.tracker.ToggleExercise(m.snapshot.Exercises[m.cursor].ID)
			m.refresh()
		}

	case "enter":
		// Start a countdown for the selected exercise. One at a time;
		// completed exercises have nothing to count down for.
		if m.active == nil && m.cursor < len(m.snapshot.Exercises) {
			ex := m.snapshot.Exercises[m.cursor]
			if !ex.Completed {
				m.active = &countdown{exerciseID: ex.ID, remaining: ex.Seconds}
				return m, secondTick()
			}
		}

	case "esc":
		m.active = nil

	case "v":
		if err := m.tracker.ValidateDay(); err != nil {
			m.pushToast(tracker.NoticeError, rejectionText(err))
		}
		m.refresh()

	case "t":
		m.tracker.CompleteTired(tracker.TiredPlank)
		m.refresh()

	case "s":
		m.tracker.CompleteTired(tracker.TiredSquats)
		m.refresh()

	case "r":
		m.tracker.Reconcile()
		m.refresh()
	}

	m.pruneToasts()
	return m, nil
}

func (m Model) handleCountdownTick() (tea.Model, tea.Cmd) {
	m.pruneToasts()
	if m.active == nil {
		return m, nil
	}

	m.active.remaining--
	if m.active.remaining > 0 {
		return m, secondTick()
	}

	// Timer done: completion goes through the engine's toggle path so
	// counters and achievements stay consistent.
	id := m.active.exerciseID
	m.active = nil
	m.tracker.ToggleExercise(id)
	m.refresh()
	m.pushToast(tracker.NoticeSuccess, "Exercise complete!")

	var bell tea.Cmd
	if m.sound {
		bell = tea.Println("\a")
	}
	return m, bell
}

// rejectionText maps engine rejections to the session's wording.
func rejectionText(err error) string {
	switch {
	case err == nil:
		return ""
	case strings.Contains(err.Error(), tracker.ErrAlreadyValidated.Error()):
		return "Today is already validated"
	case strings.Contains(err.Error(), tracker.ErrNoExercisesDone.Error()):
		return "Do at least one exercise first!"
	default:
		return err.Error()
	}
}

// =============================================================================
// View
// =============================================================================

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B35"))
	streakStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B35"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7A89"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	bannerStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B35")).
			Padding(0, 1)
)

func toastStyle(kind tracker.NoticeKind) lipgloss.Style {
	switch kind {
	case tracker.NoticeSuccess:
		return successStyle
	case tracker.NoticeWarning:
		return warningStyle
	case tracker.NoticeError:
		return errorStyle
	default:
		return mutedStyle
	}
}

// View renders the session.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	s := m.snapshot

	b.WriteString(titleStyle.Render("🔥 No Zero Day"))
	b.WriteString("  ")
	b.WriteString(streakStyle.Render(fmt.Sprintf("%d day streak", s.Streak)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  (best %d)", s.BestStreak)))
	b.WriteString("\n\n")

	for i, ex := range s.Exercises {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		line := fmt.Sprintf("%s %s %s  %s", check, ex.Icon, ex.Name, mutedStyle.Render(ex.Duration))
		if ex.Completed {
			line = doneStyle.Render(fmt.Sprintf("[x] %s %s  %s", ex.Icon, ex.Name, ex.Duration))
		}
		b.WriteString(cursor)
		b.WriteString(line)
		if m.active != nil && m.active.exerciseID == ex.ID {
			b.WriteString(cursorStyle.Render(fmt.Sprintf("  ⏱ %ds", m.active.remaining)))
		}
		b.WriteString("\n")
	}

	done := s.CompletedExercises
	total := len(s.Exercises)
	percent := 0.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	if percent > 1 {
		percent = 1
	}
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString(fmt.Sprintf(" %d/%d", done, total))
	b.WriteString("\n")

	if s.TodayCompleted {
		b.WriteString(successStyle.Render("\n✅ Day validated. See you tomorrow!\n"))
	}

	if m.banner != "" {
		b.WriteString("\n")
		b.WriteString(bannerStyle.Render(m.banner))
		b.WriteString("\n")
	}

	for _, tst := range m.toasts {
		b.WriteString("\n")
		b.WriteString(toastStyle(tst.kind).Render(tst.message))
	}
	if len(m.toasts) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render(
		"\nspace toggle · enter timer · v validate · t tired plank · s quick squats · q quit\n"))
	return b.String()
}
