// Copyright 2026 The Tablescout Authors
// SPDX-License-Identifier: Apache-2.0

package diningui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// spinnerTickMsg advances the busy spinner. While any request is in
// flight, each tick schedules the next one.
type spinnerTickMsg struct{}

// noticeFadeMsg clears the transient status notice. Seq identifies
// which notice scheduled the fade, so an old fade never clears a
// newer notice.
type noticeFadeMsg struct {
	seq int
}

const (
	spinnerInterval = 120 * time.Millisecond
	noticeFadeDelay = 4 * time.Second
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// busy reports whether any backend request is in flight.
func (model Model) busy() bool {
	return model.submitting || model.fetching || model.historyLoading
}

// startSpinner begins the spinner tick loop if it is not already
// running.
func (model *Model) startSpinner() tea.Cmd {
	if model.tickRunning {
		return nil
	}
	model.tickRunning = true
	return spinnerTick()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// setNotice shows a transient status-bar notice and schedules its
// fade.
func (model *Model) setNotice(text string, isError bool) tea.Cmd {
	model.notice = text
	model.noticeIsError = isError
	model.noticeSeq++
	seq := model.noticeSeq
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{seq: seq}
	})
}

// renderStatusBar renders the bottom line: key hints for the current
// context, then busy, notice, and log indicators.
func (model Model) renderStatusBar() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var hints string
	switch model.focusRegion {
	case FocusInput:
		hints = " type to search  Enter select  Esc close/blur  C-c quit"
	case FocusFilter:
		hints = " type to filter  Enter keep  Esc clear  C-c quit"
	case FocusDetail:
		hints = " j/k scroll  C-u/C-d page  Esc back  q quit"
	case FocusConfirm:
		hints = ""
	default:
		switch model.activeTab {
		case TabLocation:
			hints = " q quit  1-4 tabs  Enter edit  d clear city  ? help"
		case TabRestaurants:
			hints = " q quit  1-4 tabs  j/k slots  Enter edit  d clear  C-l clear all  ? help"
		case TabResults:
			hints = " q quit  1-4 tabs  j/k move  Enter detail  s submit  r refetch  / filter  ? help"
		case TabHistory:
			hints = " q quit  1-4 tabs  j/k move  Enter load  r reload  ? help"
		}
	}

	bar := style.Render(hints)

	if model.focusRegion == FocusConfirm {
		confirmStyle := lipgloss.NewStyle().
			Foreground(model.theme.WarningColor).
			Bold(true)
		bar += confirmStyle.Render(" clear the whole selection? (y/n)")
	}

	if model.busy() {
		busyStyle := lipgloss.NewStyle().
			Foreground(model.theme.LoadingColor).
			Bold(true)
		bar += "  " + busyStyle.Render(spinnerFrames[model.spinnerFrame]+" "+model.busyLabel())
	}

	if model.notice != "" {
		noticeColor := model.theme.SuccessColor
		if model.noticeIsError {
			noticeColor = model.theme.ErrorColor
		}
		noticeStyle := lipgloss.NewStyle().Foreground(noticeColor).Bold(true)
		bar += "  " + noticeStyle.Render(model.notice)
	}

	if model.logLine != "" {
		logColor := model.theme.WarningColor
		if model.logLevel >= slog.LevelError {
			logColor = model.theme.ErrorColor
		}
		logStyle := lipgloss.NewStyle().Foreground(logColor)
		bar += "  " + logStyle.Render(model.logLine)
	}

	return bar
}

// busyLabel names the request currently in flight.
func (model Model) busyLabel() string {
	switch {
	case model.submitting:
		return "submitting"
	case model.fetching:
		return "fetching"
	case model.historyLoading:
		return "loading history"
	default:
		return "working"
	}
}
