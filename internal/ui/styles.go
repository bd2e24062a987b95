package ui

import (
	"fmt"

	"github.com/alfredjeanlab/teamboard/internal/model"
)

// ANSI256 color codes.
const (
	colorAccent = 74  // blue
	colorMuted  = 245 // medium gray
	colorGreen  = 71
	colorYellow = 179
	colorRed    = 167
)

var noColor bool

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// RenderDanger returns s in red, for blocked markers and failures.
func RenderDanger(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorRed, s)
}

// RenderStatus returns the status string colored by its meaning: green for
// done, yellow for in progress, red for blocked, gray otherwise.
func RenderStatus(s model.Status) string {
	if noColor {
		return string(s)
	}
	var color int
	switch s {
	case model.StatusDone:
		color = colorGreen
	case model.StatusInProgress:
		color = colorYellow
	case model.StatusBlocked:
		color = colorRed
	default:
		color = colorMuted
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", color, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
