// Package ui renders computed timelines, filter statistics, and
// critical-path analysis as styled text for the CLI host. The engine
// only produces plain data; everything visual lives here.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorCritical = lipgloss.Color("#FF5252") // Red — critical path
	colorDone     = lipgloss.Color("#00E676") // Green — completed
	colorAccent   = lipgloss.Color("#FFD700") // Gold — milestones/warnings
	colorPrimary  = lipgloss.Color("#00BFFF") // Cyan — headers
	colorMuted    = lipgloss.Color("#636363") // Gray — de-emphasized
)

var (
	styleHeader = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleCritical = lipgloss.NewStyle().
			Foreground(colorCritical).
			Bold(true)

	styleDone = lipgloss.NewStyle().
			Foreground(colorDone)

	styleMilestone = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Severity icons used in risk and cycle reports.
const (
	iconCritical = "✗"
	iconWarn     = "⚠"
	iconDone     = "✓"
	iconDot      = "·"
)
