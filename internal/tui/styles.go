// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorFailure = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(colorPrimary).
			Padding(0, 1)

	styleStatus    = lipgloss.NewStyle().Foreground(colorSuccess)
	styleStatusErr = lipgloss.NewStyle().Foreground(colorFailure)
	styleMuted     = lipgloss.NewStyle().Foreground(colorMuted)
	styleSelected  = lipgloss.NewStyle().Background(lipgloss.Color("#1F2937"))
	styleBold      = lipgloss.NewStyle().Bold(true)
)
