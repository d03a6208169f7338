package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles for board output.
type Theme struct {
	plain bool

	// Board cells
	EmptyCell lipgloss.Style
	Building  lipgloss.Style
	Unit      lipgloss.Style
	Available lipgloss.Style
	Blocked   lipgloss.Style
	Path      lipgloss.Style
	Endpoint  lipgloss.Style

	// Text
	Title lipgloss.Style
	Label lipgloss.Style
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Dim   lipgloss.Style
}

// DefaultTheme returns the colour theme.
func DefaultTheme() Theme {
	return Theme{
		EmptyCell: lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		Building:  lipgloss.NewStyle().Foreground(lipgloss.Color("135")), // Medium purple
		Unit:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // Bright cyan
		Available: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),  // Lime green
		Blocked:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // Red
		Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")), // Bright yellow
		Endpoint:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),

		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Pass:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// PlainTheme returns a theme that renders text unchanged.
func PlainTheme() Theme {
	th := DefaultTheme()
	th.plain = true
	return th
}

// currentTheme picks the theme for --color.
func currentTheme() Theme {
	if useColor() {
		return DefaultTheme()
	}
	return PlainTheme()
}

// Paint renders text with s unless the theme is plain.
func (t Theme) Paint(s lipgloss.Style, text string) string {
	if t.plain {
		return text
	}
	return s.Render(text)
}
