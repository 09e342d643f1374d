// Package theme holds the terminal styles used by adaptly's CLI output.
package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#EAB308") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(18)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(Warning)

	Highlight = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Card frames a block of output.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// Field renders an aligned "label  value" line.
func Field(label string, value any) string {
	return Label.Render(label) + Body.Render(fmt.Sprint(value))
}

// Bar renders a horizontal progress bar for percent in [0, 1].
func Bar(percent float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * percent)
	filled = max(0, min(filled, width))

	bar := lipgloss.NewStyle().Background(Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(Border).Render(strings.Repeat(" ", width-filled))
	return bar + lipgloss.NewStyle().Foreground(TextDim).Render(fmt.Sprintf("  %d%%", int(percent*100)))
}

// Rarity styles a gem rarity name.
func Rarity(rarity string) string {
	style := Body
	switch rarity {
	case "rare":
		style = lipgloss.NewStyle().Foreground(Secondary)
	case "epic":
		style = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	case "legendary":
		style = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	}
	return style.Render(rarity)
}

// Emotion styles an emotion name by how the learner is doing.
func Emotion(name string) string {
	switch name {
	case "engaged", "confident":
		return Good.Render(name)
	case "frustrated", "struggling":
		return Bad.Render(name)
	case "bored", "tired":
		return Warn.Render(name)
	default:
		return Body.Render(name)
	}
}

// Status styles a review status. Padding around status is kept.
func Status(status string) string {
	switch strings.TrimSpace(status) {
	case "overdue":
		return Bad.Render(status)
	case "due":
		return Warn.Render(status)
	default:
		return Hint.Render(status)
	}
}
