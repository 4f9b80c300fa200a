package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type Styles struct {
	Header    func(string) string
	Section   func(string) string
	Arrow     func(string) string
	Label     func(string) string
	Normal    func(string) string
	Secondary func(string) string
	Success   func(string) string
	Failure   func(string) string
	Warning   func(string) string
}

var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Bold(true)
	arrowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("251"))
	normalStyle    = lipgloss.NewStyle()
	secondaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func DefaultStyles() Styles {
	return Styles{
		Header:    func(s string) string { return headerStyle.Render(s) },
		Section:   func(s string) string { return sectionStyle.Render(s) },
		Arrow:     func(s string) string { return arrowStyle.Render(s) },
		Label:     func(s string) string { return labelStyle.Render(s) },
		Normal:    func(s string) string { return normalStyle.Render(s) },
		Secondary: func(s string) string { return secondaryStyle.Render(s) },
		Success:   func(s string) string { return successStyle.Render(s) },
		Failure:   func(s string) string { return failureStyle.Render(s) },
		Warning:   func(s string) string { return warningStyle.Render(s) },
	}
}

// PlainStyles renders everything unstyled. Used by tests and non-color sinks.
func PlainStyles() Styles {
	identity := func(s string) string { return s }
	return Styles{
		Header:    identity,
		Section:   identity,
		Arrow:     identity,
		Label:     identity,
		Normal:    identity,
		Secondary: identity,
		Success:   identity,
		Failure:   identity,
		Warning:   identity,
	}
}

func PadOrTrim(value string, width int) string {
	if width <= 0 {
		return value
	}
	w := runewidth.StringWidth(value)
	if w == width {
		return value
	}
	if w < width {
		return value + strings.Repeat(" ", width-w)
	}
	return runewidth.Truncate(value, width, "…")
}
