// Package cli provides styled terminal output and line-oriented prompting.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (green).
	PrimaryColor = lipgloss.Color("#2E8B57")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3") // Light teal
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))

	// PromptStyle is used for user prompts.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	RiceIcon    = "🌾"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the rice icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(RiceIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render(title),
		content,
	)

	return BoxStyle.Render(boxContent)
}
