package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the dashboard palette.
const (
	primaryColor   = "#E8590C" // Orange
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// SpinnerStyle colors the busy spinner.
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor))

	// StatusBarStyle provides styling for the status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)

	// ActiveTabStyle renders the active section tab.
	ActiveTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(primaryColor)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2)

	// InactiveTabStyle renders inactive section tabs.
	InactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#374151")).
				Foreground(lipgloss.Color("#9CA3AF")).
				Padding(0, 2)
)

// Order status icon variables (pre-rendered strings).
var (
	// StatusActive marks orders still needing kitchen attention.
	StatusActive = WarningStyle.Render("▸")

	// StatusDone marks completed orders.
	StatusDone = SuccessStyle.Render("✓")

	// StatusCancelled marks cancelled orders.
	StatusCancelled = ErrorStyle.Render("✗")

	// StatusArchived marks archived orders.
	StatusArchived = DimStyle.Render("⊘")
)
