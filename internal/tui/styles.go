package tui

import "github.com/charmbracelet/lipgloss"

// Color constants.
const (
	primaryColor   = "#7C3AED" // Purple
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

	// CardStyle renders an unselected mode card.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(dimColor)).
			Padding(1, 2).
			Width(26)

	// CardSelectedStyle highlights the focused mode card.
	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(primaryColor)).
				Padding(1, 2).
				Width(26).
				Bold(true)

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

	// UserMsgStyle renders user chat turns right-aligned in primary color.
	UserMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// BotMsgStyle renders bot chat turns.
	BotMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	// CodeStyle renders generated query blocks.
	CodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor)).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1)

	// StatusBarStyle provides styling for the status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)
)

// File status icon variables (pre-rendered strings).
var (
	// FileIconDone indicates a fully uploaded file.
	FileIconDone = SuccessStyle.Render("✓")

	// FileIconUploading indicates a file currently in flight.
	FileIconUploading = WarningStyle.Render("▸")

	// FileIconQueued indicates a file waiting to upload.
	FileIconQueued = DimStyle.Render("○")

	// FileIconFailed indicates a rejected file.
	FileIconFailed = ErrorStyle.Render("✗")
)
