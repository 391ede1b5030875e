// Package views provides the TUI view components.
package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datachat-dev/datachat/internal/session"
	"github.com/datachat-dev/datachat/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// ModeSelectedMsg is sent when the user picks an analysis mode card.
type ModeSelectedMsg struct {
	Kind session.Kind
}

// ============================================================================
// HomeModel
// ============================================================================

type modeCard struct {
	kind        session.Kind
	title       string
	description string
}

var modeCards = []modeCard{
	{
		kind:        session.KindSQL,
		title:       "SQL Database",
		description: "Connect a relational database and query it in plain English.",
	},
	{
		kind:        session.KindNoSQL,
		title:       "NoSQL Database",
		description: "Connect a MongoDB collection and explore it conversationally.",
	},
	{
		kind:        session.KindDocument,
		title:       "Documents",
		description: "Upload files and ask questions about their contents.",
	},
}

// HomeModel is the view model for the landing screen.
type HomeModel struct {
	selected int
	health   tui.HealthStatus
	service  string
	baseURL  string
	width    int
	height   int
}

// NewHomeModel creates a new HomeModel.
func NewHomeModel(width, height int) HomeModel {
	return HomeModel{
		health: tui.HealthChecking,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the home view.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the home view.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyLeft, "h", "shift+tab":
			if m.selected > 0 {
				m.selected--
			}
		case tui.KeyRight, "l", tui.KeyTab:
			if m.selected < len(modeCards)-1 {
				m.selected++
			}
		case tui.KeyEnter:
			kind := modeCards[m.selected].kind
			return m, func() tea.Msg {
				return ModeSelectedMsg{Kind: kind}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tui.HealthCheckedMsg:
		m.baseURL = msg.BaseURL
		if msg.OK {
			m.health = tui.HealthOK
			m.service = msg.Service
		} else {
			m.health = tui.HealthDown
		}
	}

	return m, nil
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("DataChat"))
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Chat with your data in natural language"))
	b.WriteString("\n\n")

	cards := make([]string, len(modeCards))
	for i, card := range modeCards {
		body := tui.SelectedStyle.Render(card.title) + "\n\n" + card.description
		if i == m.selected {
			cards[i] = tui.CardSelectedStyle.Render(body)
		} else {
			cards[i] = tui.CardStyle.Render(body)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	b.WriteString(m.healthLine())
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("←/→: Choose mode       Enter: Start       Ctrl+C: Exit"))

	return b.String()
}

func (m HomeModel) healthLine() string {
	switch m.health {
	case tui.HealthOK:
		label := "Backend: online"
		if m.service != "" {
			label = "Backend: online (" + m.service + ")"
		}
		return tui.SuccessStyle.Render("● ") + label
	case tui.HealthDown:
		label := "Backend: unreachable"
		if m.baseURL != "" {
			label += " at " + m.baseURL
		}
		return tui.ErrorStyle.Render("● ") + label
	default:
		return tui.DimStyle.Render("● Checking backend...")
	}
}
