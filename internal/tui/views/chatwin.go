package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datachat-dev/datachat/internal/chat"
	"github.com/datachat-dev/datachat/internal/session"
	"github.com/datachat-dev/datachat/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SendChatMsg is sent when the user submits a chat message.
type SendChatMsg struct {
	Content string
}

// ExportChatMsg asks for the transcript to be written to disk.
type ExportChatMsg struct{}

// ClearChatMsg asks for the conversation to be cleared.
type ClearChatMsg struct{}

// CloseChatMsg signals that the chat should close back to the home screen.
type CloseChatMsg struct{}

// ============================================================================
// ChatModel
// ============================================================================

// ChatModel is the chat window. It renders from the mode's engine and emits
// intent messages; all engine mutation happens in the application layer.
type ChatModel struct {
	engine    chat.Engine
	sess      session.Session
	title     string
	minimized bool

	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	exportNote string
	width      int
	height     int
}

// NewChatModel creates the chat window over an engine.
func NewChatModel(engine chat.Engine, sess session.Session, width, height int) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask a question about your data..."
	ti.CharLimit = 2000
	ti.Width = width - 12
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	vp := viewport.New(chatViewportWidth(width), chatViewportHeight(height))

	m := ChatModel{
		engine:   engine,
		sess:     sess,
		title:    chatTitle(sess),
		input:    ti,
		viewport: vp,
		spinner:  sp,
		width:    width,
		height:   height,
	}
	m.Refresh()
	return m
}

func chatTitle(sess session.Session) string {
	switch sess.Kind {
	case session.KindSQL:
		if sess.SQL != nil && sess.SQL.DatabaseName != "" {
			return "SQL Chat — " + sess.SQL.DatabaseName
		}
		return "SQL Chat"
	case session.KindNoSQL:
		if sess.NoSQL != nil && sess.NoSQL.CollectionName != "" {
			return "MongoDB Chat — " + sess.NoSQL.CollectionName
		}
		return "MongoDB Chat"
	case session.KindDocument:
		return "Document Chat"
	default:
		return "Chat"
	}
}

func chatViewportWidth(width int) int {
	w := width - 8
	if w < 20 {
		w = 20
	}
	return w
}

func chatViewportHeight(height int) int {
	h := height - 10
	if h < 5 {
		h = 5
	}
	return h
}

// Init returns the initial command for the chat window.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Refresh re-renders the transcript from the engine and scrolls to the
// bottom. The application calls it after every engine mutation.
func (m *ChatModel) Refresh() {
	m.viewport.SetContent(renderTranscript(m.engine.Messages(), m.viewport.Width))
	m.viewport.GotoBottom()
}

// Minimized reports whether the window is collapsed to its title bar.
func (m ChatModel) Minimized() bool {
	return m.minimized
}

// Update handles messages for the chat window.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := tui.DefaultKeyMap
		switch {
		case key.Matches(msg, keys.Escape):
			return m, func() tea.Msg { return CloseChatMsg{} }

		case key.Matches(msg, keys.Minimize):
			m.minimized = !m.minimized
			return m, nil

		case key.Matches(msg, keys.Export):
			if len(m.engine.Messages()) > 0 {
				return m, func() tea.Msg { return ExportChatMsg{} }
			}
			return m, nil

		case key.Matches(msg, keys.Clear):
			return m, func() tea.Msg { return ClearChatMsg{} }

		case key.Matches(msg, keys.Enter):
			// Input is disabled until setup completed and while a reply is
			// pending; the engine re-checks both anyway.
			if m.sess.SetupRequired() || m.engine.Typing() {
				return m, nil
			}
			content := strings.TrimSpace(m.input.Value())
			if content == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.exportNote = ""
			return m, func() tea.Msg {
				return SendChatMsg{Content: content}
			}

		}

		// Plain letters belong to the input; only dedicated scroll keys
		// reach the viewport.
		switch msg.String() {
		case tui.KeyUp, tui.KeyDown, "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 12
		m.viewport.Width = chatViewportWidth(msg.Width)
		m.viewport.Height = chatViewportHeight(msg.Height)
		m.Refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tui.ExportWrittenMsg:
		if msg.Err != nil {
			m.exportNote = "Export failed: " + msg.Err.Error()
		} else {
			m.exportNote = "Exported to " + msg.Path
		}
		return m, nil
	}

	if !m.sess.SetupRequired() && !m.minimized {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the chat window.
func (m ChatModel) View() string {
	title := tui.TitleStyle.Render(m.title)

	if m.minimized {
		bar := title + tui.DimStyle.Render("   (minimized — Ctrl+N to restore, Esc to close)")
		return tui.StatusBarStyle.Width(m.width - 2).Render(bar)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	if m.sess.SetupRequired() {
		b.WriteString(tui.WarningStyle.Render("Setup incomplete — finish connecting your data source to start chatting."))
	} else {
		b.WriteString(tui.SuccessStyle.Render("● ") + tui.DimStyle.Render(m.statusLine()))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.engine.Typing() {
		b.WriteString(m.spinner.View() + tui.DimStyle.Render(" thinking..."))
	} else if errText := m.engine.Err(); errText != "" {
		b.WriteString(tui.ErrorStyle.Render(errText))
	} else if m.exportNote != "" {
		b.WriteString(tui.SuccessStyle.Render(m.exportNote))
	}
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Enter: Send   Ctrl+E: Export   Ctrl+L: Clear   Ctrl+N: Minimize   Esc: Close"))

	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}

// statusLine describes the connected data source for the chat header.
func (m ChatModel) statusLine() string {
	switch m.sess.Kind {
	case session.KindSQL:
		if m.sess.SQL != nil {
			return "Connected to " + m.sess.SQL.DatabaseName
		}
	case session.KindNoSQL:
		if m.sess.NoSQL != nil {
			return "Connected to " + m.sess.NoSQL.DatabaseName + "." + m.sess.NoSQL.CollectionName
		}
	case session.KindDocument:
		n := len(m.sess.DocumentIDs())
		noun := "documents"
		if n == 1 {
			noun = "document"
		}
		return fmt.Sprintf("%d %s loaded", n, noun)
	}
	return "Connected"
}

// renderTranscript formats the conversation for the viewport.
func renderTranscript(messages []session.Message, width int) string {
	if len(messages) == 0 {
		return tui.DimStyle.Render("No messages yet.")
	}

	wrap := lipgloss.NewStyle().Width(width)
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch {
		case msg.Role == session.RoleUser:
			b.WriteString(tui.UserMsgStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(msg.Content))
		case msg.IsCode:
			b.WriteString(tui.SuccessStyle.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(tui.CodeStyle.Render(msg.Content))
		default:
			b.WriteString(tui.SuccessStyle.Render("Assistant"))
			b.WriteString("\n")
			b.WriteString(wrap.Render(tui.BotMsgStyle.Render(msg.Content)))
		}
	}
	return b.String()
}
