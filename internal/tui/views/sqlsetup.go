package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datachat-dev/datachat/internal/connect"
	"github.com/datachat-dev/datachat/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// SubmitCredentialsMsg is sent when the credentials form is submitted.
type SubmitCredentialsMsg struct {
	Conn connect.SQLConnection
}

// SubmitCSVMsg is sent when a data file path is chosen.
type SubmitCSVMsg struct {
	Path string
}

// SubmitPythonMsg is sent when a script path is chosen.
type SubmitPythonMsg struct {
	Path string
}

// SQLSetupDoneMsg is sent when all three steps completed and the chat can
// open.
type SQLSetupDoneMsg struct {
	Conn connect.SQLConnection
}

// SetupCancelledMsg is sent when the user backs out of a setup wizard.
type SetupCancelledMsg struct{}

// ============================================================================
// SQLSetupModel
// ============================================================================

// sqlStep is the wizard position. Steps unlock strictly in order; the
// upload id from step one gates the file uploads.
type sqlStep int

const (
	stepCredentials sqlStep = iota
	stepCSV
	stepPython
)

const credFieldCount = 4

// SQLSetupModel is the three-step SQL connection wizard.
type SQLSetupModel struct {
	step     sqlStep
	inputs   [credFieldCount]textinput.Model // host, database, user, password
	focused  int
	fileIn   textinput.Model
	spinner  spinner.Model
	conn     connect.SQLConnection
	busy     bool
	errText  string
	lastNote string
	width    int
	height   int
}

// NewSQLSetupModel creates the wizard at the credentials step.
func NewSQLSetupModel(width, height int) SQLSetupModel {
	labels := [credFieldCount]string{"Database host", "Database name", "Username", "Password"}

	var inputs [credFieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 256
		ti.Width = 48
		inputs[i] = ti
	}
	inputs[3].EchoMode = textinput.EchoPassword
	inputs[3].EchoCharacter = '*'
	inputs[0].Focus()

	fi := textinput.New()
	fi.Placeholder = "Path to file"
	fi.CharLimit = 1024
	fi.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))

	return SQLSetupModel{
		inputs:  inputs,
		fileIn:  fi,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command for the wizard.
func (m SQLSetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Conn returns the connection assembled so far.
func (m SQLSetupModel) Conn() connect.SQLConnection {
	return m.conn
}

// Update handles messages for the wizard.
func (m SQLSetupModel) Update(msg tea.Msg) (SQLSetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tui.CredentialsUploadedMsg:
		m.busy = false
		m.conn.UploadID = msg.UploadID
		m.lastNote = "Credentials accepted."
		m.step = stepCSV
		m.fileIn.SetValue("")
		m.fileIn.Focus()
		return m, textinput.Blink

	case tui.CSVUploadedMsg:
		m.busy = false
		m.lastNote = "Data file uploaded."
		m.step = stepPython
		m.fileIn.SetValue("")
		m.fileIn.Focus()
		return m, textinput.Blink

	case tui.PythonUploadedMsg:
		m.busy = false
		conn := m.conn
		return m, func() tea.Msg {
			return SQLSetupDoneMsg{Conn: conn}
		}

	case tui.ErrorMsg:
		m.busy = false
		m.errText = msg.Err.Error()
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m SQLSetupModel) handleKey(msg tea.KeyMsg) (SQLSetupModel, tea.Cmd) {
	// A request in flight pins the wizard; Esc before that walks back.
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case tui.KeyEsc:
		switch m.step {
		case stepCredentials:
			return m, func() tea.Msg { return SetupCancelledMsg{} }
		case stepCSV:
			m.step = stepCredentials
			m.errText = ""
			m.inputs[m.focused].Focus()
			return m, textinput.Blink
		case stepPython:
			m.step = stepCSV
			m.errText = ""
			m.fileIn.Focus()
			return m, textinput.Blink
		}

	case tui.KeyTab, tui.KeyDown:
		if m.step == stepCredentials {
			m.focused = (m.focused + 1) % credFieldCount
			return m.refocusCredentials()
		}

	case "shift+tab", tui.KeyUp:
		if m.step == stepCredentials {
			m.focused = (m.focused + credFieldCount - 1) % credFieldCount
			return m.refocusCredentials()
		}

	case tui.KeyEnter:
		return m.submitStep()
	}

	return m.updateInputs(msg)
}

func (m SQLSetupModel) refocusCredentials() (SQLSetupModel, tea.Cmd) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[m.focused].Focus()
	return m, textinput.Blink
}

// submitStep validates the current step locally and emits its submission
// message for the application to act on.
func (m SQLSetupModel) submitStep() (SQLSetupModel, tea.Cmd) {
	switch m.step {
	case stepCredentials:
		host := strings.TrimSpace(m.inputs[0].Value())
		database := strings.TrimSpace(m.inputs[1].Value())
		user := strings.TrimSpace(m.inputs[2].Value())
		password := m.inputs[3].Value()
		if err := connect.ValidateCredentials(host, database, user, password); err != nil {
			m.errText = "All fields are required."
			return m, nil
		}
		m.conn = connect.SQLConnection{
			Host:         host,
			DatabaseName: database,
			User:         user,
			Password:     password,
		}
		m.busy = true
		m.errText = ""
		conn := m.conn
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return SubmitCredentialsMsg{Conn: conn}
		})

	case stepCSV:
		path := strings.TrimSpace(m.fileIn.Value())
		if path == "" {
			m.errText = "Enter the path to a data file."
			return m, nil
		}
		if !connect.IsCSVFile(path) {
			m.errText = "Expected a .csv file."
			return m, nil
		}
		m.busy = true
		m.errText = ""
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return SubmitCSVMsg{Path: path}
		})

	case stepPython:
		path := strings.TrimSpace(m.fileIn.Value())
		if path == "" {
			m.errText = "Enter the path to a Python script."
			return m, nil
		}
		if !connect.IsPythonFile(path) {
			m.errText = "Expected a .py file."
			return m, nil
		}
		m.busy = true
		m.errText = ""
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return SubmitPythonMsg{Path: path}
		})
	}

	return m, nil
}

func (m SQLSetupModel) updateInputs(msg tea.Msg) (SQLSetupModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.step == stepCredentials {
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	} else {
		m.fileIn, cmd = m.fileIn.Update(msg)
	}
	return m, cmd
}

// View renders the wizard.
func (m SQLSetupModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Connect SQL Database"))
	b.WriteString("\n")
	b.WriteString(m.stepLine())
	b.WriteString("\n\n")

	switch m.step {
	case stepCredentials:
		labels := [credFieldCount]string{"Host", "Database", "User", "Password"}
		for i := range m.inputs {
			marker := "  "
			if i == m.focused {
				marker = tui.SelectedStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("%s%-10s %s\n", marker, labels[i], m.inputs[i].View()))
		}

	case stepCSV:
		b.WriteString("Upload the CSV data file to analyze:\n\n")
		b.WriteString("  " + m.fileIn.View() + "\n")

	case stepPython:
		b.WriteString("Upload the Python analysis script:\n\n")
		b.WriteString("  " + m.fileIn.View() + "\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.spinner.View() + " Uploading...")
	} else if m.errText != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	} else if m.lastNote != "" {
		b.WriteString(tui.SuccessStyle.Render(m.lastNote))
	}
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Enter: Submit       Esc: Back       Ctrl+C: Exit"))

	return tui.BoxStyle.Render(b.String())
}

func (m SQLSetupModel) stepLine() string {
	names := []string{"Credentials", "Data file", "Script"}
	parts := make([]string, len(names))
	for i, name := range names {
		label := fmt.Sprintf("%d. %s", i+1, name)
		switch {
		case sqlStep(i) == m.step:
			parts[i] = tui.SelectedStyle.Render(label)
		case sqlStep(i) < m.step:
			parts[i] = tui.SuccessStyle.Render(label)
		default:
			parts[i] = tui.DimStyle.Render(label)
		}
	}
	return strings.Join(parts, tui.DimStyle.Render("  →  "))
}
