package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/lipgloss"

	"github.com/datachat-dev/datachat/internal/connect"
	"github.com/datachat-dev/datachat/internal/tui"
)

// SubmitMongoMsg is sent when the MongoDB connection form passes local
// validation. Schema analysis itself runs when the chat opens.
type SubmitMongoMsg struct {
	Conn connect.MongoConnection
}

const mongoFieldCount = 4

// NoSQLSetupModel is the MongoDB connection form. Everything is checked
// locally before any network call: URI scheme, required names and the
// optional sample document's JSON shape.
type NoSQLSetupModel struct {
	inputs  [3]textinput.Model // uri, database, collection
	sample  textarea.Model
	focused int
	errText string
	width   int
	height  int
}

// NewNoSQLSetupModel creates the form with the URI field focused.
func NewNoSQLSetupModel(width, height int) NoSQLSetupModel {
	placeholders := [3]string{
		"mongodb://localhost:27017 or mongodb+srv://...",
		"Database name",
		"Collection name",
	}

	var inputs [3]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 512
		ti.Width = 52
		inputs[i] = ti
	}
	inputs[0].Focus()

	ta := textarea.New()
	ta.Placeholder = `Optional sample document, e.g. {"name": "...", "total": 0}`
	ta.CharLimit = 4000
	ta.SetWidth(52)
	ta.SetHeight(4)
	ta.ShowLineNumbers = false

	return NoSQLSetupModel{
		inputs: inputs,
		sample: ta,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the form.
func (m NoSQLSetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m NoSQLSetupModel) Update(msg tea.Msg) (NoSQLSetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return SetupCancelledMsg{} }

		case tui.KeyTab:
			m.focused = (m.focused + 1) % mongoFieldCount
			return m.refocus()

		case "shift+tab":
			m.focused = (m.focused + mongoFieldCount - 1) % mongoFieldCount
			return m.refocus()

		case tui.KeyEnter:
			// Enter inside the sample textarea inserts a newline.
			if m.focused != 3 {
				return m.submit()
			}

		case "ctrl+s":
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	if m.focused == 3 {
		m.sample, cmd = m.sample.Update(msg)
	} else {
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	}
	return m, cmd
}

func (m NoSQLSetupModel) refocus() (NoSQLSetupModel, tea.Cmd) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.sample.Blur()
	if m.focused == 3 {
		m.sample.Focus()
	} else {
		m.inputs[m.focused].Focus()
	}
	return m, textinput.Blink
}

// validate runs the local checks and returns a user-facing hint for the
// first failure, empty when the form is submittable.
func (m NoSQLSetupModel) validate() string {
	uri := strings.TrimSpace(m.inputs[0].Value())
	database := strings.TrimSpace(m.inputs[1].Value())
	collection := strings.TrimSpace(m.inputs[2].Value())

	if uri == "" || database == "" || collection == "" {
		return "Connection string, database and collection are required."
	}
	_, err := connect.ValidateMongo(uri, database, collection, m.sample.Value())
	switch {
	case errors.Is(err, connect.ErrBadMongoURI):
		return "Connection string must start with mongodb:// or mongodb+srv://."
	case errors.Is(err, connect.ErrBadSampleDocument):
		return "Sample document must be a JSON object."
	case err != nil:
		return err.Error()
	}
	return ""
}

func (m NoSQLSetupModel) submit() (NoSQLSetupModel, tea.Cmd) {
	if hint := m.validate(); hint != "" {
		m.errText = hint
		return m, nil
	}

	doc, err := connect.ParseSampleDocument(m.sample.Value())
	if err != nil {
		m.errText = "Sample document must be a JSON object."
		return m, nil
	}

	conn := connect.MongoConnection{
		ConnectionString: strings.TrimSpace(m.inputs[0].Value()),
		DatabaseName:     strings.TrimSpace(m.inputs[1].Value()),
		CollectionName:   strings.TrimSpace(m.inputs[2].Value()),
		SampleDocument:   doc,
	}
	m.errText = ""
	return m, func() tea.Msg {
		return SubmitMongoMsg{Conn: conn}
	}
}

// View renders the form.
func (m NoSQLSetupModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Connect MongoDB"))
	b.WriteString("\n\n")

	labels := [3]string{"URI", "Database", "Collection"}
	for i := range m.inputs {
		marker := "  "
		if i == m.focused {
			marker = tui.SelectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-11s %s\n", marker, labels[i], m.inputs[i].View()))
	}

	marker := "  "
	if m.focused == 3 {
		marker = tui.SelectedStyle.Render("> ")
	}
	b.WriteString(marker + "Sample document (optional):\n")
	b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(m.sample.View()))
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errText))
	} else if m.validate() == "" {
		b.WriteString(tui.SuccessStyle.Render("Ready to connect."))
	} else {
		b.WriteString(tui.DimStyle.Render("Fill in the connection details."))
	}
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Enter: Connect       Tab: Next field       Esc: Back"))

	return tui.BoxStyle.Render(b.String())
}
