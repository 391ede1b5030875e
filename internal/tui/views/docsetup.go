package views

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/tui"
)

// ============================================================================
// Message Types
// ============================================================================

// StartDocUploadMsg is sent when the queued files should be uploaded.
type StartDocUploadMsg struct {
	Paths []string
}

// RemoveUploadedDocMsg asks for a server-side delete of one uploaded file.
type RemoveUploadedDocMsg struct {
	FileID string
}

// DocumentsReadyMsg is sent when the user continues to chat with at least
// one successfully uploaded document.
type DocumentsReadyMsg struct {
	Documents []api.DocumentInfo
}

// ============================================================================
// DocSetupModel
// ============================================================================

// Client-side ramp cap: the bar only reaches 100% when the server confirms
// the file.
const rampCap = 0.9

// DocSetupModel is the multi-file document upload wizard.
type DocSetupModel struct {
	pathIn    textinput.Model
	bar       progress.Model
	files     []tui.UploadFile
	selected  int
	uploading bool
	batch     []int // indexes of files in the in-flight batch, in send order
	errText   string
	width     int
	height    int
}

// NewDocSetupModel creates the wizard with the path input focused.
func NewDocSetupModel(width, height int) DocSetupModel {
	ti := textinput.New()
	ti.Placeholder = "Path to document (pdf, txt, docx, md...)"
	ti.CharLimit = 1024
	ti.Width = 52
	ti.Focus()

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30

	return DocSetupModel{
		pathIn: ti,
		bar:    bar,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the wizard.
func (m DocSetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the wizard.
func (m DocSetupModel) Update(msg tea.Msg) (DocSetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tui.UploadTickMsg:
		if !m.uploading {
			return m, nil
		}
		for i := range m.files {
			f := &m.files[i]
			if f.Status == tui.FileUploading && f.Progress < rampCap {
				f.Progress += 0.06
				if f.Progress > rampCap {
					f.Progress = rampCap
				}
			}
		}
		return m, tickCmd()

	case tui.DocumentsUploadedMsg:
		return m.settleUpload(msg), nil

	case tui.DocumentsListedMsg:
		// Documents from an earlier session show up ready to chat with.
		// A failed listing just leaves the queue empty.
		if msg.Err == nil {
			for _, doc := range msg.Documents {
				m.files = append(m.files, tui.UploadFile{
					Name:     doc.Filename,
					Size:     doc.FileSize,
					Status:   tui.FileDone,
					Progress: 1,
					FileID:   doc.FileID,
				})
			}
		}
		return m, nil

	case tui.DocumentsDeletedMsg:
		if msg.Err != nil {
			m.errText = "Failed to remove document: " + msg.Err.Error()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pathIn, cmd = m.pathIn.Update(msg)
	return m, cmd
}

func tickCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
		return tui.UploadTickMsg{}
	})
}

func (m DocSetupModel) handleKey(msg tea.KeyMsg) (DocSetupModel, tea.Cmd) {
	if m.uploading {
		return m, nil
	}

	keys := tui.DefaultKeyMap
	switch {
	case key.Matches(msg, keys.Remove):
		return m.removeSelected()
	case key.Matches(msg, keys.Continue):
		return m.continueToChat()
	}

	switch msg.String() {
	case tui.KeyEsc:
		return m, func() tea.Msg { return SetupCancelledMsg{} }

	case tui.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case tui.KeyDown:
		if m.selected < len(m.files)-1 {
			m.selected++
		}
		return m, nil

	case tui.KeyEnter:
		path := strings.TrimSpace(m.pathIn.Value())
		if path != "" {
			return m.addFile(path)
		}
		return m.startUpload()
	}

	var cmd tea.Cmd
	m.pathIn, cmd = m.pathIn.Update(msg)
	return m, cmd
}

func (m DocSetupModel) addFile(path string) (DocSetupModel, tea.Cmd) {
	info, err := os.Stat(path)
	if err != nil {
		m.errText = "Cannot read file: " + path
		return m, nil
	}
	if info.IsDir() {
		m.errText = "Expected a file, got a directory."
		return m, nil
	}

	m.files = append(m.files, tui.UploadFile{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
	})
	m.pathIn.SetValue("")
	m.errText = ""
	return m, nil
}

// startUpload sends every queued file as one batch and begins the ramp.
func (m DocSetupModel) startUpload() (DocSetupModel, tea.Cmd) {
	var paths []string
	m.batch = m.batch[:0]
	for i := range m.files {
		if m.files[i].Status == tui.FileQueued {
			m.files[i].Status = tui.FileUploading
			m.files[i].Progress = 0
			m.batch = append(m.batch, i)
			paths = append(paths, m.files[i].Path)
		}
	}
	if len(paths) == 0 {
		m.errText = "Add at least one file first."
		return m, nil
	}

	m.uploading = true
	m.errText = ""
	return m, tea.Batch(tickCmd(), func() tea.Msg {
		return StartDocUploadMsg{Paths: paths}
	})
}

// settleUpload applies the server result to the in-flight batch. Accepted
// documents map to sent files by position; anything unmatched failed.
func (m DocSetupModel) settleUpload(msg tui.DocumentsUploadedMsg) DocSetupModel {
	m.uploading = false

	if msg.Err != nil {
		for _, idx := range m.batch {
			m.files[idx].Status = tui.FileFailed
			m.files[idx].Err = msg.Err.Error()
		}
		m.errText = "Upload failed: " + msg.Err.Error()
		return m
	}

	docs := msg.Resp.Documents
	for pos, idx := range m.batch {
		f := &m.files[idx]
		if pos < len(docs) && docs[pos].FileID != "" {
			f.Status = tui.FileDone
			f.Progress = 1
			f.FileID = docs[pos].FileID
		} else {
			f.Status = tui.FileFailed
			f.Err = "rejected by server"
		}
	}
	return m
}

func (m DocSetupModel) removeSelected() (DocSetupModel, tea.Cmd) {
	if m.selected >= len(m.files) {
		return m, nil
	}
	removed := m.files[m.selected]
	m.files = append(m.files[:m.selected], m.files[m.selected+1:]...)
	if m.selected >= len(m.files) && m.selected > 0 {
		m.selected--
	}

	// Files already accepted server-side are deleted there too.
	if removed.Status == tui.FileDone && removed.FileID != "" {
		id := removed.FileID
		return m, func() tea.Msg {
			return RemoveUploadedDocMsg{FileID: id}
		}
	}
	return m, nil
}

// continueToChat opens the chat over the successfully uploaded subset.
// At least one file must have made it.
func (m DocSetupModel) continueToChat() (DocSetupModel, tea.Cmd) {
	var docs []api.DocumentInfo
	for _, f := range m.files {
		if f.Status == tui.FileDone && f.FileID != "" {
			docs = append(docs, api.DocumentInfo{
				FileID:   f.FileID,
				Filename: f.Name,
				FileSize: f.Size,
			})
		}
	}
	if len(docs) == 0 {
		m.errText = "Upload at least one document before continuing."
		return m, nil
	}
	return m, func() tea.Msg {
		return DocumentsReadyMsg{Documents: docs}
	}
}

// View renders the wizard.
func (m DocSetupModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Upload Documents"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.pathIn.View() + "\n\n")

	if len(m.files) == 0 {
		b.WriteString(tui.DimStyle.Render("  No files queued yet.") + "\n")
	}
	for i, f := range m.files {
		marker := "  "
		if i == m.selected {
			marker = tui.SelectedStyle.Render("> ")
		}
		b.WriteString(marker + m.fileLine(f) + "\n")
	}

	b.WriteString("\n")
	if m.errText != "" {
		b.WriteString(tui.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}
	if m.uploading {
		b.WriteString(tui.WarningStyle.Render("Uploading..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Enter: Add file / upload       Del: Remove       Ctrl+G: Continue       Esc: Back"))

	return tui.BoxStyle.Render(b.String())
}

func (m DocSetupModel) fileLine(f tui.UploadFile) string {
	var icon string
	switch f.Status {
	case tui.FileDone:
		icon = tui.FileIconDone
	case tui.FileUploading:
		icon = tui.FileIconUploading
	case tui.FileFailed:
		icon = tui.FileIconFailed
	default:
		icon = tui.FileIconQueued
	}

	line := fmt.Sprintf("%s %-30s %8s  ", icon, truncateName(f.Name, 30), humanSize(f.Size))
	switch f.Status {
	case tui.FileUploading, tui.FileDone:
		line += m.bar.ViewAs(f.Progress)
	case tui.FileFailed:
		line += tui.ErrorStyle.Render(f.Err)
	default:
		line += tui.DimStyle.Render("queued")
	}
	return line
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	return name[:max-3] + "..."
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
