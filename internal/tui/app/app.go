// Package app provides the main TUI application that wires all views
// together.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/chat"
	"github.com/datachat-dev/datachat/internal/config"
	"github.com/datachat-dev/datachat/internal/log"
	"github.com/datachat-dev/datachat/internal/session"
	"github.com/datachat-dev/datachat/internal/tui"
	"github.com/datachat-dev/datachat/internal/tui/commands"
	"github.com/datachat-dev/datachat/internal/tui/views"
)

// App is the main TUI application.
type App struct {
	cfg    *config.Config
	client *api.Client
	logger *log.Logger

	state        tui.ViewState
	width        int
	height       int
	ctrlCPending bool

	// View models
	homeView   views.HomeModel
	sqlSetup   views.SQLSetupModel
	nosqlSetup views.NoSQLSetupModel
	docSetup   views.DocSetupModel
	chatView   views.ChatModel

	// Active session and its per-mode engine. Exactly one engine is live,
	// matching the session tag.
	sess        session.Session
	sqlEngine   *chat.SQL
	nosqlEngine *chat.NoSQL
	docEngine   *chat.Document

	// Session-scoped context: cancelling it aborts every request still in
	// flight when the chat closes.
	chatCtx    context.Context
	chatCancel context.CancelFunc
}

// New creates a new App over the given configuration and backend client.
func New(cfg *config.Config, client *api.Client, logger *log.Logger) *App {
	return &App{
		cfg:      cfg,
		client:   client,
		logger:   logger,
		state:    tui.StateHome,
		sess:     session.None(),
		homeView: views.NewHomeModel(80, 24),
		width:    80,
		height:   24,
	}
}

// Init probes backend health for the home screen.
func (a *App) Init() tea.Cmd {
	return commands.CheckHealthCmd(a.client)
}

// Update handles messages and routes them to the active view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.routeToActive(msg)

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.ctrlCPending {
				return a, tea.Quit
			}
			a.ctrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}
		a.ctrlCPending = false

	case tui.CtrlCResetMsg:
		a.ctrlCPending = false
		return a, nil
	}

	switch a.state {
	case tui.StateHome:
		return a.updateHome(msg)
	case tui.StateSQLSetup:
		return a.updateSQLSetup(msg)
	case tui.StateNoSQLSetup:
		return a.updateNoSQLSetup(msg)
	case tui.StateDocumentSetup:
		return a.updateDocSetup(msg)
	case tui.StateChat:
		return a.updateChat(msg)
	}
	return a, nil
}

// View renders the current screen.
func (a *App) View() string {
	var content string
	centered := true

	switch a.state {
	case tui.StateHome:
		content = a.homeView.View()
	case tui.StateSQLSetup:
		content = a.sqlSetup.View()
	case tui.StateNoSQLSetup:
		content = a.nosqlSetup.View()
	case tui.StateDocumentSetup:
		content = a.docSetup.View()
	case tui.StateChat:
		content = a.chatView.View()
		centered = a.chatView.Minimized()
	default:
		content = "Unknown state"
	}

	if a.ctrlCPending {
		content += "\n" + tui.WarningStyle.Render("Press Ctrl+C again to exit")
	}

	if centered {
		content = lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (a *App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case tui.StateHome:
		a.homeView, cmd = a.homeView.Update(msg)
	case tui.StateSQLSetup:
		a.sqlSetup, cmd = a.sqlSetup.Update(msg)
	case tui.StateNoSQLSetup:
		a.nosqlSetup, cmd = a.nosqlSetup.Update(msg)
	case tui.StateDocumentSetup:
		a.docSetup, cmd = a.docSetup.Update(msg)
	case tui.StateChat:
		a.chatView, cmd = a.chatView.Update(msg)
	}
	return a, cmd
}

// ============================================================================
// State Update Handlers
// ============================================================================

func (a *App) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.homeView, cmd = a.homeView.Update(msg)

	if selected, ok := msg.(views.ModeSelectedMsg); ok {
		switch selected.Kind {
		case session.KindSQL:
			a.state = tui.StateSQLSetup
			a.sqlSetup = views.NewSQLSetupModel(a.width, a.height)
			return a, a.sqlSetup.Init()
		case session.KindNoSQL:
			a.state = tui.StateNoSQLSetup
			a.nosqlSetup = views.NewNoSQLSetupModel(a.width, a.height)
			return a, a.nosqlSetup.Init()
		case session.KindDocument:
			a.state = tui.StateDocumentSetup
			a.docSetup = views.NewDocSetupModel(a.width, a.height)
			return a, tea.Batch(a.docSetup.Init(), commands.ListDocumentsCmd(a.client))
		}
	}
	return a, cmd
}

func (a *App) updateSQLSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.sqlSetup, cmd = a.sqlSetup.Update(msg)

	switch msg := msg.(type) {
	case views.SetupCancelledMsg:
		return a.backHome()

	case views.SubmitCredentialsMsg:
		return a, tea.Batch(cmd, commands.UploadCredentialsCmd(a.client, msg.Conn))

	case views.SubmitCSVMsg:
		return a, tea.Batch(cmd, commands.UploadCSVCmd(a.client, a.sqlSetup.Conn().UploadID, msg.Path))

	case views.SubmitPythonMsg:
		return a, tea.Batch(cmd, commands.UploadPythonCmd(a.client, a.sqlSetup.Conn().UploadID, msg.Path))

	case views.SQLSetupDoneMsg:
		conn := msg.Conn
		a.sess = session.NewSQL(&conn)
		a.sqlEngine = chat.NewSQL(a.sess.SQL)
		a.sqlEngine.Initialize()
		return a, a.openChat(a.sqlEngine)
	}
	return a, cmd
}

func (a *App) updateNoSQLSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.nosqlSetup, cmd = a.nosqlSetup.Update(msg)

	switch msg := msg.(type) {
	case views.SetupCancelledMsg:
		return a.backHome()

	case views.SubmitMongoMsg:
		conn := msg.Conn
		a.sess = session.NewNoSQL(&conn)
		a.nosqlEngine = chat.NewNoSQL(a.sess.NoSQL)
		openCmd := a.openChat(a.nosqlEngine)

		// Schema analysis starts as soon as the chat opens.
		req, ok := a.nosqlEngine.BeginInitialize()
		if !ok {
			return a, openCmd
		}
		a.chatView.Refresh()
		return a, tea.Batch(openCmd, commands.CreateSchemaCmd(a.chatCtx, a.client, req))
	}
	return a, cmd
}

func (a *App) updateDocSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.docSetup, cmd = a.docSetup.Update(msg)

	switch msg := msg.(type) {
	case views.SetupCancelledMsg:
		return a.backHome()

	case views.StartDocUploadMsg:
		return a, tea.Batch(cmd, commands.UploadDocumentsCmd(a.client, msg.Paths))

	case views.RemoveUploadedDocMsg:
		return a, tea.Batch(cmd, commands.DeleteDocumentsCmd(a.client, []string{msg.FileID}))

	case views.DocumentsReadyMsg:
		a.sess = session.NewDocument(msg.Documents)
		a.docEngine = chat.NewDocument(msg.Documents)
		a.docEngine.Initialize()
		return a, a.openChat(a.docEngine)
	}
	return a, cmd
}

func (a *App) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.chatView, cmd = a.chatView.Update(msg)

	switch msg := msg.(type) {
	case views.SendChatMsg:
		return a.sendChat(msg.Content, cmd)

	// Answer messages are dropped when their engine is gone: a cancelled
	// request's reply can land after its chat closed and another opened.
	case tui.SQLAnsweredMsg:
		if a.sqlEngine == nil {
			return a, cmd
		}
		followup := a.sqlEngine.Complete(msg.Resp, msg.Err)
		a.chatView.Refresh()
		if followup != "" {
			return a, tea.Batch(cmd, commands.FollowupCmd(followup))
		}
		return a, cmd

	case tui.SQLFollowupMsg:
		if a.sqlEngine == nil {
			return a, cmd
		}
		a.sqlEngine.AppendFollowup(msg.Content)
		a.chatView.Refresh()
		return a, cmd

	case tui.SchemaCreatedMsg:
		if a.nosqlEngine == nil {
			return a, cmd
		}
		a.nosqlEngine.CompleteInitialize(msg.Schema, msg.Err)
		a.chatView.Refresh()
		return a, cmd

	case tui.NoSQLAnsweredMsg:
		if a.nosqlEngine == nil {
			return a, cmd
		}
		a.nosqlEngine.Complete(msg.Resp, msg.Err)
		a.chatView.Refresh()
		return a, cmd

	case tui.RAGAnsweredMsg:
		if a.docEngine == nil {
			return a, cmd
		}
		a.docEngine.Complete(msg.Resp, msg.Err)
		a.chatView.Refresh()
		return a, cmd

	case views.ExportChatMsg:
		return a, tea.Batch(cmd, commands.ExportCmd(a.cfg.Export.Dir, a.sess, a.activeEngine().Messages()))

	case tui.ExportWrittenMsg:
		if msg.Err == nil {
			a.logger.Append(log.LogEvent{
				Time:     time.Now(),
				Event:    log.EventExportWritten,
				Mode:     a.sess.Kind.String(),
				File:     msg.Path,
				Messages: len(a.activeEngine().Messages()),
			})
		}
		return a, cmd

	case views.ClearChatMsg:
		a.clearChat()
		return a, cmd

	case views.CloseChatMsg:
		return a.closeChat()
	}
	return a, cmd
}

// ============================================================================
// Chat lifecycle
// ============================================================================

// openChat moves to the chat screen over the given engine and opens the
// session-scoped context.
func (a *App) openChat(engine chat.Engine) tea.Cmd {
	a.chatCtx, a.chatCancel = context.WithCancel(context.Background())
	a.state = tui.StateChat
	a.chatView = views.NewChatModel(engine, a.sess, a.width, a.height)

	a.logger.Append(log.LogEvent{
		Time:  time.Now(),
		Event: log.EventSessionStarted,
		Mode:  a.sess.Kind.String(),
	})
	return a.chatView.Init()
}

// sendChat begins a turn on the active engine and issues its request under
// the session context.
func (a *App) sendChat(content string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch a.sess.Kind {
	case session.KindSQL:
		req, err := a.sqlEngine.Begin(content)
		a.chatView.Refresh()
		if err != nil {
			return a, cmd
		}
		return a, tea.Batch(cmd, commands.QueryDatabaseCmd(a.chatCtx, a.client, req))

	case session.KindNoSQL:
		state, err := a.nosqlEngine.Begin(content)
		a.chatView.Refresh()
		if err != nil {
			return a, cmd
		}
		return a, tea.Batch(cmd, commands.ExecuteQueryCmd(a.chatCtx, a.client, state))

	case session.KindDocument:
		req, err := a.docEngine.Begin(content)
		a.chatView.Refresh()
		if err != nil {
			return a, cmd
		}
		return a, tea.Batch(cmd, commands.RAGChatCmd(a.chatCtx, a.client, req))
	}
	return a, cmd
}

// clearChat empties the active conversation. SQL and document chats reset
// fully and re-seed their greeting; the NoSQL engine keeps its schema so no
// reconnect is needed.
func (a *App) clearChat() {
	switch a.sess.Kind {
	case session.KindSQL:
		a.sqlEngine.Clear()
		a.sqlEngine.Initialize()
	case session.KindNoSQL:
		a.nosqlEngine.Clear()
	case session.KindDocument:
		a.docEngine.Clear()
		a.docEngine.Initialize()
	}
	a.chatView.Refresh()

	a.logger.Append(log.LogEvent{
		Time:  time.Now(),
		Event: log.EventSessionCleared,
		Mode:  a.sess.Kind.String(),
	})
}

// closeChat cancels any request still in flight and returns home.
func (a *App) closeChat() (tea.Model, tea.Cmd) {
	a.logger.Append(log.LogEvent{
		Time:  time.Now(),
		Event: log.EventSessionClosed,
		Mode:  a.sess.Kind.String(),
	})
	return a.backHome()
}

func (a *App) backHome() (tea.Model, tea.Cmd) {
	if a.chatCancel != nil {
		a.chatCancel()
		a.chatCancel = nil
	}
	a.sess = session.None()
	a.sqlEngine = nil
	a.nosqlEngine = nil
	a.docEngine = nil

	a.state = tui.StateHome
	a.homeView = views.NewHomeModel(a.width, a.height)
	return a, tea.Batch(a.homeView.Init(), commands.CheckHealthCmd(a.client))
}

// activeEngine returns the engine matching the session tag.
func (a *App) activeEngine() chat.Engine {
	switch a.sess.Kind {
	case session.KindSQL:
		return a.sqlEngine
	case session.KindNoSQL:
		return a.nosqlEngine
	case session.KindDocument:
		return a.docEngine
	default:
		return nil
	}
}
