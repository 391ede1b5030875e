package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/session"
	"github.com/datachat-dev/datachat/internal/tui"
)

// followupDelay spaces the generated-query message out from the answer, so
// the transcript reads as two distinct turns.
const followupDelay = 500 * time.Millisecond

// QueryDatabaseCmd runs one SQL chat turn. The session context cancels the
// request when the chat closes while it is in flight.
func QueryDatabaseCmd(ctx context.Context, client *api.Client, req api.SQLQueryRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.QueryDatabase(ctx, req)
		return tui.SQLAnsweredMsg{Resp: resp, Err: err}
	}
}

// FollowupCmd delivers the generated-query message after a short delay.
func FollowupCmd(content string) tea.Cmd {
	return tea.Tick(followupDelay, func(time.Time) tea.Msg {
		return tui.SQLFollowupMsg{Content: content}
	})
}

// ExecuteQueryCmd runs one NoSQL chat turn under the session context.
func ExecuteQueryCmd(ctx context.Context, client *api.Client, state api.SchemaState) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.ExecuteQuery(ctx, state)
		return tui.NoSQLAnsweredMsg{Resp: resp, Err: err}
	}
}

// RAGChatCmd runs one document chat turn under the session context.
func RAGChatCmd(ctx context.Context, client *api.Client, req api.RAGChatRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.RAGChat(ctx, req)
		return tui.RAGAnsweredMsg{Resp: resp, Err: err}
	}
}

// ExportCmd writes the sanitized transcript export to dir and reports the
// resulting path.
func ExportCmd(dir string, sess session.Session, messages []session.Message) tea.Cmd {
	return func() tea.Msg {
		path, err := session.WriteExport(dir, sess, messages, time.Now())
		return tui.ExportWrittenMsg{Path: path, Err: err}
	}
}
