package chat

import (
	"strings"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/connect"
	"github.com/datachat-dev/datachat/internal/session"
)

const sqlGreeting = "Hello! I'm your SQL Database Assistant. I can help you query and analyze your data using natural language. What would you like to know about your database?"

// SQL is the chat engine for the SQL analysis mode, bound to the upload id
// produced by the setup flow.
type SQL struct {
	conversation
	conn *connect.SQLConnection
}

// NewSQL creates an uninitialized SQL engine.
func NewSQL(conn *connect.SQLConnection) *SQL {
	return &SQL{conn: conn}
}

// Initialize seeds the greeting. Idempotent: a no-op once attempted.
func (c *SQL) Initialize() {
	if c.Initialized() {
		return
	}
	c.transcript.Append(sqlGreeting, session.RoleBot, false)
	c.state = StateReady
}

// Begin validates text and starts a send turn. On success it returns the
// query request to post; the prior-turn history deliberately excludes both
// the seeded greeting and the user message just appended, since the
// question travels separately. The first send therefore posts no history
// at all.
func (c *SQL) Begin(text string) (api.SQLQueryRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.errMsg = "Please enter a valid message."
		return api.SQLQueryRequest{}, ErrEmptyMessage
	}
	if c.busy {
		return api.SQLQueryRequest{}, ErrBusy
	}
	if c.conn == nil || c.conn.UploadID == "" {
		c.errMsg = "No upload ID available. Please complete setup first."
		return api.SQLQueryRequest{}, ErrSetupRequired
	}

	history := c.transcript.QueryHistory()
	c.transcript.Append(text, session.RoleUser, false)
	c.busy = true
	c.errMsg = ""

	return api.SQLQueryRequest{
		UploadID: c.conn.UploadID,
		Question: text,
		Messages: history,
	}, nil
}

// Complete finishes a send turn. It returns a follow-up code block to append
// after a short delay when the backend produced a query distinct from the
// answer; empty otherwise. The typing indicator is cleared on every path.
func (c *SQL) Complete(resp *api.SQLQueryResponse, err error) (followup string) {
	c.busy = false

	if err != nil {
		msg := "Failed to send message. Please try again."
		if apiErr, ok := err.(*api.Error); ok {
			if apiErr.Status == 422 {
				msg = "Invalid request format. Please check your input and try again."
			} else if apiErr.Detail != "" {
				msg = apiErr.Detail
			}
		}
		c.transcript.Append("Error: "+msg, session.RoleBot, false)
		c.errMsg = msg
		return ""
	}

	if resp == nil || !resp.Success || resp.Answer == "" {
		msg := "Failed to get response from database"
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		c.transcript.Append("Error: "+msg, session.RoleBot, false)
		c.errMsg = msg
		return ""
	}

	isCode := resp.Query != "" &&
		(strings.Contains(resp.Answer, "SQL") || strings.Contains(resp.Answer, "SELECT"))
	c.transcript.Append(resp.Answer, session.RoleBot, isCode)

	if resp.Query != "" && strings.TrimSpace(resp.Query) != strings.TrimSpace(resp.Answer) {
		return "Generated SQL Query:\n" + resp.Query
	}
	return ""
}

// AppendFollowup appends the delayed generated-query message.
func (c *SQL) AppendFollowup(content string) {
	c.transcript.Append(content, session.RoleBot, true)
}

// Clear empties the transcript and error and resets the initialized flag,
// so the greeting is re-seeded on next open.
func (c *SQL) Clear() {
	c.transcript.Clear()
	c.errMsg = ""
	c.busy = false
	c.state = StateUninitialized
}
