package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/session"
)

const documentGreeting = `Document Intelligence Ready!

I can help you analyze and query your uploaded documents. Here are some things you can ask:

- "What are the main topics covered in these documents?"
- "Summarize the key findings"
- "Find information about [specific topic]"
- "Compare different sections or documents"
- "Extract specific data or facts"

What would you like to know about your documents?`

// Document is the chat engine for retrieval-augmented document mode.
// Documents are assumed to have been uploaded by the setup flow; the engine
// only scopes questions to their backend ids.
type Document struct {
	conversation
	docs      []api.DocumentInfo
	sessionID string
}

// NewDocument creates an uninitialized Document engine over the successfully
// uploaded files.
func NewDocument(docs []api.DocumentInfo) *Document {
	return &Document{docs: docs}
}

// Initialize seeds the greeting listing example queries and fixes one
// session id for the whole conversation. Idempotent.
func (c *Document) Initialize() {
	if c.Initialized() {
		return
	}
	c.sessionID = fmt.Sprintf("document-session-%d", time.Now().UnixMilli())
	c.transcript.Append(documentGreeting, session.RoleBot, false)
	c.state = StateReady
}

// Begin validates text and starts a send turn, scoping the question to the
// uploaded document ids.
func (c *Document) Begin(text string) (api.RAGChatRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.errMsg = "Please enter a valid message."
		return api.RAGChatRequest{}, ErrEmptyMessage
	}
	if c.busy {
		return api.RAGChatRequest{}, ErrBusy
	}
	if len(c.docs) == 0 {
		c.errMsg = "No documents uploaded. Please complete setup first."
		return api.RAGChatRequest{}, ErrSetupRequired
	}

	c.transcript.Append(text, session.RoleUser, false)
	c.busy = true
	c.errMsg = ""

	ids := make([]string, 0, len(c.docs))
	for _, d := range c.docs {
		if d.FileID != "" {
			ids = append(ids, d.FileID)
		}
	}
	return api.RAGChatRequest{
		Question:    text,
		SessionID:   c.sessionID,
		DocumentIDs: ids,
	}, nil
}

// Complete finishes a send turn. The typing indicator is cleared on every
// path.
func (c *Document) Complete(resp *api.RAGChatResponse, err error) {
	c.busy = false

	if err == nil && (resp == nil || resp.Answer == "") {
		err = fmt.Errorf("no answer received from the server")
	}
	if err != nil {
		msg := "Failed to process your query"
		if apiErr, ok := err.(*api.Error); ok && apiErr.Detail != "" {
			msg = apiErr.Detail
		} else if err.Error() != "" {
			msg = err.Error()
		}
		c.errMsg = msg
		c.transcript.Append(fmt.Sprintf("Sorry, I encountered an error: %s\n\nPlease try again with a different question.", msg), session.RoleBot, false)
		return
	}

	c.transcript.Append(resp.Answer, session.RoleBot, false)
}

// Clear empties the transcript and error and resets the initialized flag,
// so the greeting is re-seeded (with a fresh session id) on next open.
func (c *Document) Clear() {
	c.transcript.Clear()
	c.errMsg = ""
	c.busy = false
	c.state = StateUninitialized
	c.sessionID = ""
}

// SessionID returns the conversation's session id, empty before Initialize.
func (c *Document) SessionID() string {
	return c.sessionID
}
