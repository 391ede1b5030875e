package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/session"
)

func uploadedDocs() []api.DocumentInfo {
	return []api.DocumentInfo{
		{FileID: "f-1", Filename: "report.pdf"},
		{FileID: "f-2", Filename: "notes.txt"},
	}
}

func readyDocument(t *testing.T) *Document {
	t.Helper()
	c := NewDocument(uploadedDocs())
	c.Initialize()
	return c
}

func TestDocumentInitializeSeedsGreeting(t *testing.T) {
	c := readyDocument(t)
	c.Initialize()

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, session.RoleBot, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Summarize the key findings")
	assert.True(t, strings.HasPrefix(c.SessionID(), "document-session-"))
}

func TestDocumentBeginScopesToUploadedIDs(t *testing.T) {
	c := readyDocument(t)

	req, err := c.Begin("summarize the report")
	require.NoError(t, err)

	assert.Equal(t, "summarize the report", req.Question)
	assert.Equal(t, c.SessionID(), req.SessionID)
	assert.Equal(t, []string{"f-1", "f-2"}, req.DocumentIDs)
	assert.True(t, c.Typing())
	assert.Len(t, c.Messages(), 2)
}

func TestDocumentBeginSkipsEmptyFileIDs(t *testing.T) {
	c := NewDocument([]api.DocumentInfo{
		{FileID: "f-1", Filename: "a.pdf"},
		{Filename: "rejected.bin"},
	})
	c.Initialize()

	req, err := c.Begin("what is in a.pdf?")
	require.NoError(t, err)
	assert.Equal(t, []string{"f-1"}, req.DocumentIDs)
}

func TestDocumentBeginRejectsEmptyInput(t *testing.T) {
	c := readyDocument(t)

	_, err := c.Begin("  \n ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, c.Messages(), 1)
}

func TestDocumentBeginRequiresUploads(t *testing.T) {
	c := NewDocument(nil)
	c.Initialize()

	_, err := c.Begin("anything")
	assert.ErrorIs(t, err, ErrSetupRequired)
	assert.Contains(t, c.Err(), "No documents uploaded")
}

func TestDocumentBeginRejectsOverlappingSends(t *testing.T) {
	c := readyDocument(t)

	_, err := c.Begin("first")
	require.NoError(t, err)

	_, err = c.Begin("second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, c.Messages(), 2)
}

func TestDocumentCompleteAppendsAnswer(t *testing.T) {
	c := readyDocument(t)
	_, err := c.Begin("summarize")
	require.NoError(t, err)

	c.Complete(&api.RAGChatResponse{Answer: "The report covers Q2 revenue."}, nil)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "The report covers Q2 revenue.", msgs[2].Content)
	assert.False(t, c.Typing())
}

func TestDocumentCompleteEmptyAnswerIsAnError(t *testing.T) {
	c := readyDocument(t)
	_, err := c.Begin("summarize")
	require.NoError(t, err)

	c.Complete(&api.RAGChatResponse{}, nil)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[2].Content, "no answer received from the server")
	assert.Contains(t, msgs[2].Content, "Please try again")
}

func TestDocumentCompleteFailure(t *testing.T) {
	c := readyDocument(t)
	_, err := c.Begin("summarize")
	require.NoError(t, err)

	c.Complete(nil, &api.Error{Detail: "Request timeout - the server took too long to respond. Please try again."})

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[2].Content, "Sorry, I encountered an error")
	assert.Contains(t, msgs[2].Content, "Request timeout")
	assert.False(t, c.Typing())
}

func TestDocumentClearResetsSession(t *testing.T) {
	c := readyDocument(t)
	_, err := c.Begin("hello")
	require.NoError(t, err)
	c.Complete(&api.RAGChatResponse{Answer: "hi"}, nil)

	c.Clear()

	assert.Empty(t, c.Messages())
	assert.Equal(t, StateUninitialized, c.State())
	assert.Empty(t, c.SessionID())

	c.Initialize()
	assert.Len(t, c.Messages(), 1)
	assert.NotEmpty(t, c.SessionID())
}
