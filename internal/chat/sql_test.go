package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/connect"
	"github.com/datachat-dev/datachat/internal/session"
)

func readySQL(t *testing.T) *SQL {
	t.Helper()
	c := NewSQL(&connect.SQLConnection{UploadID: "abc123"})
	c.Initialize()
	return c
}

func TestSQLInitializeSeedsGreetingOnce(t *testing.T) {
	c := readySQL(t)
	c.Initialize()

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, session.RoleBot, msgs[0].Role)
	assert.Equal(t, StateReady, c.State())
}

func TestSQLFirstSendPostsEmptyHistory(t *testing.T) {
	c := readySQL(t)

	req, err := c.Begin("how many rows?")
	require.NoError(t, err)

	assert.Equal(t, "abc123", req.UploadID)
	assert.Equal(t, "how many rows?", req.Question)
	// The greeting is display-only and the question travels separately:
	// the first send carries no history at all.
	assert.Empty(t, req.Messages)

	require.Len(t, c.Messages(), 2)
	assert.True(t, c.Typing())
}

func TestSQLSecondSendCarriesPriorTurnsOnly(t *testing.T) {
	c := readySQL(t)
	_, err := c.Begin("how many rows?")
	require.NoError(t, err)
	c.Complete(&api.SQLQueryResponse{Success: true, Answer: "42 rows"}, nil)

	req, err := c.Begin("and how many columns?")
	require.NoError(t, err)

	// First question and answer, still without the greeting.
	require.Len(t, req.Messages, 2)
	assert.Equal(t, api.Message{Role: "user", Content: "how many rows?"}, req.Messages[0])
	assert.Equal(t, api.Message{Role: "assistant", Content: "42 rows"}, req.Messages[1])
}

func TestSQLBeginRejectsEmptyInput(t *testing.T) {
	c := readySQL(t)

	_, err := c.Begin("   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, "Please enter a valid message.", c.Err())
	assert.Len(t, c.Messages(), 1)
	assert.False(t, c.Typing())
}

func TestSQLBeginRejectsOverlappingSends(t *testing.T) {
	c := readySQL(t)

	_, err := c.Begin("first")
	require.NoError(t, err)

	_, err = c.Begin("second")
	assert.ErrorIs(t, err, ErrBusy)
	// The rejected turn must not reach the transcript.
	assert.Len(t, c.Messages(), 2)
}

func TestSQLBeginRequiresUploadID(t *testing.T) {
	c := NewSQL(&connect.SQLConnection{})
	c.Initialize()

	_, err := c.Begin("hello")
	assert.ErrorIs(t, err, ErrSetupRequired)
	assert.Contains(t, c.Err(), "upload ID")
}

func TestSQLCompleteAppendsAnswerAndFollowup(t *testing.T) {
	c := readySQL(t)
	_, err := c.Begin("total sales?")
	require.NoError(t, err)

	followup := c.Complete(&api.SQLQueryResponse{
		Success: true,
		Answer:  "Here is the SQL I ran. SELECT count(*) gives 42.",
		Query:   "SELECT count(*) FROM sales",
	}, nil)

	assert.Equal(t, "Generated SQL Query:\nSELECT count(*) FROM sales", followup)
	assert.False(t, c.Typing())

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.True(t, msgs[2].IsCode)

	c.AppendFollowup(followup)
	msgs = c.Messages()
	require.Len(t, msgs, 4)
	assert.True(t, msgs[3].IsCode)
	assert.Contains(t, msgs[3].Content, "SELECT count(*)")
}

func TestSQLCompleteNoFollowupWhenQueryMatchesAnswer(t *testing.T) {
	c := readySQL(t)
	_, err := c.Begin("show query")
	require.NoError(t, err)

	followup := c.Complete(&api.SQLQueryResponse{
		Success: true,
		Answer:  "SELECT 1",
		Query:   "SELECT 1",
	}, nil)
	assert.Empty(t, followup)
}

func TestSQLCompletePlainAnswerIsNotCode(t *testing.T) {
	c := readySQL(t)
	_, err := c.Begin("how many rows?")
	require.NoError(t, err)

	c.Complete(&api.SQLQueryResponse{Success: true, Answer: "There are 42 rows."}, nil)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.False(t, msgs[2].IsCode)
}

func TestSQLCompleteBackendFailure(t *testing.T) {
	c := readySQL(t)
	_, err := c.Begin("bad question")
	require.NoError(t, err)

	c.Complete(&api.SQLQueryResponse{Success: false, Error: "table not found"}, nil)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Error: table not found", msgs[2].Content)
	assert.Equal(t, "table not found", c.Err())
	assert.False(t, c.Typing())
}

func TestSQLCompleteValidationError(t *testing.T) {
	c := readySQL(t)
	_, err := c.Begin("question")
	require.NoError(t, err)

	c.Complete(nil, &api.Error{Detail: "Validation Error: body.question: field required", Status: 422})

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Error: Invalid request format. Please check your input and try again.", msgs[2].Content)
}

func TestSQLClearResetsToUninitialized(t *testing.T) {
	c := readySQL(t)
	_, err := c.Begin("hello")
	require.NoError(t, err)
	c.Complete(&api.SQLQueryResponse{Success: true, Answer: "hi"}, nil)

	c.Clear()

	assert.Empty(t, c.Messages())
	assert.Empty(t, c.Err())
	assert.False(t, c.Typing())
	assert.Equal(t, StateUninitialized, c.State())

	// Reopening re-seeds the greeting.
	c.Initialize()
	assert.Len(t, c.Messages(), 1)
}
