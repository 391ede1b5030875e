package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/connect"
	"github.com/datachat-dev/datachat/internal/session"
)

func mongoConn() *connect.MongoConnection {
	return &connect.MongoConnection{
		ConnectionString: "mongodb://localhost:27017",
		DatabaseName:     "shop",
		CollectionName:   "orders",
	}
}

func sampleSchema() *api.SchemaState {
	return &api.SchemaState{
		Success:           true,
		TableSchema:       json.RawMessage(`{"total":"number"}`),
		SchemaDescription: "orders with totals",
		CollectionStats:   &api.CollectionStats{DocumentCount: 128},
	}
}

func readyNoSQL(t *testing.T) *NoSQL {
	t.Helper()
	c := NewNoSQL(mongoConn())
	_, ok := c.BeginInitialize()
	require.True(t, ok)
	c.CompleteInitialize(sampleSchema(), nil)
	require.Equal(t, StateReady, c.State())
	return c
}

func TestNoSQLBeginInitializeRunsOnce(t *testing.T) {
	c := NewNoSQL(mongoConn())

	req, ok := c.BeginInitialize()
	require.True(t, ok)
	assert.Equal(t, "mongodb://localhost:27017", req.MongoURI)
	assert.Equal(t, "shop", req.DBName)
	assert.Equal(t, "orders", req.CollectionName)

	_, ok = c.BeginInitialize()
	assert.False(t, ok)
}

func TestNoSQLCompleteInitializeSuccess(t *testing.T) {
	c := readyNoSQL(t)

	assert.True(t, c.Backend().Ready())
	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, session.RoleBot, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Database: shop")
	assert.Contains(t, msgs[0].Content, "Collection: orders")
	assert.Contains(t, msgs[0].Content, "Documents Found: 128")
}

func TestNoSQLCompleteInitializeMarksConnectionAuthenticated(t *testing.T) {
	conn := mongoConn()
	c := NewNoSQL(conn)
	_, ok := c.BeginInitialize()
	require.True(t, ok)
	c.CompleteInitialize(sampleSchema(), nil)

	assert.True(t, conn.Authenticated)
}

func TestNoSQLCompleteInitializeRejectsIncompleteSchema(t *testing.T) {
	c := NewNoSQL(mongoConn())
	_, ok := c.BeginInitialize()
	require.True(t, ok)

	c.CompleteInitialize(&api.SchemaState{Success: true}, nil)

	assert.Equal(t, StateError, c.State())
	assert.False(t, c.Backend().Ready())
	assert.Contains(t, c.Err(), "incomplete schema data")

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "Troubleshooting tips")
}

func TestNoSQLCompleteInitializeFailure(t *testing.T) {
	c := NewNoSQL(mongoConn())
	_, ok := c.BeginInitialize()
	require.True(t, ok)

	c.CompleteInitialize(nil, &api.Error{Detail: "Authentication failed", Status: 401, Code: "auth_failed"})

	assert.Equal(t, StateError, c.State())
	assert.Equal(t, "Authentication failed", c.Err())
	assert.False(t, c.Typing())

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "Check the username and password")
}

func TestNoSQLBeginIncludesNewTurnInHistory(t *testing.T) {
	c := readyNoSQL(t)

	wire, err := c.Begin("count orders")
	require.NoError(t, err)

	assert.Equal(t, "count orders", wire.Question)
	assert.Equal(t, "orders with totals", wire.SchemaDescription)
	// Unlike the SQL flow, the history here carries the turn just typed.
	require.Len(t, wire.Messages, 2)
	assert.Equal(t, "assistant", wire.Messages[0].Role)
	assert.Equal(t, "user", wire.Messages[1].Role)
	assert.Equal(t, "count orders", wire.Messages[1].Content)
	assert.True(t, c.Typing())
}

func TestNoSQLBeginRequiresSchema(t *testing.T) {
	c := NewNoSQL(mongoConn())

	_, err := c.Begin("count orders")
	assert.ErrorIs(t, err, ErrSetupRequired)
	assert.Contains(t, c.Err(), "not initialized")
}

func TestNoSQLBeginRejectsOverlappingSends(t *testing.T) {
	c := readyNoSQL(t)

	_, err := c.Begin("first")
	require.NoError(t, err)

	_, err = c.Begin("second")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, c.Messages(), 2)
}

func TestNoSQLCompleteComposesAnswer(t *testing.T) {
	c := readyNoSQL(t)
	_, err := c.Begin("count orders")
	require.NoError(t, err)

	n := 3
	c.Complete(&api.NoSQLQueryResponse{
		Success:        true,
		Answer:         "There are 3 matching orders.",
		Query:          json.RawMessage(`[{"$match":{"total":{"$gt":10}}},{"$count":"n"}]`),
		ResultCount:    &n,
		ExecutionStats: &api.ExecutionStats{PipelineStages: 2},
	}, nil)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	content := msgs[2].Content
	assert.Contains(t, content, "There are 3 matching orders.")
	assert.Contains(t, content, "MongoDB Aggregation Pipeline:")
	assert.Contains(t, content, "$match")
	assert.Contains(t, content, "Found 3 results")
	assert.Contains(t, content, "Pipeline stages: 2")
	assert.False(t, c.Typing())
}

func TestNoSQLCompleteSingularResultCount(t *testing.T) {
	c := readyNoSQL(t)
	_, err := c.Begin("find the largest order")
	require.NoError(t, err)

	n := 1
	c.Complete(&api.NoSQLQueryResponse{Success: true, Answer: "Order #9.", ResultCount: &n}, nil)

	msgs := c.Messages()
	assert.Contains(t, msgs[len(msgs)-1].Content, "Found 1 result")
	assert.NotContains(t, msgs[len(msgs)-1].Content, "Found 1 results")
}

func TestNoSQLCompleteNonArrayQueryOmitsPipeline(t *testing.T) {
	c := readyNoSQL(t)
	_, err := c.Begin("describe schema")
	require.NoError(t, err)

	c.Complete(&api.NoSQLQueryResponse{
		Success: true,
		Answer:  "The schema has one field.",
		Query:   json.RawMessage(`"db.orders.stats()"`),
	}, nil)

	msgs := c.Messages()
	assert.NotContains(t, msgs[len(msgs)-1].Content, "Aggregation Pipeline")
}

func TestNoSQLCompleteFailureAppendsSuggestions(t *testing.T) {
	c := readyNoSQL(t)
	_, err := c.Begin("bad query")
	require.NoError(t, err)

	c.Complete(&api.NoSQLQueryResponse{Success: false, Error: "unknown field"}, nil)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[2].Content, "unknown field")
	assert.Contains(t, msgs[2].Content, "Suggestions:")
	assert.Equal(t, "unknown field", c.Err())
}

func TestNoSQLClearKeepsBackendState(t *testing.T) {
	c := readyNoSQL(t)
	_, err := c.Begin("count orders")
	require.NoError(t, err)
	c.Complete(&api.NoSQLQueryResponse{Success: true, Answer: "128."}, nil)

	c.Clear()

	assert.Empty(t, c.Messages())
	assert.Empty(t, c.Err())
	// Still connected: no reconnect required after clearing.
	assert.Equal(t, StateReady, c.State())
	assert.True(t, c.Backend().Ready())

	_, err = c.Begin("count again")
	assert.NoError(t, err)
}
