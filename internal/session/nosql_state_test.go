package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datachat-dev/datachat/internal/api"
)

func schemaFixture() api.SchemaState {
	return api.SchemaState{
		Success:           true,
		DBName:            "shop",
		CollectionName:    "orders",
		TableSchema:       json.RawMessage(`{"_id":"ObjectId"}`),
		SchemaDescription: "orders collection",
		CollectionStats:   &api.CollectionStats{DocumentCount: 120},
	}
}

func TestBackendStatePhases(t *testing.T) {
	s := NewBackendState()
	assert.Equal(t, PhaseUninitialized, s.Phase())
	assert.False(t, s.Ready())

	ready := s.WithSchema(schemaFixture())
	assert.Equal(t, PhaseSchemaReady, ready.Phase())
	assert.True(t, ready.Ready())

	// The original value is unchanged.
	assert.Equal(t, PhaseUninitialized, s.Phase())

	issued := ready.WithResult(api.NoSQLQueryResponse{
		Answer: "There are 120 orders.",
		Query:  json.RawMessage(`[{"$count":"n"}]`),
	})
	assert.Equal(t, PhaseQueryIssued, issued.Phase())
	assert.Equal(t, PhaseSchemaReady, ready.Phase())
}

func TestQueryStateRequiresSchema(t *testing.T) {
	_, err := NewBackendState().QueryState("q", nil)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestQueryStateCarriesQuestionAndHistory(t *testing.T) {
	ready := NewBackendState().WithSchema(schemaFixture())

	history := []api.Message{
		{Role: "user", Content: "count orders"},
	}
	wire, err := ready.QueryState("count orders", history)
	require.NoError(t, err)

	assert.Equal(t, "count orders", wire.Question)
	assert.Equal(t, history, wire.Messages)
	assert.Equal(t, "orders collection", wire.SchemaDescription)

	// Building wire state does not mutate the stored value.
	again, err := ready.QueryState("different question", nil)
	require.NoError(t, err)
	assert.Equal(t, "different question", again.Question)
}

func TestDocumentCount(t *testing.T) {
	_, ok := NewBackendState().DocumentCount()
	assert.False(t, ok)

	n, ok := NewBackendState().WithSchema(schemaFixture()).DocumentCount()
	assert.True(t, ok)
	assert.Equal(t, int64(120), n)
}
