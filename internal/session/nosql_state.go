package session

import (
	"errors"

	"github.com/datachat-dev/datachat/internal/api"
)

// Phase is the lifecycle of the backend-derived NoSQL session state.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseSchemaReady         // schema-creator succeeded
	PhaseQueryIssued         // at least one query-execution turn completed
)

// ErrNotReady is returned when a query is attempted before schema creation.
var ErrNotReady = errors.New("schema not created yet")

// BackendState is an immutable value capturing the accumulated result of
// schema creation plus prior query turns. Transitions return a new value;
// the long-lived mutable record threaded through calls is gone.
type BackendState struct {
	phase  Phase
	schema api.SchemaState
}

// NewBackendState returns the uninitialized state.
func NewBackendState() BackendState {
	return BackendState{phase: PhaseUninitialized}
}

// WithSchema transitions to schema-ready with the schema-creator result.
func (s BackendState) WithSchema(schema api.SchemaState) BackendState {
	return BackendState{phase: PhaseSchemaReady, schema: schema}
}

// WithResult records a completed query turn.
func (s BackendState) WithResult(resp api.NoSQLQueryResponse) BackendState {
	schema := s.schema
	schema.Query = resp.Query
	schema.Answer = resp.Answer
	return BackendState{phase: PhaseQueryIssued, schema: schema}
}

// Phase returns the current phase.
func (s BackendState) Phase() Phase {
	return s.phase
}

// Ready reports whether queries may be issued.
func (s BackendState) Ready() bool {
	return s.phase != PhaseUninitialized
}

// QueryState builds the wire state for one query turn: the stored schema
// carrying the new question and the full role-tagged history. The receiver
// is unchanged.
func (s BackendState) QueryState(question string, history []api.Message) (api.SchemaState, error) {
	if !s.Ready() {
		return api.SchemaState{}, ErrNotReady
	}
	state := s.schema
	state.Question = question
	state.Messages = history
	return state, nil
}

// DocumentCount returns the analyzed collection's document count, when known.
func (s BackendState) DocumentCount() (int64, bool) {
	if !s.Ready() || s.schema.CollectionStats == nil {
		return 0, false
	}
	return s.schema.CollectionStats.DocumentCount, true
}
