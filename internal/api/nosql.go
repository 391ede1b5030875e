package api

import "context"

// CreateSchema submits connection parameters (plus an optional sample
// document) for a document-oriented database and returns the full session
// state the backend derives: inferred schema, readable description, few-shot
// examples and collection statistics. Every subsequent query requires this
// state; no query can be issued until this call succeeds.
func (c *Client) CreateSchema(ctx context.Context, req SchemaRequest) (*SchemaState, error) {
	var out SchemaState
	if err := c.postJSON(ctx, "/schema-creator", req, &out, "Failed to create schema"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteQuery submits the schema state with the updated question and message
// history, returning the answer, the executed pipeline, a result count and
// execution statistics.
func (c *Client) ExecuteQuery(ctx context.Context, state SchemaState) (*NoSQLQueryResponse, error) {
	var out NoSQLQueryResponse
	if err := c.postJSON(ctx, "/query-execution", state, &out, "Failed to execute query"); err != nil {
		return nil, err
	}
	return &out, nil
}
