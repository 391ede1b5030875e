package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/connect"
	"github.com/datachat-dev/datachat/internal/session"
)

// NoSQL is the chat engine for the document-store mode. Initialization runs
// the schema-creation call; its result is carried as an immutable backend
// state value required by every query turn.
type NoSQL struct {
	conversation
	conn    *connect.MongoConnection
	backend session.BackendState
}

// NewNoSQL creates an uninitialized NoSQL engine.
func NewNoSQL(conn *connect.MongoConnection) *NoSQL {
	return &NoSQL{
		conn:    conn,
		backend: session.NewBackendState(),
	}
}

// BeginInitialize starts schema creation. Returns false when initialization
// was already attempted; a failed attempt is not re-entered automatically.
func (c *NoSQL) BeginInitialize() (api.SchemaRequest, bool) {
	if c.conn == nil || c.Initialized() {
		return api.SchemaRequest{}, false
	}
	c.state = StateInitializing
	c.busy = true
	c.errMsg = ""
	return api.SchemaRequest{
		MongoURI:       c.conn.ConnectionString,
		DBName:         c.conn.DatabaseName,
		CollectionName: c.conn.CollectionName,
		Object:         c.conn.SampleDocument,
	}, true
}

// CompleteInitialize consumes the schema-creation result. On success it
// stores the backend state, marks the connection authenticated and seeds a
// greeting reporting the collection's document count; on failure it records
// the error and seeds an explanatory message. Either way initialization is
// marked attempted.
func (c *NoSQL) CompleteInitialize(schema *api.SchemaState, err error) {
	c.busy = false

	if err == nil && schema != nil {
		if len(schema.TableSchema) == 0 || schema.SchemaDescription == "" {
			err = fmt.Errorf("incomplete schema data received from server")
		}
	}
	if err != nil {
		msg := "Failed to initialize chat session"
		if apiErr, ok := err.(*api.Error); ok && apiErr.Detail != "" {
			msg = apiErr.Detail
		} else if err.Error() != "" {
			msg = err.Error()
		}
		c.state = StateError
		c.errMsg = msg
		c.transcript.Append(noSQLInitErrorMessage(msg, api.Classify(err)), session.RoleBot, false)
		return
	}

	c.backend = c.backend.WithSchema(*schema)
	c.conn.Authenticated = true
	c.state = StateReady
	c.transcript.Append(c.greeting(), session.RoleBot, false)
}

// greeting reports the connected collection and its document count.
func (c *NoSQL) greeting() string {
	count := "Unknown"
	if n, ok := c.backend.DocumentCount(); ok {
		count = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf(`Successfully connected to MongoDB!

Database: %s
Collection: %s
Documents Found: %s

Schema analysis complete! I can help you query your data using natural language. Here are some examples of what you can ask:

- "Show me all documents"
- "Count the total number of records"
- "Find documents where [field] equals [value]"
- "Group by [field] and count"
- "Show me the latest documents"

What would you like to know about your collection?`, c.conn.DatabaseName, c.conn.CollectionName, count)
}

// noSQLInitErrorMessage leads with a hint matched to the failure kind,
// followed by the general troubleshooting list.
func noSQLInitErrorMessage(detail string, kind api.ErrorKind) string {
	var hint string
	switch kind {
	case api.KindTimeout:
		hint = "The connection timed out. The database may be slow to respond or unreachable."
	case api.KindAuth:
		hint = "Authentication failed. Check the username and password in your connection string."
	case api.KindNotFound:
		hint = "The database or collection was not found. Check the names you entered."
	case api.KindValidation:
		hint = "The connection details were rejected. Check the connection string format."
	default:
		hint = "Failed to connect to your MongoDB database."
	}

	return fmt.Sprintf(`%s

Error: %s

Troubleshooting tips:
- Check your connection string format
- Verify database and collection names
- Ensure your MongoDB instance is accessible
- Validate network connectivity

Please check your connection details and try again.`, hint, detail)
}

// Begin validates text and starts a query turn. The wire state carries the
// stored schema, the new question and the full role-tagged history including
// the turn just appended.
func (c *NoSQL) Begin(text string) (api.SchemaState, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.errMsg = "Please enter a valid message."
		return api.SchemaState{}, ErrEmptyMessage
	}
	if c.busy {
		return api.SchemaState{}, ErrBusy
	}
	if !c.backend.Ready() {
		c.errMsg = "Chat not initialized. Please check your database connection."
		return api.SchemaState{}, ErrSetupRequired
	}

	history := c.transcript.History()
	history = append(history, api.Message{Role: "user", Content: text})

	wire, err := c.backend.QueryState(text, history)
	if err != nil {
		c.errMsg = "Chat not initialized. Please check your database connection."
		return api.SchemaState{}, ErrSetupRequired
	}

	c.transcript.Append(text, session.RoleUser, false)
	c.busy = true
	c.errMsg = ""
	return wire, nil
}

// Complete finishes a query turn, composing the answer with the executed
// pipeline, result count and stage statistics when present. The typing
// indicator is cleared on every path.
func (c *NoSQL) Complete(resp *api.NoSQLQueryResponse, err error) {
	c.busy = false

	if err == nil && resp == nil {
		err = &api.Error{Detail: "No response generated"}
	}
	if err == nil && !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "Query execution failed"
		}
		err = &api.Error{Detail: msg}
	}
	if err != nil {
		msg := "Failed to process your query"
		if apiErr, ok := err.(*api.Error); ok && apiErr.Detail != "" {
			msg = apiErr.Detail
		} else if err.Error() != "" {
			msg = err.Error()
		}
		c.errMsg = msg
		c.transcript.Append(noSQLQueryErrorMessage(msg), session.RoleBot, false)
		return
	}

	content := resp.Answer
	if content == "" {
		content = "No response generated"
	}

	if pipeline := prettyPipeline(resp.Query); pipeline != "" {
		content += "\n\nMongoDB Aggregation Pipeline:\n```json\n" + pipeline + "\n```"
	}
	if resp.ResultCount != nil {
		noun := "results"
		if *resp.ResultCount == 1 {
			noun = "result"
		}
		content += fmt.Sprintf("\n\nFound %d %s", *resp.ResultCount, noun)
	}
	if resp.ExecutionStats != nil && resp.ExecutionStats.PipelineStages > 0 {
		content += fmt.Sprintf("\nPipeline stages: %d", resp.ExecutionStats.PipelineStages)
	}

	c.transcript.Append(content, session.RoleBot, false)
	c.backend = c.backend.WithResult(*resp)
}

func noSQLQueryErrorMessage(detail string) string {
	return fmt.Sprintf(`Sorry, I encountered an error processing your query: %s

Suggestions:
- Try rephrasing your question
- Use simpler language
- Check if the field names exist in your collection
- Try a basic query like "show me all documents"

Please try again with a different question.`, detail)
}

// prettyPipeline renders a structured aggregation pipeline (a JSON array)
// with indentation. Non-array queries produce nothing.
func prettyPipeline(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return ""
	}
	return buf.String()
}

// Clear empties the visible history and error but keeps the initialized
// state and backend schema, so the user is not forced to reconnect.
func (c *NoSQL) Clear() {
	c.transcript.Clear()
	c.errMsg = ""
	c.busy = false
}

// Backend exposes the current backend state value.
func (c *NoSQL) Backend() session.BackendState {
	return c.backend
}
