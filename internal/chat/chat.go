// Package chat implements the per-mode conversation state machines (SQL,
// NoSQL, Document). Engines hold transcript and lifecycle state only; the
// network calls themselves are issued by the caller between Begin and
// Complete, so the machines stay synchronous and testable.
//
// Every engine follows the same send contract: Begin validates and appends
// the user turn optimistically, setting the typing indicator and a busy
// gate that rejects overlapping sends; Complete appends the bot turn(s) and
// always clears the indicator, on success and failure alike.
package chat

import (
	"errors"

	"github.com/datachat-dev/datachat/internal/session"
)

// State is the lifecycle of one chat engine.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateError
)

// Send-path validation errors.
var (
	// ErrEmptyMessage rejects empty or whitespace-only input.
	ErrEmptyMessage = errors.New("empty message")
	// ErrBusy rejects a send while the previous one is still in flight.
	ErrBusy = errors.New("previous send still in flight")
	// ErrSetupRequired rejects sends while the mode's precondition is unmet.
	ErrSetupRequired = errors.New("setup required")
)

// conversation carries the state shared by all three engines.
type conversation struct {
	transcript session.Transcript
	state      State
	busy       bool
	errMsg     string
}

// Messages returns the transcript in order.
func (c *conversation) Messages() []session.Message {
	return c.transcript.Messages()
}

// Typing reports whether a send is in flight.
func (c *conversation) Typing() bool {
	return c.busy
}

// Err returns the current banner error, empty when none.
func (c *conversation) Err() string {
	return c.errMsg
}

// ClearError dismisses the banner error without touching the transcript.
func (c *conversation) ClearError() {
	c.errMsg = ""
}

// State returns the engine lifecycle state.
func (c *conversation) State() State {
	return c.state
}

// Initialized reports whether initialization has been attempted.
func (c *conversation) Initialized() bool {
	return c.state != StateUninitialized
}

// Engine is the read surface the chat window renders from, common to all
// three modes.
type Engine interface {
	Messages() []session.Message
	Typing() bool
	Err() string
	ClearError()
	State() State
}
