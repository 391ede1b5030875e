// Package session models the active chat session: the append-only message
// transcript, the tagged session union, the NoSQL backend state value and
// client-side export.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/datachat-dev/datachat/internal/api"
)

// Message roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one turn in a conversation. IsCode marks content rendered as a
// code block (generated SQL, aggregation pipelines).
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	IsCode    bool      `json:"isCode,omitempty"`
}

// NewMessage creates a Message with a fresh id and timestamp.
func NewMessage(content, role string, isCode bool) Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		Role:      role,
		Timestamp: time.Now(),
		IsCode:    isCode,
	}
}

// Transcript is an append-only message sequence. Clear resets it to empty,
// not to an initial snapshot.
type Transcript struct {
	messages []Message
}

// Append adds a message and returns it.
func (t *Transcript) Append(content, role string, isCode bool) Message {
	msg := NewMessage(content, role, isCode)
	t.messages = append(t.messages, msg)
	return msg
}

// Messages returns a copy of the transcript in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Clear empties the transcript.
func (t *Transcript) Clear() {
	t.messages = nil
}

// History converts the transcript to the backend wire format, mapping the
// bot role to "assistant".
func (t *Transcript) History() []api.Message {
	return toWire(t.messages)
}

// QueryHistory is History without the seeded greeting: bot messages that
// precede the first user turn are display-only and never sent to the
// backend, so a conversation with no user turns yet has no wire history.
func (t *Transcript) QueryHistory() []api.Message {
	msgs := t.messages
	for len(msgs) > 0 && msgs[0].Role != RoleUser {
		msgs = msgs[1:]
	}
	return toWire(msgs)
}

func toWire(msgs []Message) []api.Message {
	out := make([]api.Message, 0, len(msgs))
	for _, m := range msgs {
		role := "assistant"
		if m.Role == RoleUser {
			role = "user"
		}
		out = append(out, api.Message{Role: role, Content: m.Content})
	}
	return out
}
