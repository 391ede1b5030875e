package session

import (
	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/connect"
)

// Kind identifies which data-source mode a session belongs to.
type Kind int

const (
	KindNone Kind = iota
	KindSQL
	KindNoSQL
	KindDocument
)

// String returns the mode name used in exports and log events.
func (k Kind) String() string {
	switch k {
	case KindSQL:
		return "sql"
	case KindNoSQL:
		return "nosql"
	case KindDocument:
		return "document"
	default:
		return "none"
	}
}

// Session is the tagged union over the three mode-specific setups. Exactly
// one variant is populated, selected by Kind; the display layer switches on
// the tag instead of probing optional fields.
type Session struct {
	Kind      Kind
	SQL       *connect.SQLConnection
	NoSQL     *connect.MongoConnection
	Documents []api.DocumentInfo
}

// None is the empty session.
func None() Session {
	return Session{Kind: KindNone}
}

// NewSQL creates a session bound to a completed SQL setup flow.
func NewSQL(conn *connect.SQLConnection) Session {
	return Session{Kind: KindSQL, SQL: conn}
}

// NewNoSQL creates a session bound to a Mongo connection.
func NewNoSQL(conn *connect.MongoConnection) Session {
	return Session{Kind: KindNoSQL, NoSQL: conn}
}

// NewDocument creates a session over successfully uploaded documents.
func NewDocument(docs []api.DocumentInfo) Session {
	return Session{Kind: KindDocument, Documents: docs}
}

// SetupRequired reports whether this session's mode precondition is unmet:
// a missing upload id, an unauthenticated connection, or an empty document
// list. While true the chat input stays disabled.
func (s Session) SetupRequired() bool {
	switch s.Kind {
	case KindSQL:
		return s.SQL == nil || s.SQL.UploadID == ""
	case KindNoSQL:
		return s.NoSQL == nil || !s.NoSQL.Authenticated
	case KindDocument:
		return len(s.Documents) == 0
	default:
		return true
	}
}

// DocumentIDs returns the backend file ids of a document session, skipping
// entries the backend never acknowledged.
func (s Session) DocumentIDs() []string {
	ids := make([]string, 0, len(s.Documents))
	for _, d := range s.Documents {
		if d.FileID != "" {
			ids = append(ids, d.FileID)
		}
	}
	return ids
}
