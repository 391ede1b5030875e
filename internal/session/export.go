package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// exportedNoSQL is the sanitized connection metadata included in exports.
// The connection string and any credentials are deliberately absent.
type exportedNoSQL struct {
	DatabaseName    string `json:"databaseName"`
	CollectionName  string `json:"collectionName"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Export is the payload written by the export action.
type Export struct {
	ChatbotType string         `json:"chatbotType"`
	UploadID    string         `json:"uploadId,omitempty"`
	NoSQL       *exportedNoSQL `json:"noSQLConnection,omitempty"`
	DocumentIDs []string       `json:"documentIds,omitempty"`
	Messages    []Message      `json:"messages"`
	ExportedAt  time.Time      `json:"exportedAt"`
}

// BuildExport assembles the export payload for the given session and
// transcript. Credentials never appear: the SQL password and the Mongo
// connection string are excluded by construction.
func BuildExport(sess Session, messages []Message, now time.Time) Export {
	exp := Export{
		ChatbotType: sess.Kind.String(),
		Messages:    messages,
		ExportedAt:  now,
	}
	if exp.Messages == nil {
		exp.Messages = []Message{}
	}

	switch sess.Kind {
	case KindSQL:
		if sess.SQL != nil {
			exp.UploadID = sess.SQL.UploadID
		}
	case KindNoSQL:
		if sess.NoSQL != nil {
			exp.NoSQL = &exportedNoSQL{
				DatabaseName:    sess.NoSQL.DatabaseName,
				CollectionName:  sess.NoSQL.CollectionName,
				IsAuthenticated: sess.NoSQL.Authenticated,
			}
		}
	case KindDocument:
		exp.DocumentIDs = sess.DocumentIDs()
	}

	return exp
}

// WriteExport serializes the export to dir as
// chat-export-{mode}-{epoch-ms}.json and returns the written path.
// An empty dir means the current working directory.
func WriteExport(dir string, sess Session, messages []Message, now time.Time) (string, error) {
	exp := BuildExport(sess, messages, now)

	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling export: %w", err)
	}

	name := fmt.Sprintf("chat-export-%s-%d.json", exp.ChatbotType, now.UnixMilli())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
