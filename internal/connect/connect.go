// Package connect holds connection descriptors for the three data-source
// modes and the client-side validation applied before any network call.
package connect

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SQLConnection describes a completed SQL setup flow. The upload id is the
// backend-issued token binding credentials, CSV and script to one session;
// host and database name are carried for display only.
type SQLConnection struct {
	Host         string
	DatabaseName string
	User         string
	Password     string
	UploadID     string
}

// MongoConnection describes a document-store connection. Authenticated is set
// only after schema creation succeeds.
type MongoConnection struct {
	ConnectionString string
	DatabaseName     string
	CollectionName   string
	SampleDocument   map[string]any
	Authenticated    bool
}

// Validation errors surfaced inline by the setup wizards.
var (
	ErrMissingField      = errors.New("all fields are required")
	ErrBadMongoURI       = errors.New("connection string must start with mongodb:// or mongodb+srv://")
	ErrBadSampleDocument = errors.New("sample document must be a JSON object")
)

// ValidateCredentials checks that every SQL credential field is present.
func ValidateCredentials(host, database, user, password string) error {
	for _, f := range []string{host, database, user, password} {
		if strings.TrimSpace(f) == "" {
			return ErrMissingField
		}
	}
	return nil
}

// ValidateMongoURI checks the connection-string shape without dialing it.
func ValidateMongoURI(uri string) error {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return ErrBadMongoURI
	}
	return nil
}

// ParseSampleDocument parses an optional sample document entered as text.
// Empty input is allowed and returns nil; non-empty input must parse as a
// JSON object, not an array or scalar.
func ParseSampleDocument(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, ErrBadSampleDocument
	}
	return doc, nil
}

// ValidateMongo runs every local check for a NoSQL connection form.
// It returns the parsed sample document so the caller does not parse twice.
func ValidateMongo(uri, database, collection, sampleText string) (map[string]any, error) {
	if err := ValidateMongoURI(uri); err != nil {
		return nil, err
	}
	if strings.TrimSpace(database) == "" {
		return nil, fmt.Errorf("database name is required")
	}
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	return ParseSampleDocument(sampleText)
}

// IsCSVFile reports whether the filename has a .csv extension.
func IsCSVFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}

// IsPythonFile reports whether the filename has a .py extension.
func IsPythonFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".py")
}
