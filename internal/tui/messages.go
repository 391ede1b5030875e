package tui

import (
	"github.com/datachat-dev/datachat/internal/api"
)

// ============================================================================
// Home / Health Messages
// ============================================================================

// HealthCheckedMsg carries the result of the backend health probe, plus the
// base URL that was probed so the home screen reports the right endpoint.
type HealthCheckedMsg struct {
	OK      bool
	Service string
	BaseURL string
	Err     error
}

// ============================================================================
// SQL Setup Messages
// ============================================================================

// CredentialsUploadedMsg signals that database credentials were accepted and
// an upload id issued.
type CredentialsUploadedMsg struct {
	UploadID string
	Message  string
}

// CSVUploadedMsg signals that the data file was accepted.
type CSVUploadedMsg struct {
	Message string
}

// PythonUploadedMsg signals that the analysis script was accepted and the
// SQL setup flow is complete.
type PythonUploadedMsg struct {
	Message string
}

// ============================================================================
// NoSQL Messages
// ============================================================================

// SchemaCreatedMsg carries the schema analysis result for the NoSQL flow.
type SchemaCreatedMsg struct {
	Schema *api.SchemaState
	Err    error
}

// NoSQLAnsweredMsg carries one query-execution result.
type NoSQLAnsweredMsg struct {
	Resp *api.NoSQLQueryResponse
	Err  error
}

// ============================================================================
// Document Messages
// ============================================================================

// DocumentsUploadedMsg carries the batch upload result. Accepted documents
// are matched positionally to the files that were sent.
type DocumentsUploadedMsg struct {
	Resp *api.DocumentUploadResponse
	Err  error
}

// DocumentsListedMsg carries the server-side document inventory.
type DocumentsListedMsg struct {
	Documents []api.DocumentInfo
	Err       error
}

// DocumentsDeletedMsg signals that server-side documents were removed.
type DocumentsDeletedMsg struct {
	Deleted []string
	Err     error
}

// RAGAnsweredMsg carries one document chat answer.
type RAGAnsweredMsg struct {
	Resp *api.RAGChatResponse
	Err  error
}

// UploadTickMsg drives the simulated client-side upload progress ramp.
type UploadTickMsg struct{}

// ============================================================================
// SQL Chat Messages
// ============================================================================

// SQLAnsweredMsg carries one query-database result.
type SQLAnsweredMsg struct {
	Resp *api.SQLQueryResponse
	Err  error
}

// SQLFollowupMsg delivers the delayed generated-query message.
type SQLFollowupMsg struct {
	Content string
}

// ============================================================================
// Chat Window Messages
// ============================================================================

// ExportWrittenMsg signals that a transcript export was written to disk.
type ExportWrittenMsg struct {
	Path string
	Err  error
}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the pending exit confirmation after its timeout.
type CtrlCResetMsg struct{}

// ErrorMsg is a generic error message for unrecoverable errors.
type ErrorMsg struct {
	Err error
}
