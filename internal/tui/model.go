// Package tui implements the terminal user interface using Bubble Tea.
package tui

// ViewState represents the current screen of the TUI.
type ViewState int

const (
	StateHome ViewState = iota
	StateSQLSetup
	StateNoSQLSetup
	StateDocumentSetup
	StateChat
)

// HealthStatus is the backend reachability shown on the home screen.
type HealthStatus int

const (
	HealthUnknown HealthStatus = iota
	HealthChecking
	HealthOK
	HealthDown
)

// FileStatus tracks one file through the document upload flow.
type FileStatus int

const (
	FileQueued FileStatus = iota
	FileUploading
	FileDone
	FileFailed
)

// UploadFile is the per-file upload state rendered by the document wizard.
// Progress ramps client-side while the request is in flight and is settled
// by the server response.
type UploadFile struct {
	Path     string
	Name     string
	Size     int64
	Status   FileStatus
	Progress float64 // 0..1
	FileID   string
	Err      string
}
