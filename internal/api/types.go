package api

import "encoding/json"

// Message is one prior conversation turn in the backend wire format.
type Message struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Credentials are the database connection parameters for the SQL flow.
type Credentials struct {
	DBHost     string `json:"db_host"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
}

// UploadResponse is returned by the credential, CSV and script uploads.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UploadID string `json:"upload_id"`
}

// SQLQueryRequest is the body of POST /query-database/{upload_id}.
type SQLQueryRequest struct {
	UploadID string    `json:"upload_id"`
	Question string    `json:"question"`
	Messages []Message `json:"messages"`
}

// SQLQueryResponse is the result of a natural-language SQL query.
type SQLQueryResponse struct {
	Success  bool      `json:"success"`
	Answer   string    `json:"answer,omitempty"`
	Query    string    `json:"query,omitempty"`
	UploadID string    `json:"upload_id,omitempty"`
	Messages []Message `json:"messages,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// SchemaRequest is the body of POST /schema-creator. Field names follow the
// backend's uppercase convention.
type SchemaRequest struct {
	MongoURI       string         `json:"MONGO_URI"`
	DBName         string         `json:"DB_NAME"`
	CollectionName string         `json:"COLLECTION_NAME"`
	Object         map[string]any `json:"OBJECT"`
}

// FewShotExample is a backend-supplied sample question/query pair returned
// alongside the schema. It steers query generation server-side; the client
// only carries it back on subsequent calls.
type FewShotExample struct {
	Question string `json:"question"`
	Query    string `json:"query"`
}

// CollectionStats describes the analyzed collection.
type CollectionStats struct {
	DocumentCount int64   `json:"document_count"`
	AvgObjSize    float64 `json:"avg_obj_size,omitempty"`
	StorageSize   int64   `json:"storage_size,omitempty"`
}

// SchemaState is the full session object returned by /schema-creator and
// required, with an updated question and message history, by every
// /query-execution call.
type SchemaState struct {
	Success           bool             `json:"success"`
	MongoURI          string           `json:"MONGO_URI,omitempty"`
	DBName            string           `json:"DB_NAME,omitempty"`
	CollectionName    string           `json:"COLLECTION_NAME,omitempty"`
	TableSchema       json.RawMessage  `json:"table_schema,omitempty"`
	SchemaDescription string           `json:"schema_description,omitempty"`
	FewShotExamples   []FewShotExample `json:"few_shot_examples,omitempty"`
	CollectionStats   *CollectionStats `json:"collection_stats,omitempty"`

	// Filled in per query turn; placeholders after schema creation.
	Question string          `json:"question,omitempty"`
	Messages []Message       `json:"messages,omitempty"`
	Query    json.RawMessage `json:"query,omitempty"`
	Answer   string          `json:"answer,omitempty"`
}

// ExecutionStats reports how the generated pipeline ran.
type ExecutionStats struct {
	PipelineStages  int     `json:"pipeline_stages,omitempty"`
	ExecutionTimeMS float64 `json:"execution_time_ms,omitempty"`
}

// NoSQLQueryResponse is the result of POST /query-execution.
type NoSQLQueryResponse struct {
	Success        bool            `json:"success"`
	Question       string          `json:"question,omitempty"`
	Answer         string          `json:"answer,omitempty"`
	Query          json.RawMessage `json:"query,omitempty"`
	ResultCount    *int            `json:"result_count,omitempty"`
	ResponseType   string          `json:"response_type,omitempty"`
	ExecutionStats *ExecutionStats `json:"execution_stats,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// DocumentInfo describes one file accepted by the backend.
type DocumentInfo struct {
	FileID       string `json:"file_id"`
	Filename     string `json:"filename"`
	CollectionID string `json:"collection_id,omitempty"`
	FileSize     int64  `json:"file_size,omitempty"`
	FileType     string `json:"file_type,omitempty"`
	Status       string `json:"status,omitempty"`
}

// DocumentUploadResponse is the result of POST /upload-doc.
type DocumentUploadResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message,omitempty"`
	CollectionID string         `json:"collection_id,omitempty"`
	TotalFiles   int            `json:"total_files,omitempty"`
	Documents    []DocumentInfo `json:"documents,omitempty"`
	FileIDs      []string       `json:"file_ids,omitempty"`
}

// RAGChatRequest is the body of POST /rag-chat.
type RAGChatRequest struct {
	Question    string   `json:"question"`
	SessionID   string   `json:"session_id,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty"`
}

// RAGChatResponse is the generated answer for a document question.
type RAGChatResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id,omitempty"`
}

// ListDocsResponse is the result of GET /list-docs.
type ListDocsResponse struct {
	Success   bool           `json:"success"`
	Documents []DocumentInfo `json:"documents,omitempty"`
}

// DeleteDocsResponse is the result of POST /delete-docs.
type DeleteDocsResponse struct {
	Success bool     `json:"success"`
	Deleted []string `json:"deleted,omitempty"`
}
