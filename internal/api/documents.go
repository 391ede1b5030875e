package api

import "context"

// UploadDocuments uploads one or more documents for retrieval-augmented chat.
// Per-file identifiers in the response are positionally matched to the input.
func (c *Client) UploadDocuments(ctx context.Context, files []FileUpload) (*DocumentUploadResponse, error) {
	var out DocumentUploadResponse
	if err := c.postMultipart(ctx, "/upload-doc", "files", files, &out, "Failed to upload documents"); err != nil {
		return nil, err
	}
	return &out, nil
}

// RAGChat submits a question scoped to previously uploaded documents.
func (c *Client) RAGChat(ctx context.Context, req RAGChatRequest) (*RAGChatResponse, error) {
	var out RAGChatResponse
	if err := c.postJSON(ctx, "/rag-chat", req, &out, "Failed to get a document answer"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDocuments returns the documents the backend currently holds.
func (c *Client) ListDocuments(ctx context.Context) (*ListDocsResponse, error) {
	var out ListDocsResponse
	if err := c.getJSON(ctx, "/list-docs", &out, "Failed to list documents"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocuments removes the given file ids from the backend.
func (c *Client) DeleteDocuments(ctx context.Context, fileIDs []string) (*DeleteDocsResponse, error) {
	var out DeleteDocsResponse
	if err := c.postJSON(ctx, "/delete-docs", fileIDs, &out, "Failed to delete documents"); err != nil {
		return nil, err
	}
	return &out, nil
}
