package api

import (
	"context"
	"io"
	"net/url"
)

// UploadCredentials submits database credentials and returns the backend's
// opaque upload identifier binding the rest of the SQL setup flow.
func (c *Client) UploadCredentials(ctx context.Context, creds Credentials) (*UploadResponse, error) {
	var out UploadResponse
	if err := c.postJSON(ctx, "/upload-credentials", creds, &out, "Failed to upload credentials"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadCSV uploads the tabular data file for the given upload id.
func (c *Client) UploadCSV(ctx context.Context, uploadID, filename string, contents io.Reader) (*UploadResponse, error) {
	var out UploadResponse
	path := "/upload-csv/" + url.PathEscape(uploadID)
	files := []FileUpload{{Name: filename, Reader: contents}}
	if err := c.postMultipart(ctx, path, "file", files, &out, "Failed to upload CSV file"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadPython uploads the analysis script for the given upload id.
func (c *Client) UploadPython(ctx context.Context, uploadID, filename string, contents io.Reader) (*UploadResponse, error) {
	var out UploadResponse
	path := "/upload-python/" + url.PathEscape(uploadID)
	files := []FileUpload{{Name: filename, Reader: contents}}
	if err := c.postMultipart(ctx, path, "file", files, &out, "Failed to upload Python file"); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryDatabase submits a natural-language question plus prior turns for the
// given upload id and returns the answer and, when distinct, the generated
// SQL query.
func (c *Client) QueryDatabase(ctx context.Context, req SQLQueryRequest) (*SQLQueryResponse, error) {
	var out SQLQueryResponse
	path := "/query-database/" + url.PathEscape(req.UploadID)
	if err := c.postJSON(ctx, path, req, &out, "Failed to query database"); err != nil {
		return nil, err
	}
	return &out, nil
}
