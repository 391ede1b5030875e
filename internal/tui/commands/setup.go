package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/connect"
	"github.com/datachat-dev/datachat/internal/tui"
)

// UploadCredentialsCmd submits database credentials and reports the issued
// upload id.
func UploadCredentialsCmd(client *api.Client, conn connect.SQLConnection) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.UploadCredentials(context.Background(), api.Credentials{
			DBHost:     conn.Host,
			DBUser:     conn.User,
			DBPassword: conn.Password,
			DBName:     conn.DatabaseName,
		})
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		return tui.CredentialsUploadedMsg{UploadID: resp.UploadID, Message: resp.Message}
	}
}

// UploadCSVCmd uploads the data file at path under the given upload id.
func UploadCSVCmd(client *api.Client, uploadID, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		defer f.Close()

		resp, err := client.UploadCSV(context.Background(), uploadID, filepath.Base(path), f)
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		return tui.CSVUploadedMsg{Message: resp.Message}
	}
}

// UploadPythonCmd uploads the analysis script at path under the given
// upload id.
func UploadPythonCmd(client *api.Client, uploadID, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		defer f.Close()

		resp, err := client.UploadPython(context.Background(), uploadID, filepath.Base(path), f)
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}
		return tui.PythonUploadedMsg{Message: resp.Message}
	}
}

// CreateSchemaCmd runs the schema analysis call for the NoSQL flow. The
// session context cancels it when the chat closes before it returns.
func CreateSchemaCmd(ctx context.Context, client *api.Client, req api.SchemaRequest) tea.Cmd {
	return func() tea.Msg {
		schema, err := client.CreateSchema(ctx, req)
		return tui.SchemaCreatedMsg{Schema: schema, Err: err}
	}
}

// UploadDocumentsCmd reads every file concurrently, then sends them in one
// multipart batch. The wizard matches accepted documents to files by
// position.
func UploadDocumentsCmd(client *api.Client, paths []string) tea.Cmd {
	return func() tea.Msg {
		bufs := make([]*bytes.Buffer, len(paths))

		var g errgroup.Group
		for i, path := range paths {
			g.Go(func() error {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				bufs[i] = bytes.NewBuffer(data)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return tui.DocumentsUploadedMsg{Err: err}
		}

		files := make([]api.FileUpload, len(paths))
		for i, path := range paths {
			files[i] = api.FileUpload{Name: filepath.Base(path), Reader: bufs[i]}
		}

		resp, err := client.UploadDocuments(context.Background(), files)
		return tui.DocumentsUploadedMsg{Resp: resp, Err: err}
	}
}

// ListDocumentsCmd fetches the server-side document inventory.
func ListDocumentsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.ListDocuments(context.Background())
		if err != nil {
			return tui.DocumentsListedMsg{Err: err}
		}
		return tui.DocumentsListedMsg{Documents: resp.Documents}
	}
}

// DeleteDocumentsCmd removes the given documents server-side.
func DeleteDocumentsCmd(client *api.Client, fileIDs []string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.DeleteDocuments(context.Background(), fileIDs)
		if err != nil {
			return tui.DocumentsDeletedMsg{Err: err}
		}
		return tui.DocumentsDeletedMsg{Deleted: resp.Deleted}
	}
}
