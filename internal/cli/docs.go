// docs.go implements the "datachat docs" commands for inspecting and
// pruning server-side document uploads.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage uploaded documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents stored on the backend",
	RunE:  runDocsList,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <file-id>...",
	Short: "Delete documents from the backend",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocsDelete,
}

func runDocsList(cmd *cobra.Command, args []string) error {
	_, client, _, err := buildDeps()
	if err != nil {
		return err
	}

	resp, err := client.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	if len(resp.Documents) == 0 {
		fmt.Println("No documents uploaded.")
		return nil
	}

	fmt.Printf("%-36s  %-30s  %s\n", "FILE ID", "FILENAME", "STATUS")
	for _, d := range resp.Documents {
		status := d.Status
		if status == "" {
			status = "ready"
		}
		fmt.Printf("%-36s  %-30s  %s\n", d.FileID, d.Filename, status)
	}
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	_, client, _, err := buildDeps()
	if err != nil {
		return err
	}

	resp, err := client.DeleteDocuments(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("deleting documents: %w", err)
	}

	if len(resp.Deleted) > 0 {
		for _, id := range resp.Deleted {
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	}
	fmt.Printf("Deleted %d document(s)\n", len(args))
	return nil
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsDeleteCmd)
}
