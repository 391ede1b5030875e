// health.go implements the "datachat health" command probing the backend.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend availability",
	Long:  `Probe the analysis backend's health endpoint and report the result.`,
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	_, client, _, err := buildDeps()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	resp, err := client.Health(ctx)
	if err != nil {
		return fmt.Errorf("backend unreachable at %s: %w", client.BaseURL(), err)
	}

	fmt.Printf("Backend online at %s\n", client.BaseURL())
	if resp.Service != "" {
		fmt.Printf("Service: %s\n", resp.Service)
	}
	if resp.Status != "" {
		fmt.Printf("Status: %s\n", resp.Status)
	}
	return nil
}
