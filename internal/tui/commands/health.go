// Package commands provides Bubble Tea commands for backend operations.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/tui"
)

const healthTimeout = 5 * time.Second

// CheckHealthCmd probes the backend health endpoint with a short deadline,
// independent of the client's request timeout.
func CheckHealthCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()

		resp, err := client.Health(ctx)
		if err != nil {
			return tui.HealthCheckedMsg{OK: false, BaseURL: client.BaseURL(), Err: err}
		}
		return tui.HealthCheckedMsg{OK: true, Service: resp.Service, BaseURL: client.BaseURL()}
	}
}
