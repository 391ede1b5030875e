package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/datachat-dev/datachat/internal/tui"
)

func TestHomeHealthLineReportsProbedURL(t *testing.T) {
	m := NewHomeModel(80, 24)
	m, _ = m.Update(tui.HealthCheckedMsg{
		OK:      false,
		BaseURL: "http://analytics.internal:9000/api/v1",
		Err:     errors.New("connection refused"),
	})

	line := m.healthLine()
	if !strings.Contains(line, "unreachable at http://analytics.internal:9000/api/v1") {
		t.Errorf("health line = %q, want the probed base URL", line)
	}
}

func TestHomeHealthLineShowsService(t *testing.T) {
	m := NewHomeModel(80, 24)
	m, _ = m.Update(tui.HealthCheckedMsg{OK: true, Service: "datachat-backend", BaseURL: "http://localhost:8000/api/v1"})

	line := m.healthLine()
	if !strings.Contains(line, "online (datachat-backend)") {
		t.Errorf("health line = %q, want online with service name", line)
	}
}
