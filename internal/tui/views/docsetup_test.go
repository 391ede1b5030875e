package views

import (
	"errors"
	"testing"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/tui"
)

func wizardWithBatch() DocSetupModel {
	m := NewDocSetupModel(80, 24)
	m.files = []tui.UploadFile{
		{Name: "a.pdf", Status: tui.FileUploading, Progress: 0.5},
		{Name: "b.txt", Status: tui.FileUploading, Progress: 0.5},
		{Name: "c.md", Status: tui.FileUploading, Progress: 0.5},
	}
	m.batch = []int{0, 1, 2}
	m.uploading = true
	return m
}

func TestRampNeverPassesCapBeforeServerConfirms(t *testing.T) {
	m := wizardWithBatch()
	for i := 0; i < 100; i++ {
		m, _ = m.Update(tui.UploadTickMsg{})
	}
	for _, f := range m.files {
		if f.Progress > rampCap {
			t.Errorf("%s progress = %v, must stay at or below %v", f.Name, f.Progress, rampCap)
		}
		if f.Status != tui.FileUploading {
			t.Errorf("%s status changed without a server response", f.Name)
		}
	}
}

func TestSettleMatchesDocumentsByPosition(t *testing.T) {
	m := wizardWithBatch()
	m = m.settleUpload(tui.DocumentsUploadedMsg{Resp: &api.DocumentUploadResponse{
		Success: true,
		Documents: []api.DocumentInfo{
			{FileID: "f-1", Filename: "a.pdf"},
			{FileID: "", Filename: "b.txt"}, // rejected
		},
	}})

	if m.files[0].Status != tui.FileDone || m.files[0].FileID != "f-1" || m.files[0].Progress != 1 {
		t.Errorf("first file = %+v, want done at 100%%", m.files[0])
	}
	if m.files[1].Status != tui.FileFailed {
		t.Errorf("second file = %+v, want failed", m.files[1])
	}
	// No third document in the response: that file failed too.
	if m.files[2].Status != tui.FileFailed {
		t.Errorf("third file = %+v, want failed", m.files[2])
	}
	if m.uploading {
		t.Error("settle must end the upload")
	}
}

func TestSettleFailureMarksWholeBatch(t *testing.T) {
	m := wizardWithBatch()
	m = m.settleUpload(tui.DocumentsUploadedMsg{Err: errors.New("connection refused")})

	for _, f := range m.files {
		if f.Status != tui.FileFailed {
			t.Errorf("%s status = %v, want failed", f.Name, f.Status)
		}
	}
}

func TestContinueRequiresOneSuccessfulFile(t *testing.T) {
	m := NewDocSetupModel(80, 24)
	m.files = []tui.UploadFile{
		{Name: "a.pdf", Status: tui.FileFailed, Err: "rejected by server"},
	}

	m, cmd := m.continueToChat()
	if cmd != nil {
		t.Fatal("continue must stay disabled with no successful uploads")
	}
	if m.errText == "" {
		t.Error("expected a hint about uploading first")
	}
}

func TestContinueForwardsOnlySuccessfulFiles(t *testing.T) {
	m := NewDocSetupModel(80, 24)
	m.files = []tui.UploadFile{
		{Name: "a.pdf", Status: tui.FileDone, FileID: "f-1", Progress: 1},
		{Name: "b.txt", Status: tui.FileFailed, Err: "rejected by server"},
		{Name: "c.md", Status: tui.FileDone, FileID: "f-3", Progress: 1},
	}

	_, cmd := m.continueToChat()
	if cmd == nil {
		t.Fatal("continue should be enabled")
	}
	ready, ok := cmd().(DocumentsReadyMsg)
	if !ok {
		t.Fatalf("got %T, want DocumentsReadyMsg", cmd())
	}
	if len(ready.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(ready.Documents))
	}
	if ready.Documents[0].FileID != "f-1" || ready.Documents[1].FileID != "f-3" {
		t.Errorf("forwarded ids = %v, want the successful pair", ready.Documents)
	}
}

func TestListingSeedsPreviouslyUploadedFiles(t *testing.T) {
	m := NewDocSetupModel(80, 24)
	m, _ = m.Update(tui.DocumentsListedMsg{Documents: []api.DocumentInfo{
		{FileID: "f-9", Filename: "report.pdf", FileSize: 2048},
	}})

	if len(m.files) != 1 {
		t.Fatalf("files = %d, want 1", len(m.files))
	}
	f := m.files[0]
	if f.Status != tui.FileDone || f.FileID != "f-9" || f.Progress != 1 {
		t.Errorf("seeded file = %+v, want done with its server id", f)
	}

	// A failed listing leaves the queue alone.
	m2 := NewDocSetupModel(80, 24)
	m2, _ = m2.Update(tui.DocumentsListedMsg{Err: errors.New("connection refused")})
	if len(m2.files) != 0 {
		t.Errorf("files = %d, want 0 after a failed listing", len(m2.files))
	}
}

func TestRemovingUploadedFileRequestsServerDelete(t *testing.T) {
	m := NewDocSetupModel(80, 24)
	m.files = []tui.UploadFile{
		{Name: "a.pdf", Status: tui.FileDone, FileID: "f-1"},
	}

	m, cmd := m.removeSelected()
	if len(m.files) != 0 {
		t.Fatalf("files = %d, want 0", len(m.files))
	}
	if cmd == nil {
		t.Fatal("expected a server delete request")
	}
	remove, ok := cmd().(RemoveUploadedDocMsg)
	if !ok {
		t.Fatalf("got %T, want RemoveUploadedDocMsg", cmd())
	}
	if remove.FileID != "f-1" {
		t.Errorf("file id = %q, want f-1", remove.FileID)
	}
}
