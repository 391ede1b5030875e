package app

import (
	"testing"
	"time"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/chat"
	"github.com/datachat-dev/datachat/internal/config"
	"github.com/datachat-dev/datachat/internal/connect"
	"github.com/datachat-dev/datachat/internal/session"
	"github.com/datachat-dev/datachat/internal/tui"
)

func appWithNoSQLChat(t *testing.T) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	client := api.New(cfg.API.BaseURL, time.Duration(cfg.Timeout())*time.Second, nil)

	a := New(cfg, client, nil)
	conn := &connect.MongoConnection{
		ConnectionString: "mongodb://localhost:27017",
		DatabaseName:     "shop",
		CollectionName:   "orders",
	}
	a.sess = session.NewNoSQL(conn)
	a.nosqlEngine = chat.NewNoSQL(conn)
	a.openChat(a.nosqlEngine)
	return a
}

// An answer for a mode whose chat already closed must be dropped, not
// dispatched to an engine that no longer exists.
func TestAnswerForClosedModeIsDropped(t *testing.T) {
	a := appWithNoSQLChat(t)
	before := len(a.nosqlEngine.Messages())

	a.Update(tui.SQLAnsweredMsg{Resp: &api.SQLQueryResponse{Success: true, Answer: "late"}})
	a.Update(tui.SQLFollowupMsg{Content: "SELECT 1"})
	a.Update(tui.RAGAnsweredMsg{Resp: &api.RAGChatResponse{Answer: "late"}})

	if got := len(a.nosqlEngine.Messages()); got != before {
		t.Errorf("transcript length = %d, want %d", got, before)
	}
	if a.state != tui.StateChat {
		t.Errorf("state = %v, want chat", a.state)
	}
}

func TestAnswerAfterChatClosedIsDropped(t *testing.T) {
	a := appWithNoSQLChat(t)
	a.closeChat()

	a.Update(tui.NoSQLAnsweredMsg{Resp: &api.NoSQLQueryResponse{Success: true, Answer: "late"}})
	a.Update(tui.SchemaCreatedMsg{Schema: &api.SchemaState{Success: true}})

	if a.state != tui.StateHome {
		t.Errorf("state = %v, want home", a.state)
	}
}
