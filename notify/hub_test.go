package notify

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"golf-atlas/models"
	"golf-atlas/services"
	"golf-atlas/utils"
)

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })

	// The first message is the welcome or a concurrent broadcast.
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := ws.ReadMessage(); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	return ws
}

func readEvent(t *testing.T, ws *websocket.Conn) Event {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(b, &ev); err != nil {
		t.Fatalf("decode event %s: %v", b, err)
	}
	return ev
}

func TestHubBroadcastsLoadEvents(t *testing.T) {
	hub := NewHub(utils.NewDiscardLogger())
	ws := dial(t, hub)

	if got := hub.Stats().WSClients; got != 1 {
		t.Fatalf("WSClients = %d; want 1", got)
	}

	hub.SnapshotLoaded(&models.Snapshot{
		ID:       "snap-1",
		Source:   "https://example.com/courses.csv",
		LoadedAt: time.Now().UTC(),
		Stats:    models.LoadStats{TotalRows: 2, Valid: 2, Top100: 1},
	})
	ev := readEvent(t, ws)
	if ev.Type != EventSnapshotLoaded || ev.SnapshotID != "snap-1" {
		t.Errorf("loaded event = %+v", ev)
	}
	if ev.Stats == nil || ev.Stats.Valid != 2 {
		t.Errorf("loaded event stats = %+v; want Valid 2", ev.Stats)
	}

	err := services.NewLoadError(services.StageFetch, "https://example.com/courses.csv", errors.New("could not fetch CSV (500)"))
	hub.SnapshotFailed("https://example.com/courses.csv", err)
	ev = readEvent(t, ws)
	if ev.Type != EventSnapshotFailed {
		t.Errorf("failed event type = %q", ev.Type)
	}
	if want := "Could not load course data: could not fetch CSV (500)"; ev.Message != want {
		t.Errorf("failed event message = %q; want %q", ev.Message, want)
	}
}

func TestHubBroadcastWithoutClients(t *testing.T) {
	hub := NewHub(utils.NewDiscardLogger())
	hub.BroadcastJSON(map[string]string{"type": "noop"})
	if got := hub.Stats().WSClients; got != 0 {
		t.Errorf("WSClients = %d; want 0", got)
	}
}

func TestHubWelcomeSharesWriterWithBroadcast(t *testing.T) {
	hub := NewHub(utils.NewDiscardLogger())

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
				hub.BroadcastJSON(map[string]string{"type": "tick"})
				time.Sleep(time.Millisecond)
			}
		}
	}()

	for i := 0; i < 5; i++ {
		dial(t, hub)
	}
	close(stop)
	<-done

	if got := hub.Stats().WSClients; got != 5 {
		t.Errorf("WSClients = %d; want 5", got)
	}
}
