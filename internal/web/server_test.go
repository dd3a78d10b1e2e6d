package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop/server"
	"github.com/tomz197/skyshooter/internal/score"
)

func newTestServer(t *testing.T, hub *server.Hub) *httptest.Server {
	t.Helper()
	s := NewServer(Options{
		Hub:    hub,
		Store:  func(string) score.Store { return &score.MemoryStore{} },
		Logger: log.New(io.Discard),
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, name string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?name=" + name
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// readType reads messages until one of the given type arrives.
func readType(t *testing.T, ws *websocket.Conn, msgType string) map[string]any {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("Waiting for %s: %v", msgType, err)
		}
		var msg map[string]any
		if err := msgpack.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		if msg["type"] == msgType {
			return msg
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("Condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestIndexPage(t *testing.T) {
	ts := newTestServer(t, server.NewHub(5))
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `<canvas id="game"`) {
		t.Errorf("Unexpected index response %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Unexpected content type %s", ct)
	}
}

func TestWebSocketStreamsFrames(t *testing.T) {
	hub := server.NewHub(5)
	ts := newTestServer(t, hub)
	ws := dial(t, ts, "alice")

	waitFor(t, func() bool { return hub.Count() == 1 })

	ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var frame FrameMsg
	if err := msgpack.Unmarshal(data, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Type != MsgTypeFrame {
		t.Fatalf("Expected frame, got %s", frame.Type)
	}
	if len(frame.Commands) == 0 || frame.Commands[0].Op != draw.OpClear {
		t.Errorf("Expected a frame starting with clear, got %d commands", len(frame.Commands))
	}
	if frame.Stats.Health != 3 || frame.Stats.GameOver {
		t.Errorf("Unexpected stats %+v", frame.Stats)
	}

	ws.Close()
	waitFor(t, func() bool { return hub.Count() == 0 })
}

func TestWebSocketKeysMovePlayer(t *testing.T) {
	ts := newTestServer(t, server.NewHub(5))
	ws := dial(t, ts, "bob")

	readType(t, ws, MsgTypeFrame)

	msg, err := msgpack.Marshal(ClientMsg{Type: MsgTypeKeys, Keys: KeysMsg{Fire: true}})
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.WriteMessage(websocket.BinaryMessage, msg); err != nil {
		t.Fatal(err)
	}

	// Firing costs points but score is floored at zero, so watch for a
	// bullet-coloured fill instead.
	ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		var frame FrameMsg
		if err := msgpack.Unmarshal(data, &frame); err != nil {
			t.Fatal(err)
		}
		rec := draw.Recorder{Commands: frame.Commands}
		if rec.Count(draw.OpRect) > 0 && hasStyle(frame.Commands, "#ff0") {
			return
		}
	}
}

func hasStyle(cmds []draw.Command, style string) bool {
	for i, c := range cmds {
		if c.Op == draw.OpStyle && c.Value == style && i+1 < len(cmds) && cmds[i+1].Op == draw.OpRect {
			return true
		}
	}
	return false
}

func TestShutdownNotifiesBrowser(t *testing.T) {
	hub := server.NewHub(5)
	ts := newTestServer(t, hub)
	ws := dial(t, ts, "carol")
	waitFor(t, func() bool { return hub.Count() == 1 })

	go hub.Shutdown(100 * time.Millisecond)
	msg := readType(t, ws, MsgTypeShutdown)
	if msg["seconds"] == nil {
		t.Error("Expected countdown seconds in shutdown message")
	}
}

func TestKeysMsgInput(t *testing.T) {
	in := KeysMsg{Left: true, Fire: true}.Input()
	if !in.Left || !in.Fire || in.Right || in.Restart {
		t.Errorf("Unexpected input %+v", in)
	}
}
