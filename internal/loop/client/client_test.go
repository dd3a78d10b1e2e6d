package client

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/loop/server"
	"github.com/tomz197/skyshooter/internal/object"
	"github.com/tomz197/skyshooter/internal/score"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// newTestClient returns a client whose input never ends.
func newTestClient(t *testing.T, hub *server.Hub, out io.Writer) *Client {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return NewClient(hub, bufio.NewReader(pr), out, ClientOptions{
		TermSizeFunc: fixedSize(80, 40),
		Username:     "tester",
		Store:        &score.MemoryStore{},
		Logger:       log.New(io.Discard),
	})
}

func TestFitArena(t *testing.T) {
	tun := config.Default()
	tests := []struct {
		termW, termH           int
		wantW, wantH, col, row int
	}{
		{80, 40, 60, 40, 10, 0},
		{40, 40, 40, 26, 0, 7},
		{0, 0, 1, 1, 0, 0},
	}
	for _, tc := range tests {
		w, h, col, row := fitArena(tc.termW, tc.termH, tun)
		if w != tc.wantW || h != tc.wantH || col != tc.col || row != tc.row {
			t.Errorf("fitArena(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
				tc.termW, tc.termH, w, h, col, row, tc.wantW, tc.wantH, tc.col, tc.row)
		}
	}
}

func TestRunQuitsAndUnregisters(t *testing.T) {
	hub := server.NewHub(5)
	var out bytes.Buffer
	c := NewClient(hub, bufio.NewReader(strings.NewReader("q")), &out, ClientOptions{
		TermSizeFunc: fixedSize(80, 40),
		Username:     "quitter",
		Logger:       log.New(io.Discard),
	})
	if hub.Count() != 1 {
		t.Fatalf("Expected client registered, got %d", hub.Count())
	}

	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if hub.Count() != 0 {
		t.Errorf("Expected client unregistered, got %d", hub.Count())
	}
	if !strings.Contains(out.String(), "\033[?25h") {
		t.Error("Expected cursor restored on exit")
	}
}

func TestStartPlayAndGameOver(t *testing.T) {
	hub := server.NewHub(5)
	c := newTestClient(t, hub, io.Discard)

	c.state.Input = object.Input{Fire: true}
	c.updateStartState()
	if c.state.GameState != GameStatePlaying {
		t.Fatalf("Expected playing, got %v", c.state.GameState)
	}

	c.state.Input = object.Input{}
	c.session.With(func(g *loop.Game) {
		g.Score = 40
		g.Health = 1
		g.Enemies = append(g.Enemies, &object.Enemy{X: 10, Y: 700, Size: 10, Speed: 1})
	})
	c.updatePlayingState()

	if c.state.GameState != GameStateOver {
		t.Fatalf("Expected game over screen, got %v", c.state.GameState)
	}
	if !c.state.Stats.GameOver || c.state.Stats.Health != 0 {
		t.Errorf("Expected HUD stats to follow the game, got %+v", c.state.Stats)
	}

	c.processServerEvents()
	if c.state.Rank != 1 {
		t.Errorf("Expected rank 1 on an empty leaderboard, got %d", c.state.Rank)
	}
	if top := hub.TopScores(); len(top) != 1 || top[0].Score != 40 {
		t.Errorf("Unexpected leaderboard %+v", top)
	}

	c.state.Input = object.Input{Restart: true}
	c.updatePlayingState()
	if c.state.GameState != GameStatePlaying || c.session.GameOver() {
		t.Error("Expected restart to resume play")
	}
	if c.state.Rank != 0 || c.state.Stats.Score != 0 {
		t.Errorf("Expected fresh game state, got rank %d stats %+v", c.state.Rank, c.state.Stats)
	}
}

func TestChargeKeyConvertsCharge(t *testing.T) {
	c := newTestClient(t, server.NewHub(5), io.Discard)
	c.startGame()
	c.session.With(func(g *loop.Game) {
		g.Charges = 2
		g.Health = 1
	})

	c.state.Input = object.Input{Charge: true}
	c.updatePlayingState()
	if st := c.session.Stats(); st.Charges != 1 || st.Health != 2 {
		t.Errorf("Expected one charge spent, got %+v", st)
	}
}

func TestShutdownEventShowsCountdown(t *testing.T) {
	hub := server.NewHub(5)
	var out bytes.Buffer
	c := newTestClient(t, hub, &out)

	c.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	if c.state.GameState != GameStateShutdown {
		t.Fatalf("Expected shutdown screen, got %v", c.state.GameState)
	}

	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Error("Expected shutdown message rendered")
	}

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
	c.updateShutdownState()
	if c.state.Running {
		t.Error("Expected client to stop after the countdown")
	}
}

func TestDrawFramePlaying(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, server.NewHub(5), &out)
	c.startGame()
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Score: 0") {
		t.Error("Expected in-arena HUD text in the output")
	}
}

// slowStore blocks every Save until release is closed.
type slowStore struct {
	score.MemoryStore
	release chan struct{}
}

func (s *slowStore) Save(v int) error {
	<-s.release
	return s.MemoryStore.Save(v)
}

func TestNewHighScoreDoesNotStallFrame(t *testing.T) {
	store := &slowStore{release: make(chan struct{})}
	c := NewClient(server.NewHub(5), bufio.NewReader(strings.NewReader("q")), io.Discard, ClientOptions{
		TermSizeFunc: fixedSize(80, 40),
		Username:     "slowdisk",
		Store:        store,
		Logger:       log.New(io.Discard),
	})
	c.startGame()
	c.session.With(func(g *loop.Game) {
		g.Bullets = []*object.Bullet{object.NewBullet(97, 10, 6, 12, 0, -7, 0)}
		g.Enemies = []*object.Enemy{{X: 90, Y: 5, Size: 30, Speed: 2, Color: "#f00", Pattern: object.PatternStraight, ZigzagDir: 1}}
	})

	done := make(chan struct{})
	go func() {
		c.session.Frame(object.Input{})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Frame waited on the high score write")
	}
	if st := c.session.Stats(); st.HighScore != 10 {
		t.Fatalf("Expected high score 10, got %+v", st)
	}

	close(store.release)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if v, err := store.MemoryStore.Load(); err != nil || v != 10 {
		t.Errorf("Expected high score written by the time Run returns, got %d %v", v, err)
	}
}
