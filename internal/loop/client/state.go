package client

import (
	"time"

	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/object"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Game ended, waiting for restart
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection UI state. The game itself lives in the
// client's Session.
type ClientState struct {
	Input         object.Input
	GameState     GameState
	Stats         loop.Stats    // Latest HUD summary pushed by the game
	Rank          int           // Leaderboard rank of the last game, 0 if none
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}

// hud receives game updates for the client. It runs inside Session.Frame, on
// the client goroutine.
type hud struct {
	c *Client
}

func (h hud) Stats(s loop.Stats) {
	h.c.state.Stats = s
}

func (h hud) GameOver(finalScore int) {
	h.c.state.GameState = GameStateOver
	h.c.state.Rank = 0
	h.c.hub.ReportScore(h.c.handle.ID, finalScore)
}
