// Package client runs one player's game in a terminal: local stdin/stdout or
// an SSH session.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/input"
	"github.com/tomz197/skyshooter/internal/loop"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/loop/server"
	"github.com/tomz197/skyshooter/internal/score"
)

// Client handles the game, rendering and input for a single connection.
type Client struct {
	hub          *server.Hub
	handle       *server.ClientHandle
	session      *loop.Session
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	scores       *score.AsyncStore // nil when the high score stays in memory
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       config.Tuning
	Store        score.Store // High score persistence, nil to keep it in memory
	Logger       *log.Logger
}

// NewClient creates a client registered with hub, with a fresh game.
func NewClient(hub *server.Hub, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("user", opts.Username)

	tuning := opts.Tuning
	if tuning == (config.Tuning{}) {
		tuning = config.Default()
	}

	c := &Client{
		hub:          hub,
		handle:       hub.RegisterClient(opts.Username),
		state:        NewClientState(),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		log:          logger,
	}

	// Canvas keeps the arena's aspect ratio inside whatever the terminal offers
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitArena(termWidth, termHeight, tuning)
	c.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, tuning.ArenaWidth, tuning.ArenaHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter = draw.NewChunkWriter(w, offsetCol, offsetRow)

	// File writes happen off the game loop
	var store score.Store
	if opts.Store != nil {
		c.scores = score.NewAsyncStore(opts.Store, logger)
		store = c.scores
	}
	c.session = loop.NewSession(loop.Options{
		Tuning: tuning,
		Store:  store,
		HUD:    hud{c: c},
		Logger: logger,
	})
	c.state.Stats = c.session.Stats()
	return c
}

// Run starts the client loop. Blocks until the client disconnects or the
// server shuts it down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.hub.UnregisterClient(c.handle.ID)
	if c.scores != nil {
		defer c.scores.Close()
	}

	c.log.Info("Client connected", "id", c.handle.ID)
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying, GameStateOver:
			c.updatePlayingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.log.Info("Client disconnected", "id", c.handle.ID, "highScore", c.state.Stats.HighScore)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventNewBest:
				c.state.Rank = event.Rank
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize. On actual size changes, clears the
// terminal to remove residual pixels outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	t := c.session.Tuning()
	renderWidth, renderHeight, offsetCol, offsetRow := fitArena(termWidth, termHeight, t)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fitArena picks the largest render area with the arena's aspect ratio that
// fits the terminal, and the offset that centres it. A cell holds two pixels
// stacked vertically.
func fitArena(termWidth, termHeight int, t config.Tuning) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	aspect := t.ArenaWidth / t.ArenaHeight

	renderHeight = termHeight
	renderWidth = int(float64(renderHeight*2) * aspect)
	if renderWidth > termWidth {
		renderWidth = termWidth
		renderHeight = int(float64(renderWidth) / aspect / 2)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Fire || c.state.Input.Restart {
		c.startGame()
	}
}

// updatePlayingState advances the game one frame and applies the one-shot
// actions.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	if in.Charge {
		c.session.ConsumeCharge()
	}
	if in.Restart && c.session.GameOver() {
		c.startGame()
		return
	}
	c.session.Frame(in)
}

// startGame starts or restarts the game.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.session.Restart()
	c.state.Rank = 0
	c.state.GameState = GameStatePlaying
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
