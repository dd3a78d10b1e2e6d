package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/skyshooter/internal/config"
	"github.com/tomz197/skyshooter/internal/draw/ebitensurface"
	"github.com/tomz197/skyshooter/internal/loop"
	tuning "github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/object"
	"github.com/tomz197/skyshooter/internal/score"
)

// Game adapts a Session to ebiten's game loop.
type Game struct {
	session *loop.Session
	surface *ebitensurface.Surface
	width   int
	height  int
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.session.ConsumeCharge()
	}
	if g.session.GameOver() &&
		(inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		g.session.Restart()
		return nil
	}

	g.session.Frame(object.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:    ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Fire:  ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyJ),
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.session.Draw(g.surface)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// highScoreStore keeps the score next to the user's config, or in memory
// where there is no filesystem (wasm).
func highScoreStore() score.Store {
	if dir := config.GetEnv(config.EnvScoreDir, ""); dir != "" {
		return score.NewFileStore(filepath.Join(dir, "desktop.toml"))
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return &score.MemoryStore{}
	}
	return score.NewFileStore(filepath.Join(dir, "skyshooter", "highscore.toml"))
}

func main() {
	logger := config.NewLogger(os.Stderr, "desktop")

	t, err := tuning.Load(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		logger.Fatal("Failed to load tuning", "err", err)
	}

	scores := score.NewAsyncStore(highScoreStore(), logger)
	g := &Game{
		session: loop.NewSession(loop.Options{
			Tuning: t,
			Store:  scores,
			Logger: logger,
		}),
		surface: ebitensurface.New(),
		width:   int(t.ArenaWidth),
		height:  int(t.ArenaHeight),
	}

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("Sky Shooter")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(tuning.TickRate)

	err = ebiten.RunGame(g)
	scores.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("Game error", "err", err)
	}
}
