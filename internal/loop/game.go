// Package loop runs the shooter simulation: one Game per player, advanced a
// tick at a time by whichever host owns it.
package loop

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/object"
	"github.com/tomz197/skyshooter/internal/physics"
	"github.com/tomz197/skyshooter/internal/score"
)

// Mode is the player's firing mode.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeSpread Mode = "spread"
	ModeBounce Mode = "bounce"
)

// collisionGridCellSize is the minimum cell size for the enemy spatial grid.
const collisionGridCellSize = 64.0

// Options configures a Game. Zero fields get working defaults.
type Options struct {
	Tuning config.Tuning
	Clock  Clock
	Rand   *rand.Rand
	Store  score.Store
	HUD    HUD
	Logger *log.Logger
}

// Game holds the whole state of one play session. It is not safe for
// concurrent use; hosts drive it from a single goroutine.
type Game struct {
	Player     *object.Player
	Bullets    []*object.Bullet
	Enemies    []*object.Enemy
	PowerUps   []*object.PowerUp
	Companions []*object.Companion
	Explosions []*object.Explosion

	Score       int
	HighScore   int
	Health      int
	Charges     int
	Mode        Mode
	ModeExpires time.Time
	GameOver    bool

	tuning config.Tuning
	arena  object.Arena
	clock  Clock
	rng    *rand.Rand
	store  score.Store
	hud    HUD
	log    *log.Logger

	// Spatial grid for broad-phase bullet/enemy checks (reused each tick)
	enemyGrid *physics.SpatialGrid
}

// NewGame creates a game ready to play, with the high score read from the store.
func NewGame(opts Options) *Game {
	t := opts.Tuning
	if t == (config.Tuning{}) {
		t = config.Default()
	}
	g := &Game{
		tuning: t,
		arena:  object.Arena{Width: t.ArenaWidth, Height: t.ArenaHeight},
		clock:  opts.Clock,
		rng:    opts.Rand,
		store:  opts.Store,
		hud:    opts.HUD,
		log:    opts.Logger,
	}
	if g.clock == nil {
		g.clock = SystemClock{}
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.hud == nil {
		g.hud = nopHUD{}
	}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	g.enemyGrid = physics.NewSpatialGrid(t.ArenaWidth, t.ArenaHeight, gridCellSize(t.BulletWidth, t.BulletHeight))
	g.reset()
	return g
}

// Tuning returns the parameters the game runs with.
func (g *Game) Tuning() config.Tuning { return g.tuning }

// Arena returns the playfield size.
func (g *Game) Arena() object.Arena { return g.arena }

// Now returns the game clock's current time.
func (g *Game) Now() time.Time { return g.clock.Now() }

// Tick runs one simulation pass. It does nothing once the game is over.
func (g *Game) Tick(in object.Input) {
	if g.GameOver {
		return
	}
	now := g.clock.Now()

	g.Player.Move(in, g.arena)
	g.fire(in, now)
	g.updateBullets()
	g.updateEnemies()
	g.updatePowerUps(now)
	g.updateCompanions(now)
	g.updateExplosions(now)
	g.expireMode(now)
	g.checkCollisions(now)
}

// Restart begins a new game. The high score is re-read from the store.
func (g *Game) Restart() {
	g.reset()
	g.log.Info("Game restarted", "highScore", g.HighScore)
}

func (g *Game) reset() {
	t := g.tuning
	g.Player = object.NewPlayer(g.arena, t.PlayerWidth, t.PlayerHeight, t.PlayerSpeed, t.PlayerMargin, t.ShootCooldown)

	g.Bullets = nil
	g.Enemies = nil
	g.PowerUps = nil
	g.Companions = nil
	for _, e := range g.Explosions {
		e.Release()
	}
	g.Explosions = nil

	g.Score = 0
	// Keep the best of the stored and the in-memory high score.
	g.HighScore = max(g.HighScore, score.LoadOrZero(g.store, g.log))
	g.Health = t.InitialHealth
	g.Charges = 0
	g.Mode = ModeNormal
	g.ModeExpires = time.Time{}
	g.GameOver = false
	g.emitStats()
}

// updateBullets moves player bullets and drops those that left the arena.
func (g *Game) updateBullets() {
	bounce := g.Mode == ModeBounce
	for _, b := range g.Bullets {
		if b.Update(g.arena, bounce) {
			b.MarkDestroyed()
		}
	}
	g.Bullets = object.Compact(g.Bullets)
}

// updateEnemies moves enemies. Each one escaping through the bottom costs a
// health point.
func (g *Game) updateEnemies() {
	for _, e := range g.Enemies {
		if e.Update(g.arena) {
			e.MarkDestroyed()
			g.damage()
		}
	}
	g.Enemies = object.Compact(g.Enemies)
}

// updateCompanions moves escorts and their bullets and retires expired ones.
func (g *Game) updateCompanions(now time.Time) {
	n := len(g.Companions)
	kept := g.Companions[:0]
	for _, c := range g.Companions {
		c.Update(g.Player, now)
		if !c.Expired(now) {
			kept = append(kept, c)
		}
	}
	clear(g.Companions[len(kept):])
	g.Companions = kept
	if len(kept) != n {
		g.emitStats()
	}
}

// updateExplosions drops finished explosions.
func (g *Game) updateExplosions(now time.Time) {
	for _, e := range g.Explosions {
		if !e.Alive(now) {
			e.MarkDestroyed()
		}
	}
	g.Explosions = object.Compact(g.Explosions)
}

// expireMode reverts to normal fire once the timed mode has run out.
func (g *Game) expireMode(now time.Time) {
	if g.Mode != ModeNormal && now.After(g.ModeExpires) {
		g.Mode = ModeNormal
		g.emitStats()
	}
}

// addScore changes the score, never below zero, raising and persisting the
// high score when it is beaten.
func (g *Game) addScore(delta int) {
	g.Score = max(g.Score+delta, 0)
	if g.Score > g.HighScore {
		g.HighScore = g.Score
		if g.store != nil {
			if err := g.store.Save(g.HighScore); err != nil {
				g.log.Warn("Failed to save high score", "err", err)
			}
		}
	}
	g.emitStats()
}

// damage removes a health point and ends the game when none are left.
func (g *Game) damage() {
	g.Health = max(g.Health-1, 0)
	g.emitStats()
	if g.Health <= 0 {
		g.endGame()
	}
}

func (g *Game) endGame() {
	if g.GameOver {
		return
	}
	g.GameOver = true
	g.log.Info("Game over", "score", g.Score, "highScore", g.HighScore)
	g.emitStats()
	g.hud.GameOver(g.Score)
}

func (g *Game) explode(x, y float64, now time.Time) {
	g.Explosions = append(g.Explosions,
		object.NewExplosion(x, y, g.tuning.ExplosionRadius, now, g.tuning.ExplosionDuration))
}

// Stats summarises the game for a HUD.
func (g *Game) Stats() Stats {
	s := Stats{
		Score:     g.Score,
		HighScore: g.HighScore,
		Health:    g.Health,
		Charges:   g.Charges,
		Mode:      g.Mode,
		Escorts:   len(g.Companions),
		GameOver:  g.GameOver,
	}
	if g.Mode != ModeNormal {
		s.ModeLeft = int(math.Ceil(g.ModeRemaining().Seconds()))
	}
	return s
}

// ModeRemaining is how long the current firing mode lasts, zero in normal mode.
func (g *Game) ModeRemaining() time.Duration {
	if g.Mode == ModeNormal {
		return 0
	}
	return max(g.ModeExpires.Sub(g.clock.Now()), 0)
}

func (g *Game) emitStats() {
	g.hud.Stats(g.Stats())
}
