package loop

import (
	"sync"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/object"
)

// Scheduler job names.
const (
	JobEnemy          = "enemy"
	JobPowerUp        = "powerup"
	JobCompanionPower = "companion-powerup"
	JobHealthPower    = "health-powerup"
)

// Session couples a Game with its spawn scheduler. All methods are safe to
// call from several goroutines; hosts typically tick from one and deliver
// actions (restart, charge) from another.
type Session struct {
	mu    sync.Mutex
	game  *Game
	sched *Scheduler
}

// NewSession creates a game with the four periodic spawners armed.
func NewSession(opts Options) *Session {
	g := NewGame(opts)
	t := g.tuning
	now := g.clock.Now()

	sched := NewScheduler(func() bool { return g.GameOver })
	sched.Every(JobEnemy, t.EnemySpawnInterval, now, g.SpawnEnemy)
	sched.Every(JobPowerUp, t.PowerUpSpawnInterval, now, g.SpawnPowerUp)
	sched.Every(JobCompanionPower, t.CompanionSpawnInterval, now, g.SpawnCompanionPowerUp)
	sched.Every(JobHealthPower, t.HealthSpawnInterval, now, g.SpawnHealthPowerUp)

	return &Session{game: g, sched: sched}
}

// Frame runs due spawns, then one tick.
func (s *Session) Frame(in object.Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched.Run(s.game.clock.Now())
	s.game.Tick(in)
}

// ConsumeCharge converts a charge into health, see Game.ConsumeCharge.
func (s *Session) ConsumeCharge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ConsumeCharge()
}

// Restart resets the game and re-arms the spawn timers before the next frame.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Restart()
	s.sched.Reset(s.game.clock.Now())
}

// Draw paints the current state onto surface.
func (s *Session) Draw(surface draw.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Draw(surface)
}

// Stats returns the current HUD summary.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Stats()
}

// Tuning returns the parameters the game runs with.
func (s *Session) Tuning() config.Tuning {
	return s.game.tuning
}

// GameOver reports whether the game has ended.
func (s *Session) GameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.GameOver
}

// With runs fn with exclusive access to the game.
func (s *Session) With(fn func(g *Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}
