package loop

import (
	"time"

	"github.com/tomz197/skyshooter/internal/object"
	"github.com/tomz197/skyshooter/internal/physics"
)

// updatePowerUps moves pickups, dropping those that fell out and collecting
// those touching the player.
func (g *Game) updatePowerUps(now time.Time) {
	pb := g.Player.Bounds()
	for _, p := range g.PowerUps {
		if p.Update(g.arena) {
			p.MarkDestroyed()
			continue
		}
		if physics.Overlaps(p.Bounds(), pb) {
			p.MarkDestroyed()
			g.collect(p.Kind, now)
		}
	}
	g.PowerUps = object.Compact(g.PowerUps)
}

// collect applies a picked-up power-up. Every pickup also banks one charge.
func (g *Game) collect(kind object.Kind, now time.Time) {
	t := g.tuning
	g.Charges++

	switch kind {
	case object.KindHealth:
		g.Health = min(g.Health+1, t.MaxHealth)
	case object.KindCompanion:
		ct := object.CompanionTypes[g.rng.Intn(len(object.CompanionTypes))]
		g.Companions = append(g.Companions,
			object.NewCompanion(ct, g.Player, t.CompanionSize, t.CompanionGap, now.Add(t.PowerUpDuration)))
	case object.KindSpread:
		g.Mode = ModeSpread
		g.ModeExpires = now.Add(t.PowerUpDuration)
	case object.KindBounce:
		g.Mode = ModeBounce
		g.ModeExpires = now.Add(t.PowerUpDuration)
	}
	g.log.Debug("Power-up collected", "kind", kind, "charges", g.Charges)
	g.emitStats()
}

// ConsumeCharge trades one banked charge for one health point. It does
// nothing without charges, at full health or once the game is over.
func (g *Game) ConsumeCharge() bool {
	if g.GameOver || g.Charges <= 0 || g.Health >= g.tuning.MaxHealth {
		return false
	}
	g.Charges--
	g.Health++
	g.emitStats()
	return true
}

// SpawnEnemy adds an enemy of a random archetype above the arena.
func (g *Game) SpawnEnemy() {
	if g.GameOver {
		return
	}
	g.Enemies = append(g.Enemies, object.NewRandomEnemy(g.rng, g.arena))
}

// SpawnPowerUp adds a power-up of a uniformly chosen kind.
func (g *Game) SpawnPowerUp() {
	g.spawnPowerUp(object.Kinds[g.rng.Intn(len(object.Kinds))])
}

// SpawnCompanionPowerUp adds a companion power-up.
func (g *Game) SpawnCompanionPowerUp() {
	g.spawnPowerUp(object.KindCompanion)
}

// SpawnHealthPowerUp adds a health power-up.
func (g *Game) SpawnHealthPowerUp() {
	g.spawnPowerUp(object.KindHealth)
}

func (g *Game) spawnPowerUp(kind object.Kind) {
	if g.GameOver {
		return
	}
	t := g.tuning
	g.PowerUps = append(g.PowerUps, object.NewPowerUp(g.rng, g.arena, kind, t.PowerUpSize, t.PowerUpSpeed))
}
