package loop

import (
	"time"

	"github.com/tomz197/skyshooter/internal/object"
	"github.com/tomz197/skyshooter/internal/physics"
)

// checkCollisions resolves every overlap for this tick. Entities are only
// marked during the pass, so one already consumed is skipped by later checks;
// the collections are compacted at the end.
func (g *Game) checkCollisions(now time.Time) {
	g.populateEnemyGrid()

	t := g.tuning
	for _, b := range g.Bullets {
		g.checkBulletHit(b, t.ScorePlayer, now)
	}
	for _, c := range g.Companions {
		for _, b := range c.Bullets {
			g.checkBulletHit(b, t.ScoreCompanion, now)
		}
	}

	pb := g.Player.Bounds()
	for _, e := range g.Enemies {
		if e.IsDestroyed() || !physics.Overlaps(e.Bounds(), pb) {
			continue
		}
		e.MarkDestroyed()
		px, py := g.Player.Center()
		g.explode(px, py, now)
		g.damage()
	}

	g.Bullets = object.Compact(g.Bullets)
	for _, c := range g.Companions {
		c.Bullets = object.Compact(c.Bullets)
	}
	g.Enemies = object.Compact(g.Enemies)
}

// populateEnemyGrid clears and re-inserts all enemies by their centres.
func (g *Game) populateEnemyGrid() {
	g.enemyGrid.Clear()
	for i, e := range g.Enemies {
		cx, cy := e.Center()
		g.enemyGrid.Insert(cx, cy, i)
	}
}

// checkBulletHit destroys b and the first live enemy it overlaps, awarding
// points and leaving an explosion at the enemy's centre.
func (g *Game) checkBulletHit(b *object.Bullet, points int, now time.Time) {
	if b.IsDestroyed() {
		return
	}
	bb := b.Bounds()
	cx, cy := bb.Center()
	g.enemyGrid.QueryAround(cx, cy, func(i int) bool {
		e := g.Enemies[i]
		if e.IsDestroyed() || !physics.Overlaps(bb, e.Bounds()) {
			return false
		}
		b.MarkDestroyed()
		e.MarkDestroyed()
		ex, ey := e.Center()
		g.explode(ex, ey, now)
		g.addScore(points)
		return true // bullet is spent, stop checking
	})
}

// gridCellSize returns a cell size large enough that any bullet overlapping
// an enemy has its centre in the 3x3 neighbourhood of the enemy's cell.
func gridCellSize(bulletW, bulletH float64) float64 {
	largest := 0.0
	for _, t := range object.EnemyTypes {
		largest = max(largest, t.MaxSize)
	}
	for _, t := range object.CompanionTypes {
		bulletW = max(bulletW, t.BulletWidth)
		bulletH = max(bulletH, t.BulletHeight)
	}
	return max(collisionGridCellSize, (largest+max(bulletW, bulletH))/2)
}
