package loop

import (
	"time"

	"github.com/tomz197/skyshooter/internal/object"
)

// fire spawns the bullets for the current mode when the trigger is held and
// the cooldown has passed. Every trigger pull costs ShotPenalty points.
func (g *Game) fire(in object.Input, now time.Time) {
	if !in.Fire || g.GameOver || !g.Player.Ready(now) {
		return
	}
	t := g.tuning
	x, y := g.Player.Muzzle(t.BulletWidth)
	shot := func(dx float64, bounces int) {
		g.Bullets = append(g.Bullets, object.NewBullet(x, y, t.BulletWidth, t.BulletHeight, dx, -t.BulletSpeed, bounces))
	}

	switch g.Mode {
	case ModeSpread:
		shot(-t.SpreadDX, 0)
		shot(0, 0)
		shot(t.SpreadDX, 0)
	case ModeBounce:
		shot(t.BounceDX, t.BounceBudget)
	default:
		shot(0, 0)
	}

	g.Player.LastShot = now
	g.addScore(-t.ShotPenalty)
}
