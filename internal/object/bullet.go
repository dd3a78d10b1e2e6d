package object

import (
	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/physics"
)

// BulletColor is used for player bullets.
const BulletColor = "#ff0"

// Bullet is a projectile fired by the player or a companion.
type Bullet struct {
	destructible
	X, Y          float64 // Top-left corner
	Width, Height float64
	DX, DY        float64 // Pixels per tick
	Bounces       int     // Remaining wall reflections
}

// NewBullet creates a bullet with the given velocity and reflection budget.
func NewBullet(x, y, w, h, dx, dy float64, bounces int) *Bullet {
	return &Bullet{X: x, Y: y, Width: w, Height: h, DX: dx, DY: dy, Bounces: bounces}
}

// Update advances the bullet. While bounce is set and the budget lasts, it
// reflects off the side walls and the top. Returns true once the bullet has
// left the arena.
func (b *Bullet) Update(arena Arena, bounce bool) (remove bool) {
	b.X += b.DX
	b.Y += b.DY

	if bounce {
		if b.Bounces > 0 && (b.X <= 0 || b.X+b.Width >= arena.Width) {
			b.DX = -b.DX
			b.Bounces--
		}
		if b.Bounces > 0 && b.Y <= 0 {
			b.DY = -b.DY
			b.Bounces--
		}
	}

	return b.Y+b.Height < 0 || b.Y > arena.Height
}

func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Draw renders the bullet in the current fill style.
func (b *Bullet) Draw(s draw.Surface) {
	s.FillRect(b.X, b.Y, b.Width, b.Height)
}
