package object

import (
	"math"
	"time"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/physics"
)

// CompanionType is an escort archetype.
type CompanionType struct {
	Color         string
	ShootInterval time.Duration
	BulletSpeed   float64
	BulletWidth   float64
	BulletHeight  float64
	OffsetX       float64 // Horizontal offset from the player's left edge
}

// CompanionTypes lists the archetypes a companion power-up picks from.
var CompanionTypes = []CompanionType{
	{Color: "#0ff", ShootInterval: 500 * time.Millisecond, BulletSpeed: 6, BulletWidth: 4, BulletHeight: 10, OffsetX: -30},
	{Color: "#ff0", ShootInterval: 700 * time.Millisecond, BulletSpeed: 5, BulletWidth: 6, BulletHeight: 12, OffsetX: 30},
	{Color: "#f0f", ShootInterval: 1000 * time.Millisecond, BulletSpeed: 8, BulletWidth: 3, BulletHeight: 8, OffsetX: 0},
}

// Companion escorts the player above its ship and fires on its own timer.
type Companion struct {
	CompanionType
	X, Y          float64
	Width, Height float64
	Gap           float64 // Vertical space between companion and player
	LastShot      time.Time
	ExpiresAt     time.Time
	Bullets       []*Bullet
}

// NewCompanion creates a companion that lives until expires.
func NewCompanion(t CompanionType, p *Player, size, gap float64, expires time.Time) *Companion {
	c := &Companion{
		CompanionType: t,
		Width:         size,
		Height:        size,
		Gap:           gap,
		ExpiresAt:     expires,
	}
	c.Follow(p)
	return c
}

// Follow snaps the companion to its slot relative to the player.
func (c *Companion) Follow(p *Player) {
	c.X = p.X + c.OffsetX
	c.Y = p.Y - c.Height - c.Gap
}

// Update follows the player, fires when the interval has strictly elapsed
// and moves the companion's bullets, dropping those off the top.
func (c *Companion) Update(p *Player, now time.Time) {
	c.Follow(p)

	if c.LastShot.IsZero() || now.Sub(c.LastShot) > c.ShootInterval {
		c.Bullets = append(c.Bullets, NewBullet(
			c.X+c.Width/2-c.BulletWidth/2, c.Y,
			c.BulletWidth, c.BulletHeight,
			0, -c.BulletSpeed, 0,
		))
		c.LastShot = now
	}

	for _, b := range c.Bullets {
		b.X += b.DX
		b.Y += b.DY
		if b.Y+b.Height < 0 {
			b.MarkDestroyed()
		}
	}
	c.Bullets = Compact(c.Bullets)
}

// Expired reports whether the companion's lifetime is over.
func (c *Companion) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Remaining returns the lifetime left, never negative.
func (c *Companion) Remaining(now time.Time) time.Duration {
	return max(c.ExpiresAt.Sub(now), 0)
}

func (c *Companion) Bounds() physics.Rect {
	return physics.Rect{X: c.X, Y: c.Y, W: c.Width, H: c.Height}
}

// Draw renders the companion as a diamond and its bullets, all in its colour.
func (c *Companion) Draw(s draw.Surface) {
	s.SetFillStyle(c.Color)
	cx, cy := c.Bounds().Center()
	s.FillPath(draw.Diamond(cx, cy, math.Min(c.Width, c.Height)/2))
	for _, b := range c.Bullets {
		b.Draw(s)
	}
}
