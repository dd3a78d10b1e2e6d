package object

import (
	"time"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/physics"
)

// Player colours. The ship is tinted while a firing mode is active.
const (
	PlayerColor        = "#0ff"
	PlayerPoweredColor = "#7fffd4"
)

// Player is the ship at the bottom of the arena.
type Player struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	Speed         float64 // Pixels per tick on each held axis

	ShootCooldown time.Duration
	LastShot      time.Time
	CanShoot      bool
}

// NewPlayer creates a player horizontally centred, margin pixels above the
// bottom edge.
func NewPlayer(arena Arena, width, height, speed, margin float64, cooldown time.Duration) *Player {
	return &Player{
		X:             arena.Width/2 - width/2,
		Y:             arena.Height - height - margin,
		Width:         width,
		Height:        height,
		Speed:         speed,
		ShootCooldown: cooldown,
		CanShoot:      true,
	}
}

// Move applies held directions and keeps the ship inside the arena.
func (p *Player) Move(in Input, arena Arena) {
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}
	if in.Up {
		p.Y -= p.Speed
	}
	if in.Down {
		p.Y += p.Speed
	}
	p.X = physics.Clamp(p.X, 0, arena.Width-p.Width)
	p.Y = physics.Clamp(p.Y, 0, arena.Height-p.Height)
}

// Ready reports whether the cooldown has strictly elapsed since the last shot.
func (p *Player) Ready(now time.Time) bool {
	if !p.CanShoot {
		return false
	}
	return p.LastShot.IsZero() || now.Sub(p.LastShot) > p.ShootCooldown
}

// Muzzle returns the top-left corner for a bullet of the given width.
func (p *Player) Muzzle(bulletWidth float64) (x, y float64) {
	return p.X + p.Width/2 - bulletWidth/2, p.Y
}

func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

func (p *Player) Center() (x, y float64) {
	return p.Bounds().Center()
}

// Draw renders the ship as an upward triangle.
func (p *Player) Draw(s draw.Surface, powered bool) {
	if powered {
		s.SetFillStyle(PlayerPoweredColor)
	} else {
		s.SetFillStyle(PlayerColor)
	}
	s.FillPath(draw.Triangle(p.X, p.Y, p.Width, p.Height))
}
