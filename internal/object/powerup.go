package object

import (
	"math/rand"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/physics"
)

// Kind is what a power-up grants on pickup.
type Kind string

const (
	KindHealth    Kind = "health"
	KindCompanion Kind = "companion"
	KindSpread    Kind = "spread"
	KindBounce    Kind = "bounce"
)

// Kinds lists every power-up kind; the general spawner picks uniformly.
var Kinds = []Kind{KindHealth, KindCompanion, KindSpread, KindBounce}

var kindColors = map[Kind]string{
	KindHealth:    "#ff69b4",
	KindCompanion: "#da70d6",
	KindSpread:    "#ffa500",
	KindBounce:    "#7cfc00",
}

// Color returns the fill colour for the kind.
func (k Kind) Color() string {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return "#ff69b4"
}

// PowerUp is a falling pickup.
type PowerUp struct {
	destructible
	X, Y  float64 // Top-left corner
	Size  float64
	Speed float64
	Kind  Kind
}

// NewPowerUp creates a power-up of the given kind just above the arena.
func NewPowerUp(rng *rand.Rand, arena Arena, kind Kind, size, speed float64) *PowerUp {
	return &PowerUp{
		X:     randomRange(rng, 0, arena.Width-size),
		Y:     -size,
		Size:  size,
		Speed: speed,
		Kind:  kind,
	}
}

// Update moves the power-up down and reports whether it left the arena.
func (p *PowerUp) Update(arena Arena) (remove bool) {
	p.Y += p.Speed
	return p.Y > arena.Height
}

func (p *PowerUp) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

func (p *PowerUp) Draw(s draw.Surface) {
	s.SetFillStyle(p.Kind.Color())
	cx, cy := p.Bounds().Center()
	s.FillArc(cx, cy, p.Size/2)
}
