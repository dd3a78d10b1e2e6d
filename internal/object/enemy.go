package object

import (
	"math/rand"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/physics"
)

// Pattern is an enemy's movement style.
type Pattern string

const (
	PatternStraight Pattern = "straight"
	PatternZigzag   Pattern = "zigzag"
	PatternFast     Pattern = "fast"
)

// EnemyType is a spawnable enemy archetype.
type EnemyType struct {
	MinSize, MaxSize   float64
	MinSpeed, MaxSpeed float64
	Color              string
	Pattern            Pattern
}

// EnemyTypes lists the archetypes SpawnEnemy picks from uniformly.
var EnemyTypes = []EnemyType{
	{MinSize: 20, MaxSize: 30, MinSpeed: 1.5, MaxSpeed: 2.5, Color: "#f00", Pattern: PatternStraight},
	{MinSize: 30, MaxSize: 50, MinSpeed: 1, MaxSpeed: 1.8, Color: "#a00", Pattern: PatternZigzag},
	{MinSize: 15, MaxSize: 25, MinSpeed: 2, MaxSpeed: 3, Color: "#f55", Pattern: PatternFast},
}

// Enemy is a descending hostile, drawn as a circle inscribed in its box.
type Enemy struct {
	destructible
	X, Y      float64 // Top-left corner
	Size      float64
	Speed     float64 // Pixels per tick
	Color     string
	Pattern   Pattern
	ZigzagDir float64 // +1 or -1
}

// NewEnemy creates an enemy of the given archetype just above the arena.
func NewEnemy(rng *rand.Rand, arena Arena, t EnemyType) *Enemy {
	size := randomRange(rng, t.MinSize, t.MaxSize)
	return &Enemy{
		X:         randomRange(rng, 0, arena.Width-size),
		Y:         -size,
		Size:      size,
		Speed:     randomRange(rng, t.MinSpeed, t.MaxSpeed),
		Color:     t.Color,
		Pattern:   t.Pattern,
		ZigzagDir: 1,
	}
}

// NewRandomEnemy picks an archetype uniformly.
func NewRandomEnemy(rng *rand.Rand, arena Arena) *Enemy {
	return NewEnemy(rng, arena, EnemyTypes[rng.Intn(len(EnemyTypes))])
}

// Update moves the enemy and reports whether it fell past the bottom edge.
func (e *Enemy) Update(arena Arena) (escaped bool) {
	if e.Pattern == PatternZigzag {
		e.X += e.Speed * e.ZigzagDir
		if e.X <= 0 || e.X+e.Size >= arena.Width {
			e.ZigzagDir = -e.ZigzagDir
		}
	}
	e.Y += e.Speed
	return e.Y > arena.Height
}

func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.Size, H: e.Size}
}

func (e *Enemy) Center() (x, y float64) {
	return e.Bounds().Center()
}

func (e *Enemy) Draw(s draw.Surface) {
	s.SetFillStyle(e.Color)
	cx, cy := e.Center()
	s.FillArc(cx, cy, e.Size/2)
}

// randomRange returns a uniform value in [lo, hi).
func randomRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
