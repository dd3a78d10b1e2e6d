package object

import (
	"strconv"
	"sync"
	"time"

	"github.com/tomz197/skyshooter/internal/draw"
)

// explosionPool is a sync.Pool for reusing Explosion objects to reduce allocations.
var explosionPool = sync.Pool{
	New: func() any {
		return &Explosion{}
	},
}

// Explosion is a short-lived visual effect: an orange disc that grows while
// fading out.
type Explosion struct {
	destructible
	X, Y     float64 // Centre
	Radius   float64
	Start    time.Time
	Duration time.Duration
}

// NewExplosion takes an explosion from the pool.
func NewExplosion(x, y, radius float64, start time.Time, duration time.Duration) *Explosion {
	e := explosionPool.Get().(*Explosion)
	*e = Explosion{X: x, Y: y, Radius: radius, Start: start, Duration: duration}
	return e
}

// Release returns the explosion to the pool for reuse.
// Should be called when the explosion is removed from the game.
func (e *Explosion) Release() {
	explosionPool.Put(e)
}

// Alive reports whether the effect is still playing.
func (e *Explosion) Alive(now time.Time) bool {
	return now.Sub(e.Start) < e.Duration
}

// Alpha is the opacity at now: 1 at start, 0 at the end.
func (e *Explosion) Alpha(now time.Time) float64 {
	if e.Duration <= 0 {
		return 0
	}
	a := 1 - float64(now.Sub(e.Start))/float64(e.Duration)
	return min(max(a, 0), 1)
}

// Draw renders the explosion at its state for now.
func (e *Explosion) Draw(s draw.Surface, now time.Time) {
	alpha := e.Alpha(now)
	r := e.Radius * (1 - alpha)
	if r <= 0 || alpha <= 0 {
		return
	}
	s.SetFillStyle("rgba(255, 69, 0, " + strconv.FormatFloat(alpha, 'f', 3, 64) + ")")
	s.FillArc(e.X, e.Y, r)
}
