package object

import (
	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/input"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Arena is the playfield size in logical pixels. Origin is the top-left
// corner and y grows downwards.
type Arena struct {
	Width, Height float64
}

// Drawable is an entity that can paint itself on a surface.
type Drawable interface {
	Draw(s draw.Surface)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// destructible is embedded by entities to satisfy Destructible.
type destructible struct {
	destroyed bool
}

func (d *destructible) MarkDestroyed() { d.destroyed = true }

func (d *destructible) IsDestroyed() bool { return d.destroyed }

// Compact removes destroyed entities in place and returns the shortened
// slice. Pooled entities are released. Order of survivors is kept.
func Compact[T Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if it.IsDestroyed() {
			if r, ok := any(it).(Releasable); ok {
				r.Release()
			}
			continue
		}
		kept = append(kept, it)
	}
	// Drop references held past the new length.
	clear(items[len(kept):])
	return kept
}
