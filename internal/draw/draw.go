// Package draw provides the rendering surface the game draws onto and its
// terminal, recording and shape helpers.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Surface accepts canvas-style fill primitives. Fill style and font are
// stateful: they apply to every following fill until changed.
type Surface interface {
	// Clear wipes the whole surface.
	Clear()
	// SetFillStyle sets the fill colour (CSS notation, see ParseColor).
	SetFillStyle(style string)
	// SetFont sets the font used by FillText (CSS notation, e.g. "20px sans-serif").
	SetFont(font string)
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64)
	// FillArc fills a full circle.
	FillArc(cx, cy, r float64)
	// FillPath fills a closed polygon.
	FillPath(points []Point)
	// FillText draws text with its baseline-left corner at (x, y).
	FillText(text string, x, y float64)
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)
