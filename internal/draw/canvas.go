package draw

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block
// characters. It implements Surface, scaling from logical (arena) coordinates
// to actual terminal pixels.
type Canvas struct {
	termWidth      int           // Actual terminal columns
	termHeight     int           // Actual terminal rows
	subPixelHeight int           // termHeight * 2
	pixels         []color.NRGBA // Flat slice: [y * termWidth + x]; A == 0 means empty

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	fill     color.NRGBA
	fontSize float64
	texts    []textOverlay

	// Reusable buffers to reduce allocations
	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// textOverlay is text placed on top of the pixel layer.
type textOverlay struct {
	col, row int
	text     string
	color    color.NRGBA
}

// circleSegments is the polygon resolution used for FillArc.
const circleSegments = 20

// defaultFontSize is used until SetFont is called.
const defaultFontSize = 16

var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		fill:          color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		fontSize:      defaultFontSize,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]color.NRGBA, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels and text overlays.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.texts = c.texts[:0]
}

// SetFillStyle sets the colour used by subsequent fills.
func (c *Canvas) SetFillStyle(style string) {
	c.fill = ParseColor(style)
}

// SetFont records the font size; terminals have a single glyph size, so the
// size only affects vertical placement of text.
func (c *Canvas) SetFont(font string) {
	c.fontSize = FontSize(font, defaultFontSize)
}

// PixelAt returns the colour stored at actual pixel coordinates.
func (c *Canvas) PixelAt(x, y int) (color.NRGBA, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.NRGBA{}, false
	}
	p := c.pixels[y*c.termWidth+x]
	return p, p.A != 0
}

// setPixel blends the fill colour into a pixel at actual terminal coordinates.
func (c *Canvas) setPixel(x, y int) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight || c.fill.A == 0 {
		return
	}
	i := y*c.termWidth + x
	c.pixels[i] = Blend(c.pixels[i], c.fill)
}

// FillRect fills a rectangle given in logical coordinates. Any non-empty
// rectangle covers at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Floor(x * c.scaleX))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py)
		}
	}
}

// FillArc fills a circle given in logical coordinates.
func (c *Canvas) FillArc(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	c.polygonBuf = Circle(c.polygonBuf[:0], cx, cy, r, circleSegments)
	c.FillPath(c.polygonBuf)
}

// FillPath fills a polygon. Shapes smaller than a pixel still mark the pixel
// under their bounding-box centre so tiny entities stay visible.
func (c *Canvas) FillPath(points []Point) {
	if len(points) == 0 {
		return
	}
	if len(points) < 3 || c.fillPolygon(points) == 0 {
		minX, minY, maxX, maxY := bounds(points)
		c.setPixel(int(math.Floor((minX+maxX)/2*c.scaleX)), int(math.Floor((minY+maxY)/2*c.scaleY)))
	}
}

// FillText queues text to be drawn over the pixel layer at Render time.
func (c *Canvas) FillText(text string, x, y float64) {
	// (x, y) is the baseline; place the row halfway up the glyph box.
	col, row := c.LogicalToTerminal(x, y-c.fontSize/2)
	c.texts = append(c.texts, textOverlay{col: col, row: row, text: text, color: c.fill})
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling. Returns the number of pixels set.
func (c *Canvas) fillPolygon(points []Point) int {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))
	filled := 0

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] - 0.5))
			xEnd := int(math.Floor(intersections[i+1] - 0.5))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
				filled++
			}
		}
	}
	return filled
}

func bounds(points []Point) (minX, minY, maxX, maxY float64) {
	minX, minY = points[0].X, points[0].Y
	maxX, maxY = minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// cellStyle is the colour state of one terminal cell.
type cellStyle struct {
	fg, bg       color.NRGBA
	hasFg, hasBg bool
}

// Render outputs the canvas to the writer using half-block characters.
// Every cell is rewritten, so no screen clear is needed between frames.
func (c *Canvas) Render(w io.Writer) {
	buf := c.renderBuf[:0]

	for row := 0; row < c.termHeight; row++ {
		buf = appendCursor(buf, row+1+c.offsetRow, 1+c.offsetCol)
		cur := cellStyle{}

		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			var style cellStyle
			switch {
			case top.A != 0 && bottom.A != 0 && top == bottom:
				ch, style = BlockFull, cellStyle{fg: top, hasFg: true}
			case top.A != 0 && bottom.A != 0:
				ch, style = BlockUpperHalf, cellStyle{fg: top, bg: bottom, hasFg: true, hasBg: true}
			case top.A != 0:
				ch, style = BlockUpperHalf, cellStyle{fg: top, hasFg: true}
			case bottom.A != 0:
				ch, style = BlockLowerHalf, cellStyle{fg: bottom, hasFg: true}
			default:
				ch = ' '
			}

			if style != cur {
				buf = append(buf, ColorReset...)
				if style.hasFg {
					buf = appendFg(buf, style.fg)
				}
				if style.hasBg {
					buf = appendBg(buf, style.bg)
				}
				cur = style
			}
			buf = appendRune(buf, ch)
		}
		buf = append(buf, ColorReset...)
	}

	for _, t := range c.texts {
		if t.row < 1 || t.row > c.termHeight {
			continue
		}
		col := max(t.col, 1)
		text := t.text
		if room := c.termWidth - col + 1; room < len(text) {
			if room <= 0 {
				continue
			}
			text = text[:room]
		}
		buf = appendCursor(buf, t.row+c.offsetRow, col+c.offsetCol)
		buf = appendFg(buf, t.color)
		buf = append(buf, text...)
		buf = append(buf, ColorReset...)
	}
	c.renderBuf = buf

	// Write output in chunks for optimal network flow
	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		w.Write(chunk)
		buf = buf[len(chunk):]
	}
}

func appendCursor(b []byte, row, col int) []byte {
	b = append(b, "\033["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	return append(b, 'H')
}

func appendRune(b []byte, r rune) []byte {
	if r < 0x80 {
		return append(b, byte(r))
	}
	return append(b, string(r)...)
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the render area on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// FontSize extracts the pixel size from a CSS font string such as
// "20px Orbitron, sans-serif". Returns fallback when none is present.
func FontSize(font string, fallback float64) float64 {
	for _, field := range strings.Fields(font) {
		if num, ok := strings.CutSuffix(field, "px"); ok {
			if v, err := strconv.ParseFloat(num, 64); err == nil && v > 0 {
				return v
			}
		}
	}
	return fallback
}
