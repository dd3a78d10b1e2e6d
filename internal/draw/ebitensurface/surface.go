// Package ebitensurface draws the game into an ebiten image for the desktop
// and wasm builds.
package ebitensurface

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/skyshooter/internal/draw"
)

// debugGlyphHeight is the height of ebitenutil's debug font.
const debugGlyphHeight = 16

// whiteSubImage is the source texture for DrawTriangles, created on first use.
func whiteSubImage() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Surface adapts an ebiten image to draw.Surface. Call Target each frame
// with the screen ebiten hands to Draw.
type Surface struct {
	dst      *ebiten.Image
	white    *ebiten.Image
	fill     color.NRGBA
	fontSize float64

	vs []ebiten.Vertex
	is []uint16
}

var _ draw.Surface = (*Surface)(nil)

// New returns a surface with a white fill and no target.
func New() *Surface {
	return &Surface{fill: color.NRGBA{R: 255, G: 255, B: 255, A: 255}, fontSize: debugGlyphHeight}
}

// Target sets the image subsequent calls draw on.
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Surface) Clear() {
	s.dst.Fill(color.Black)
}

func (s *Surface) SetFillStyle(style string) {
	s.fill = draw.ParseColor(style)
}

func (s *Surface) SetFont(font string) {
	s.fontSize = draw.FontSize(font, debugGlyphHeight)
}

func (s *Surface) FillRect(x, y, w, h float64) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), s.fill, false)
}

func (s *Surface) FillArc(cx, cy, r float64) {
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), s.fill, true)
}

func (s *Surface) FillPath(points []draw.Point) {
	if len(points) < 3 {
		return
	}
	if s.white == nil {
		s.white = whiteSubImage()
	}
	s.vs, s.is = fillVertices(s.vs[:0], s.is[:0], points, s.fill)
	s.dst.DrawTriangles(s.vs, s.is, s.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// FillText uses the debug font, which is white and fixed size; the font size
// only shifts the baseline.
func (s *Surface) FillText(text string, x, y float64) {
	ebitenutil.DebugPrintAt(s.dst, text, int(x), int(y-s.fontSize))
}

// fillVertices triangulates a closed polygon and tints it with c.
func fillVertices(vs []ebiten.Vertex, is []uint16, points []draw.Point, c color.NRGBA) ([]ebiten.Vertex, []uint16) {
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	start := len(vs)
	vs, is = path.AppendVerticesAndIndicesForFilling(vs, is)

	// Vertex colours are premultiplied.
	a := float32(c.A) / 255
	r := float32(c.R) / 255 * a
	g := float32(c.G) / 255 * a
	b := float32(c.B) / 255 * a
	for i := start; i < len(vs); i++ {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	return vs, is
}
