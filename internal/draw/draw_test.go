package draw

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#0ff", color.NRGBA{0, 255, 255, 255}},
		{"#a00", color.NRGBA{170, 0, 0, 255}},
		{"#ff69b4", color.NRGBA{255, 105, 180, 255}},
		{"red", color.NRGBA{255, 0, 0, 255}},
		{"Cyan", color.NRGBA{0, 255, 255, 255}},
		{"rgba(255, 69, 0, 0.5)", color.NRGBA{255, 69, 0, 128}},
		{"rgb(1,2,3)", color.NRGBA{1, 2, 3, 255}},
		{"rgba(255, 69, 0, -1)", color.NRGBA{255, 69, 0, 0}},
		{"not-a-colour", color.NRGBA{255, 255, 255, 255}},
		{"#12", color.NRGBA{255, 255, 255, 255}},
	}
	for _, tc := range tests {
		if got := ParseColor(tc.in); got != tc.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseColorTranslucentPremultipliesOnRead(t *testing.T) {
	c := ParseColor("rgba(255, 69, 0, 0.5)")
	r, g, b, a := c.RGBA()
	if r > a || g > a || b > a {
		t.Errorf("Expected premultiplied channels at most alpha, got r=%d g=%d b=%d a=%d", r, g, b, a)
	}
	if r < a-257 {
		t.Errorf("Expected full red at half alpha, got r=%d a=%d", r, a)
	}
}

func TestBlend(t *testing.T) {
	dst := color.NRGBA{0, 0, 0, 255}
	src := color.NRGBA{200, 100, 50, 128}
	got := Blend(dst, src)
	if got.A != 255 || got.R < 99 || got.R > 101 || got.G < 49 || got.G > 51 {
		t.Errorf("Unexpected blend result %v", got)
	}
	if opaque := Blend(dst, color.NRGBA{1, 2, 3, 255}); opaque != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("Opaque source should replace destination, got %v", opaque)
	}
}

func TestHeartStaysInsideBox(t *testing.T) {
	pts := Heart(10, 10, 20)
	if len(pts) != 4*heartSteps {
		t.Fatalf("Expected %d points, got %d", 4*heartSteps, len(pts))
	}
	for _, p := range pts {
		const eps = 1e-9
		if p.X < 10-eps || p.X > 30+eps || p.Y < 10-eps || p.Y > 30+eps {
			t.Errorf("Heart point %v outside its 20px box", p)
		}
	}
	if pts[0] != (Point{X: 20, Y: 14}) {
		t.Errorf("Expected heart to start at (20,14), got %v", pts[0])
	}
}

func TestTriangleAndDiamond(t *testing.T) {
	tri := Triangle(0, 0, 40, 40)
	if tri[0] != (Point{20, 0}) || tri[1] != (Point{0, 40}) || tri[2] != (Point{40, 40}) {
		t.Errorf("Unexpected triangle %v", tri)
	}
	d := Diamond(15, 15, 15)
	if len(d) != 4 || d[0] != (Point{15, 0}) || d[2] != (Point{15, 30}) {
		t.Errorf("Unexpected diamond %v", d)
	}
}

func TestFontSize(t *testing.T) {
	if got := FontSize("20px Orbitron, sans-serif", 16); got != 20 {
		t.Errorf("Expected 20, got %v", got)
	}
	if got := FontSize("bold sans-serif", 16); got != 16 {
		t.Errorf("Expected fallback 16, got %v", got)
	}
}

func TestCanvasFillRect(t *testing.T) {
	// 1:1 scale horizontally, 2 sub-pixels per row vertically.
	c := NewScaledCanvas(10, 5, 10, 10)
	c.SetFillStyle("#ff0")
	c.FillRect(2, 2, 3, 4)

	if p, ok := c.PixelAt(2, 2); !ok || p != (color.NRGBA{255, 255, 0, 255}) {
		t.Errorf("Expected yellow pixel at (2,2), got %v %v", p, ok)
	}
	if _, ok := c.PixelAt(5, 2); ok {
		t.Error("Expected pixel (5,2) outside the rectangle to stay empty")
	}
	if _, ok := c.PixelAt(4, 5); !ok {
		t.Error("Expected pixel (4,5) inside the rectangle to be set")
	}

	c.Clear()
	if _, ok := c.PixelAt(2, 2); ok {
		t.Error("Expected Clear to empty the canvas")
	}
}

func TestCanvasTinyShapesStayVisible(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.SetFillStyle("#f00")
	c.FillArc(55, 55, 2)
	if _, ok := c.PixelAt(5, 5); !ok {
		t.Error("Expected a sub-pixel circle to mark its centre pixel")
	}
	c.FillRect(0, 0, 1, 1)
	if _, ok := c.PixelAt(0, 0); !ok {
		t.Error("Expected a sub-pixel rectangle to mark one pixel")
	}
}

func TestCanvasRenderIncludesColoursAndText(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFillStyle("#0ff")
	c.FillRect(0, 0, 1, 2)
	c.SetFont("2px sans-serif")
	c.FillText("Hi", 1, 3)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	if !strings.Contains(out, "\033[38;2;0;255;255m"+string(BlockFull)) {
		t.Errorf("Expected a cyan full block in output, got %q", out)
	}
	if !strings.Contains(out, "Hi") {
		t.Errorf("Expected text overlay in output, got %q", out)
	}
}

func TestRecorderReplay(t *testing.T) {
	var src Recorder
	src.Clear()
	src.SetFillStyle("#f00")
	src.FillRect(1, 2, 3, 4)
	src.FillArc(5, 6, 7)
	src.FillPath(Triangle(0, 0, 10, 10))
	src.SetFont("18px sans-serif")
	src.FillText("Score: 1", 8, 9)

	var dst Recorder
	src.Replay(&dst)

	if len(dst.Commands) != len(src.Commands) {
		t.Fatalf("Expected %d commands, got %d", len(src.Commands), len(dst.Commands))
	}
	for i := range src.Commands {
		a, b := src.Commands[i], dst.Commands[i]
		if a.Op != b.Op || a.Value != b.Value || a.X != b.X || a.R != b.R || len(a.Points) != len(b.Points) {
			t.Errorf("Command %d differs after replay: %+v vs %+v", i, a, b)
		}
	}
	if dst.Count(OpPath) != 1 || len(dst.Commands[4].Points) != 6 {
		t.Errorf("Expected one triangle path with 6 coordinates, got %+v", dst.Commands[4])
	}

	src.Reset()
	if len(src.Commands) != 0 {
		t.Error("Expected Reset to drop commands")
	}
}
