package draw

import "math"

// Triangle returns an upward-pointing triangle inscribed in the box.
func Triangle(x, y, w, h float64) []Point {
	return []Point{
		{X: x + w/2, Y: y},
		{X: x, Y: y + h},
		{X: x + w, Y: y + h},
	}
}

// Diamond returns a rhombus centred on (cx, cy) reaching size in each direction.
func Diamond(cx, cy, size float64) []Point {
	return []Point{
		{X: cx, Y: cy - size},
		{X: cx - size, Y: cy},
		{X: cx, Y: cy + size},
		{X: cx + size, Y: cy},
	}
}

// Circle approximates a circle with n vertices, appending to dst.
func Circle(dst []Point, cx, cy, r float64, n int) []Point {
	if n < 3 {
		n = 3
	}
	for i := 0; i < n; i++ {
		a := float64(i) * 2 * math.Pi / float64(n)
		dst = append(dst, Point{X: cx + math.Cos(a)*r, Y: cy + math.Sin(a)*r})
	}
	return dst
}

// heartSteps is the number of samples per Bézier segment of a heart.
const heartSteps = 6

// Heart returns the outline of a heart icon whose bounding box starts at
// (x, y) and is size wide and tall. The outline is four cubic Bézier
// segments sampled into a polygon.
func Heart(x, y, size float64) []Point {
	s := size
	start := Point{X: x + s/2, Y: y + s/5}
	segments := [4][3]Point{
		{{X: x + s/2, Y: y}, {X: x, Y: y}, {X: x, Y: y + s/3}},
		{{X: x, Y: y + s*2/3}, {X: x + s/2, Y: y + s*4/5}, {X: x + s/2, Y: y + s}},
		{{X: x + s/2, Y: y + s*4/5}, {X: x + s, Y: y + s*2/3}, {X: x + s, Y: y + s/3}},
		{{X: x + s, Y: y}, {X: x + s/2, Y: y}, {X: x + s/2, Y: y + s/5}},
	}

	points := make([]Point, 0, 1+len(segments)*heartSteps)
	points = append(points, start)
	p0 := start
	for _, seg := range segments {
		for i := 1; i <= heartSteps; i++ {
			t := float64(i) / heartSteps
			points = append(points, cubic(p0, seg[0], seg[1], seg[2], t))
		}
		p0 = seg[2]
	}
	// Last sample duplicates the start point.
	return points[:len(points)-1]
}

// cubic evaluates a cubic Bézier curve at t.
func cubic(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
