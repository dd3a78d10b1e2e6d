package draw

// Op identifies a recorded drawing operation.
type Op string

const (
	OpClear Op = "clear"
	OpStyle Op = "style"
	OpFont  Op = "font"
	OpRect  Op = "rect"
	OpArc   Op = "arc"
	OpPath  Op = "path"
	OpText  Op = "text"
)

// Command is a single recorded Surface call. The field set depends on Op;
// Points holds path vertices flattened as x0, y0, x1, y1, ...
type Command struct {
	Op     Op        `msgpack:"op"`
	Value  string    `msgpack:"v,omitempty"` // style, font or text
	X      float64   `msgpack:"x,omitempty"`
	Y      float64   `msgpack:"y,omitempty"`
	W      float64   `msgpack:"w,omitempty"`
	H      float64   `msgpack:"h,omitempty"`
	R      float64   `msgpack:"r,omitempty"`
	Points []float64 `msgpack:"p,omitempty"`
}

// Recorder is a Surface that keeps the calls made on it so they can be
// replayed elsewhere (a browser canvas) or inspected in tests.
type Recorder struct {
	Commands []Command
}

var _ Surface = (*Recorder)(nil)

// Reset drops recorded commands, keeping the backing array.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

func (r *Recorder) Clear() {
	r.Commands = append(r.Commands, Command{Op: OpClear})
}

func (r *Recorder) SetFillStyle(style string) {
	r.Commands = append(r.Commands, Command{Op: OpStyle, Value: style})
}

func (r *Recorder) SetFont(font string) {
	r.Commands = append(r.Commands, Command{Op: OpFont, Value: font})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.Commands = append(r.Commands, Command{Op: OpRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) FillArc(cx, cy, radius float64) {
	r.Commands = append(r.Commands, Command{Op: OpArc, X: cx, Y: cy, R: radius})
}

func (r *Recorder) FillPath(points []Point) {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	r.Commands = append(r.Commands, Command{Op: OpPath, Points: flat})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.Commands = append(r.Commands, Command{Op: OpText, Value: text, X: x, Y: y})
}

// Count returns how many commands of the given kind were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Replay issues the recorded commands on another surface.
func (r *Recorder) Replay(s Surface) {
	for _, c := range r.Commands {
		switch c.Op {
		case OpClear:
			s.Clear()
		case OpStyle:
			s.SetFillStyle(c.Value)
		case OpFont:
			s.SetFont(c.Value)
		case OpRect:
			s.FillRect(c.X, c.Y, c.W, c.H)
		case OpArc:
			s.FillArc(c.X, c.Y, c.R)
		case OpPath:
			points := make([]Point, 0, len(c.Points)/2)
			for i := 0; i+1 < len(c.Points); i += 2 {
				points = append(points, Point{X: c.Points[i], Y: c.Points[i+1]})
			}
			s.FillPath(points)
		case OpText:
			s.FillText(c.Value, c.X, c.Y)
		}
	}
}
