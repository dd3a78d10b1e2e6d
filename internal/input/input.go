package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report key repeats rather than releases, so this must outlast the
// gap between auto-repeat events.
const keyHoldDuration = 100 * time.Millisecond

// Input represents the current frame's input state.
// Movement and Fire are held keys; Charge, Restart and Quit are one-shot actions.
type Input struct {
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Fire    bool
	Charge  bool
	Restart bool
	Quit    bool
	Pressed []byte
}

// Moving reports whether any directional key is held.
func (in Input) Moving() bool {
	return in.Left || in.Right || in.Up || in.Down
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// A closed stream (disconnected terminal) reports Quit.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := parse(&s.state, buf, now)
	if closed {
		in.Quit = true
	}
	return in
}

// parse folds a batch of raw terminal bytes into the key state and returns the
// resulting frame input.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
			case 'B':
				state.down = now
			case 'C':
				state.right = now
			case 'D':
				state.left = now
			}
			i += 2
			continue
		}

		switch b {
		case 'q', 'Q', 0x03: // Ctrl+C in raw mode
			in.Quit = true
		case 'a', 'A':
			state.left = now
		case 'd', 'D':
			state.right = now
		case 'w', 'W':
			state.up = now
		case 's', 'S':
			state.down = now
		case ' ', 'j', 'J':
			state.fire = now
		case 'h', 'H':
			in.Charge = true
		case 'r', 'R', '\n', '\r':
			in.Restart = true
		}
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	in.Fire = now.Sub(state.fire) < keyHoldDuration
	return in
}

// ResetKeyInput forgets held keys, so a key used to restart does not also
// move or fire in the first frame of the new game.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}
