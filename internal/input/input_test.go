package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

var t0 = time.Unix(1_000, 0)

func TestParseArrowKeys(t *testing.T) {
	var st keyState
	in := parse(&st, []byte("\x1b[A\x1b[D"), t0)
	if !in.Up || !in.Left {
		t.Errorf("Expected up and left held, got %+v", in)
	}
	if in.Down || in.Right || in.Fire {
		t.Errorf("Unexpected keys held %+v", in)
	}
	if !in.Moving() {
		t.Error("Expected Moving to report true")
	}
}

func TestParseLetters(t *testing.T) {
	tests := []struct {
		name  string
		keys  string
		check func(Input) bool
	}{
		{"wasd", "wasd", func(in Input) bool { return in.Up && in.Left && in.Down && in.Right }},
		{"space fires", " ", func(in Input) bool { return in.Fire }},
		{"j fires", "j", func(in Input) bool { return in.Fire }},
		{"h charges", "h", func(in Input) bool { return in.Charge }},
		{"r restarts", "r", func(in Input) bool { return in.Restart }},
		{"enter restarts", "\r", func(in Input) bool { return in.Restart }},
		{"q quits", "q", func(in Input) bool { return in.Quit }},
		{"ctrl-c quits", "\x03", func(in Input) bool { return in.Quit }},
	}
	for _, tc := range tests {
		var st keyState
		if in := parse(&st, []byte(tc.keys), t0); !tc.check(in) {
			t.Errorf("%s: unexpected input %+v", tc.name, in)
		}
	}
}

func TestHeldKeysExpire(t *testing.T) {
	var st keyState
	parse(&st, []byte("a "), t0)

	in := parse(&st, nil, t0.Add(keyHoldDuration/2))
	if !in.Left || !in.Fire {
		t.Errorf("Expected keys still held, got %+v", in)
	}
	if in.Charge || in.Restart {
		t.Error("Expected one-shot actions not to repeat")
	}

	in = parse(&st, nil, t0.Add(keyHoldDuration))
	if in.Left || in.Fire {
		t.Errorf("Expected keys released after hold duration, got %+v", in)
	}
}

func TestReadInputFromStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d")))

	deadline := time.Now().Add(time.Second)
	var in Input
	for time.Now().Before(deadline) {
		in = ReadInput(s)
		if in.Quit {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !in.Quit {
		t.Fatal("Expected closed stream to report quit")
	}

	ResetKeyInput(s)
	if in := ReadInput(s); in.Right {
		t.Error("Expected reset to release held keys")
	}
	ResetKeyInput(nil)
}
