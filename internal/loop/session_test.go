package loop

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyshooter/internal/draw"
	"github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/object"
	"github.com/tomz197/skyshooter/internal/score"
)

func TestSchedulerFiresOncePerInterval(t *testing.T) {
	now := testStart
	paused := false
	s := NewScheduler(func() bool { return paused })
	count := 0
	s.Every("tick", time.Second, now, func() { count++ })

	s.Run(now.Add(999 * time.Millisecond))
	if count != 0 {
		t.Fatalf("Expected no run before the first interval, got %d", count)
	}
	s.Run(now.Add(time.Second))
	if count != 1 {
		t.Fatalf("Expected one run at the interval, got %d", count)
	}
	s.Run(now.Add(1500 * time.Millisecond))
	if count != 1 {
		t.Errorf("Expected no extra run mid-interval, got %d", count)
	}
	s.Run(now.Add(3 * time.Second))
	if count != 3 {
		t.Errorf("Expected catch-up to 3 runs, got %d", count)
	}
}

func TestSchedulerBoundsCatchUp(t *testing.T) {
	s := NewScheduler(nil)
	count := 0
	s.Every("tick", time.Second, testStart, func() { count++ })

	later := testStart.Add(time.Minute)
	s.Run(later)
	if count != config.MaxCatchUp {
		t.Errorf("Expected %d runs after a stall, got %d", config.MaxCatchUp, count)
	}
	if next, _ := s.Next("tick"); !next.Equal(later.Add(time.Second)) {
		t.Errorf("Expected job re-armed after the stall, next=%v", next)
	}
}

func TestSchedulerSkipsWhilePaused(t *testing.T) {
	paused := true
	s := NewScheduler(func() bool { return paused })
	count := 0
	s.Every("tick", time.Second, testStart, func() { count++ })

	s.Run(testStart.Add(10 * time.Second))
	if count != 0 {
		t.Fatalf("Expected no runs while paused, got %d", count)
	}

	paused = false
	s.Run(testStart.Add(10*time.Second + 500*time.Millisecond))
	if count != 0 {
		t.Errorf("Expected no burst after resuming, got %d", count)
	}
	s.Run(testStart.Add(11 * time.Second))
	if count != 1 {
		t.Errorf("Expected one run an interval after resuming, got %d", count)
	}
}

func TestSchedulerReset(t *testing.T) {
	s := NewScheduler(nil)
	count := 0
	s.Every("tick", time.Second, testStart, func() { count++ })

	s.Reset(testStart.Add(900 * time.Millisecond))
	s.Run(testStart.Add(1500 * time.Millisecond))
	if count != 0 {
		t.Errorf("Expected reset to push the next run out, got %d", count)
	}
	if _, ok := s.Next("missing"); ok {
		t.Error("Expected unknown job lookup to fail")
	}
}

func newTestSession(clock *ManualClock) *Session {
	return NewSession(Options{
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(5)),
		Store:  &score.MemoryStore{},
		Logger: log.New(io.Discard),
	})
}

func TestSessionSpawnsOnSchedule(t *testing.T) {
	clock := NewManualClock(testStart)
	s := newTestSession(clock)

	clock.Advance(1499 * time.Millisecond)
	s.Frame(object.Input{})
	s.With(func(g *Game) {
		if len(g.Enemies) != 0 {
			t.Fatalf("Expected no enemy before 1500ms, got %d", len(g.Enemies))
		}
	})

	clock.Advance(time.Millisecond)
	s.Frame(object.Input{})
	s.With(func(g *Game) {
		if len(g.Enemies) != 1 {
			t.Fatalf("Expected one enemy at 1500ms, got %d", len(g.Enemies))
		}
	})

	for range 10 * config.TickRate {
		clock.Advance(config.TickTime)
		s.Frame(object.Input{})
		// Keep enemies from ending the game before the power-up is due.
		s.With(func(g *Game) { g.Enemies = nil })
	}
	s.With(func(g *Game) {
		if len(g.PowerUps) == 0 {
			t.Error("Expected a power-up after 10 seconds")
		}
	})
}

func TestSessionStopsSpawningAfterGameOver(t *testing.T) {
	clock := NewManualClock(testStart)
	s := newTestSession(clock)
	s.With(func(g *Game) {
		g.Health = 1
		g.damage()
	})
	if !s.GameOver() {
		t.Fatal("Expected game over")
	}

	clock.Advance(time.Minute)
	s.Frame(object.Input{})
	s.With(func(g *Game) {
		if len(g.Enemies) != 0 || len(g.PowerUps) != 0 {
			t.Error("Expected no spawns after game over")
		}
	})

	s.Restart()
	if s.GameOver() {
		t.Fatal("Expected restart to clear game over")
	}
	if st := s.Stats(); st.Health != 3 || st.Score != 0 {
		t.Errorf("Unexpected stats after restart %+v", st)
	}

	clock.Advance(1500 * time.Millisecond)
	s.Frame(object.Input{})
	s.With(func(g *Game) {
		if len(g.Enemies) != 1 {
			t.Errorf("Expected spawning to resume one interval after restart, got %d", len(g.Enemies))
		}
	})
}

func TestSessionConsumeChargeAndDraw(t *testing.T) {
	clock := NewManualClock(testStart)
	s := newTestSession(clock)
	s.With(func(g *Game) {
		g.Charges = 1
		g.Health = 2
	})
	if !s.ConsumeCharge() {
		t.Fatal("Expected charge converted")
	}
	if st := s.Stats(); st.Health != 3 || st.Charges != 0 {
		t.Errorf("Unexpected stats %+v", st)
	}

	var rec draw.Recorder
	s.Draw(&rec)
	if rec.Count(draw.OpClear) != 1 || rec.Count(draw.OpText) == 0 {
		t.Errorf("Expected a cleared frame with HUD text, got %d commands", len(rec.Commands))
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(testStart)
	if got := c.Advance(time.Second); !got.Equal(testStart.Add(time.Second)) {
		t.Errorf("Unexpected time after advance %v", got)
	}
	c.Set(testStart)
	if !c.Now().Equal(testStart) {
		t.Errorf("Expected %v, got %v", testStart, c.Now())
	}
	if (SystemClock{}).Now().IsZero() {
		t.Error("Expected system clock to report a time")
	}
}
