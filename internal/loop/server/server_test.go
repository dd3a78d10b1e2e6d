package server

import (
	"testing"
	"time"
)

func TestRegisterAndUnregister(t *testing.T) {
	h := NewHub(5)
	a := h.RegisterClient("alice")
	b := h.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("Expected distinct IDs, got %d twice", a.ID)
	}
	if h.Count() != 2 {
		t.Fatalf("Expected 2 clients, got %d", h.Count())
	}

	h.UnregisterClient(a.ID)
	if h.Count() != 1 {
		t.Errorf("Expected 1 client, got %d", h.Count())
	}
	if _, ok := <-a.EventsCh; ok {
		t.Error("Expected events channel closed on unregister")
	}
	h.UnregisterClient(a.ID) // no panic on double unregister
}

func TestShutdownNotifiesClients(t *testing.T) {
	h := NewHub(5)
	handle := h.RegisterClient("alice")

	done := make(chan struct{})
	go func() {
		h.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case ev := <-handle.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Fatalf("Expected shutdown event, got %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected shutdown event")
	}

	h.UnregisterClient(handle.ID)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Shutdown to return once clients left")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	h := NewHub(5)
	h.RegisterClient("stubborn")

	start := time.Now()
	h.Shutdown(50 * time.Millisecond)
	if time.Since(start) > time.Second {
		t.Error("Expected Shutdown to give up after the timeout")
	}
}

func TestReportScoreRanks(t *testing.T) {
	h := NewHub(2)
	a := h.RegisterClient("alice")
	b := h.RegisterClient("bob")
	c := h.RegisterClient("carol")

	h.ReportScore(a.ID, 50)
	h.ReportScore(b.ID, 80)
	h.ReportScore(c.ID, 10)

	if ev := <-b.EventsCh; ev.Type != EventNewBest || ev.Rank != 1 {
		t.Errorf("Expected bob ranked 1, got %+v", ev)
	}
	select {
	case ev := <-c.EventsCh:
		t.Errorf("Expected no event for a score off the board, got %+v", ev)
	default:
	}

	top := h.TopScores()
	if len(top) != 2 || top[0].Username != "bob" || top[1].Username != "alice" {
		t.Errorf("Unexpected leaderboard %+v", top)
	}
}

func TestLeaderboard(t *testing.T) {
	l := NewLeaderboard(3)
	if rank := l.Add("a", 1, 100); rank != 1 {
		t.Errorf("Expected rank 1, got %d", rank)
	}
	if rank := l.Add("b", 2, 100); rank != 2 {
		t.Errorf("Expected tie to rank behind the earlier client, got %d", rank)
	}
	if rank := l.Add("a", 1, 90); rank != 0 {
		t.Errorf("Expected worse personal score to be ignored, got %d", rank)
	}
	if rank := l.Add("b", 2, 150); rank != 1 {
		t.Errorf("Expected improved score to move up, got %d", rank)
	}
	l.Add("c", 3, 10)
	if rank := l.Add("d", 4, 5); rank != 0 {
		t.Errorf("Expected full board to reject a lower score, got %d", rank)
	}

	got := l.Entries()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Username != name {
			t.Errorf("Entry %d: expected %s, got %s", i, name, got[i].Username)
		}
	}
}
