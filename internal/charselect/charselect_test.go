package charselect

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tatianab/satchel/internal/sched"
)

type fakeHost struct {
	cues       []string
	loads      []string
	selections []Selection
}

func (h *fakeHost) PlayCue(name string)        { h.cues = append(h.cues, name) }
func (h *fakeHost) LoadScene(name string)      { h.loads = append(h.loads, name) }
func (h *fakeHost) StoreSelection(s Selection) { h.selections = append(h.selections, s) }

func (h *fakeHost) count(cue string) int {
	n := 0
	for _, c := range h.cues {
		if c == cue {
			n++
		}
	}
	return n
}

func newScreen(t *testing.T, cfg Config) (*Screen, *fakeHost, *sched.Scheduler) {
	t.Helper()
	h := &fakeHost{}
	s := sched.New()
	scr, err := New(cfg, h, s, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return scr, h, s
}

func fourSlots(twoPlayer bool) Config {
	return Config{Slots: 4, Columns: 2, TwoPlayer: twoPlayer, Fanfare: time.Second, NextScene: "fight"}
}

func TestMoveClamps(t *testing.T) {
	scr, h, _ := newScreen(t, fourSlots(true))

	steps := []struct {
		sig  Signal
		want int
	}{
		{Right, 1},
		{Right, 2},
		{Right, 3},
		{Right, 3},
		{Up, 1},
		{Up, 0},
		{Left, 0},
		{Down, 2},
		{Down, 3},
	}
	for i, st := range steps {
		scr.HandleEdge(P1, st.sig)
		if got := scr.Index(P1); got != st.want {
			t.Fatalf("step %d (%s): expected index %d, got %d", i, st.sig, st.want, got)
		}
	}
	// Only the right-at-3 and left-at-0 edges are blocked.
	if got := h.count(CueMove); got != 7 {
		t.Errorf("Expected 7 move cues, got %d", got)
	}
}

func TestInitialCursors(t *testing.T) {
	scr, _, s := newScreen(t, fourSlots(true))
	if scr.Index(P1) != 0 || scr.Index(P2) != 1 {
		t.Errorf("Expected cursors at 0 and 1, got %d and %d", scr.Index(P1), scr.Index(P2))
	}
	if scr.Ready() {
		t.Errorf("Expected highlights to wait a frame")
	}
	s.Advance(0)
	if !scr.Ready() {
		t.Errorf("Expected highlights ready after one frame")
	}

	single, _, _ := newScreen(t, Config{Slots: 1, Columns: 1, NextScene: "fight"})
	if single.Index(P2) != 0 {
		t.Errorf("Expected P2 clamped into a one-slot grid, got %d", single.Index(P2))
	}
}

func TestConfirmLatchesAndFreezesCursor(t *testing.T) {
	scr, h, _ := newScreen(t, fourSlots(true))
	scr.HandleEdge(P1, Confirm)
	scr.HandleEdge(P1, Right)
	scr.HandleEdge(P1, Confirm)

	if !scr.Confirmed(P1) {
		t.Fatalf("Expected P1 confirmed")
	}
	if scr.Index(P1) != 0 {
		t.Errorf("Expected confirmed cursor to stay put, got %d", scr.Index(P1))
	}
	if got := h.count(CueConfirm); got != 1 {
		t.Errorf("Expected one confirm cue, got %d", got)
	}
}

func TestBothConfirmSameTickLoadsOnce(t *testing.T) {
	scr, h, s := newScreen(t, fourSlots(true))
	scr.HandleEdge(P2, Right)
	scr.HandleEdge(P1, Confirm)
	scr.HandleEdge(P2, Confirm)

	for i := 0; i < 5; i++ {
		scr.Tick()
		s.Advance(300 * time.Millisecond)
	}

	if len(h.loads) != 1 || h.loads[0] != "fight" {
		t.Fatalf("Expected exactly one load of fight, got %v", h.loads)
	}
	if got := h.count(CueFanfare); got != 1 {
		t.Errorf("Expected one fanfare, got %d", got)
	}
	if len(h.selections) != 1 || h.selections[0] != (Selection{P1: 0, P2: 2}) {
		t.Errorf("Unexpected selections %v", h.selections)
	}
	if !scr.Loading() {
		t.Errorf("Expected loading latch set")
	}
}

func TestLoadWaitsForFanfare(t *testing.T) {
	scr, h, s := newScreen(t, fourSlots(false))
	scr.HandleEdge(P1, Confirm)
	scr.Tick()

	s.Advance(999 * time.Millisecond)
	if len(h.loads) != 0 {
		t.Fatalf("Expected load to wait for the fanfare")
	}
	s.Advance(time.Millisecond)
	if len(h.loads) != 1 {
		t.Fatalf("Expected load after the fanfare, got %v", h.loads)
	}
}

func TestSinglePlayerIgnoresP2(t *testing.T) {
	scr, h, _ := newScreen(t, fourSlots(false))
	scr.HandleEdge(P2, Right)
	scr.HandleEdge(P2, Confirm)
	if scr.Confirmed(P2) || scr.Index(P2) != 1 {
		t.Errorf("Expected P2 edges ignored in single-player mode")
	}

	scr.HandleEdge(P1, Right)
	scr.HandleEdge(P1, Confirm)
	scr.Tick()
	if len(h.selections) != 1 || h.selections[0] != (Selection{P1: 1, P2: -1}) {
		t.Errorf("Expected P2=-1 selection, got %v", h.selections)
	}
}

func TestNoLoadUntilEveryoneConfirms(t *testing.T) {
	scr, h, s := newScreen(t, fourSlots(true))
	scr.HandleEdge(P1, Confirm)
	scr.Tick()
	s.Advance(5 * time.Second)
	if scr.Loading() || len(h.loads) != 0 {
		t.Errorf("Expected to wait for P2")
	}
}

func TestEdgesIgnoredWhileLoading(t *testing.T) {
	scr, h, _ := newScreen(t, fourSlots(false))
	scr.HandleEdge(P1, Confirm)
	scr.Tick()
	moves := h.count(CueMove)
	scr.HandleEdge(P1, Right)
	if h.count(CueMove) != moves {
		t.Errorf("Expected no movement while loading")
	}
}

func TestLeaveCancelsLoad(t *testing.T) {
	scr, h, s := newScreen(t, fourSlots(false))
	scr.HandleEdge(P1, Confirm)
	scr.Tick()
	scr.Leave()
	s.Advance(2 * time.Second)
	if len(h.loads) != 0 {
		t.Errorf("Expected cancelled load, got %v", h.loads)
	}
}

func TestConfigValidation(t *testing.T) {
	bad := []Config{
		{Slots: 0, Columns: 1, NextScene: "x"},
		{Slots: 2, Columns: 0, NextScene: "x"},
		{Slots: 2, Columns: 1},
	}
	for _, cfg := range bad {
		if _, err := New(cfg, &fakeHost{}, sched.New(), nil); err == nil {
			t.Errorf("Expected error for %+v", cfg)
		}
	}
}
