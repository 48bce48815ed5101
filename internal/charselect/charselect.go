// Package charselect runs the character select screen: one cursor per player
// over a grid of slots, a confirm latch per player, and a single scene load
// once everyone has confirmed.
package charselect

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tatianab/satchel/internal/sched"
)

// Cue names handed to Host.PlayCue.
const (
	CueMove    = "move"
	CueConfirm = "confirm"
	CueFanfare = "fanfare"
)

// Signal is an input edge delivered by the host.
type Signal int

const (
	Left Signal = iota
	Right
	Up
	Down
	Confirm
)

func (s Signal) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Confirm:
		return "confirm"
	}
	return fmt.Sprintf("signal(%d)", int(s))
}

// Player identifies a cursor.
type Player int

const (
	P1 Player = iota
	P2
)

// Selection is handed to the fight scene. P2 is -1 in single-player mode.
type Selection struct {
	P1 int
	P2 int
}

// Host receives the screen's fire-and-forget commands.
type Host interface {
	PlayCue(name string)
	LoadScene(name string)
	StoreSelection(Selection)
}

// Config describes the grid and the transition that follows it.
type Config struct {
	Slots     int
	Columns   int
	TwoPlayer bool
	// Fanfare is how long the fanfare cue plays before the scene loads.
	Fanfare   time.Duration
	NextScene string
}

func (c Config) validate() error {
	if c.Slots < 1 {
		return fmt.Errorf("slots must be at least 1, got %d", c.Slots)
	}
	if c.Columns < 1 {
		return fmt.Errorf("columns must be at least 1, got %d", c.Columns)
	}
	if c.NextScene == "" {
		return errors.New("next scene is required")
	}
	return nil
}

type cursor struct {
	index     int
	confirmed bool
}

// Screen is the select state for one visit to the screen.
type Screen struct {
	cfg     Config
	host    Host
	sched   *sched.Scheduler
	logger  *slog.Logger
	cursors [2]cursor

	ready   bool
	loading bool
	load    *sched.Token
}

// New returns a screen with P1 on slot 0 and P2 on slot 1. Cursor highlights
// are positioned on the next frame.
func New(cfg Config, host Host, s *sched.Scheduler, logger *slog.Logger) (*Screen, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if host == nil || s == nil {
		return nil, errors.New("character select needs a host and a scheduler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	scr := &Screen{cfg: cfg, host: host, sched: s, logger: logger}
	scr.cursors[P1].index = 0
	scr.cursors[P2].index = scr.clamp(1)
	s.NextFrame(func() { scr.ready = true })
	return scr, nil
}

func (s *Screen) clamp(i int) int {
	return max(0, min(i, s.cfg.Slots-1))
}

func (s *Screen) active(p Player) bool {
	return p == P1 || (p == P2 && s.cfg.TwoPlayer)
}

// HandleEdge applies one input edge for player p. Edges are ignored once the
// scene is loading, for players who already confirmed, and for P2 in
// single-player mode.
func (s *Screen) HandleEdge(p Player, sig Signal) {
	if s.loading || !s.active(p) {
		return
	}
	c := &s.cursors[p]
	if c.confirmed {
		return
	}

	var delta int
	switch sig {
	case Left:
		delta = -1
	case Right:
		delta = 1
	case Up:
		delta = -s.cfg.Columns
	case Down:
		delta = s.cfg.Columns
	case Confirm:
		c.confirmed = true
		s.host.PlayCue(CueConfirm)
		s.logger.Debug("player confirmed", "player", int(p)+1, "slot", c.index)
		return
	default:
		return
	}

	next := s.clamp(c.index + delta)
	if next != c.index {
		c.index = next
		s.host.PlayCue(CueMove)
	}
}

// Tick checks whether every active player has confirmed and, the first time
// that holds, starts the transition: fanfare, stored selection, then the
// scene load after the fanfare has played.
func (s *Screen) Tick() {
	if s.loading || !s.allConfirmed() {
		return
	}
	s.loading = true

	s.host.PlayCue(CueFanfare)
	sel := Selection{P1: s.cursors[P1].index, P2: -1}
	if s.cfg.TwoPlayer {
		sel.P2 = s.cursors[P2].index
	}
	s.host.StoreSelection(sel)
	s.logger.Info("selection stored", "p1", sel.P1, "p2", sel.P2)

	next := s.cfg.NextScene
	s.load = s.sched.After(s.cfg.Fanfare, func() { s.host.LoadScene(next) })
}

func (s *Screen) allConfirmed() bool {
	if !s.cursors[P1].confirmed {
		return false
	}
	return !s.cfg.TwoPlayer || s.cursors[P2].confirmed
}

// Index returns p's cursor slot.
func (s *Screen) Index(p Player) int { return s.cursors[p].index }

// Confirmed reports whether p has confirmed.
func (s *Screen) Confirmed(p Player) bool { return s.cursors[p].confirmed }

// Loading reports whether the scene transition has started.
func (s *Screen) Loading() bool { return s.loading }

// Ready reports whether the highlights have been positioned.
func (s *Screen) Ready() bool { return s.ready }

// Config returns the screen's configuration.
func (s *Screen) Config() Config { return s.cfg }

// Leave cancels a pending scene load, for hosts tearing the screen down early.
func (s *Screen) Leave() {
	if s.load != nil {
		s.load.Cancel()
	}
}
