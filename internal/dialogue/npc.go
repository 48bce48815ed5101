package dialogue

import (
	"fmt"
	"log/slog"

	"github.com/tatianab/satchel/internal/gate"
)

// Balloon is what the host draws above an NPC.
type Balloon struct {
	Visible bool
	Text    string
	// Legend is shown while more lines follow.
	Legend     bool
	LegendText string
}

// NPC talks to the player while they stand nearby. With a gate it asks for
// items first and switches to its fulfilled lines once they are handed over.
type NPC struct {
	Name string

	request    []string
	fulfilled  []string
	gate       *gate.Gate
	advanceKey string
	cursor     Cursor
	logger     *slog.Logger
}

// NewNPC returns an NPC. g may be nil for NPCs that only talk.
func NewNPC(name string, request, fulfilled []string, g *gate.Gate, advanceKey string, logger *slog.Logger) *NPC {
	if logger == nil {
		logger = slog.Default()
	}
	if advanceKey == "" {
		advanceKey = "space"
	}
	return &NPC{
		Name:       name,
		request:    request,
		fulfilled:  fulfilled,
		gate:       g,
		advanceKey: advanceKey,
		logger:     logger.With("npc", name),
	}
}

// Enter starts the conversation when the player walks up.
func (n *NPC) Enter(isPlayer bool) {
	if !isPlayer {
		return
	}
	if n.gate != nil && !n.gate.Fulfilled() && n.gate.HasAllRequired() {
		n.fulfill()
	}
	n.cursor.Open(n.lines())
}

// Exit ends the conversation when the player walks away.
func (n *NPC) Exit(isPlayer bool) {
	if !isPlayer {
		return
	}
	n.cursor.Close()
}

// Advance moves to the next line. On the last request line it hands the items
// over if they are now held and restarts on the fulfilled lines; otherwise
// the conversation ends.
func (n *NPC) Advance() {
	if !n.cursor.Showing() {
		return
	}
	if n.cursor.Next() {
		return
	}
	if n.gate != nil && !n.gate.Fulfilled() && n.gate.HasAllRequired() {
		n.fulfill()
		n.cursor.Open(n.lines())
		return
	}
	n.cursor.Close()
}

func (n *NPC) fulfill() {
	if err := n.gate.Fulfill(); err != nil {
		n.logger.Warn("fulfillment skipped", "error", err)
		return
	}
	n.logger.Info("request fulfilled")
}

func (n *NPC) lines() []string {
	if n.gate != nil && n.gate.Fulfilled() {
		return n.fulfilled
	}
	return n.request
}

// Talking reports whether a balloon is open.
func (n *NPC) Talking() bool { return n.cursor.Showing() }

// Fulfilled reports whether the NPC's request has been met.
func (n *NPC) Fulfilled() bool { return n.gate != nil && n.gate.Fulfilled() }

// Gate returns the NPC's gate, nil when it asks for nothing.
func (n *NPC) Gate() *gate.Gate { return n.gate }

// Balloon returns the current view.
func (n *NPC) Balloon() Balloon {
	if !n.cursor.Showing() {
		return Balloon{}
	}
	return Balloon{
		Visible:    true,
		Text:       n.cursor.Line(),
		Legend:     n.cursor.Len() > 1 && !n.cursor.AtLast(),
		LegendText: fmt.Sprintf("Press %s ...", n.advanceKey),
	}
}
