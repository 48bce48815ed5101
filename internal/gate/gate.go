package gate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tatianab/satchel/internal/item"
)

var (
	// ErrPreconditionUnmet is returned by Fulfill when the requirements are not held.
	ErrPreconditionUnmet = errors.New("requirements not met")
	// ErrAlreadyFulfilled is returned by Fulfill after the gate has opened.
	ErrAlreadyFulfilled = errors.New("already fulfilled")
)

// Ledger is the part of the inventory a gate needs.
type Ledger interface {
	HasItem(def *item.Definition, required int) bool
	RemoveItem(def *item.Definition, quantity int) error
}

// Toggler flips named objects on or off. It returns false for unknown names.
type Toggler interface {
	SetActive(name string, active bool) bool
}

// Requirement is one item stack a gate demands.
type Requirement struct {
	Item     *item.Definition
	Quantity int
}

// Effects lists the objects switched when the gate opens.
type Effects struct {
	Activate   []string
	Deactivate []string
	Toggler    Toggler
}

// State is the gate's one-way progress.
type State int

const (
	Unfulfilled State = iota
	Fulfilled
)

func (s State) String() string {
	if s == Fulfilled {
		return "fulfilled"
	}
	return "unfulfilled"
}

// Gate holds back a one-time side effect until the player hands over a set of
// items.
type Gate struct {
	ledger  Ledger
	reqs    []Requirement
	effects Effects
	state   State
	logger  *slog.Logger
}

// New validates reqs and returns a gate in the Unfulfilled state.
func New(ledger Ledger, reqs []Requirement, effects Effects, logger *slog.Logger) (*Gate, error) {
	if ledger == nil {
		return nil, errors.New("gate needs a ledger")
	}
	for i, r := range reqs {
		if r.Item == nil {
			return nil, fmt.Errorf("requirement %d: nil item", i)
		}
		if r.Quantity <= 0 {
			return nil, fmt.Errorf("requirement %d (%s): quantity must be positive, got %d", i, r.Item.Name(), r.Quantity)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	own := make([]Requirement, len(reqs))
	copy(own, reqs)
	return &Gate{ledger: ledger, reqs: own, effects: effects, logger: logger}, nil
}

// HasAllRequired reports whether every requirement is held. It stops at the
// first missing one.
func (g *Gate) HasAllRequired() bool {
	for _, r := range g.reqs {
		if !g.ledger.HasItem(r.Item, r.Quantity) {
			return false
		}
	}
	return true
}

// Fulfill consumes the requirements, applies the effects and opens the gate.
// Items are removed one by one with no rollback; a removal failure is logged
// and the gate still opens.
func (g *Gate) Fulfill() error {
	if g.state == Fulfilled {
		return ErrAlreadyFulfilled
	}
	if !g.HasAllRequired() {
		return ErrPreconditionUnmet
	}

	for _, r := range g.reqs {
		if err := g.ledger.RemoveItem(r.Item, r.Quantity); err != nil {
			g.logger.Warn("fulfillment removal failed", "item", r.Item.Name(), "quantity", r.Quantity, "error", err)
		}
	}
	g.apply()
	g.state = Fulfilled
	return nil
}

func (g *Gate) apply() {
	t := g.effects.Toggler
	if t == nil {
		if len(g.effects.Activate)+len(g.effects.Deactivate) > 0 {
			g.logger.Warn("gate has effects but no toggler")
		}
		return
	}
	for _, name := range g.effects.Activate {
		if t.SetActive(name, true) {
			g.logger.Debug("activated", "object", name)
		} else {
			g.logger.Warn("cannot activate unknown object", "object", name)
		}
	}
	for _, name := range g.effects.Deactivate {
		if t.SetActive(name, false) {
			g.logger.Debug("deactivated", "object", name)
		} else {
			g.logger.Warn("cannot deactivate unknown object", "object", name)
		}
	}
}

func (g *Gate) State() State { return g.state }

func (g *Gate) Fulfilled() bool { return g.state == Fulfilled }

// Requirements returns a copy of the requirement set.
func (g *Gate) Requirements() []Requirement {
	out := make([]Requirement, len(g.reqs))
	copy(out, g.reqs)
	return out
}
