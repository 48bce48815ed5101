package gate

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/tatianab/satchel/internal/inventory"
	"github.com/tatianab/satchel/internal/item"
)

type objects map[string]bool

func (o objects) SetActive(name string, active bool) bool {
	if _, ok := o[name]; !ok {
		return false
	}
	o[name] = active
	return true
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKeyCoinScenario(t *testing.T) {
	log := quietLogger()
	l := inventory.NewLedger(log)
	key := item.New("key", "Key", "")
	coin := item.New("coin", "Coin", "")
	world := objects{"bridge": false, "wall": true}

	g, err := New(l, []Requirement{{key, 1}, {coin, 3}}, Effects{
		Activate:   []string{"bridge"},
		Deactivate: []string{"wall"},
		Toggler:    world,
	}, log)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	l.AddItem(key, 1)
	l.AddItem(coin, 2)
	if g.HasAllRequired() {
		t.Fatalf("Expected requirements unmet with 2 coins")
	}
	if err := g.Fulfill(); !errors.Is(err, ErrPreconditionUnmet) {
		t.Errorf("Expected ErrPreconditionUnmet, got %v", err)
	}
	if world["bridge"] {
		t.Errorf("Expected no side effect before fulfillment")
	}

	l.AddItem(coin, 1)
	if !g.HasAllRequired() {
		t.Fatalf("Expected requirements met with 3 coins")
	}
	if err := g.Fulfill(); err != nil {
		t.Fatalf("Fulfill failed: %v", err)
	}
	if l.HasItem(key, 1) || l.HasItem(coin, 1) {
		t.Errorf("Expected key and coins consumed, got %v", l.Snapshot().Summary())
	}
	if g.State() != Fulfilled {
		t.Errorf("Expected state fulfilled, got %s", g.State())
	}
	if !world["bridge"] || world["wall"] {
		t.Errorf("Expected bridge on and wall off, got %v", world)
	}

	// Re-invoking has no further effect even if the items come back.
	l.AddItem(key, 1)
	l.AddItem(coin, 3)
	world["bridge"] = false
	if err := g.Fulfill(); !errors.Is(err, ErrAlreadyFulfilled) {
		t.Errorf("Expected ErrAlreadyFulfilled, got %v", err)
	}
	if l.Quantity(coin) != 3 {
		t.Errorf("Expected coins untouched on second Fulfill, got %d", l.Quantity(coin))
	}
	if world["bridge"] {
		t.Errorf("Expected effects applied only once")
	}
}

func TestHasAllRequiredDoesNotMutate(t *testing.T) {
	l := inventory.NewLedger(quietLogger())
	gem := item.New("gem", "Gem", "")
	l.AddItem(gem, 2)
	g, err := New(l, []Requirement{{gem, 2}}, Effects{}, quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		g.HasAllRequired()
	}
	if l.Quantity(gem) != 2 {
		t.Errorf("Expected 2 gems, got %d", l.Quantity(gem))
	}
}

func TestEmptyRequirementSet(t *testing.T) {
	l := inventory.NewLedger(quietLogger())
	g, err := New(l, nil, Effects{}, quietLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !g.HasAllRequired() {
		t.Errorf("Expected empty set to be satisfied")
	}
	if err := g.Fulfill(); err != nil {
		t.Errorf("Fulfill failed: %v", err)
	}
}

func TestNewRejectsBadRequirements(t *testing.T) {
	l := inventory.NewLedger(quietLogger())
	gem := item.New("gem", "Gem", "")
	tests := []struct {
		name string
		reqs []Requirement
	}{
		{"nil item", []Requirement{{nil, 1}}},
		{"zero quantity", []Requirement{{gem, 0}}},
		{"negative quantity", []Requirement{{gem, -2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(l, tt.reqs, Effects{}, quietLogger()); err == nil {
				t.Errorf("Expected error")
			}
		})
	}
}

func TestUnknownObjectsAreSkipped(t *testing.T) {
	l := inventory.NewLedger(quietLogger())
	world := objects{"door": false}
	g, _ := New(l, nil, Effects{Activate: []string{"ghost", "door"}, Toggler: world}, quietLogger())
	if err := g.Fulfill(); err != nil {
		t.Fatalf("Fulfill failed: %v", err)
	}
	if !world["door"] {
		t.Errorf("Expected door activated after skipping unknown object")
	}
}

// removal fails after the check passed, as if another source changed the
// ledger in between.
type racyLedger struct {
	*inventory.Ledger
	steal *item.Definition
}

func (r racyLedger) RemoveItem(def *item.Definition, q int) error {
	if def == r.steal {
		r.Ledger.ClearInventory()
	}
	return r.Ledger.RemoveItem(def, q)
}

func TestPartialRemovalIsNotRolledBack(t *testing.T) {
	base := inventory.NewLedger(quietLogger())
	a := item.New("a", "A", "")
	b := item.New("b", "B", "")
	base.AddItem(a, 1)
	base.AddItem(b, 1)

	g, _ := New(racyLedger{base, b}, []Requirement{{a, 1}, {b, 1}}, Effects{}, quietLogger())
	if err := g.Fulfill(); err != nil {
		t.Fatalf("Fulfill failed: %v", err)
	}
	if !g.Fulfilled() {
		t.Errorf("Expected gate to open despite failed removal")
	}
}
