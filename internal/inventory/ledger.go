package inventory

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/tatianab/satchel/internal/item"
)

var (
	// ErrNotFound is returned when removing an item the ledger does not hold.
	ErrNotFound = errors.New("item not in inventory")
	// ErrNilItem is returned when a mutation is attempted without an item.
	ErrNilItem = errors.New("nil item")
	// ErrOverflow is returned when an add would exceed the largest count.
	ErrOverflow = errors.New("item count overflow")
)

// Observer receives the full ledger contents after every committed change.
type Observer interface {
	InventoryChanged(Snapshot)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) InventoryChanged(s Snapshot) { f(s) }

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	ledger   *Ledger
	observer Observer
	active   bool
}

// Cancel stops further notifications. Calling it twice is harmless.
func (s *Subscription) Cancel() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.ledger.unsubscribe(s)
}

// Ledger is the authoritative count of every item type the player holds.
// It is owned by a single session and accessed from a single goroutine.
type Ledger struct {
	items     map[*item.Definition]int
	observers []*Subscription
	logger    *slog.Logger
}

// NewLedger returns an empty ledger.
func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		items:  make(map[*item.Definition]int),
		logger: logger,
	}
}

// Subscribe registers o. Observers are notified in registration order.
func (l *Ledger) Subscribe(o Observer) *Subscription {
	sub := &Subscription{ledger: l, observer: o, active: true}
	l.observers = append(l.observers, sub)
	return sub
}

func (l *Ledger) unsubscribe(sub *Subscription) {
	kept := make([]*Subscription, 0, len(l.observers))
	for _, s := range l.observers {
		if s != sub {
			kept = append(kept, s)
		}
	}
	l.observers = kept
}

// AddItem adds quantity of def. Unknown items are created on first add.
// A negative quantity is handled as RemoveItem(def, -quantity); zero does
// nothing. An add that would overflow the count is rejected with ErrOverflow
// and changes nothing.
func (l *Ledger) AddItem(def *item.Definition, quantity int) error {
	if def == nil {
		return ErrNilItem
	}
	if quantity < 0 {
		return l.RemoveItem(def, -quantity)
	}
	if quantity == 0 {
		return nil
	}

	have := l.items[def]
	if quantity > math.MaxInt-have {
		l.logger.Warn("cannot add item: count would overflow", "item", def.Name(), "have", have, "quantity", quantity)
		return fmt.Errorf("add %s: %w", def.Name(), ErrOverflow)
	}
	l.items[def] = have + quantity
	l.logger.Debug("inventory updated", "item", def.Name(), "added", quantity, "summary", l.Snapshot().Summary())
	l.notify()
	return nil
}

// RemoveItem takes quantity of def away. The entry is deleted once its count
// drops to zero or below. Removing an absent item changes nothing and fires
// no notification; a non-positive quantity on a held item is ignored.
func (l *Ledger) RemoveItem(def *item.Definition, quantity int) error {
	if def == nil {
		return ErrNilItem
	}
	have, ok := l.items[def]
	if !ok {
		l.logger.Warn("cannot remove item: not in inventory", "item", def.Name(), "quantity", quantity)
		return fmt.Errorf("remove %s: %w", def.Name(), ErrNotFound)
	}
	if quantity <= 0 {
		return nil
	}

	have -= quantity
	if have <= 0 {
		delete(l.items, def)
	} else {
		l.items[def] = have
	}
	l.logger.Debug("inventory updated", "item", def.Name(), "removed", quantity, "summary", l.Snapshot().Summary())
	l.notify()
	return nil
}

// HasItem reports whether at least required of def is held.
func (l *Ledger) HasItem(def *item.Definition, required int) bool {
	if def == nil {
		return false
	}
	have, ok := l.items[def]
	return ok && have >= required
}

// Quantity returns how many of def are held.
func (l *Ledger) Quantity(def *item.Definition) int {
	return l.items[def]
}

// ClearInventory removes everything and always notifies, even when the
// ledger was already empty.
func (l *Ledger) ClearInventory() {
	clear(l.items)
	l.logger.Debug("inventory cleared")
	l.notify()
}

// Snapshot returns an independent copy of the ledger contents.
func (l *Ledger) Snapshot() Snapshot {
	m := make(map[*item.Definition]int, len(l.items))
	for def, n := range l.items {
		m[def] = n
	}
	return Snapshot{items: m}
}

func (l *Ledger) notify() {
	if len(l.observers) == 0 {
		return
	}
	snap := l.Snapshot()
	// Iterate a copy so observers may subscribe or cancel while being notified.
	subs := make([]*Subscription, len(l.observers))
	copy(subs, l.observers)
	for _, sub := range subs {
		if !sub.active {
			continue
		}
		l.deliver(sub.observer, snap)
	}
}

func (l *Ledger) deliver(o Observer, snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("inventory observer panicked", "panic", r)
		}
	}()
	o.InventoryChanged(snap)
}
