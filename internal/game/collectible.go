package game

import (
	"fmt"

	"github.com/tatianab/satchel/internal/item"
)

// Collectible is a pickup lying on the field. The first time the player
// touches it, it plays its sound, goes into the inventory and disappears.
type Collectible struct {
	Item     *item.Definition
	Quantity int
	Sound    string
	At       int

	session   *Session
	collected bool
	notify    func(string)
}

// NewCollectible places quantity of def in session's world.
func NewCollectible(s *Session, def *item.Definition, quantity int, sound string) *Collectible {
	return &Collectible{Item: def, Quantity: quantity, Sound: sound, session: s}
}

// Enter is the pickup trigger.
func (c *Collectible) Enter(isPlayer bool) {
	if !isPlayer || c.collected {
		return
	}
	l := c.session.Ledger()
	if l == nil {
		c.session.Logger().Warn("cannot collect: no inventory ledger", "item", c.Item.Name())
		return
	}

	if err := l.AddItem(c.Item, c.Quantity); err != nil {
		c.session.Logger().Warn("pickup failed", "item", c.Item.Name(), "error", err)
		return
	}
	c.collected = true
	if c.Sound != "" {
		c.session.PlayCue(c.Sound)
	}
	if c.notify != nil {
		c.notify(fmt.Sprintf("Picked up %s x%d", c.Item.Name(), c.Quantity))
	}
}

// Exit does nothing; pickups only react to entering.
func (c *Collectible) Exit(bool) {}

// Collected reports whether the pickup has been taken.
func (c *Collectible) Collected() bool { return c.collected }
