package game

import (
	"fmt"

	"github.com/tatianab/satchel/internal/avatar"
	"github.com/tatianab/satchel/internal/dialogue"
	"github.com/tatianab/satchel/internal/gate"
)

// Trigger reacts to something entering or leaving its cell.
type Trigger interface {
	Enter(isPlayer bool)
	Exit(isPlayer bool)
}

// Object is a named prop a gate can switch on or off.
type Object struct {
	Name   string
	Glyph  string
	At     int
	Active bool
	Solid  bool
}

// Region is a trigger placed on one cell of the field.
type Region struct {
	At      int
	Trigger Trigger
}

// Field is a one-row walkable strip. The host moves the player; the field
// turns that into enter and exit edges for whatever sits on the cells.
type Field struct {
	session  *Session
	width    int
	pos      int
	regions  []Region
	objects  []*Object
	npcs     []*NPCOnField
	items    []*Collectible
	switcher *avatar.Switcher
	camera   *avatar.Body
	pads     []int
	resets   []int
	notes    []string
}

// NPCOnField is an NPC and the cell it stands on.
type NPCOnField struct {
	*dialogue.NPC
	At int
}

type switchPad struct{ s *avatar.Switcher }

func (p switchPad) Enter(isPlayer bool) { p.s.Enter(isPlayer) }
func (p switchPad) Exit(bool)           {}

type resetPad struct{ f *Field }

func (p resetPad) Enter(isPlayer bool) {
	if !isPlayer {
		return
	}
	if err := ResetInventory(p.f.session); err == nil {
		p.f.note("Your satchel is empty again.")
	}
}
func (p resetPad) Exit(bool) {}

// NewField builds the field described by the session content.
func NewField(s *Session) (*Field, error) {
	c := s.Content()
	spec := c.Field
	f := &Field{session: s, width: spec.Width, pos: spec.Start}

	for _, o := range spec.Objects {
		f.objects = append(f.objects, &Object{Name: o.Name, Glyph: o.Glyph, At: o.At, Active: o.Active, Solid: o.Solid})
	}

	for _, cs := range spec.Collectibles {
		def, ok := s.Catalog().Lookup(cs.Item)
		if !ok {
			return nil, fmt.Errorf("collectible: unknown item %q", cs.Item)
		}
		col := NewCollectible(s, def, cs.Quantity, cs.Sound)
		col.At = cs.At
		col.notify = f.note
		f.items = append(f.items, col)
		f.regions = append(f.regions, Region{At: cs.At, Trigger: col})
	}

	for _, ns := range spec.NPCs {
		var g *gate.Gate
		if len(ns.Requires) > 0 {
			reqs := make([]gate.Requirement, 0, len(ns.Requires))
			for _, r := range ns.Requires {
				def, ok := s.Catalog().Lookup(r.Item)
				if !ok {
					return nil, fmt.Errorf("npc %s: unknown item %q", ns.Name, r.Item)
				}
				reqs = append(reqs, gate.Requirement{Item: def, Quantity: r.Quantity})
			}
			var err error
			g, err = gate.New(s.Ledger(), reqs, gate.Effects{
				Activate:   ns.Activate,
				Deactivate: ns.Deactivate,
				Toggler:    f,
			}, s.Logger())
			if err != nil {
				return nil, fmt.Errorf("npc %s: %w", ns.Name, err)
			}
		}
		npc := &NPCOnField{
			NPC: dialogue.NewNPC(ns.Name, ns.Request, ns.Fulfilled, g, "space", s.Logger()),
			At:  ns.At,
		}
		f.npcs = append(f.npcs, npc)
		f.regions = append(f.regions, Region{At: ns.At, Trigger: npc})
	}

	bodies := make([]*avatar.Body, 0, len(c.Bodies))
	for _, b := range c.Bodies {
		bodies = append(bodies, &avatar.Body{Name: b.Name})
	}
	sw, err := avatar.NewSwitcher(bodies, c.Avatar.UseTrigger, f, s.Logger())
	if err != nil {
		return nil, err
	}
	f.switcher = sw
	for _, at := range spec.SwitchPads {
		f.pads = append(f.pads, at)
		f.regions = append(f.regions, Region{At: at, Trigger: switchPad{sw}})
	}
	for _, at := range spec.ResetPads {
		f.resets = append(f.resets, at)
		f.regions = append(f.regions, Region{At: at, Trigger: resetPad{f}})
	}

	f.enter(f.pos)
	return f, nil
}

// Move walks the player up to |dx| cells, one at a time, stopping at the
// field edge or in front of a solid object.
func (f *Field) Move(dx int) {
	if !f.switcher.Active().Movable {
		return
	}
	step := 1
	if dx < 0 {
		step, dx = -1, -dx
	}
	for ; dx > 0; dx-- {
		next := f.pos + step
		if next < 0 || next >= f.width || f.blocked(next) {
			return
		}
		f.exit(f.pos)
		f.pos = next
		f.enter(f.pos)
	}
}

func (f *Field) blocked(at int) bool {
	for _, o := range f.objects {
		if o.At == at && o.Active && o.Solid {
			return true
		}
	}
	return false
}

func (f *Field) enter(at int) {
	for _, r := range f.regions {
		if r.At == at {
			r.Trigger.Enter(true)
		}
	}
}

func (f *Field) exit(at int) {
	for _, r := range f.regions {
		if r.At == at {
			r.Trigger.Exit(true)
		}
	}
}

// Advance forwards the advance signal to an NPC talking to the player.
func (f *Field) Advance() {
	if npc := f.Talking(); npc != nil {
		npc.Advance()
	}
}

// SwitchKey forwards the switch key to the body switcher.
func (f *Field) SwitchKey() {
	before := f.switcher.Index()
	f.switcher.KeyPressed()
	if f.switcher.Index() != before {
		f.note("Now controlling " + f.switcher.Active().Name)
	}
}

// Talking returns the NPC whose balloon is open, if any.
func (f *Field) Talking() *NPCOnField {
	for _, n := range f.npcs {
		if n.Talking() {
			return n
		}
	}
	return nil
}

// SetActive implements gate.Toggler.
func (f *Field) SetActive(name string, active bool) bool {
	for _, o := range f.objects {
		if o.Name == name {
			o.Active = active
			return true
		}
	}
	return false
}

// Follow implements avatar.Follower.
func (f *Field) Follow(b *avatar.Body) { f.camera = b }

func (f *Field) note(msg string) { f.notes = append(f.notes, msg) }

// TakeNotes returns and clears the messages produced since the last call.
func (f *Field) TakeNotes() []string {
	n := f.notes
	f.notes = nil
	return n
}

func (f *Field) Width() int { return f.width }

func (f *Field) Pos() int { return f.pos }

func (f *Field) Objects() []*Object { return f.objects }

func (f *Field) NPCs() []*NPCOnField { return f.npcs }

func (f *Field) Collectibles() []*Collectible { return f.items }

func (f *Field) Switcher() *avatar.Switcher { return f.switcher }

// Camera returns the body the camera follows.
func (f *Field) Camera() *avatar.Body { return f.camera }

// SwitchPads returns the cells that switch bodies in trigger mode.
func (f *Field) SwitchPads() []int { return f.pads }

// ResetPads returns the cells that empty the inventory.
func (f *Field) ResetPads() []int { return f.resets }

// Regions returns the placed triggers.
func (f *Field) Regions() []Region { return f.regions }
