package tui

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// cellWidth is the number of terminal columns one field cell takes. Emoji
// are two columns wide, so every cell is padded to two.
const cellWidth = 2

const (
	groundGlyph = "·"
	npcGlyph    = "☺"
	switchGlyph = "⇄"
	resetGlyph  = "↺"
	playerGlyph = "@"
)

func cellLabel(glyph, name string) string {
	if glyph == "" {
		return name
	}
	return runewidth.FillRight(glyph, cellWidth) + " " + name
}

func fitCell(glyph string) string {
	if runewidth.StringWidth(glyph) > cellWidth {
		glyph = runewidth.Truncate(glyph, cellWidth, "")
	}
	return runewidth.FillRight(glyph, cellWidth)
}

// glyphAt picks what to draw on one cell. The player hides everything under
// it, then solid props, NPCs, pickups, other props and pads.
func (a App) glyphAt(at int) string {
	f := a.field
	if at == f.Pos() {
		if bodies := a.session.Content().Bodies; f.Switcher().Index() < len(bodies) {
			if g := bodies[f.Switcher().Index()].Glyph; g != "" {
				return g
			}
		}
		return playerGlyph
	}
	for _, o := range f.Objects() {
		if o.At == at && o.Active && o.Solid {
			return glyphOr(o.Glyph, "#")
		}
	}
	for _, n := range f.NPCs() {
		if n.At == at {
			return npcGlyph
		}
	}
	for _, c := range f.Collectibles() {
		if c.At == at && !c.Collected() {
			return glyphOr(c.Item.Icon(), "*")
		}
	}
	for _, o := range f.Objects() {
		if o.At == at && o.Active {
			return glyphOr(o.Glyph, "=")
		}
	}
	if slices.Contains(f.SwitchPads(), at) {
		return switchGlyph
	}
	if slices.Contains(f.ResetPads(), at) {
		return resetGlyph
	}
	return groundGlyph
}

func glyphOr(g, fallback string) string {
	if g == "" {
		return fallback
	}
	return g
}

// visibleCells is how many cells fit next to the inventory panel.
func (a App) visibleCells() int {
	if a.width == 0 {
		return a.field.Width()
	}
	return max(8, int(float64(a.width)*0.70)/cellWidth)
}

// renderStrip draws the part of the field around the player.
func (a App) renderStrip() string {
	width := a.field.Width()
	n := min(width, a.visibleCells())
	start := min(max(0, a.field.Pos()-n/2), width-n)

	var b strings.Builder
	for at := start; at < start+n; at++ {
		b.WriteString(fitCell(a.glyphAt(at)))
	}
	return b.String()
}
