package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tatianab/satchel/internal/inventory"
)

const slotWidth = 14

// Slot is one drawn inventory cell.
type Slot struct {
	Icon     string
	Name     string
	Quantity int
}

// InventoryPanel mirrors the ledger into a list of slots. It rebuilds its
// slots from every snapshot it is sent.
type InventoryPanel struct {
	ledger *inventory.Ledger
	sub    *inventory.Subscription
	slots  []Slot
	last   inventory.Snapshot
	logger *slog.Logger
}

// NewInventoryPanel subscribes to l and draws its current contents. A nil
// ledger leaves the panel empty.
func NewInventoryPanel(l *inventory.Ledger, logger *slog.Logger) *InventoryPanel {
	if logger == nil {
		logger = slog.Default()
	}
	p := &InventoryPanel{ledger: l, logger: logger}
	if l == nil {
		logger.Warn("inventory panel: no inventory ledger found")
		return p
	}
	p.sub = l.Subscribe(p)
	p.InventoryChanged(l.Snapshot())
	return p
}

// InventoryChanged implements inventory.Observer.
func (p *InventoryPanel) InventoryChanged(s inventory.Snapshot) {
	p.last = s
	entries := s.Entries()
	slots := make([]Slot, 0, len(entries))
	for _, e := range entries {
		slots = append(slots, Slot{Icon: e.Item.Icon(), Name: e.Item.Name(), Quantity: e.Quantity})
	}
	p.slots = slots
}

// Close stops listening to the ledger.
func (p *InventoryPanel) Close() {
	p.sub.Cancel()
	p.sub = nil
}

func (p *InventoryPanel) Slots() []Slot { return p.slots }

// LogContents writes the held items to the log and returns the lines.
func (p *InventoryPanel) LogContents() []string {
	lines := p.last.Summary()
	if len(lines) == 0 {
		p.logger.Info("inventory is empty")
		return []string{"inventory is empty"}
	}
	for _, line := range lines {
		p.logger.Info(line)
	}
	return lines
}

func (p *InventoryPanel) View(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SATCHEL") + "\n")
	if len(p.slots) == 0 {
		b.WriteString(dimStyle.Render("(empty)"))
		return panelStyle.Width(width).Render(b.String())
	}
	cells := make([]string, 0, len(p.slots))
	for _, s := range p.slots {
		cells = append(cells, slotStyle.Render(slotLabel(s)))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cells...))
	return panelStyle.Width(width).Render(b.String())
}

// slotLabel pads the icon to two cells so names line up whatever the glyph.
func slotLabel(s Slot) string {
	icon := s.Icon
	if icon == "" {
		icon = "•"
	}
	icon = runewidth.FillRight(icon, 2)
	label := fmt.Sprintf("%s %s x%d", icon, s.Name, s.Quantity)
	return runewidth.Truncate(label, slotWidth+8, "…")
}
