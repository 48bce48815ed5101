package tui

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/satchel/internal/game"
	"github.com/tatianab/satchel/internal/inventory"
	"github.com/tatianab/satchel/internal/item"
	"github.com/tatianab/satchel/internal/models"
)

const testContent = `
title: Test Fields
items:
  - key: coin
    name: Coin
    icon: "c"
field:
  width: 10
  start: 0
  collectibles:
    - item: coin
      quantity: 2
      at: 1
      sound: pickup
bodies:
  - name: Tall
    glyph: "T"
roster:
  - name: Fox
  - name: Owl
  - name: Bear
select:
  columns: 3
  two_player: true
  fanfare_ms: 100
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, opts ...Option) App {
	t.Helper()
	c, err := models.ParseContent([]byte(testContent))
	if err != nil {
		t.Fatalf("ParseContent failed: %v", err)
	}
	s, err := game.NewSession(c, quietLogger())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	a, err := New(s, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(a App, msgs ...tea.Msg) App {
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func frames(a App, n int) App {
	for i := 0; i < n; i++ {
		a = send(a, frameMsg(time.Now()))
	}
	return a
}

func TestPickupUpdatesPanel(t *testing.T) {
	a := newTestApp(t)
	if len(a.Panel().Slots()) != 0 {
		t.Fatalf("Expected empty panel, got %v", a.Panel().Slots())
	}

	a = send(a, keyMsg("right"))
	slots := a.Panel().Slots()
	if len(slots) != 1 || slots[0].Name != "Coin" || slots[0].Quantity != 2 {
		t.Fatalf("Expected 2 coins in the panel, got %v", slots)
	}
	if a.cues.last != "pickup" {
		t.Errorf("Expected pickup cue, got %q", a.cues.last)
	}
	if !strings.Contains(strings.Join(a.Lines(), "\n"), "Picked up Coin x2") {
		t.Errorf("Expected pickup note in the log, got %v", a.Lines())
	}

	a = frames(a, cueFrames+1)
	if a.cues.last != "" {
		t.Errorf("Expected cue to clear, got %q", a.cues.last)
	}
}

func TestEscapeLogsInventory(t *testing.T) {
	a := newTestApp(t)
	a = send(a, keyMsg("esc"))
	lines := a.Lines()
	if lines[len(lines)-1] != "inventory is empty" {
		t.Errorf("Expected empty inventory line, got %q", lines[len(lines)-1])
	}

	a = send(a, keyMsg("right"), keyMsg("esc"))
	lines = a.Lines()
	if lines[len(lines)-1] != "Coin: 2" {
		t.Errorf("Expected summary line, got %q", lines[len(lines)-1])
	}
}

func TestSelectToFight(t *testing.T) {
	a := newTestApp(t)
	a = send(a, keyMsg("tab"))
	if a.Session().Scene() != game.SceneSelect || a.Screen() == nil {
		t.Fatalf("Expected select scene, got %q", a.Session().Scene())
	}

	a = send(a, keyMsg("right"), keyMsg("enter"), keyMsg("d"), keyMsg(" "))
	if a.Screen().Loading() {
		t.Fatalf("Expected loading to wait for the frame tick")
	}

	a = frames(a, 1)
	if !a.Screen().Loading() {
		t.Fatalf("Expected loading after both players confirmed")
	}
	if sel := a.Session().Selection(); sel == nil || sel.P1 != 1 || sel.P2 != 2 {
		t.Fatalf("Unexpected selection %+v", sel)
	}

	a = frames(a, 4)
	if a.Session().Scene() != game.SceneFight {
		t.Fatalf("Expected fight scene, got %q", a.Session().Scene())
	}
	m := a.Match()
	if m == nil || m.P1.Character.Name != "Owl" || m.P2.Character.Name != "Bear" {
		t.Fatalf("Unexpected match %+v", m)
	}
	if !strings.Contains(a.View(), "FIGHT!") {
		t.Errorf("Expected fight view")
	}

	a = send(a, keyMsg("esc"))
	if a.Session().Scene() != game.SceneField || a.Match() != nil {
		t.Errorf("Expected to be back on the field")
	}
}

func TestSelectBack(t *testing.T) {
	a := newTestApp(t)
	a = send(a, keyMsg("tab"), keyMsg("esc"))
	if a.Session().Scene() != game.SceneField || a.Screen() != nil {
		t.Errorf("Expected esc to leave character select")
	}
}

func TestFightWithoutSelectionUsesDefaults(t *testing.T) {
	a := newTestApp(t, WithRand(rand.New(rand.NewPCG(1, 2))))
	a.Session().LoadScene(game.SceneFight)
	a = frames(a, 1)
	m := a.Match()
	if m == nil || !m.Fallback || m.P1.Character.Name != "Fox" || m.P2.Character.Name != "Owl" {
		t.Fatalf("Unexpected fallback match %+v", m)
	}
}

func typeText(a App, s string) App {
	for _, r := range s {
		a = send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return a
}

func TestSaveAndLoadPrompt(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, WithSaveDir(dir))
	a = send(a, keyMsg("right"))

	a = send(a, keyMsg("ctrl+s"))
	if a.prompt != promptSave {
		t.Fatalf("Expected the save prompt to open")
	}
	a = typeText(a, "slot1")
	a = send(a, keyMsg("enter"))
	if a.prompt != promptNone {
		t.Fatalf("Expected the prompt to close")
	}
	inv, err := models.LoadInventory(dir, "slot1")
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if inv.Items["coin"] != 2 {
		t.Errorf("Expected 2 coins saved, got %v", inv.Items)
	}

	if err := models.SaveInventory(dir, "rich", models.InventoryFile{Items: map[string]int{"coin": 9}}); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}
	a = send(a, keyMsg("ctrl+l"))
	a = typeText(a, "rich")
	a = send(a, keyMsg("enter"))
	slots := a.Panel().Slots()
	if len(slots) != 1 || slots[0].Quantity != 9 {
		t.Errorf("Expected loaded inventory in the panel, got %v", slots)
	}

	a = send(a, keyMsg("ctrl+l"))
	a = typeText(a, "nope")
	a = send(a, keyMsg("enter"))
	last := a.Lines()[len(a.Lines())-1]
	if !strings.HasPrefix(last, "Load failed") {
		t.Errorf("Expected load failure line, got %q", last)
	}
}

func TestPromptCancel(t *testing.T) {
	a := newTestApp(t)
	a = send(a, keyMsg("ctrl+s"), keyMsg("esc"))
	if a.prompt != promptNone {
		t.Errorf("Expected esc to close the prompt")
	}
	if a.Session().Scene() != game.SceneField {
		t.Errorf("Expected to stay on the field")
	}
}

func TestInventoryPanel(t *testing.T) {
	l := inventory.NewLedger(quietLogger())
	gem := item.New("gem", "Gem", "💎")
	l.AddItem(gem, 3)

	p := NewInventoryPanel(l, quietLogger())
	if slots := p.Slots(); len(slots) != 1 || slots[0].Quantity != 3 {
		t.Fatalf("Expected the panel to draw the current contents, got %v", slots)
	}

	l.RemoveItem(gem, 1)
	if p.Slots()[0].Quantity != 2 {
		t.Errorf("Expected 2 gems, got %d", p.Slots()[0].Quantity)
	}

	p.Close()
	l.ClearInventory()
	if len(p.Slots()) != 1 {
		t.Errorf("Expected a closed panel to stop updating")
	}
	p.Close()
}

func TestInventoryPanelWithoutLedger(t *testing.T) {
	p := NewInventoryPanel(nil, quietLogger())
	if len(p.Slots()) != 0 {
		t.Errorf("Expected no slots")
	}
	if got := p.LogContents(); len(got) != 1 || got[0] != "inventory is empty" {
		t.Errorf("Unexpected log lines %v", got)
	}
	p.Close()
}

func TestSlotLabelAlignsWideIcons(t *testing.T) {
	wide := slotLabel(Slot{Icon: "💎", Name: "Gem", Quantity: 1})
	narrow := slotLabel(Slot{Icon: "c", Name: "Gem", Quantity: 1})
	if !strings.HasSuffix(wide, " Gem x1") || !strings.HasSuffix(narrow, " Gem x1") {
		t.Fatalf("Unexpected labels %q %q", wide, narrow)
	}
	if !strings.HasPrefix(narrow, "c  Gem") {
		t.Errorf("Expected narrow icon padded to two cells, got %q", narrow)
	}
}

func TestRenderStrip(t *testing.T) {
	a := newTestApp(t)
	strip := a.renderStrip()
	if !strings.HasPrefix(strip, "T c ") {
		t.Errorf("Expected player then coin, got %q", strip)
	}
	a = send(a, keyMsg("right"))
	if strings.Contains(a.renderStrip(), "c") {
		t.Errorf("Expected the coin to be gone, got %q", a.renderStrip())
	}
}
