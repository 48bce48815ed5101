// simulate_game plays the content headlessly: it walks the field from end to
// end, talks to everyone it meets, then runs character select and sets up
// the fight. It prints what a player would see.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/tatianab/satchel/internal/charselect"
	"github.com/tatianab/satchel/internal/config"
	"github.com/tatianab/satchel/internal/fight"
	"github.com/tatianab/satchel/internal/game"
	"github.com/tatianab/satchel/internal/inventory"
	"github.com/tatianab/satchel/internal/models"
	"github.com/tatianab/satchel/internal/sched"
)

const frame = 50 * time.Millisecond

type printCues struct{}

func (printCues) PlayCue(name string) { fmt.Printf("  ♪ %s\n", name) }

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	flag.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "content YAML file (built-in fields when empty)")
	seed := flag.Uint64("seed", 1, "seed for the computer opponent")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	content, err := models.LoadContent(cfg.ContentPath)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	s, err := game.NewSession(content, logger)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	s.SetCuePlayer(printCues{})
	sub := s.Ledger().Subscribe(inventory.ObserverFunc(func(snap inventory.Snapshot) {
		fmt.Printf("  Satchel: %s\n", satchel(snap))
	}))
	defer sub.Cancel()

	// 1. Walk the field
	fmt.Printf("--- Step 1: Walking %s ---\n", content.Title)
	field, err := game.NewField(s)
	if err != nil {
		log.Fatalf("Failed to build field: %v", err)
	}
	printNotes(field)
	for field.Pos() < field.Width()-1 {
		before := field.Pos()
		field.Move(1)
		if field.Pos() == before {
			fmt.Printf("Blocked at %d.\n", before)
			break
		}
		printNotes(field)
		talk(field)
		if slices.Contains(field.SwitchPads(), field.Pos()) && !field.Switcher().UsesTrigger() {
			field.SwitchKey()
			printNotes(field)
		}
	}
	for _, o := range field.Objects() {
		fmt.Printf("Object %s: active=%v\n", o.Name, o.Active)
	}
	fmt.Println()

	// 2. Character select
	fmt.Println("--- Step 2: Character select ---")
	scheduler := sched.New()
	selCfg := charselect.Config{
		Slots:     len(content.Roster),
		Columns:   content.Select.Columns,
		TwoPlayer: content.Select.TwoPlayer,
		Fanfare:   time.Duration(content.Select.FanfareMS) * time.Millisecond,
		NextScene: content.Select.NextScene,
	}
	screen, err := charselect.New(selCfg, s, scheduler, logger)
	if err != nil {
		log.Fatalf("Failed to open character select: %v", err)
	}
	screen.HandleEdge(charselect.P1, charselect.Right)
	screen.HandleEdge(charselect.P1, charselect.Confirm)
	screen.HandleEdge(charselect.P2, charselect.Down)
	screen.HandleEdge(charselect.P2, charselect.Confirm)

	var next string
	for i := 0; i < 1000; i++ {
		scheduler.Advance(frame)
		screen.Tick()
		if name, ok := s.TakeScene(); ok {
			next = name
			break
		}
	}
	if next == "" {
		log.Fatalf("Character select never finished")
	}
	fmt.Printf("Loaded scene %q after %v\n\n", next, scheduler.Now())

	// 3. Fight
	fmt.Println("--- Step 3: Fight ---")
	roster := make([]fight.Character, 0, len(content.Roster))
	for _, f := range content.Roster {
		roster = append(roster, fight.Character{Name: f.Name, Glyph: f.Glyph})
	}
	m, err := fight.Setup(s.Selection(), roster, rand.New(rand.NewPCG(*seed, *seed)), logger)
	if err != nil {
		log.Fatalf("Failed to set up the fight: %v", err)
	}
	fmt.Printf("P1: %s %s (%s)\n", m.P1.Character.Glyph, m.P1.Character.Name, m.P1.Controls.Scheme)
	fmt.Printf("P2: %s %s (%s)\n", m.P2.Character.Glyph, m.P2.Character.Name, m.P2.Controls.Scheme)
	if m.RandomP2 {
		fmt.Println("P2 was picked at random.")
	}
}

func printNotes(f *game.Field) {
	for _, n := range f.TakeNotes() {
		fmt.Printf("[%d] %s\n", f.Pos(), n)
	}
}

// talk reads every balloon line of the NPC under the player.
func talk(f *game.Field) {
	for i := 0; i < 20; i++ {
		npc := f.Talking()
		if npc == nil {
			return
		}
		fmt.Printf("[%d] %s: %s\n", f.Pos(), npc.Name, npc.Balloon().Text)
		f.Advance()
	}
}

func satchel(snap inventory.Snapshot) string {
	lines := snap.Summary()
	if len(lines) == 0 {
		return "(empty)"
	}
	return strings.Join(lines, ", ")
}
