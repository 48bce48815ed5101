package game

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/tatianab/satchel/internal/charselect"
	"github.com/tatianab/satchel/internal/inventory"
	"github.com/tatianab/satchel/internal/item"
	"github.com/tatianab/satchel/internal/models"
)

// Scene names.
const (
	SceneField  = "field"
	SceneSelect = "select"
	SceneFight  = "fight"
)

// ErrMissingCollaborator is returned when an action needs a session or ledger
// that is not there.
var ErrMissingCollaborator = errors.New("missing collaborator")

// CuePlayer plays a named sound cue once.
type CuePlayer interface {
	PlayCue(name string)
}

// Session is everything that outlives a scene: the content, the item
// catalog, the one inventory ledger and the last character selection.
type Session struct {
	ID string

	content   *models.Content
	catalog   *item.Catalog
	ledger    *inventory.Ledger
	selection *charselect.Selection
	scene     string
	pending   string
	cues      CuePlayer
	logger    *slog.Logger
}

// NewSession builds the catalog from content and adopts a fresh ledger.
func NewSession(content *models.Content, logger *slog.Logger) (*Session, error) {
	if content == nil {
		return nil, fmt.Errorf("session content: %w", ErrMissingCollaborator)
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	s := &Session{
		ID:      id,
		content: content,
		catalog: item.NewCatalog(),
		scene:   SceneField,
		logger:  logger.With("session", id),
	}
	for _, spec := range content.Items {
		if !s.catalog.Add(item.New(spec.Key, spec.Name, spec.Icon)) {
			return nil, fmt.Errorf("duplicate item key %q", spec.Key)
		}
	}
	s.AdoptLedger(inventory.NewLedger(s.logger))
	return s, nil
}

// AdoptLedger installs candidate as the session ledger unless one is already
// installed, in which case candidate is discarded. It returns the ledger in
// use.
func (s *Session) AdoptLedger(candidate *inventory.Ledger) *inventory.Ledger {
	if s.ledger == nil {
		s.ledger = candidate
		return candidate
	}
	if candidate != s.ledger {
		s.logger.Debug("discarding second inventory ledger")
	}
	return s.ledger
}

// Ledger returns the session ledger. It is nil-safe.
func (s *Session) Ledger() *inventory.Ledger {
	if s == nil {
		return nil
	}
	return s.ledger
}

func (s *Session) Catalog() *item.Catalog { return s.catalog }

func (s *Session) Content() *models.Content { return s.content }

// Logger returns the session logger, or the default logger for a nil session.
func (s *Session) Logger() *slog.Logger {
	if s == nil {
		return slog.Default()
	}
	return s.logger
}

// SetCuePlayer routes sound cues to p.
func (s *Session) SetCuePlayer(p CuePlayer) { s.cues = p }

// PlayCue plays a sound cue once, if anything is listening.
func (s *Session) PlayCue(name string) {
	s.logger.Debug("cue", "name", name)
	if s.cues != nil {
		s.cues.PlayCue(name)
	}
}

// LoadScene asks the host to switch scenes; see TakeScene.
func (s *Session) LoadScene(name string) {
	s.logger.Info("loading scene", "scene", name)
	s.pending = name
}

// TakeScene returns a requested scene change, once.
func (s *Session) TakeScene() (string, bool) {
	if s.pending == "" {
		return "", false
	}
	name := s.pending
	s.pending = ""
	s.scene = name
	return name, true
}

// Scene returns the current scene name.
func (s *Session) Scene() string { return s.scene }

// StoreSelection keeps the characters picked on the select screen.
func (s *Session) StoreSelection(sel charselect.Selection) {
	s.selection = &sel
}

// Selection returns the last stored selection, nil before the first one.
func (s *Session) Selection() *charselect.Selection { return s.selection }

// ResetInventory clears the session inventory.
func ResetInventory(s *Session) error {
	l := s.Ledger()
	if l == nil {
		s.Logger().Warn("inventory reset: no inventory ledger found")
		return fmt.Errorf("reset inventory: %w", ErrMissingCollaborator)
	}
	l.ClearInventory()
	return nil
}

// Save writes the inventory to the named save slot under dir.
func (s *Session) Save(dir, name string) error {
	snap := s.ledger.Snapshot()
	inv := models.InventoryFile{Items: make(map[string]int, snap.Len())}
	for _, e := range snap.Entries() {
		inv.Items[e.Item.Key()] = e.Quantity
	}
	if err := models.SaveInventory(dir, name, inv); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	s.logger.Info("inventory saved", "slot", name, "items", snap.Len())
	return nil
}

// Load replaces the inventory with the named save. Keys missing from the
// catalog are skipped.
func (s *Session) Load(dir, name string) error {
	inv, err := models.LoadInventory(dir, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}

	keys := make([]string, 0, len(inv.Items))
	for k := range inv.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s.ledger.ClearInventory()
	for _, k := range keys {
		def, ok := s.catalog.Lookup(k)
		if !ok {
			s.logger.Warn("skipping unknown item in save", "slot", name, "item", k)
			continue
		}
		if err := s.ledger.AddItem(def, inv.Items[k]); err != nil {
			s.logger.Warn("skipping saved item", "slot", name, "item", k, "error", err)
		}
	}
	s.logger.Info("inventory loaded", "slot", name)
	return nil
}
