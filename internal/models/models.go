package models

// Content is the full game definition loaded from YAML.
type Content struct {
	Title  string        `yaml:"title"`
	Items  []ItemSpec    `yaml:"items"`
	Field  FieldSpec     `yaml:"field"`
	Bodies []BodySpec    `yaml:"bodies"`
	Avatar AvatarSpec    `yaml:"avatar"`
	Roster []FighterSpec `yaml:"roster"`
	Select SelectSpec    `yaml:"select"`
}

// ItemSpec defines one item type.
type ItemSpec struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon,omitempty"`
}

// FieldSpec lays out the walkable strip and what sits on it.
type FieldSpec struct {
	Width        int               `yaml:"width"`
	Start        int               `yaml:"start"`
	Collectibles []CollectibleSpec `yaml:"collectibles"`
	NPCs         []NPCSpec         `yaml:"npcs"`
	Objects      []ObjectSpec      `yaml:"objects"`
	SwitchPads   []int             `yaml:"switch_pads,omitempty"`
	ResetPads    []int             `yaml:"reset_pads,omitempty"`
}

// CollectibleSpec places a pickup on the field.
type CollectibleSpec struct {
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity,omitempty"` // defaults to 1
	At       int    `yaml:"at"`
	Sound    string `yaml:"sound,omitempty"`
}

// RequirementSpec is one item stack an NPC asks for.
type RequirementSpec struct {
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// NPCSpec places a talking NPC on the field.
type NPCSpec struct {
	Name       string            `yaml:"name"`
	At         int               `yaml:"at"`
	Request    []string          `yaml:"request"`
	Fulfilled  []string          `yaml:"fulfilled,omitempty"`
	Requires   []RequirementSpec `yaml:"requires,omitempty"`
	Activate   []string          `yaml:"activate,omitempty"`
	Deactivate []string          `yaml:"deactivate,omitempty"`
}

// ObjectSpec is a named object a fulfilled NPC can switch on or off.
type ObjectSpec struct {
	Name   string `yaml:"name"`
	Glyph  string `yaml:"glyph,omitempty"`
	At     int    `yaml:"at"`
	Active bool   `yaml:"active"`
	// Solid objects block the player while active.
	Solid bool `yaml:"solid,omitempty"`
}

// BodySpec is one body the player can switch into.
type BodySpec struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
}

// AvatarSpec configures body switching.
type AvatarSpec struct {
	UseTrigger bool `yaml:"use_trigger"`
}

// FighterSpec is one character on the select grid.
type FighterSpec struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
}

// SelectSpec configures the character select screen.
type SelectSpec struct {
	Columns   int    `yaml:"columns"`
	TwoPlayer bool   `yaml:"two_player"`
	FanfareMS int    `yaml:"fanfare_ms"`
	NextScene string `yaml:"next_scene"`
}

// InventoryFile is the saved ledger, keyed by item key.
type InventoryFile struct {
	Items map[string]int `yaml:"items"`
}
