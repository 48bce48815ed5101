package models

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_content.yaml
var defaultContent []byte

// DefaultContent returns the built-in game definition.
func DefaultContent() (*Content, error) {
	return ParseContent(defaultContent)
}

// LoadContent reads a content file, or the built-in one when path is empty.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return DefaultContent()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseContent(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseContent decodes and validates a content document.
func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content YAML: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Marshal encodes the content back to YAML.
func (c *Content) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Content) applyDefaults() {
	for i := range c.Field.Collectibles {
		if c.Field.Collectibles[i].Quantity == 0 {
			c.Field.Collectibles[i].Quantity = 1
		}
	}
	if c.Select.Columns == 0 {
		c.Select.Columns = 3
	}
	if c.Select.NextScene == "" {
		c.Select.NextScene = "fight"
	}
}

// Validate checks cross references and value ranges.
func (c *Content) Validate() error {
	var errs []error
	keys := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		if it.Key == "" {
			errs = append(errs, fmt.Errorf("items[%d]: key is required", i))
			continue
		}
		if keys[it.Key] {
			errs = append(errs, fmt.Errorf("items[%d]: duplicate key %q", i, it.Key))
		}
		keys[it.Key] = true
	}

	f := c.Field
	if f.Width < 1 {
		errs = append(errs, fmt.Errorf("field.width must be positive, got %d", f.Width))
	}
	inField := func(what string, at int) {
		if at < 0 || at >= f.Width {
			errs = append(errs, fmt.Errorf("%s: position %d outside field of width %d", what, at, f.Width))
		}
	}
	inField("field.start", f.Start)
	for i, col := range f.Collectibles {
		where := fmt.Sprintf("field.collectibles[%d]", i)
		if !keys[col.Item] {
			errs = append(errs, fmt.Errorf("%s: unknown item %q", where, col.Item))
		}
		if col.Quantity < 0 {
			errs = append(errs, fmt.Errorf("%s: quantity must not be negative, got %d", where, col.Quantity))
		}
		inField(where, col.At)
	}
	objects := make(map[string]bool, len(f.Objects))
	for i, o := range f.Objects {
		if o.Name == "" {
			errs = append(errs, fmt.Errorf("field.objects[%d]: name is required", i))
		}
		objects[o.Name] = true
		inField(fmt.Sprintf("field.objects[%d]", i), o.At)
	}
	for i, n := range f.NPCs {
		where := fmt.Sprintf("field.npcs[%d] (%s)", i, n.Name)
		inField(where, n.At)
		for j, r := range n.Requires {
			if !keys[r.Item] {
				errs = append(errs, fmt.Errorf("%s: requires[%d]: unknown item %q", where, j, r.Item))
			}
			if r.Quantity <= 0 {
				errs = append(errs, fmt.Errorf("%s: requires[%d]: quantity must be positive, got %d", where, j, r.Quantity))
			}
		}
		for _, name := range append(append([]string{}, n.Activate...), n.Deactivate...) {
			if !objects[name] {
				errs = append(errs, fmt.Errorf("%s: unknown object %q", where, name))
			}
		}
	}
	for i, at := range f.SwitchPads {
		inField(fmt.Sprintf("field.switch_pads[%d]", i), at)
	}
	for i, at := range f.ResetPads {
		inField(fmt.Sprintf("field.reset_pads[%d]", i), at)
	}

	if len(c.Bodies) == 0 {
		errs = append(errs, errors.New("bodies: at least one body is required"))
	}
	if len(c.Roster) == 0 {
		errs = append(errs, errors.New("roster: at least one fighter is required"))
	}
	if c.Select.Columns < 1 {
		errs = append(errs, fmt.Errorf("select.columns must be positive, got %d", c.Select.Columns))
	}
	if c.Select.FanfareMS < 0 {
		errs = append(errs, fmt.Errorf("select.fanfare_ms must not be negative, got %d", c.Select.FanfareMS))
	}
	return errors.Join(errs...)
}

// NPC returns the named NPC entry.
func (c *Content) NPC(name string) (*NPCSpec, bool) {
	for i := range c.Field.NPCs {
		if c.Field.NPCs[i].Name == name {
			return &c.Field.NPCs[i], true
		}
	}
	return nil, false
}
