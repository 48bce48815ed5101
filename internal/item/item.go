package item

// Definition describes one item type. It is created once from content and
// never changes afterwards. Two definitions are the same item only if they
// are the same pointer; display names may collide.
type Definition struct {
	key  string
	name string
	icon string
}

// New returns a definition for the given content key.
func New(key, name, icon string) *Definition {
	return &Definition{key: key, name: name, icon: icon}
}

// Key returns the content key the definition was loaded under.
func (d *Definition) Key() string { return d.key }

// Name returns the display name.
func (d *Definition) Name() string { return d.name }

// Icon returns the display glyph, which may be empty.
func (d *Definition) Icon() string { return d.icon }

func (d *Definition) String() string {
	if d == nil {
		return "<nil item>"
	}
	return d.name
}

// Catalog indexes definitions by content key, keeping content order.
type Catalog struct {
	byKey map[string]*Definition
	order []*Definition
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byKey: make(map[string]*Definition)}
}

// Add registers def. It returns false if the key is already taken, in which
// case the existing definition is kept.
func (c *Catalog) Add(def *Definition) bool {
	if _, ok := c.byKey[def.key]; ok {
		return false
	}
	c.byKey[def.key] = def
	c.order = append(c.order, def)
	return true
}

// Lookup returns the definition registered under key.
func (c *Catalog) Lookup(key string) (*Definition, bool) {
	def, ok := c.byKey[key]
	return def, ok
}

// All returns the definitions in the order they were added.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.order) }
