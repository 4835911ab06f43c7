package sdkmodel

// Presence is the bit flag reported for each cell of a Model.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Field appeared in the wire input.
	PresenceWasNull                      // Field value is an explicit null.
	PresenceSet                          // Field was populated through With.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Presence reports how the named field got its value; zero means unset.
func (m Model) Presence(name string) Presence {
	i, _, ok := m.lookup(name)
	if !ok {
		return 0
	}
	return m.cells[i].presence()
}

// PresenceMap collects presence flags for every populated field, descending
// into raw objects and arrays that have not been coerced yet. The root "/" is
// always marked seen.
func (m Model) PresenceMap() PresenceMap {
	pm := PresenceMap{"/": PresenceSeen}
	if m.shape == nil {
		return pm
	}
	for i, f := range m.shape.fields {
		c := m.cells[i]
		if c == nil {
			continue
		}
		p := "/" + escapeToken(f.WireKey)
		pm[p] |= c.presence()
		collectPresenceRecurse(c.raw, p, pm)
	}
	return pm
}

func (c *cell) presence() Presence {
	if c == nil {
		return 0
	}
	p := c.origin
	if c.raw == nil {
		p |= PresenceWasNull
	}
	return p
}

func collectPresenceRecurse(v any, cur string, pm PresenceMap) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			p := cur + "/" + escapeToken(k)
			pm[p] |= PresenceSeen
			if val == nil {
				pm[p] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	case []any:
		for i, val := range t {
			p := indexPointer(cur, i)
			pm[p] |= PresenceSeen
			collectPresenceRecurse(val, p, pm)
		}
	case Model:
		for k, pv := range t.PresenceMap() {
			if k == "/" {
				continue
			}
			pm[cur+k] |= pv
		}
	default:
		// primitives: nothing to descend
	}
}
