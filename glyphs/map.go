package glyphs

import (
	"github.com/npillmayer/wingfont/ot"
)

// Variant is a variant glyph for an annotated character.
type Variant struct {
	Glyph      ot.Glyph
	Char       rune
	Slot       int
	Annotation string
}

// Map resolves characters and (character, slot) pairs to glyphs.
// A Map is immutable once materialized.
type Map struct {
	source   Source
	base     map[rune]ot.GlyphRef
	variants map[rune][]ot.GlyphRef
	added    []Variant
}

// NewMap creates an empty map on top of a source. Characters without an
// explicit entry resolve through the source.
func NewMap(source Source) *Map {
	return &Map{
		source:   source,
		base:     make(map[rune]ot.GlyphRef),
		variants: make(map[rune][]ot.GlyphRef),
	}
}

// SetVariants records the glyphs for the slots of character c, slot 0 being
// the base glyph. Glyphs which have not been in the source are passed in
// added, in glyph index order.
func (m *Map) SetVariants(c rune, slots []ot.GlyphRef, added ...Variant) {
	m.variants[c] = slots
	if len(slots) > 0 {
		m.base[c] = slots[0]
	}
	m.added = append(m.added, added...)
}

// Base returns the default glyph of character c.
func (m *Map) Base(c rune) ot.GlyphRef {
	if ref, ok := m.base[c]; ok {
		return ref
	}
	if m.source == nil {
		return ot.NotFound()
	}
	return m.source.Glyph(c)
}

// Variant returns the glyph for slot of character c. Slot 0 is the base glyph.
func (m *Map) Variant(c rune, slot int) ot.GlyphRef {
	slots := m.variants[c]
	if slot < 0 || slot >= len(slots) {
		if slot == 0 {
			return m.Base(c)
		}
		return ot.NotFound()
	}
	return slots[slot]
}

// Added returns the glyphs which have to be added to the font, in glyph index
// order.
func (m *Map) Added() []Variant {
	return append([]Variant(nil), m.added...)
}

// NumGlyphs returns the glyph count of the font after adding the variant
// glyphs.
func (m *Map) NumGlyphs() int {
	n := len(m.added)
	if m.source != nil {
		n += m.source.NumGlyphs()
	}
	return n
}
