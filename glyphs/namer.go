package glyphs

import (
	"fmt"

	"github.com/npillmayer/wingfont/ot"
	"github.com/npillmayer/wingfont/variant"
)

// Namer is the default Materializer. Slot 0 of every character keeps the base
// glyph of the source. Every other slot gets a new glyph named
// <Prefix><6-digit counter>, skipping names already in use, with glyph indices
// appended after the source's glyphs in table order.
type Namer struct {
	Source Source
	Prefix string
}

// Materialize decides glyph identities for all slots of a variant table.
// Characters without a base glyph in the source get NotFound for every slot.
func (n Namer) Materialize(t *variant.Table) (*Map, error) {
	if n.Source == nil {
		return nil, fmt.Errorf("glyphs: namer has no glyph source")
	}
	prefix := n.Prefix
	if prefix == "" {
		prefix = "wingfont"
	}
	m := NewMap(n.Source)
	next := n.Source.NumGlyphs()
	used := make(map[ot.GlyphName]bool)
	cnt := 0
	newName := func() ot.GlyphName {
		for {
			name := ot.GlyphName(fmt.Sprintf("%s%06d", prefix, cnt))
			cnt++
			if !used[name] && !n.Source.HasName(name) {
				used[name] = true
				return name
			}
		}
	}
	missing := 0
	for _, c := range t.Chars() {
		slots := t.Slots(c)
		refs := make([]ot.GlyphRef, len(slots))
		base := n.Source.Glyph(c)
		if base.IsNone() {
			for i := range refs {
				refs[i] = ot.NotFound()
			}
			m.SetVariants(c, refs)
			missing++
			continue
		}
		refs[0] = base
		var added []Variant
		for _, s := range slots[1:] {
			if next > int(^ot.GlyphIndex(0)) {
				return nil, fmt.Errorf("glyphs: glyph index space exhausted at character %q", c)
			}
			g := ot.Glyph{Name: newName(), ID: ot.GlyphIndex(next)}
			next++
			refs[s.Index] = ot.Ref(g)
			added = append(added, Variant{Glyph: g, Char: c, Slot: s.Index, Annotation: s.Annotation})
		}
		m.SetVariants(c, refs, added...)
	}
	if missing > 0 {
		tracer().Infof("%d characters of the variant table have no base glyph", missing)
	}
	tracer().Infof("materialized %d variant glyphs, font will have %d glyphs", len(m.added), m.NumGlyphs())
	return m, nil
}
