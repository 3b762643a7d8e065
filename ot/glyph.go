package ot

import "fmt"

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// GlyphName is the post-table (or synthesized) name of a glyph. Rule tables are
// serialized by glyph name, as fontTools does.
type GlyphName string

// Glyph identifies a concrete glyph of the target font, either present in the
// font already or appended by a glyph materializer.
type Glyph struct {
	Name GlyphName
	ID   GlyphIndex
}

func (g Glyph) String() string {
	return fmt.Sprintf("%s/%d", g.Name, g.ID)
}

// GlyphRef is the resolved outcome of asking for a glyph: either NotFound or a
// reference to a concrete Glyph. It is resolved once, at the boundary where
// glyph identities are decided, and never re-checked downstream.
type GlyphRef = Option[Glyph]

// NotFound is the GlyphRef for a character or variant without a glyph.
func NotFound() GlyphRef {
	return None[Glyph]()
}

// Ref wraps a glyph into a GlyphRef.
func Ref(g Glyph) GlyphRef {
	return Some(g)
}

// SynthesizedGlyphName returns a name for a glyph without a post-table name,
// following the fontTools conventions: 'uniXXXX' for BMP code-points,
// 'uXXXXX' beyond, and 'glyphNNNNN' if there is no code-point at all.
func SynthesizedGlyphName(r rune, id GlyphIndex) GlyphName {
	switch {
	case r > 0 && r <= 0xffff:
		return GlyphName(fmt.Sprintf("uni%04X", r))
	case r > 0xffff:
		return GlyphName(fmt.Sprintf("u%05X", r))
	}
	return GlyphName(fmt.Sprintf("glyph%05d", id))
}
