/*
Package glyphs decides the glyph identities of characters and their
annotation variants.

A Source knows the glyphs present in a target font. A Materializer turns a
variant table into a Map, which resolves every (character, slot) pair to a
GlyphRef exactly once. Drawing variant outlines is the business of external
tools; the Namer materializer only decides names and glyph indices for the
variant glyphs such tools have to provide.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphs

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wingfont/ot"
	"github.com/npillmayer/wingfont/variant"
)

// tracer returns a trace sink for the glyphs package namespace.
func tracer() tracing.Trace {
	return tracing.Select("wingfont.glyphs")
}

// Source is the glyph repertoire of a target font.
type Source interface {
	HasGlyph(r rune) bool
	// Glyph returns the glyph mapped to r by the font's cmap, or NotFound.
	Glyph(r rune) ot.GlyphRef
	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int
	// HasName reports whether the font already uses a glyph name.
	HasName(name ot.GlyphName) bool
}

// Materializer decides the glyph identities for a variant table.
type Materializer interface {
	Materialize(*variant.Table) (*Map, error)
}
