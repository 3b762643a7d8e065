package glyphs

import (
	"github.com/npillmayer/wingfont/ot"
)

// StaticSource is an in-memory glyph repertoire. Glyph 0 is ".notdef"; every
// added character gets the next glyph index and a synthesized name.
type StaticSource struct {
	glyphs map[rune]ot.Glyph
	names  map[ot.GlyphName]bool
	count  int
}

// NewStaticSource creates a repertoire covering chars.
func NewStaticSource(chars ...rune) *StaticSource {
	s := &StaticSource{
		glyphs: make(map[rune]ot.Glyph),
		names:  map[ot.GlyphName]bool{".notdef": true},
		count:  1,
	}
	for _, c := range chars {
		s.Add(c)
	}
	return s
}

// Add adds a character to the repertoire, if it is not covered yet, and
// returns its glyph.
func (s *StaticSource) Add(c rune) ot.Glyph {
	if g, ok := s.glyphs[c]; ok {
		return g
	}
	id := ot.GlyphIndex(s.count)
	g := ot.Glyph{Name: ot.SynthesizedGlyphName(c, id), ID: id}
	s.glyphs[c] = g
	s.names[g.Name] = true
	s.count++
	return g
}

// AddString adds all characters of text.
func (s *StaticSource) AddString(text string) {
	for _, c := range text {
		s.Add(c)
	}
}

// HasGlyph is part of interface Source.
func (s *StaticSource) HasGlyph(c rune) bool {
	_, ok := s.glyphs[c]
	return ok
}

// Glyph is part of interface Source.
func (s *StaticSource) Glyph(c rune) ot.GlyphRef {
	if g, ok := s.glyphs[c]; ok {
		return ot.Ref(g)
	}
	return ot.NotFound()
}

// NumGlyphs is part of interface Source.
func (s *StaticSource) NumGlyphs() int {
	return s.count
}

// HasName is part of interface Source.
func (s *StaticSource) HasName(name ot.GlyphName) bool {
	return s.names[name]
}
