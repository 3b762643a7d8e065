/*
Package fontload loads the glyph repertoire of an OpenType font.

Fonts are read with golang.org/x/image/font/sfnt. Only the cmap, the glyph
count and glyph names are consulted; nothing is rendered or written back.
*/
package fontload

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wingfont/ot"
	"golang.org/x/image/font/sfnt"
)

// tracer returns a trace sink for the glyphs namespace.
func tracer() tracing.Trace {
	return tracing.Select("wingfont.glyphs")
}

// Font is a parsed OpenType font (TTF or OTF) used as a glyph repertoire.
// A Font is not safe for concurrent use.
type Font struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
	buf      sfnt.Buffer
	names    map[ot.GlyphName]bool
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*Font, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", fontfile, err)
	}
	tracer().Infof("loaded font %q from %s, %d glyphs", f.Fontname, fontfile, f.NumGlyphs())
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *Font, err error) {
	f = &Font{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(&f.buf, sfnt.NameIDFull); err != nil {
		tracer().Debugf("font has no full name: %v", err)
		f.Fontname = "<unnamed>"
	}
	return f, nil
}

// HasGlyph reports whether the font's cmap maps r to a glyph other than
// .notdef.
func (f *Font) HasGlyph(r rune) bool {
	gid, err := f.SFNT.GlyphIndex(&f.buf, r)
	return err == nil && gid != 0
}

// Glyph returns the glyph the font's cmap maps r to, or NotFound.
// Glyphs without a post table name get a synthesized name.
func (f *Font) Glyph(r rune) ot.GlyphRef {
	gid, err := f.SFNT.GlyphIndex(&f.buf, r)
	if err != nil || gid == 0 {
		return ot.NotFound()
	}
	id := ot.GlyphIndex(gid)
	return ot.Ref(ot.Glyph{Name: f.glyphName(id, r), ID: id})
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.SFNT.NumGlyphs()
}

// HasName reports whether a glyph of the font carries name.
func (f *Font) HasName(name ot.GlyphName) bool {
	if f.names == nil {
		f.names = make(map[ot.GlyphName]bool, f.NumGlyphs())
		for i := 0; i < f.NumGlyphs(); i++ {
			f.names[f.glyphName(ot.GlyphIndex(i), 0)] = true
		}
	}
	return f.names[name]
}

func (f *Font) glyphName(id ot.GlyphIndex, r rune) ot.GlyphName {
	name, err := f.SFNT.GlyphName(&f.buf, sfnt.GlyphIndex(id))
	if err != nil || name == "" {
		return ot.SynthesizedGlyphName(r, id)
	}
	return ot.GlyphName(name)
}
