package plan

import (
	"sort"

	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/ot"
	"github.com/npillmayer/wingfont/variant"
)

// buildNumeric builds the numeric override ligatures. For every character with
// more than one slot, each of its slot glyphs followed by digit N is replaced
// by the slot-N glyph, and followed by digit 0 by the default glyph.
// Characters are split into lookups of NumericChunkSize characters.
func (c *Compiler) buildNumeric(vt *variant.Table, glyphs GlyphResolver) []LigatureSubst {
	var digits [10]ot.GlyphRef
	found := 0
	for d := range digits {
		digits[d] = glyphs.Base(rune('0' + d))
		if digits[d].IsSome() {
			found++
		}
	}
	if found == 0 {
		c.notes.Validationf(diagnostic.StageNumeric, "", "no glyphs for digits 0 to 9, numeric override skipped")
		return nil
	}
	if found < len(digits) {
		tracer().Infof("numeric override: %d of 10 digit glyphs present", found)
	}
	var chars []rune
	for _, ch := range vt.Chars() {
		if vt.SlotCount(ch) >= 2 && glyphs.Base(ch).IsSome() {
			chars = append(chars, ch)
		}
	}
	var lookups []LigatureSubst
	for start := 0; start < len(chars); start += c.conf.NumericChunkSize {
		end := min(start+c.conf.NumericChunkSize, len(chars))
		if ls := numericLigatures(chars[start:end], vt, glyphs, &digits); len(ls.Sets) > 0 {
			lookups = append(lookups, ls)
		}
	}
	tracer().Infof("numeric override: %d characters in %d lookups", len(chars), len(lookups))
	return lookups
}

func numericLigatures(chars []rune, vt *variant.Table, glyphs GlyphResolver, digits *[10]ot.GlyphRef) LigatureSubst {
	var ls LigatureSubst
	seen := make(map[ot.GlyphIndex]bool)
	for _, ch := range chars {
		n := vt.SlotCount(ch)
		slotGlyphs := make([]ot.GlyphRef, n)
		for s := range slotGlyphs {
			slotGlyphs[s] = glyphs.Variant(ch, s)
		}
		for _, ref := range slotGlyphs {
			g, ok := ref.Unwrap()
			if !ok || seen[g.ID] {
				continue
			}
			seen[g.ID] = true
			set := LigatureSet{First: g}
			for d, dref := range digits {
				digit, ok := dref.Unwrap()
				if !ok || d >= n {
					continue
				}
				if target, ok := slotGlyphs[d].Unwrap(); ok {
					set.Ligatures = append(set.Ligatures, Ligature{
						Components: []ot.Glyph{digit},
						Glyph:      target,
					})
				}
			}
			if len(set.Ligatures) > 0 {
				ls.Sets = append(ls.Sets, set)
			}
		}
	}
	sort.Slice(ls.Sets, func(i, j int) bool {
		return ls.Sets[i].First.ID < ls.Sets[j].First.ID
	})
	return ls
}
