package plan

import (
	"github.com/npillmayer/wingfont/ot"
	"github.com/npillmayer/wingfont/variant"
	"github.com/npillmayer/wingfont/wordrule"
)

// resolveRules turns word rules into context rules. A position resolves to
// the slot of its annotation, or to "no substitution" if the annotation has no
// slot, the slot is not addressable, or its variant glyph is missing. Rules
// without any substitution are dropped as no-ops. Rules with a missing base
// glyph at any position cannot be matched and are dropped.
func (c *Compiler) resolveRules(vt *variant.Table, rules *wordrule.Rules, glyphs GlyphResolver) ([]ContextRule, int) {
	var resolved []ContextRule
	dropped := 0
	for _, rule := range rules.List() {
		n := rule.Len()
		glyphIDs := make([]ot.Glyph, n)
		slots := make([]int, n)
		missing := false
		substitutes := false
		for i, ch := range rule.Chars {
			g, ok := glyphs.Base(ch).Unwrap()
			if !ok {
				missing = true
				break
			}
			glyphIDs[i] = g
			slot, ok := vt.Lookup(ch, rule.Annotations[i])
			if !ok || slot == 0 || slot >= c.conf.MaxBanks {
				continue
			}
			if glyphs.Variant(ch, slot).IsNone() {
				tracer().Debugf("word %q: no variant glyph for %q slot %d", rule.Word, ch, slot)
				continue
			}
			slots[i] = slot
			substitutes = true
		}
		if missing {
			tracer().Infof("word %q cannot be matched, a base glyph is missing", rule.Word)
			dropped++
			continue
		}
		if !substitutes {
			tracer().Debugf("word %q uses default glyphs only", rule.Word)
			dropped++
			continue
		}
		resolved = append(resolved, ContextRule{
			Word:         rule.Word,
			Priority:     rule.Priority,
			Initial:      rule.Chars[0],
			InitialGlyph: glyphIDs[0],
			InitialBank:  slots[0],
			Input:        append([]rune(nil), rule.Chars[1:]...),
			InputGlyphs:  glyphIDs[1:],
			InputBanks:   slots[1:],
		})
	}
	return resolved, dropped
}
