package plan

import (
	"sort"

	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/variant"
)

// buildBanks adds glyph(c) -> glyph(c, s) to bank s for every character c and
// every slot s > 0. Slots at or beyond MaxBanks cannot be referenced from a
// context rule and are skipped. Banks without mappings do not materialize.
func (c *Compiler) buildBanks(vt *variant.Table, glyphs GlyphResolver) []Bank {
	mappings := make(map[int][]Mapping)
	for _, ch := range vt.Chars() {
		n := vt.SlotCount(ch)
		if n > c.conf.MaxBanks {
			c.notes.Capacityf(diagnostic.StagePlan, string(ch),
				"%d annotations, slots %d to %d cannot be addressed", n, c.conf.MaxBanks, n-1)
			n = c.conf.MaxBanks
		}
		if n < 2 {
			continue
		}
		base, ok := glyphs.Base(ch).Unwrap()
		if !ok {
			tracer().Debugf("no base glyph for %q, no bank mappings", ch)
			continue
		}
		for s := 1; s < n; s++ {
			v, ok := glyphs.Variant(ch, s).Unwrap()
			if !ok {
				tracer().Debugf("no variant glyph for %q slot %d", ch, s)
				continue
			}
			mappings[s] = append(mappings[s], Mapping{Char: ch, From: base, To: v})
		}
	}
	slots := make([]int, 0, len(mappings))
	for s := range mappings {
		slots = append(slots, s)
	}
	sort.Ints(slots)
	banks := make([]Bank, 0, len(slots))
	for _, s := range slots {
		m := mappings[s]
		sort.SliceStable(m, func(i, j int) bool {
			return m[i].From.ID < m[j].From.ID
		})
		banks = append(banks, Bank{Slot: s, Mappings: m})
	}
	return banks
}
