package plan

import (
	"fmt"
	"sort"

	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/ot"
)

func chunkName(n int, chunk Chunk) string {
	return fmt.Sprintf("chunk %d (len %d)", n, chunk.Bucket)
}

// wire assigns lookup identifiers and registers features. Banks come first in
// ascending slot order, then chunks in emission order, then numeric override
// lookups. Identifiers are LookupBase plus the position in this sequence.
func (c *Compiler) wire(banks []Bank, chunks []Chunk, numeric []LigatureSubst) (*Table, error) {
	total := c.conf.LookupBase + len(banks) + len(chunks) + len(numeric)
	if total > ot.MaxLookupCount {
		return nil, diagnostic.Violation(diagnostic.StagePlan, "",
			"%d lookups exceed the lookup list limit of %d", total, ot.MaxLookupCount)
	}
	t := &Table{
		LookupBase: c.conf.LookupBase,
		Lookups:    make([]Lookup, 0, len(banks)+len(chunks)+len(numeric)),
		Banks:      banks,
		Chunks:     chunks,
	}
	contextTag := ot.T(c.conf.ContextFeature)
	swapTag := contextTag
	if c.conf.FeatureMode == config.FeatureSeparate {
		swapTag = ot.T(c.conf.SwapFeature)
	}
	nextID := func() uint16 {
		return uint16(c.conf.LookupBase + len(t.Lookups))
	}
	bankIDs := make(map[int]uint16, len(banks))
	for _, b := range banks {
		pairs := make([]GlyphPair, len(b.Mappings))
		for i, m := range b.Mappings {
			pairs[i] = GlyphPair{In: m.From, Out: m.To}
		}
		bankIDs[b.Slot] = nextID()
		t.Lookups = append(t.Lookups, Lookup{
			ID:      nextID(),
			Type:    ot.GSubLookupTypeSingle,
			Feature: swapTag,
			Name:    fmt.Sprintf("bank %d", b.Slot),
			Single:  &SingleSubst{Pairs: pairs},
		})
	}
	for n, chunk := range chunks {
		chain, err := chainSubst(n, chunk, bankIDs)
		if err != nil {
			return nil, err
		}
		t.Lookups = append(t.Lookups, Lookup{
			ID:      nextID(),
			Type:    ot.GSubLookupTypeChainingContext,
			Feature: contextTag,
			Name:    chunkName(n, chunk),
			Chain:   chain,
		})
	}
	numericTag := ot.T(c.conf.NumericFeature)
	for n := range numeric {
		t.Lookups = append(t.Lookups, Lookup{
			ID:       nextID(),
			Type:     ot.GSubLookupTypeLigature,
			Feature:  numericTag,
			Name:     fmt.Sprintf("numeric %d", n),
			Ligature: &numeric[n],
		})
	}
	assert(c.conf.LookupBase+len(t.Lookups) == total, "lookup count differs from wiring sequence")
	t.Features, t.Scripts = registerFeatures(t.Lookups, c.conf.ScriptTags())
	return t, nil
}

// chainSubst builds the format 1 chaining context payload for a chunk. Every
// non-zero bank slot of a rule becomes a sequence lookup record referencing the
// bank's lookup identifier.
func chainSubst(n int, chunk Chunk, bankIDs map[int]uint16) (*ChainSubst, error) {
	cs := &ChainSubst{
		Coverage: make([]ot.Glyph, len(chunk.Groups)),
		RuleSets: make([][]ChainRule, len(chunk.Groups)),
	}
	for i, g := range chunk.Groups {
		cs.Coverage[i] = g.Glyph
		set := make([]ChainRule, 0, len(g.Rules))
		for _, r := range g.Rules {
			rule := ChainRule{Input: r.InputGlyphs}
			for pos := 0; pos < r.Len(); pos++ {
				slot := r.BankAt(pos)
				if slot == 0 {
					continue
				}
				id, ok := bankIDs[slot]
				if !ok {
					return nil, diagnostic.Violation(diagnostic.StagePlan, r.Word,
						"%s: position %d references bank %d, which does not exist", chunkName(n, chunk), pos, slot)
				}
				rule.Records = append(rule.Records, ot.SequenceLookupRecord{
					SequenceIndex:   uint16(pos),
					LookupListIndex: id,
				})
			}
			set = append(set, rule)
		}
		cs.RuleSets[i] = set
	}
	return cs, nil
}

// registerFeatures collects lookups by feature tag and attaches every feature
// to the default language system of every script. Features and scripts are
// sorted by tag, as the feature and script lists require.
func registerFeatures(lookups []Lookup, scripts []ot.Tag) ([]Feature, []Script) {
	byTag := make(map[ot.Tag][]uint16)
	var tags []ot.Tag
	for _, l := range lookups {
		if _, ok := byTag[l.Feature]; !ok {
			tags = append(tags, l.Feature)
		}
		byTag[l.Feature] = append(byTag[l.Feature], l.ID)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	features := make([]Feature, len(tags))
	indices := make([]int, len(tags))
	for i, tag := range tags {
		features[i] = Feature{Tag: tag, Lookups: byTag[tag]}
		indices[i] = i
	}
	scriptTags := append([]ot.Tag(nil), scripts...)
	sort.Slice(scriptTags, func(i, j int) bool { return scriptTags[i] < scriptTags[j] })
	var out []Script
	for i, tag := range scriptTags {
		if i > 0 && scriptTags[i-1] == tag {
			continue
		}
		out = append(out, Script{Tag: tag, Features: append([]int(nil), indices...)})
	}
	return features, out
}
