package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/wingfont/ot"
)

// --- Compile model ---------------------------------------------------------

// Mapping is a single substitution of a character's default glyph by one of
// its variant glyphs.
type Mapping struct {
	Char rune
	From ot.Glyph
	To   ot.Glyph
}

// Bank holds the substitutions for one slot index, sorted by source glyph.
type Bank struct {
	Slot     int
	Mappings []Mapping
}

// ContextRule is a compiled word rule. It matches the initial glyph followed by
// the input glyphs and applies a bank at every position with a bank slot > 0.
type ContextRule struct {
	Word         string
	Priority     int // priority of the word rule, 0 is highest
	Initial      rune
	InitialGlyph ot.Glyph
	InitialBank  int // bank slot for the initial position, 0 for none
	Input        []rune
	InputGlyphs  []ot.Glyph
	InputBanks   []int // bank slot per input position, 0 for none
}

// Len is the length of the matched word.
func (r ContextRule) Len() int {
	return 1 + len(r.Input)
}

// BankAt returns the bank slot for word position pos, 0 being the initial
// character.
func (r ContextRule) BankAt(pos int) int {
	if pos == 0 {
		return r.InitialBank
	}
	return r.InputBanks[pos-1]
}

func (r ContextRule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(#%d):", r.Word, r.Priority)
	for pos := 0; pos < r.Len(); pos++ {
		fmt.Fprintf(&b, " %d", r.BankAt(pos))
	}
	return b.String()
}

// Group is the set of context rules sharing an initial glyph.
type Group struct {
	Initial rune
	Glyph   ot.Glyph
	Rules   []ContextRule
}

// Chunk is a capacity-bounded run of groups of one word-length bucket.
type Chunk struct {
	Bucket int // word length of all rules in the chunk
	Groups []Group
}

// RuleCount returns the number of context rules in the chunk.
func (c Chunk) RuleCount() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Rules)
	}
	return n
}

// --- Lookup model ----------------------------------------------------------

// GlyphPair is a single substitution.
type GlyphPair struct {
	In  ot.Glyph
	Out ot.Glyph
}

// SingleSubst is the payload of a single substitution lookup (type 1).
// Pairs are sorted by input glyph index.
type SingleSubst struct {
	Pairs []GlyphPair
}

// ChainRule is a chained sequence rule of a format 1 subtable. Backtrack and
// lookahead sequences are always empty.
type ChainRule struct {
	Input   []ot.Glyph // glyphs following the covered glyph
	Records []ot.SequenceLookupRecord
}

// ChainSubst is the payload of a chaining context lookup (type 6, format 1).
// RuleSets[i] holds the rules for Coverage[i]; coverage is sorted by glyph
// index.
type ChainSubst struct {
	Coverage []ot.Glyph
	RuleSets [][]ChainRule
}

// Ligature replaces its first glyph followed by Components by Glyph.
type Ligature struct {
	Components []ot.Glyph
	Glyph      ot.Glyph
}

// LigatureSet holds the ligatures starting with First.
type LigatureSet struct {
	First     ot.Glyph
	Ligatures []Ligature
}

// LigatureSubst is the payload of a ligature substitution lookup (type 4).
// Sets are sorted by first glyph index.
type LigatureSubst struct {
	Sets []LigatureSet
}

// Lookup is a GSUB lookup of the plan. Exactly one payload is set, matching
// Type.
type Lookup struct {
	ID       uint16
	Type     ot.LayoutTableLookupType
	Flag     ot.LayoutTableLookupFlag
	Feature  ot.Tag
	Name     string // e.g. "bank 2", "chunk 3 (len 4)"
	Single   *SingleSubst
	Chain    *ChainSubst
	Ligature *LigatureSubst
}

// Size returns the number of substitutions (type 1), rules (type 6) or
// ligatures (type 4) of the lookup.
func (l Lookup) Size() int {
	switch {
	case l.Single != nil:
		return len(l.Single.Pairs)
	case l.Chain != nil:
		n := 0
		for _, set := range l.Chain.RuleSets {
			n += len(set)
		}
		return n
	case l.Ligature != nil:
		n := 0
		for _, set := range l.Ligature.Sets {
			n += len(set.Ligatures)
		}
		return n
	}
	return 0
}

// Feature is a feature record with the identifiers of its lookups.
type Feature struct {
	Tag     ot.Tag
	Lookups []uint16
}

// Script is a script record. Its default language system references
// features by their index in the feature list.
type Script struct {
	Tag      ot.Tag
	Features []int
}

// Table is a compiled substitution plan.
type Table struct {
	LookupBase int
	Lookups    []Lookup  // in lookup identifier order
	Features   []Feature // sorted by tag
	Scripts    []Script  // sorted by tag
	Banks      []Bank    // materialized banks, ascending slot
	Chunks     []Chunk   // in emission order
	Dropped    int       // word rules dropped as no-ops or for missing glyphs
}

// Lookup returns the lookup with identifier id.
func (t *Table) Lookup(id int) (Lookup, bool) {
	i := id - t.LookupBase
	if i < 0 || i >= len(t.Lookups) {
		return Lookup{}, false
	}
	return t.Lookups[i], true
}

// Feature returns the feature record for tag.
func (t *Table) Feature(tag ot.Tag) (Feature, bool) {
	for _, f := range t.Features {
		if f.Tag == tag {
			return f, true
		}
	}
	return Feature{}, false
}

// BankLookup returns the lookup identifier of the bank for slot.
func (t *Table) BankLookup(slot int) (uint16, bool) {
	for i, b := range t.Banks {
		if b.Slot == slot {
			return t.Lookups[i].ID, true
		}
	}
	return 0, false
}

// RuleCount returns the number of context rules of the plan.
func (t *Table) RuleCount() int {
	n := 0
	for _, c := range t.Chunks {
		n += c.RuleCount()
	}
	return n
}

// validate checks the wiring of the plan: consecutive lookup identifiers,
// payloads matching lookup types, sorted coverage, and nested lookup records
// referencing single substitution lookups within the matched sequence.
func (t *Table) validate() error {
	types := make(map[uint16]ot.LayoutTableLookupType, len(t.Lookups))
	for i, l := range t.Lookups {
		if int(l.ID) != t.LookupBase+i {
			return fmt.Errorf("lookup %d has identifier %d, expected %d", i, l.ID, t.LookupBase+i)
		}
		types[l.ID] = l.Type
	}
	for _, l := range t.Lookups {
		switch l.Type {
		case ot.GSubLookupTypeSingle:
			if l.Single == nil || !sort.SliceIsSorted(l.Single.Pairs, func(i, j int) bool {
				return l.Single.Pairs[i].In.ID < l.Single.Pairs[j].In.ID
			}) {
				return fmt.Errorf("lookup %d: invalid single substitution", l.ID)
			}
		case ot.GSubLookupTypeChainingContext:
			if l.Chain == nil || len(l.Chain.Coverage) != len(l.Chain.RuleSets) {
				return fmt.Errorf("lookup %d: coverage and rule sets differ in length", l.ID)
			}
			for i := 1; i < len(l.Chain.Coverage); i++ {
				if l.Chain.Coverage[i-1].ID >= l.Chain.Coverage[i].ID {
					return fmt.Errorf("lookup %d: coverage not sorted at %d", l.ID, i)
				}
			}
			for _, set := range l.Chain.RuleSets {
				for _, rule := range set {
					for _, rec := range rule.Records {
						if int(rec.SequenceIndex) > len(rule.Input) {
							return fmt.Errorf("lookup %d: sequence index %d beyond input", l.ID, rec.SequenceIndex)
						}
						if types[rec.LookupListIndex] != ot.GSubLookupTypeSingle {
							return fmt.Errorf("lookup %d: record references lookup %d, which is not a bank",
								l.ID, rec.LookupListIndex)
						}
					}
				}
			}
		case ot.GSubLookupTypeLigature:
			if l.Ligature == nil {
				return fmt.Errorf("lookup %d: missing ligature payload", l.ID)
			}
		default:
			return fmt.Errorf("lookup %d: unexpected lookup type %s", l.ID, l.Type.GSubString())
		}
	}
	for _, f := range t.Features {
		for _, id := range f.Lookups {
			if _, ok := types[id]; !ok {
				return fmt.Errorf("feature %s references unknown lookup %d", f.Tag, id)
			}
		}
	}
	for _, s := range t.Scripts {
		for _, fi := range s.Features {
			if fi < 0 || fi >= len(t.Features) {
				return fmt.Errorf("script %s references unknown feature %d", s.Tag, fi)
			}
		}
	}
	return nil
}
