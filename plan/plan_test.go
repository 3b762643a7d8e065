package plan

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/dataset"
	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/glyphs"
	"github.com/npillmayer/wingfont/ot"
	"github.com/npillmayer/wingfont/variant"
	"github.com/npillmayer/wingfont/wordrule"
)

func TestBankConstruction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	f := newFixture(t, config.Default(), bankScenario()...)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Banks) != 2 || table.Banks[0].Slot != 1 || table.Banks[1].Slot != 2 {
		t.Fatalf("expected banks for slots 1 and 2, have %v", table.Banks)
	}
	m := table.Banks[1].Mappings
	if len(m) != 1 || m[0].Char != '行' || m[0].From.Name != "uni884C" {
		t.Errorf("expected bank 2 to map 行, have %v", m)
	}
	if m[0].To != f.glyphs.Variant('行', 2).MustUnwrap() {
		t.Errorf("expected bank 2 to map to the slot 2 glyph, have %v", m[0].To)
	}
	for _, b := range table.Banks {
		for _, mp := range b.Mappings {
			if mp.Char == '銀' {
				t.Errorf("銀 has a single annotation and must not appear in a bank")
			}
		}
	}
}

func TestScenarioBankReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	f := newFixture(t, config.Default(), bankScenario()...)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Chunks) != 1 || len(table.Chunks[0].Groups) != 1 {
		t.Fatalf("expected a single chunk with a single group, have %v", table.Chunks)
	}
	rule := table.Chunks[0].Groups[0].Rules[0]
	if rule.Initial != '銀' || string(rule.Input) != "行" {
		t.Errorf("expected rule keyed on 銀 with input 行, have %v", rule)
	}
	if rule.InitialBank != 0 || rule.InputBanks[0] != 2 {
		t.Errorf("expected bank 2 at input position 0, have %v", rule)
	}
	bankID, ok := table.BankLookup(2)
	if !ok || bankID != 1 {
		t.Fatalf("expected bank 2 to have lookup identifier 1, has %d/%v", bankID, ok)
	}
	chunk, ok := table.Lookup(2)
	if !ok || chunk.Type != ot.GSubLookupTypeChainingContext {
		t.Fatalf("expected lookup 2 to be a chaining context lookup, is %v", chunk)
	}
	recs := chunk.Chain.RuleSets[0][0].Records
	expected := []ot.SequenceLookupRecord{{SequenceIndex: 1, LookupListIndex: bankID}}
	if !reflect.DeepEqual(recs, expected) {
		t.Errorf("expected records %v, have %v", expected, recs)
	}
}

func TestNoOpRulesDropped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	f := newFixture(t, config.Default(),
		row("行", "hang4", 5),
		row("行", "hong4", 1),
		row("行人", "hang4 jan4", 1),
		row("人行", "jan4 hong4", 1),
	)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	if table.Dropped != 1 || table.RuleCount() != 1 {
		t.Errorf("expected 行人 to be dropped as no-op, have %d rules, %d dropped", table.RuleCount(), table.Dropped)
	}
}

func TestTruncatedAnnotationResolvesToDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	conf := config.Default()
	conf.MaxVariantsPerChar = 2
	f := newFixture(t, conf,
		row("a", "a1", 9),
		row("a", "a2", 8),
		row("b", "b1", 10),
		row("b", "b2", 8),
		row("ab", "a3 b2", 1), // a3 is truncated away
	)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	rule := table.Chunks[0].Groups[0].Rules[0]
	if rule.InitialBank != 0 || rule.InputBanks[0] != 1 {
		t.Errorf("expected truncated position to resolve to no substitution, have %v", rule)
	}
}

func TestLongestMatchFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	conf := config.Default()
	conf.ChunkCapacity = 10
	f := newFixture(t, conf,
		row("b", "b1", 10),
		row("ab", "a1 b2", 5),
		row("abc", "a1 b2 c1", 1),
		row("cbab", "c1 b2 a1 b2", 1),
	)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	var buckets []int
	for _, c := range table.Chunks {
		buckets = append(buckets, c.Bucket)
	}
	if !reflect.DeepEqual(buckets, []int{4, 3, 2}) {
		t.Errorf("expected one chunk per bucket, longest first, have %v", buckets)
	}
	// chunk lookups follow the bank lookups in bucket order
	for i, c := range table.Chunks {
		l, _ := table.Lookup(len(table.Banks) + i)
		if l.Chain == nil || len(l.Chain.RuleSets[0][0].Input) != c.Bucket-1 {
			t.Errorf("expected lookup %d to hold the rules of bucket %d", l.ID, c.Bucket)
		}
	}
}

func TestGroupOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	f := newFixture(t, config.Default(),
		row("x", "x1", 10),
		row("y", "y1", 10),
		row("z", "z1", 10),
		row("za", "z2 a1", 3),
		row("ay", "a1 y2", 1),
		row("ax", "a1 x2", 5),
	)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	groups := table.Chunks[0].Groups
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, have %d", len(groups))
	}
	// z got glyph index 3, a got 4
	if groups[0].Initial != 'z' || groups[1].Initial != 'a' {
		t.Errorf("expected groups in glyph index order, have %q, %q", groups[0].Initial, groups[1].Initial)
	}
	words := []string{groups[1].Rules[0].Word, groups[1].Rules[1].Word}
	if words[0] != "ax" || words[1] != "ay" {
		t.Errorf("expected rules in priority order, have %v", words)
	}
	cov := table.Lookups[len(table.Banks)].Chain.Coverage
	if cov[0].ID >= cov[1].ID {
		t.Errorf("expected coverage to be sorted by glyph index, have %v", cov)
	}
}

func TestChunkCapacityBoundary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	rows := []dataset.Row{
		row("b", "b1", 10),
		row("ab", "a1 b2", 1),
		row("cb", "c1 b2", 1),
		row("db", "d1 b2", 1),
	}
	tests := []struct {
		capacity int
		sizes    []int
	}{
		{3, []int{3}},    // exactly at capacity
		{2, []int{2, 1}}, // one beyond
		{1, []int{1, 1, 1}},
	}
	for _, tt := range tests {
		conf := config.Default()
		conf.ChunkCapacity = tt.capacity
		table, err := newFixture(t, conf, rows...).compile(nil)
		if err != nil {
			t.Fatal(err)
		}
		var sizes []int
		for _, c := range table.Chunks {
			sizes = append(sizes, len(c.Groups))
		}
		if !reflect.DeepEqual(sizes, tt.sizes) {
			t.Errorf("capacity %d: expected chunk sizes %v, have %v", tt.capacity, tt.sizes, sizes)
		}
	}
}

func TestChunksDoNotSpanBuckets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	conf := config.Default()
	conf.ChunkCapacity = 2
	f := newFixture(t, conf,
		row("b", "b1", 10),
		row("abb", "a1 b2 b1", 1),
		row("cb", "c1 b2", 1),
		row("db", "d1 b2", 1),
	)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Chunks) != 2 || table.Chunks[0].Bucket != 3 || len(table.Chunks[0].Groups) != 1 {
		t.Errorf("expected bucket 3 to start its own chunk, have %v", table.Chunks)
	}
}

func TestBankOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	conf := config.Default()
	conf.MaxBanks = 2
	f := newFixture(t, conf,
		row("a", "a1", 20),
		row("a", "a2", 8),
		row("a", "a3", 7),
		row("ab", "a3 b1", 1),
		row("ba", "b1 a2", 1),
	)
	notes := &diagnostic.Collector{}
	table, err := f.compileWith(conf, notes, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Banks) != 1 || table.Banks[0].Slot != 1 {
		t.Errorf("expected only bank 1 to be addressable, have %v", table.Banks)
	}
	if notes.Count(diagnostic.Capacity) != 1 {
		t.Errorf("expected an annotation-count overflow note, have %v", notes.Notes())
	}
	if table.RuleCount() != 1 || table.Dropped != 1 {
		t.Errorf("expected ab to be dropped, have %d rules", table.RuleCount())
	}
}

func TestMissingGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	f := newFixture(t, config.Default(),
		row("a", "a1", 20),
		row("a", "a2", 8),
		row("b", "b1", 20),
		row("b", "b2", 8),
		row("ab", "a2 b2", 1),
		row("ac", "a2 c1", 1),
	)
	// no base glyph for c: ac cannot match
	table, err := f.compile(hiding{f.glyphs, map[rune]bool{'c': true}, nil})
	if err != nil {
		t.Fatal(err)
	}
	if table.RuleCount() != 1 || table.Dropped != 1 {
		t.Errorf("expected ac to be dropped, have %d rules, %d dropped", table.RuleCount(), table.Dropped)
	}
	// no variant glyph for b slot 1: position gets no substitution
	table, err = f.compile(hiding{f.glyphs, nil, map[rune]bool{'b': true}})
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range table.Chunks[0].Groups {
		for _, r := range g.Rules {
			if r.Word == "ab" && (r.InitialBank != 1 || r.InputBanks[0] != 0) {
				t.Errorf("expected ab to substitute a only, have %v", r)
			}
		}
	}
	for _, b := range table.Banks {
		for _, m := range b.Mappings {
			if m.Char == 'b' {
				t.Errorf("expected no bank mapping for b")
			}
		}
	}
}

func TestInvariantViolations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	chunk := Chunk{Bucket: 2, Groups: []Group{{
		Initial: 'a',
		Glyph:   ot.Glyph{Name: "a", ID: 1},
		Rules: []ContextRule{{
			Word: "ab", Initial: 'a', InitialGlyph: ot.Glyph{Name: "a", ID: 1},
			Input: []rune{'b'}, InputGlyphs: []ot.Glyph{{Name: "b", ID: 2}}, InputBanks: []int{3},
		}},
	}}}
	_, err := chainSubst(0, chunk, map[int]uint16{1: 0})
	var v diagnostic.InvariantViolation
	if !errors.As(err, &v) || v.Subject != "ab" {
		t.Errorf("expected unresolved bank reference to be an invariant violation, is %v", err)
	}
	conf := config.Default()
	conf.ChunkCapacity = 1
	c := NewCompiler(conf, nil)
	chunk.Groups = append(chunk.Groups, chunk.Groups[0])
	if err := c.checkChunk(chunk, 0); !errors.As(err, &v) {
		t.Errorf("expected chunk over capacity to be an invariant violation, is %v", err)
	}
	chunk.Groups = chunk.Groups[:1]
	chunk.Bucket = 3
	if err := c.checkChunk(chunk, 0); !errors.As(err, &v) {
		t.Errorf("expected rule of foreign length to be an invariant violation, is %v", err)
	}
}

func TestFeatureRegistration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	f := newFixture(t, config.Default(), bankScenario()...)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Feature{
		{Tag: ot.T("calt"), Lookups: []uint16{2}},
		{Tag: ot.T("locl"), Lookups: []uint16{0, 1}},
	}
	if !reflect.DeepEqual(table.Features, expected) {
		t.Errorf("expected features %v, have %v", expected, table.Features)
	}
	if len(table.Scripts) != 2 || table.Scripts[0].Tag != ot.DFLT || table.Scripts[1].Tag != ot.T("hani") {
		t.Fatalf("expected scripts DFLT and hani, have %v", table.Scripts)
	}
	for _, s := range table.Scripts {
		if !reflect.DeepEqual(s.Features, []int{0, 1}) {
			t.Errorf("expected script %s to reference all features, has %v", s.Tag, s.Features)
		}
	}
	conf := config.Default()
	conf.FeatureMode = config.FeatureMerged
	conf.LookupBase = 10
	table, err = f.compileWith(conf, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	expected = []Feature{{Tag: ot.T("calt"), Lookups: []uint16{10, 11, 12}}}
	if !reflect.DeepEqual(table.Features, expected) {
		t.Errorf("expected merged features %v, have %v", expected, table.Features)
	}
	rec := table.Lookups[2].Chain.RuleSets[0][0].Records[0]
	if rec.LookupListIndex != 11 {
		t.Errorf("expected record to reference bank lookup 11, references %d", rec.LookupListIndex)
	}
}

func TestNumericOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	conf := config.Default()
	conf.NumericOverride = true
	f := newFixture(t, conf, bankScenario()...)
	table, err := f.compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	last := table.Lookups[len(table.Lookups)-1]
	if last.Type != ot.GSubLookupTypeLigature || last.Feature != ot.T("liga") {
		t.Fatalf("expected numeric ligature lookup last, have %v", last)
	}
	if len(last.Ligature.Sets) != 3 || last.Size() != 9 {
		t.Errorf("expected 3 ligature sets of 3 ligatures for 行, have %d/%d", len(last.Ligature.Sets), last.Size())
	}
	v2 := f.glyphs.Variant('行', 2).MustUnwrap()
	base := f.glyphs.Base('行').MustUnwrap()
	for _, set := range last.Ligature.Sets {
		for _, lig := range set.Ligatures {
			switch lig.Components[0].Name {
			case "uni0032":
				if lig.Glyph != v2 {
					t.Errorf("expected %s + 2 to yield slot 2 glyph, yields %s", set.First, lig.Glyph)
				}
			case "uni0030":
				if lig.Glyph != base {
					t.Errorf("expected %s + 0 to yield default glyph, yields %s", set.First, lig.Glyph)
				}
			}
		}
	}
	if _, ok := table.Feature(ot.T("liga")); !ok {
		t.Errorf("expected liga feature")
	}
}

func TestNumericOverrideWithoutDigits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	conf := config.Default()
	conf.NumericOverride = true
	f := newFixture(t, conf, bankScenario()...)
	notes := &diagnostic.Collector{}
	hidden := make(map[rune]bool)
	for _, d := range "0123456789" {
		hidden[d] = true
	}
	table, err := f.compileWith(conf, notes, hiding{f.glyphs, hidden, nil})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := table.Feature(ot.T("liga")); ok {
		t.Errorf("expected numeric override to be skipped")
	}
	if notes.Count(diagnostic.Validation) != 1 {
		t.Errorf("expected a note for missing digits, have %v", notes.Notes())
	}
}

func TestCompileIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.plan")
	defer teardown()
	//
	conf := config.Default()
	conf.NumericOverride = true
	conf.ChunkCapacity = 2
	rows := append(bankScenario(),
		row("行人", "hong4 jan4", 2),
		row("人行道", "jan4 hang4 dou6", 1),
		row("同行", "tung4 hong4", 3),
	)
	t1, err := newFixture(t, conf, rows...).compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := newFixture(t, conf, rows...).compile(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(t1, t2) {
		t.Errorf("expected identical plans for identical input")
	}
}

// --- Helpers ---------------------------------------------------------------

type fixture struct {
	t      *testing.T
	conf   config.Config
	vt     *variant.Table
	rules  *wordrule.Rules
	glyphs *glyphs.Map
}

func row(word, annos string, weight int) dataset.Row {
	return dataset.Row{Word: word, Annotations: strings.Fields(annos), Weight: weight}
}

// bankScenario: 行 gets slots hang4, xing2, hong4; 銀行 uses 行 slot 2.
func bankScenario() []dataset.Row {
	return []dataset.Row{
		row("行", "hang4", 5),
		row("行", "xing2", 3),
		row("銀行", "ngan4 hong4", 1),
	}
}

// newFixture runs the stages up to glyph materialization. Glyph indices are
// assigned in order of first appearance of characters, digits come last.
func newFixture(t *testing.T, conf config.Config, rows ...dataset.Row) *fixture {
	t.Helper()
	src := glyphs.NewStaticSource()
	for _, r := range rows {
		src.AddString(r.Word)
	}
	src.AddString("0123456789")
	freq := dataset.Ingest(rows, src, conf, nil)
	vt, err := variant.Allocate(freq, conf, nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := glyphs.Namer{Source: src}.Materialize(vt)
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{t: t, conf: conf, vt: vt, rules: wordrule.Aggregate(freq), glyphs: m}
}

func (f *fixture) compile(resolver GlyphResolver) (*Table, error) {
	return f.compileWith(f.conf, nil, resolver)
}

func (f *fixture) compileWith(conf config.Config, notes *diagnostic.Collector, resolver GlyphResolver) (*Table, error) {
	if resolver == nil {
		resolver = f.glyphs
	}
	return NewCompiler(conf, notes).Compile(f.vt, f.rules, resolver)
}

// hiding hides base glyphs or variant glyphs (slots > 0) of characters.
type hiding struct {
	GlyphResolver
	base    map[rune]bool
	variant map[rune]bool
}

func (h hiding) Base(c rune) ot.GlyphRef {
	if h.base[c] {
		return ot.NotFound()
	}
	return h.GlyphResolver.Base(c)
}

func (h hiding) Variant(c rune, slot int) ot.GlyphRef {
	if slot == 0 {
		return h.Base(c)
	}
	if h.variant[c] {
		return ot.NotFound()
	}
	return h.GlyphResolver.Variant(c, slot)
}
