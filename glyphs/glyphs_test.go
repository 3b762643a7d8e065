package glyphs

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/wingfont/ot"
	"github.com/npillmayer/wingfont/variant"
)

func table(t *testing.T, entries ...variant.Entry) *variant.Table {
	t.Helper()
	vt, err := variant.FromEntries(entries)
	if err != nil {
		t.Fatal(err)
	}
	return vt
}

func TestStaticSource(t *testing.T) {
	src := NewStaticSource('行', '銀', '行')
	if src.NumGlyphs() != 3 {
		t.Errorf("expected .notdef plus 2 glyphs, have %d", src.NumGlyphs())
	}
	g := src.Glyph('銀').MustUnwrap()
	if g.ID != 2 || g.Name != "uni9280" {
		t.Errorf("expected 銀 to be uni9280/2, is %s", g)
	}
	if src.Glyph('人').IsSome() || src.HasGlyph('人') {
		t.Errorf("expected 人 not to be covered")
	}
	if !src.HasName(".notdef") || !src.HasName("uni884C") {
		t.Errorf("expected names to be known")
	}
}

func TestNamer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.glyphs")
	defer teardown()
	//
	src := NewStaticSource('行', '銀')
	vt := table(t,
		variant.Entry{Char: "行", Annotations: []string{"hang4", "xing2", "hong4"}},
		variant.Entry{Char: "銀", Annotations: []string{"ngan4", "jan4"}},
		variant.Entry{Char: "人", Annotations: []string{"jan4", "ren2"}},
	)
	m, err := Namer{Source: src}.Materialize(vt)
	if err != nil {
		t.Fatal(err)
	}
	base := m.Variant('行', 0).MustUnwrap()
	if base != src.Glyph('行').MustUnwrap() {
		t.Errorf("expected slot 0 to reuse the base glyph, is %s", base)
	}
	expected := []struct {
		c    rune
		slot int
		name ot.GlyphName
		id   ot.GlyphIndex
	}{
		{'行', 1, "wingfont000000", 3},
		{'行', 2, "wingfont000001", 4},
		{'銀', 1, "wingfont000002", 5},
	}
	for _, e := range expected {
		g, ok := m.Variant(e.c, e.slot).Unwrap()
		if !ok || g.Name != e.name || g.ID != e.id {
			t.Errorf("expected %q slot %d to be %s/%d, is %v", e.c, e.slot, e.name, e.id, g)
		}
	}
	if m.Variant('人', 1).IsSome() || m.Base('人').IsSome() {
		t.Errorf("expected character without base glyph to be unresolved")
	}
	if m.Variant('行', 3).IsSome() {
		t.Errorf("expected slot beyond table to be unresolved")
	}
	if len(m.Added()) != 3 || m.NumGlyphs() != 6 {
		t.Errorf("expected 3 added glyphs and 6 total, have %d/%d", len(m.Added()), m.NumGlyphs())
	}
	if m.Added()[1].Annotation != "hong4" {
		t.Errorf("expected added glyphs in index order")
	}
}

func TestNamerAvoidsCollisions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.glyphs")
	defer teardown()
	//
	src := NewStaticSource('a')
	src.names["x000000"] = true
	vt := table(t, variant.Entry{Char: "a", Annotations: []string{"a1", "a2"}})
	m, err := Namer{Source: src, Prefix: "x"}.Materialize(vt)
	if err != nil {
		t.Fatal(err)
	}
	if g := m.Variant('a', 1).MustUnwrap(); g.Name != "x000001" {
		t.Errorf("expected colliding name to be skipped, have %s", g.Name)
	}
}

func TestMapFallsBackToSource(t *testing.T) {
	src := NewStaticSource('7')
	m := NewMap(src)
	if g, ok := m.Base('7').Unwrap(); !ok || g.Name != "uni0037" {
		t.Errorf("expected digit to resolve through source, have %v", g)
	}
	if m.Variant('7', 0).IsNone() {
		t.Errorf("expected slot 0 to resolve to base glyph")
	}
}
