package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.glyphs")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if f.NumGlyphs() == 0 {
		t.Fatalf("expected Go Regular to have glyphs")
	}
	if !f.HasGlyph('A') || !f.HasGlyph('7') {
		t.Errorf("expected Go Regular to cover 'A' and '7'")
	}
	if f.HasGlyph('行') {
		t.Errorf("expected Go Regular not to cover CJK")
	}
	g, ok := f.Glyph('A').Unwrap()
	if !ok || g.ID == 0 || g.Name == "" {
		t.Fatalf("expected named glyph for 'A', have %v", g)
	}
	if !f.HasName(g.Name) {
		t.Errorf("expected glyph name %q to be known", g.Name)
	}
	if f.HasName("wingfont000000") {
		t.Errorf("expected variant glyph name to be unused")
	}
	if f.Glyph('行').IsSome() {
		t.Errorf("expected NotFound for uncovered character")
	}
}

func TestLoadOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.glyphs")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadOpenTypeFont(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Fontname == "" {
		t.Errorf("expected font name")
	}
	if _, err := ParseOpenTypeFont([]byte("not a font")); err == nil {
		t.Errorf("expected error for invalid font data")
	}
}
