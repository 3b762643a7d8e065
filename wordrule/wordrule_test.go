package wordrule

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/dataset"
)

type allGlyphs struct{}

func (allGlyphs) HasGlyph(rune) bool { return true }

func row(word, annos string, weight int) dataset.Row {
	return dataset.Row{Word: word, Annotations: strings.Fields(annos), Weight: weight}
}

func aggregate(rows ...dataset.Row) *Rules {
	return Aggregate(dataset.Ingest(rows, allGlyphs{}, config.Default(), nil))
}

func TestOrderByLengthAndWeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.wordrule")
	defer teardown()
	//
	rules := aggregate(
		row("ab", "a1 b1", 9),
		row("cde", "c1 d1 e1", 1),
		row("fg", "f1 g1", 12),
		row("h", "h1", 100),
	)
	var words []string
	for _, r := range rules.List() {
		words = append(words, r.Word)
	}
	if strings.Join(words, " ") != "cde fg ab" {
		t.Errorf("unexpected rule order %v", words)
	}
	for i, r := range rules.List() {
		if r.Priority != i {
			t.Errorf("expected rule %s to have priority %d, has %d", r.Word, i, r.Priority)
		}
	}
}

func TestDedupKeepsHighestPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.wordrule")
	defer teardown()
	//
	rules := aggregate(
		row("行人", "hong4 jan4", 2),
		row("行人", "hang4 jan4", 5),
		row("行人", "hong4 jan4", 2), // accumulates to 4
	)
	if rules.Len() != 1 {
		t.Fatalf("expected exactly one rule per word, have %v", rules.List())
	}
	r, ok := rules.Find("行人")
	if !ok || r.Annotations[0] != "hang4" || r.Weight != 5 {
		t.Errorf("expected hang4 jan4 with weight 5 to survive, have %v", r)
	}
}

func TestToneAndTextTieBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.wordrule")
	defer teardown()
	//
	tests := []struct {
		name     string
		rows     []dataset.Row
		expected string
	}{
		{
			name:     "tones ascending",
			rows:     []dataset.Row{row("xy", "a4 b2", 1), row("xy", "a2 b4", 1)},
			expected: "a2 b4",
		},
		{
			name:     "annotation text descending",
			rows:     []dataset.Row{row("xy", "a2 b4", 1), row("xy", "c2 b4", 1)},
			expected: "c2 b4",
		},
		{
			name:     "first seen",
			rows:     []dataset.Row{row("xy", "a2 b4", 1), row("xy", "a2 b4", 1)},
			expected: "a2 b4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := aggregate(tt.rows...).Find("xy")
			if !ok {
				t.Fatalf("expected rule for xy")
			}
			if strings.Join(r.Annotations, " ") != tt.expected {
				t.Errorf("expected %q to survive, have %v", tt.expected, r.Annotations)
			}
		})
	}
}

func TestSubWordRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.wordrule")
	defer teardown()
	//
	rules := aggregate(
		row("銀行家", "ngan4 hong4 gaa1", 1),
		row("銀行家", "ngan4 hong4 gaa1", 1),
		row("銀行", "ngan4 hang4", 1),
	)
	// sub-word observations from both rows outweigh the direct one
	r, ok := rules.Find("銀行")
	if !ok {
		t.Fatalf("expected rule for 銀行")
	}
	if r.Annotations[1] != "hong4" || r.Weight != 2 {
		t.Errorf("expected sub-word annotation hong4 with weight 2, have %v", r)
	}
	if rules.List()[0].Word != "銀行家" {
		t.Errorf("expected longer word first")
	}
}
