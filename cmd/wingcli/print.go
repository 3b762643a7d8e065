package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/wingfont"
	"github.com/npillmayer/wingfont/ot"
	"github.com/npillmayer/wingfont/plan"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/norm"
)

func printChar(r *wingfont.Result, c rune) {
	c = []rune(norm.NFC.String(string(c)))[0]
	slots := r.Variants.Slots(c)
	if len(slots) == 0 {
		pterm.Printf("%q (%U) has no annotations\n", c, c)
		return
	}
	data := [][]string{
		{"Slot", "Annotation", "Weight", "Glyph", "Bank", "Examples"},
	}
	for _, s := range slots {
		glyph := "<missing>"
		if g, ok := r.Glyphs.Variant(c, s.Index).Unwrap(); ok {
			glyph = g.String()
		}
		bank := "-"
		if id, ok := r.Plan.BankLookup(s.Index); ok && s.Index > 0 {
			bank = fmt.Sprintf("lookup %d", id)
		}
		data = append(data, []string{
			fmt.Sprintf("%d", s.Index),
			s.Annotation,
			fmt.Sprintf("%d", s.Weight),
			glyph,
			bank,
			strings.Join(r.Frequencies.Examples(c, s.Annotation), " "),
		})
	}
	pterm.Printf("%q (%U)\n", c, c)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printWord(r *wingfont.Result, word string) {
	word = norm.NFC.String(word)
	rule, ok := r.Rules.Find(word)
	if !ok {
		pterm.Printf("no word rule for %s\n", word)
		return
	}
	pterm.Printf("%s\n", rule)
	for _, chunk := range r.Plan.Chunks {
		for _, g := range chunk.Groups {
			for _, cr := range g.Rules {
				if cr.Word == word {
					pterm.Printf("context rule %s, keyed on %s, in chunk of length %d\n",
						cr, cr.InitialGlyph, chunk.Bucket)
					return
				}
			}
		}
	}
	pterm.Println("word uses default glyphs only or cannot be matched, no context rule")
}

func printLookupList(t *plan.Table) {
	pterm.Printf("GSUB LookupList has %d entries, base %d\n", len(t.Lookups), t.LookupBase)
	if len(t.Lookups) == 0 {
		return
	}
	data := [][]string{
		{"Index", "Type", "Name", "Feature", "Size", "Flags"},
	}
	for _, l := range t.Lookups {
		data = append(data, []string{
			fmt.Sprintf("%d", l.ID),
			l.Type.GSubString(),
			l.Name,
			l.Feature.String(),
			fmt.Sprintf("%d", l.Size()),
			formatLookupFlags(l.Flag),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookup(t *plan.Table, id int) {
	l, ok := t.Lookup(id)
	if !ok {
		pterm.Error.Printf("Lookup index out of range: %d\n", id)
		return
	}
	pterm.Printf("Lookup %d (%s): type=%s flags=%s size=%d\n",
		l.ID, l.Name, l.Type.GSubString(), formatLookupFlags(l.Flag), l.Size())
	var data [][]string
	switch {
	case l.Single != nil:
		data = append(data, []string{"In", "Out"})
		for _, p := range l.Single.Pairs {
			data = append(data, []string{p.In.String(), p.Out.String()})
		}
	case l.Chain != nil:
		data = append(data, []string{"Coverage", "Input", "Records"})
		for i, cov := range l.Chain.Coverage {
			for _, rule := range l.Chain.RuleSets[i] {
				data = append(data, []string{
					cov.String(),
					formatGlyphs(rule.Input),
					formatRecords(rule.Records),
				})
			}
		}
	case l.Ligature != nil:
		data = append(data, []string{"First", "Components", "Ligature"})
		for _, set := range l.Ligature.Sets {
			for _, lig := range set.Ligatures {
				data = append(data, []string{
					set.First.String(),
					formatGlyphs(lig.Components),
					lig.Glyph.String(),
				})
			}
		}
	}
	if len(data) > 1 {
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
}

func printFeatures(t *plan.Table) {
	data := [][]string{
		{"Index", "Feature", "Lookups"},
	}
	for i, f := range t.Features {
		data = append(data, []string{fmt.Sprintf("%d", i), f.Tag.String(), fmt.Sprintf("%v", f.Lookups)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	for _, s := range t.Scripts {
		pterm.Printf("script %s: features %v\n", s.Tag, s.Features)
	}
}

func formatGlyphs(glyphs []ot.Glyph) string {
	names := make([]string, len(glyphs))
	for i, g := range glyphs {
		names[i] = string(g.Name)
	}
	return strings.Join(names, " ")
}

func formatRecords(records []ot.SequenceLookupRecord) string {
	parts := make([]string, len(records))
	for i, rec := range records {
		parts[i] = fmt.Sprintf("%d->%d", rec.SequenceIndex, rec.LookupListIndex)
	}
	return strings.Join(parts, " ")
}

func formatLookupFlags(flag ot.LayoutTableLookupFlag) string {
	if flag == 0 {
		return "-"
	}
	parts := make([]string, 0, 6)
	if flag&ot.LOOKUP_FLAG_RIGHT_TO_LEFT != 0 {
		parts = append(parts, "RightToLeft")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0 {
		parts = append(parts, "IgnoreBase")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_LIGATURES != 0 {
		parts = append(parts, "IgnoreLigatures")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_MARKS != 0 {
		parts = append(parts, "IgnoreMarks")
	}
	if flag&ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
		parts = append(parts, "UseMarkFilteringSet")
	}
	if flag&ot.LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK != 0 {
		parts = append(parts, fmt.Sprintf("MarkAttachType=%d", flag>>8))
	}
	return strings.Join(parts, "|")
}
