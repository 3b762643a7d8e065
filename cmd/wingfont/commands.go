package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/wingfont"
	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/plan"
	"github.com/npillmayer/wingfont/ttx"
	"github.com/npillmayer/wingfont/variant"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runCompileCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	in := mustReadInput(args, flags)
	var r *wingfont.Result
	var err error
	if path, ok := optionalPath(flags["variants"], "variants"); ok {
		vt := mustReadVariants(path)
		r, err = wingfont.CompileWithTable(in.rows, in.source, vt, in.conf, in.notes)
	} else {
		r, err = wingfont.Compile(in.rows, in.source, in.conf, in.notes)
	}
	if err != nil {
		printNotes(in.notes)
		fatalf("%v", err)
	}
	out, ok := optionalPath(flags["output"], "output")
	if !ok {
		out = "wingfont.ttx"
	}
	if err := writeTTX(out, r.Plan); err != nil {
		fatalf("%v", err)
	}
	printSummary(r, out)
	printNotes(r.Notes)
	if mustFlagBool(flags["verify"], "verify") {
		g, err := ttx.DecodeFile(out)
		if err != nil {
			fatalf("cannot read back %s: %v", out, err)
		}
		if err := ttx.Verify(r.Plan, g); err != nil {
			fatalf("verification of %s failed: %v", out, err)
		}
		pterm.Success.Printf("%s verified against the substitution plan\n", out)
	}
}

func runVariantsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	in := mustReadInput(args, flags)
	r, err := wingfont.Compile(in.rows, in.source, in.conf, in.notes)
	if err != nil {
		printNotes(in.notes)
		fatalf("%v", err)
	}
	data := [][]string{
		{"Char", "Slot", "Annotation", "Weight", "Glyph", "Examples"},
	}
	for _, c := range r.Variants.Chars() {
		for _, s := range r.Variants.Slots(c) {
			glyph := "<missing>"
			if g, ok := r.Glyphs.Variant(c, s.Index).Unwrap(); ok {
				glyph = g.String()
			}
			data = append(data, []string{
				string(c),
				fmt.Sprintf("%d", s.Index),
				s.Annotation,
				fmt.Sprintf("%d", s.Weight),
				glyph,
				strings.Join(r.Frequencies.Examples(c, s.Annotation), " "),
			})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if path, ok := optionalPath(flags["output"], "output"); ok {
		f, err := os.Create(path)
		if err != nil {
			fatalf("%v", err)
		}
		defer f.Close()
		if err := variant.WriteYAML(f, r.Variants); err != nil {
			fatalf("%v", err)
		}
		pterm.Success.Printf("variant table written to %s\n", path)
	}
	printNotes(r.Notes)
}

func runRulesCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	in := mustReadInput(args, flags)
	r, err := wingfont.Compile(in.rows, in.source, in.conf, in.notes)
	if err != nil {
		printNotes(in.notes)
		fatalf("%v", err)
	}
	data := [][]string{
		{"Priority", "Word", "Annotations", "Weight", "Slots"},
	}
	for _, rule := range r.Rules.List() {
		slots := make([]string, len(rule.Chars))
		for i, c := range rule.Chars {
			if s, ok := r.Variants.Lookup(c, rule.Annotations[i]); ok {
				slots[i] = fmt.Sprintf("%d", s)
			} else {
				slots[i] = "-"
			}
		}
		data = append(data, []string{
			fmt.Sprintf("%d", rule.Priority),
			rule.Word,
			strings.Join(rule.Annotations, " "),
			fmt.Sprintf("%d", rule.Weight),
			strings.Join(slots, " "),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("%d word rules\n", r.Rules.Len())
	printNotes(r.Notes)
}

// --- Output ----------------------------------------------------------------

func mustReadVariants(path string) *variant.Table {
	f, err := os.Open(path)
	if err != nil {
		fatalf("%v", err)
	}
	defer f.Close()
	vt, err := variant.ReadYAML(f)
	if err != nil {
		fatalf("variant table %s: %v", path, err)
	}
	return vt
}

func writeTTX(path string, t *plan.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ttx.Encode(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(r *wingfont.Result, out string) {
	p := r.Plan
	data := [][]string{
		{"Item", "Count"},
		{"characters", fmt.Sprintf("%d", r.Variants.Len())},
		{"max slots", fmt.Sprintf("%d", r.Variants.MaxSlots())},
		{"variant glyphs", fmt.Sprintf("%d", len(r.Glyphs.Added()))},
		{"word rules", fmt.Sprintf("%d", r.Rules.Len())},
		{"context rules", fmt.Sprintf("%d", p.RuleCount())},
		{"dropped rules", fmt.Sprintf("%d", p.Dropped)},
		{"banks", fmt.Sprintf("%d", len(p.Banks))},
		{"chunks", fmt.Sprintf("%d", len(p.Chunks))},
		{"lookups", fmt.Sprintf("%d", len(p.Lookups))},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	for _, f := range p.Features {
		pterm.Printf("feature %s: lookups %v\n", f.Tag, f.Lookups)
	}
	pterm.Success.Printf("GSUB written to %s, font will have %d glyphs\n", out, r.Glyphs.NumGlyphs())
}

func printNotes(notes *diagnostic.Collector) {
	if !notes.HasNotes() {
		return
	}
	for _, n := range notes.Notes() {
		pterm.Warning.Println(n.String())
	}
	pterm.Info.Printf("diagnostics: %s\n", notes.Summary())
}
