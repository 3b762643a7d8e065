package plan

import (
	"fmt"

	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/variant"
	"github.com/npillmayer/wingfont/wordrule"
)

// Compiler compiles substitution plans. A Compiler may be used for more than
// one compile; it does not keep state between compiles.
type Compiler struct {
	conf  config.Config
	notes *diagnostic.Collector
}

// NewCompiler creates a compiler. Capacity and validation notes are recorded
// with notes, which may be nil.
func NewCompiler(conf config.Config, notes *diagnostic.Collector) *Compiler {
	return &Compiler{conf: conf, notes: notes}
}

// Compile builds the substitution plan for a variant table and an ordered list
// of word rules. Glyph identities are taken from glyphs.
//
// Missing glyphs and unaddressable slots are skipped and noted. An error is
// returned only if the plan violates an invariant, in which case it is of
// type diagnostic.InvariantViolation.
func (c *Compiler) Compile(vt *variant.Table, rules *wordrule.Rules, glyphs GlyphResolver) (*Table, error) {
	if vt == nil || rules == nil || glyphs == nil {
		return nil, errCompile("compile needs a variant table, word rules and glyphs")
	}
	banks := c.buildBanks(vt, glyphs)
	tracer().Infof("step A: %d banks", len(banks))
	resolved, dropped := c.resolveRules(vt, rules, glyphs)
	tracer().Infof("step B: %d context rules, %d word rules dropped", len(resolved), dropped)
	buckets := orderRules(resolved)
	tracer().Infof("step C: %d word-length buckets", len(buckets))
	chunks, err := c.chunkBuckets(buckets)
	if err != nil {
		return nil, err
	}
	tracer().Infof("step D: %d chunks", len(chunks))
	var numeric []LigatureSubst
	if c.conf.NumericOverride {
		numeric = c.buildNumeric(vt, glyphs)
	}
	table, err := c.wire(banks, chunks, numeric)
	if err != nil {
		return nil, err
	}
	table.Dropped = dropped
	if err := table.validate(); err != nil {
		return nil, diagnostic.Violation(diagnostic.StagePlan, "", "%v", err)
	}
	tracer().Infof("step E: %d lookups, %d features, %d scripts",
		len(table.Lookups), len(table.Features), len(table.Scripts))
	return table, nil
}

// Summary returns a one-line description of a compiled plan.
func (t *Table) Summary() string {
	return fmt.Sprintf("%d banks, %d chunks, %d context rules, %d lookups, %d dropped",
		len(t.Banks), len(t.Chunks), t.RuleCount(), len(t.Lookups), t.Dropped)
}
