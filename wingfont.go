package wingfont

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/dataset"
	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/glyphs"
	"github.com/npillmayer/wingfont/internal/fontload"
	"github.com/npillmayer/wingfont/plan"
	"github.com/npillmayer/wingfont/variant"
	"github.com/npillmayer/wingfont/wordrule"
)

// Result holds the snapshots of all compile stages.
type Result struct {
	Frequencies *dataset.Frequencies
	Variants    *variant.Table
	Rules       *wordrule.Rules
	Glyphs      *glyphs.Map
	Plan        *plan.Table
	Notes       *diagnostic.Collector
}

// Compile runs all stages on a dataset, with glyphs taken from source.
// Variant glyphs are materialized by a glyphs.Namer using the configured
// glyph prefix.
//
// Validation and capacity issues are recorded with notes, which may be nil;
// Result.Notes holds them in either case. An invariant violation aborts the
// compile; the error returned wraps a diagnostic.InvariantViolation.
func Compile(rows []dataset.Row, source glyphs.Source, conf config.Config,
	notes *diagnostic.Collector) (*Result, error) {
	//
	return compile(rows, source, nil, conf, notes)
}

// CompileWithTable is like Compile, but re-uses a persisted variant table
// instead of allocating slots from the dataset's frequencies.
func CompileWithTable(rows []dataset.Row, source glyphs.Source, vt *variant.Table,
	conf config.Config, notes *diagnostic.Collector) (*Result, error) {
	//
	if vt == nil {
		return nil, errors.New("wingfont: variant table is nil")
	}
	for _, c := range vt.Chars() {
		if n := vt.SlotCount(c); n > conf.MaxVariantsPerChar {
			return nil, fmt.Errorf("wingfont: variant table has %d slots for %q, limit is %d",
				n, c, conf.MaxVariantsPerChar)
		}
	}
	return compile(rows, source, vt, conf, notes)
}

func compile(rows []dataset.Row, source glyphs.Source, vt *variant.Table,
	conf config.Config, notes *diagnostic.Collector) (*Result, error) {
	//
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("wingfont: %w", err)
	}
	if source == nil {
		return nil, errors.New("wingfont: no glyph source")
	}
	if notes == nil {
		notes = &diagnostic.Collector{}
	}
	r := &Result{Notes: notes, Variants: vt}
	r.Frequencies = dataset.Ingest(rows, source, conf, notes)
	tracer().Infof("ingested %d rows, %d characters", len(rows), len(r.Frequencies.Chars()))
	var err error
	if r.Variants == nil {
		if r.Variants, err = variant.Allocate(r.Frequencies, conf, notes); err != nil {
			return nil, fmt.Errorf("wingfont: %w", err)
		}
	}
	tracer().Infof("variant table has %d characters, max %d slots",
		r.Variants.Len(), r.Variants.MaxSlots())
	r.Rules = wordrule.Aggregate(r.Frequencies)
	tracer().Infof("%d word rules", r.Rules.Len())
	namer := glyphs.Namer{Source: source, Prefix: conf.GlyphPrefix}
	if r.Glyphs, err = namer.Materialize(r.Variants); err != nil {
		return nil, fmt.Errorf("wingfont: %w", err)
	}
	r.Plan, err = plan.NewCompiler(conf, notes).Compile(r.Variants, r.Rules, r.Glyphs)
	if err != nil {
		return nil, fmt.Errorf("wingfont: %w", err)
	}
	tracer().Infof("compiled %s", r.Plan.Summary())
	if notes.HasNotes() {
		tracer().Infof("diagnostics: %s", notes.Summary())
	}
	return r, nil
}

// ReadDataset reads a CSV dataset file. Malformed rows are skipped and noted.
func ReadDataset(path string, notes *diagnostic.Collector) ([]dataset.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wingfont: %w", err)
	}
	defer f.Close()
	rows, err := dataset.ReadCSV(f, notes)
	if err != nil {
		return nil, fmt.Errorf("wingfont: dataset %s: %w", path, err)
	}
	return rows, nil
}

// LoadFont loads the glyph repertoire of an OpenType font file.
func LoadFont(path string) (glyphs.Source, error) {
	f, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		return nil, fmt.Errorf("wingfont: %w", err)
	}
	return f, nil
}

// SyntheticSource creates a repertoire covering every character of a dataset,
// for compiling without a font. Glyph names follow the 'uniXXXX' convention.
func SyntheticSource(rows []dataset.Row) glyphs.Source {
	src := glyphs.NewStaticSource()
	for _, row := range rows {
		src.AddString(row.Word)
	}
	for c := '0'; c <= '9'; c++ {
		src.Add(c)
	}
	return src
}
