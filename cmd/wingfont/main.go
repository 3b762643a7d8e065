/*
Command wingfont compiles an annotated word dataset into GSUB substitutions
for a font.

Usage:

	wingfont compile [--config wingfont.yaml] [--output wingfont.ttx] font.ttf dataset.csv
	wingfont variants [--output variants.yaml] font.ttf dataset.csv
	wingfont rules font.ttf dataset.csv

The TTX output may be merged into the font with fontTools:

	ttx -m font.ttf wingfont.ttx

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/wingfont"
	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/dataset"
	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/glyphs"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

// tracer traces with key 'wingfont'
func tracer() tracing.Trace {
	return tracing.Select("wingfont")
}

var traceKeys = []string{
	"wingfont",
	"wingfont.dataset",
	"wingfont.variant",
	"wingfont.wordrule",
	"wingfont.plan",
	"wingfont.glyphs",
	"wingfont.ttx",
}

func main() {
	initTracing()
	initDisplay()

	commando.
		SetExecutableName("wingfont").
		SetVersion("v0.1.0").
		SetDescription("Compile annotated words into OpenType glyph substitutions.")

	commando.
		Register("compile").
		SetDescription("Compile a dataset into a GSUB table and write it as TTX.").
		SetShortDescription("compile GSUB").
		AddArgument("font", "OpenType font file path ('-' with --no-font)", "").
		AddArgument("dataset", "CSV dataset: word, annotations, weight", "").
		AddFlag("config,c", "YAML configuration file", commando.String, "-").
		AddFlag("output,o", "TTX output file", commando.String, "wingfont.ttx").
		AddFlag("variants", "persisted variant table (YAML) to re-use", commando.String, "-").
		AddFlag("no-font,n", "compile against a synthetic repertoire covering the dataset", commando.Bool, nil).
		AddFlag("verify", "read the TTX output back and verify it against the plan", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runCompileCommand)

	commando.
		Register("variants").
		SetDescription("Print the character variant table of a dataset.").
		SetShortDescription("variant table").
		AddArgument("font", "OpenType font file path ('-' with --no-font)", "").
		AddArgument("dataset", "CSV dataset: word, annotations, weight", "").
		AddFlag("config,c", "YAML configuration file", commando.String, "-").
		AddFlag("output,o", "write the variant table as YAML", commando.String, "-").
		AddFlag("no-font,n", "use a synthetic repertoire covering the dataset", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runVariantsCommand)

	commando.
		Register("rules").
		SetDescription("Print the ordered word rules of a dataset.").
		SetShortDescription("word rules").
		AddArgument("font", "OpenType font file path ('-' with --no-font)", "").
		AddArgument("dataset", "CSV dataset: word, annotations, weight", "").
		AddFlag("config,c", "YAML configuration file", commando.String, "-").
		AddFlag("no-font,n", "use a synthetic repertoire covering the dataset", commando.Bool, nil).
		AddFlag("trace,t", "trace level [Debug|Info|Error]", commando.String, "Error").
		SetAction(runRulesCommand)

	commando.Parse(nil)
}

func initTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "wingfont: error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func setTraceLevel(flag commando.FlagValue) {
	level, err := flag.GetString()
	if err != nil {
		fatalf("invalid --trace flag: %v", err)
	}
	var l tracing.TraceLevel
	switch strings.ToLower(level) {
	case "debug":
		l = tracing.LevelDebug
	case "info":
		l = tracing.LevelInfo
	case "error":
		l = tracing.LevelError
	default:
		fatalf("invalid trace level: %s", level)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	tracer().Infof("Trace level is %s", level)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  " Note ",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// --- Shared setup ----------------------------------------------------------

// input bundles what every command reads before compiling.
type input struct {
	conf   config.Config
	rows   []dataset.Row
	source glyphs.Source
	notes  *diagnostic.Collector
}

func mustReadInput(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) input {
	setTraceLevel(flags["trace"])
	in := input{conf: config.Default(), notes: &diagnostic.Collector{}}
	if path, ok := optionalPath(flags["config"], "config"); ok {
		var err error
		if in.conf, err = config.Load(path); err != nil {
			fatalf("%v", err)
		}
	}
	datasetPath := strings.TrimSpace(args["dataset"].Value)
	if datasetPath == "" {
		fatalf("dataset path is required")
	}
	var err error
	if in.rows, err = wingfont.ReadDataset(datasetPath, in.notes); err != nil {
		fatalf("%v", err)
	}
	if mustFlagBool(flags["no-font"], "no-font") {
		in.source = wingfont.SyntheticSource(in.rows)
		return in
	}
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" || fontPath == "-" {
		fatalf("font path is required unless --no-font is given")
	}
	if in.source, err = wingfont.LoadFont(fontPath); err != nil {
		fatalf("%v", err)
	}
	return in
}

func optionalPath(flag commando.FlagValue, name string) (string, bool) {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "" || s == "-" {
		return "", false
	}
	return s, true
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "wingfont: "+format+"\n", args...)
	os.Exit(1)
}
