/*
Command wingcli compiles a dataset once and lets the user inspect the result
interactively.

Usage:

	wingcli -font font.ttf -dataset words.csv [-config wingfont.yaml] [-trace Info]

Enter 'help' at the prompt for a list of commands.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/wingfont"
	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/glyphs"
	"github.com/pterm/pterm"
)

// tracer traces with key 'wingfont'
func tracer() tracing.Trace {
	return tracing.Select("wingfont")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.wingfont":         "Info",
		"trace.wingfont.plan":    "Error",
		"trace.wingfont.dataset": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to compile for")
	datasetname := flag.String("dataset", "", "CSV dataset to compile")
	confname := flag.String("config", "", "YAML configuration file")
	nofont := flag.Bool("no-font", false, "Use a synthetic repertoire covering the dataset")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the wingfont CLI")
	//
	// set up REPL
	repl, err := readline.New("wf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, notes: &diagnostic.Collector{}}
	//
	// compile once
	if err := intp.compile(*confname, *datasetname, *fontname, *nofont); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	result *wingfont.Result
	notes  *diagnostic.Collector
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		op, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		err, quit := intp.execute(op)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// --- Compiling ----------------------------------------------------------

func (intp *Intp) compile(confname, datasetname, fontname string, nofont bool) error {
	conf := config.Default()
	if confname != "" {
		var err error
		if conf, err = config.Load(confname); err != nil {
			return err
		}
	}
	if datasetname == "" {
		return fmt.Errorf("no dataset given, use -dataset")
	}
	rows, err := wingfont.ReadDataset(datasetname, intp.notes)
	if err != nil {
		return err
	}
	var source glyphs.Source
	if nofont {
		source = wingfont.SyntheticSource(rows)
	} else if fontname == "" {
		return fmt.Errorf("no font given, use -font or -no-font")
	} else if source, err = wingfont.LoadFont(fontname); err != nil {
		return err
	}
	if intp.result, err = wingfont.Compile(rows, source, conf, intp.notes); err != nil {
		return err
	}
	pterm.Info.Printf("compiled %d rows: %s\n", len(rows), intp.result.Plan.Summary())
	if intp.notes.HasNotes() {
		pterm.Info.Printf("diagnostics: %s, see 'notes'\n", intp.notes.Summary())
	}
	return nil
}
