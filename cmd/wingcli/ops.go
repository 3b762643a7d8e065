package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Op is a parsed REPL command.
type Op struct {
	code int
	arg  string
}

const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	CHAR
	WORD
	LOOKUPS
	LOOKUP
	FEATURES
	NOTES
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"char":     CHAR,
	"word":     WORD,
	"lookups":  LOOKUPS,
	"lookup":   LOOKUP,
	"features": FEATURES,
	"notes":    NOTES,
}

var opNames = []string{
	"quit",
	"help",
	"char",
	"word",
	"lookups",
	"lookup",
	"features",
	"notes",
}

func parseCommand(line string) (*Op, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}
	code, ok := opMap[strings.ToLower(fields[0])]
	if !ok {
		return &Op{code: HELP}, nil
	}
	op := &Op{code: code}
	if len(fields) > 1 {
		op.arg = strings.Join(fields[1:], " ")
	}
	tracer().Debugf("%s: arg = '%s'", opNames[op.code], op.arg)
	return op, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	CHAR:     charOp,
	WORD:     wordOp,
	LOOKUPS:  lookupsOp,
	LOOKUP:   lookupOp,
	FEATURES: featuresOp,
	NOTES:    notesOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		return fmt.Errorf("unknown command code: %d", op.code), false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

func charOp(intp *Intp, op *Op) (error, bool) {
	chars := []rune(op.arg)
	if len(chars) != 1 {
		return errors.New("usage: char <character>"), false
	}
	printChar(intp.result, chars[0])
	return nil, false
}

func wordOp(intp *Intp, op *Op) (error, bool) {
	if op.arg == "" {
		return errors.New("usage: word <word>"), false
	}
	printWord(intp.result, op.arg)
	return nil, false
}

func lookupsOp(intp *Intp, op *Op) (error, bool) {
	printLookupList(intp.result.Plan)
	return nil, false
}

func lookupOp(intp *Intp, op *Op) (error, bool) {
	id, err := strconv.Atoi(op.arg)
	if err != nil {
		return fmt.Errorf("lookup identifier not numeric: %q", op.arg), false
	}
	printLookup(intp.result.Plan, id)
	return nil, false
}

func featuresOp(intp *Intp, op *Op) (error, bool) {
	printFeatures(intp.result.Plan)
	return nil, false
}

func notesOp(intp *Intp, op *Op) (error, bool) {
	if !intp.notes.HasNotes() {
		pterm.Println("no diagnostics")
		return nil, false
	}
	for _, n := range intp.notes.Notes() {
		if op.arg == "" || strings.EqualFold(op.arg, n.Kind.String()) {
			pterm.Println(n.String())
		}
	}
	pterm.Printf("%s\n", intp.notes.Summary())
	return nil, false
}
