package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	switch strings.ToLower(topic) {
	case "bank", "banks":
		pterm.Info.Println("Banks")
		pterm.Println(`
	A bank is a single substitution lookup for one slot index.
	Bank n maps the default glyph of every character with at least n+1
	annotations to the glyph of its n-th variant:
	+---------------+-------------------+
	| default glyph | variant glyph (n) |
	+---------------+-------------------+
	In feature mode 'separate', banks are registered under the swap
	feature (default 'locl'), context rules under the contextual feature
	(default 'calt'). In mode 'merged', all of them are registered under
	the contextual feature. Either way the context rules call the banks
	for the positions of a matched word.
	`)
	case "chunk", "chunks", "rule", "rules":
		pterm.Info.Println("Chunks / context rules")
		pterm.Println(`
	A chunk is a chained context lookup (GSUB type 6, format 1).
	It is keyed on the initial glyph of a word, and every rule lists the
	remaining glyphs of the word as input sequence:
	+---------------+-------------+----------------------------------+
	| initial glyph | input glyph | (position, bank lookup) records  |
	+---------------+-------------+----------------------------------+
	Chunks hold words of a single length. Longer words come first.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	char <c>        variant slots and glyphs of a character
	word <w>        word rule, slots and context rule of a word
	lookups         list of compiled lookups
	lookup <n>      details of lookup n
	features        feature and script registrations
	notes [kind]    diagnostics, optionally 'validation' or 'capacity' only
	help [topic]    this text, or topics 'banks' and 'chunks'
	quit            leave
	`)
	}
}
