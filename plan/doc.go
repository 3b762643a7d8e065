/*
Package plan compiles word rules and variant slots into a GSUB substitution
plan.

The compiler works in five steps:

  - Bank construction: for every slot index s > 0, a single substitution
    lookup (a bank) maps each character's default glyph to its slot-s glyph.
  - Rule resolution: every word rule is turned into a context rule, keyed by
    the word's initial character, which references a bank for every position
    carrying a non-default annotation.
  - Longest-match-first ordering: context rules are bucketed by word length,
    longest first, and grouped by initial glyph in glyph index order.
  - Capacity chunking: every bucket is split into chunks of bounded size.
    Each chunk becomes one chaining context lookup (format 1).
  - Lookup wiring: banks, chunks and optional numeric override ligatures are
    given lookup identifiers and registered with features and scripts.

The result is a Table, a normalized model of the lookups, features and scripts
to be written into a font's GSUB table (see package ttx).

A contextual matcher evaluates the rules of a coverage entry in list order and
stops at the first match. Longer patterns therefore precede shorter ones,
within a rule set and across chunks.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package plan

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wingfont/ot"
)

// tracer returns a trace sink for the plan package namespace.
func tracer() tracing.Trace {
	return tracing.Select("wingfont.plan")
}

// errCompile wraps a message as a user-facing compile error.
func errCompile(x string) error {
	return fmt.Errorf("substitution plan: %s", x)
}

// assert panics when condition is false.
func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

// GlyphResolver resolves characters and their variant slots to glyphs.
// Slot 0 is a character's default glyph.
type GlyphResolver interface {
	Base(c rune) ot.GlyphRef
	Variant(c rune, slot int) ot.GlyphRef
}
