/*
Package ttx writes substitution plans as fontTools TTX and reads them back.

Encode produces a <ttFont> document holding a single GSUB table with script
list, feature list and lookup list, suitable for merging into a font with
fontTools:

	ttx -m font.ttf wingfont.ttx

Decode reads such a document into a normalized model, keyed by glyph names
as present in TTX. Verify compares a decoded model with the plan it has been
written from.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttx

import "github.com/npillmayer/schuko/tracing"

// tracer returns a trace sink for the ttx package namespace.
func tracer() tracing.Trace {
	return tracing.Select("wingfont.ttx")
}

// GSUB is a normalized model of a GSUB table as derived from TTX.
// It covers the subset of GSUB written by Encode.
type GSUB struct {
	Scripts  []Script
	Features []Feature
	Lookups  []Lookup
}

// Script is a script record with the feature indices of its default language
// system.
type Script struct {
	Tag      string
	Features []int
}

// Feature is a feature record with its lookup list indices.
type Feature struct {
	Tag     string
	Lookups []int
}

// Lookup represents a GSUB lookup with its subtables.
type Lookup struct {
	Index     int
	Type      int
	Flag      uint16
	Subtables []Subtable
}

// Subtable holds type-specific GSUB subtable content.
type Subtable struct {
	Type   int
	Format int

	// Coverage is keyed by glyph name as present in TTX.
	Coverage []string

	// SingleSubst maps input glyph name to output glyph name.
	SingleSubst map[string]string

	// Ligatures maps first-component glyph name to ligatures.
	Ligatures map[string][]Ligature

	// ChainRuleSets holds GSUB-6 format 1 rule sets, aligned with Coverage.
	ChainRuleSets [][]ChainRule
}

// Ligature describes a GSUB-4 ligature definition.
type Ligature struct {
	Components []string
	Glyph      string
}

// ChainRule defines the input glyphs following the covered glyph and the
// lookup records of a chained sequence rule.
type ChainRule struct {
	Backtrack     []string
	Input         []string
	LookAhead     []string
	LookupRecords []LookupRecord
}

// LookupRecord mirrors SequenceLookupRecord in GSUB/GPOS.
type LookupRecord struct {
	SequenceIndex   int
	LookupListIndex int
}
