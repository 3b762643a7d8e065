/*
Package dataset reads and aggregates annotation datasets.

A dataset is a sequence of rows, each holding a word, one annotation token per
character of the word, and an optional integer weight:

	銀行,ngan4 hong4,12
	行,hang4

The Ingestor validates rows against a glyph repertoire and aggregates them
into two weighted frequency tables: one for (character, annotation) pairs and
one for (word, annotation sequence) pairs. Both are handed on as immutable
snapshots which carry their keys in first-seen order.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package dataset

import "github.com/npillmayer/schuko/tracing"

// tracer returns a trace sink for the dataset package namespace.
func tracer() tracing.Trace {
	return tracing.Select("wingfont.dataset")
}

// Repertoire tells which characters have glyph coverage in the target font.
type Repertoire interface {
	HasGlyph(r rune) bool
}

// Tone returns the tone of an annotation, i.e. its trailing digit, or 5 if
// the annotation does not end with a digit (neutral tone).
func Tone(annotation string) int {
	if n := len(annotation); n > 0 {
		if c := annotation[n-1]; c >= '0' && c <= '9' {
			return int(c - '0')
		}
	}
	return 5
}
