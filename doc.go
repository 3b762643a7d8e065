/*
Package wingfont compiles annotated text into OpenType glyph substitutions.

The input is a dataset of words, each character carrying an annotation, such as
a reading in a phonetic transcription. The output is a GSUB plan that lets a
font display the annotation of every character in context: each character gets
one variant glyph per annotation (a "slot"), and contextual lookups select the
variant a word calls for.

Compiling runs strictly sequential stages, each handing an immutable snapshot
to the next one:

▪︎ dataset: ingest rows, validate them against the font's glyph repertoire,
and aggregate character and word frequencies.

▪︎ variant: rank the annotations of every character and assign slots.

▪︎ wordrule: order the word observations into prioritized rules.

▪︎ glyphs: decide glyph identities for all slots.

▪︎ plan: build single-substitution banks, chained context lookups and
feature registrations.

Package ttx writes the plan as a fontTools TTX fragment, ready to be merged
into a font.

# Status

Drawing the variant glyphs is left to external tools. Package glyphs only
decides names and glyph indices for them.

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package wingfont

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'wingfont'
func tracer() tracing.Trace {
	return tracing.Select("wingfont")
}
