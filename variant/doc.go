/*
Package variant allocates annotation variant slots per character.

For every character of a dataset, the annotation candidates are ranked and
bounded, and each surviving annotation is assigned a slot index, which is its
rank. Slot 0 holds the most frequent annotation and is rendered by the
character's default glyph; slots 1 and up are rendered by variant glyphs.

The resulting Table is a contract boundary: glyph materializers persist its
slot indices into glyph identities, so allocation is deterministic and
independent of map iteration order. Tables may be written to and read from
YAML.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package variant

import "github.com/npillmayer/schuko/tracing"

// tracer returns a trace sink for the variant package namespace.
func tracer() tracing.Trace {
	return tracing.Select("wingfont.variant")
}
