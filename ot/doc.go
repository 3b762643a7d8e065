/*
Package ot holds the OpenType layout primitives shared by the wingfont
compiler: tags, glyph identities, GSUB lookup types and sequence lookup
records.

Package `ot` does not parse or write font binaries. Glyph identities are
resolved elsewhere (see package glyphs) and travel through the compiler as
GlyphRef values, which either reference a concrete glyph or are NotFound.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot
