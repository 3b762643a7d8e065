package ot

// LayoutTableLookupType is a type identifier for layout lookup records.
// Only GSUB lookup types are produced by this module.
type LayoutTableLookupType uint16

// GSUB lookup types.
const (
	GSubLookupTypeSingle          LayoutTableLookupType = 1
	GSubLookupTypeMultiple        LayoutTableLookupType = 2
	GSubLookupTypeAlternate       LayoutTableLookupType = 3
	GSubLookupTypeLigature        LayoutTableLookupType = 4
	GSubLookupTypeContext         LayoutTableLookupType = 5
	GSubLookupTypeChainingContext LayoutTableLookupType = 6
	GSubLookupTypeExtensionSubs   LayoutTableLookupType = 7
	GSubLookupTypeReverseChaining LayoutTableLookupType = 8
)

// GSubString returns a short name for a GSUB lookup type.
func (lt LayoutTableLookupType) GSubString() string {
	switch lt {
	case GSubLookupTypeSingle:
		return "Single"
	case GSubLookupTypeMultiple:
		return "Multiple"
	case GSubLookupTypeAlternate:
		return "Alternate"
	case GSubLookupTypeLigature:
		return "Ligature"
	case GSubLookupTypeContext:
		return "Context"
	case GSubLookupTypeChainingContext:
		return "Chaining"
	case GSubLookupTypeExtensionSubs:
		return "Extension"
	case GSubLookupTypeReverseChaining:
		return "Reverse"
	}
	return "<unknown>"
}

// LayoutTableLookupFlag is a flag type for layout tables (GPOS and GSUB).
type LayoutTableLookupFlag uint16

// Lookup flags of layout tables (GPOS and GSUB)
const ( // LookupFlag bit enumeration
	LOOKUP_FLAG_RIGHT_TO_LEFT             LayoutTableLookupFlag = 0x0001
	LOOKUP_FLAG_IGNORE_BASE_GLYPHS        LayoutTableLookupFlag = 0x0002 // If set, skips over base glyphs
	LOOKUP_FLAG_IGNORE_LIGATURES          LayoutTableLookupFlag = 0x0004 // If set, skips over ligatures
	LOOKUP_FLAG_IGNORE_MARKS              LayoutTableLookupFlag = 0x0008 // If set, skips over all combining marks
	LOOKUP_FLAG_USE_MARK_FILTERING_SET    LayoutTableLookupFlag = 0x0010
	LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK LayoutTableLookupFlag = 0xFF00
)

// SequenceLookupRecord identifies a nested lookup to apply at a position
// within a matched input sequence. Position 0 is the glyph matched by
// the coverage table.
type SequenceLookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex uint16
}

// Hard limits of the OpenType layout format which the compiler has to respect.
const (
	MaxLookupCount   = 0xffff // LookupList.lookupCount is a uint16
	MaxCoverageCount = 0xffff // Coverage format 1 glyphCount is a uint16
)
