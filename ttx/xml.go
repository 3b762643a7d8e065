package ttx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// XML structure of a TTX GSUB dump. The same types are used for writing and
// reading.

type ttxFont struct {
	XMLName     xml.Name `xml:"ttFont"`
	SfntVersion string   `xml:"sfntVersion,attr,omitempty"`
	GSUB        ttxGSUB  `xml:"GSUB"`
}

type ttxGSUB struct {
	Version     ttxValue        `xml:"Version"`
	ScriptList  *ttxScriptList  `xml:"ScriptList"`
	FeatureList *ttxFeatureList `xml:"FeatureList"`
	LookupList  *ttxLookupList  `xml:"LookupList"`
}

type ttxScriptList struct {
	Records []ttxScriptRecord `xml:"ScriptRecord"`
}

type ttxScriptRecord struct {
	Index     int       `xml:"index,attr"`
	ScriptTag ttxValue  `xml:"ScriptTag"`
	Script    ttxScript `xml:"Script"`
}

type ttxScript struct {
	DefaultLangSys *ttxLangSys `xml:"DefaultLangSys"`
}

type ttxLangSys struct {
	ReqFeatureIndex ttxValue        `xml:"ReqFeatureIndex"`
	FeatureIndex    []ttxIndexValue `xml:"FeatureIndex"`
}

type ttxFeatureList struct {
	Records []ttxFeatureRecord `xml:"FeatureRecord"`
}

type ttxFeatureRecord struct {
	Index      int        `xml:"index,attr"`
	FeatureTag ttxValue   `xml:"FeatureTag"`
	Feature    ttxFeature `xml:"Feature"`
}

type ttxFeature struct {
	LookupListIndex []ttxIndexValue `xml:"LookupListIndex"`
}

type ttxLookupList struct {
	Lookups []ttxLookup `xml:"Lookup"`
}

type ttxLookup struct {
	Index             int                    `xml:"index,attr"`
	Comment           string                 `xml:",comment"`
	LookupType        ttxValue               `xml:"LookupType"`
	LookupFlag        ttxValue               `xml:"LookupFlag"`
	SingleSubst       []ttxSingleSubst       `xml:"SingleSubst"`
	LigatureSubst     []ttxLigatureSubst     `xml:"LigatureSubst"`
	ChainContextSubst []ttxChainContextSubst `xml:"ChainContextSubst"`
}

type ttxSingleSubst struct {
	Index         int                     `xml:"index,attr"`
	Substitutions []ttxSingleSubstitution `xml:"Substitution"`
}

type ttxSingleSubstitution struct {
	In  string `xml:"in,attr"`
	Out string `xml:"out,attr"`
}

type ttxLigatureSubst struct {
	Index       int              `xml:"index,attr"`
	LigatureSet []ttxLigatureSet `xml:"LigatureSet"`
}

type ttxLigatureSet struct {
	Glyph     string        `xml:"glyph,attr"`
	Ligatures []ttxLigature `xml:"Ligature"`
}

type ttxLigature struct {
	Components string `xml:"components,attr"`
	Glyph      string `xml:"glyph,attr"`
}

type ttxChainContextSubst struct {
	Index           int                  `xml:"index,attr"`
	FormatAttr      string               `xml:"Format,attr"`
	Coverage        ttxCoverage          `xml:"Coverage"`
	ChainSubRuleSet []ttxChainSubRuleSet `xml:"ChainSubRuleSet"`
}

type ttxCoverage struct {
	GlyphList []ttxValue `xml:"Glyph"`
}

func (c ttxCoverage) Glyphs() []string {
	if len(c.GlyphList) == 0 {
		return nil
	}
	out := make([]string, 0, len(c.GlyphList))
	for _, g := range c.GlyphList {
		if g.Value != "" {
			out = append(out, g.Value)
		}
	}
	return out
}

type ttxChainSubRuleSet struct {
	Index        int               `xml:"index,attr"`
	ChainSubRule []ttxChainSubRule `xml:"ChainSubRule"`
}

type ttxChainSubRule struct {
	Index             int                    `xml:"index,attr"`
	Backtrack         []ttxIndexValue        `xml:"Backtrack"`
	Input             []ttxIndexValue        `xml:"Input"`
	LookAhead         []ttxIndexValue        `xml:"LookAhead"`
	SubstLookupRecord []ttxSubstLookupRecord `xml:"SubstLookupRecord"`
}

type ttxSubstLookupRecord struct {
	Index           int      `xml:"index,attr"`
	SequenceIndex   ttxValue `xml:"SequenceIndex"`
	LookupListIndex ttxValue `xml:"LookupListIndex"`
}

type ttxIndexValue struct {
	Index int    `xml:"index,attr"`
	Value string `xml:"value,attr"`
}

type ttxValue struct {
	Value string `xml:"value,attr"`
}

func intValue(n int) ttxValue {
	return ttxValue{Value: strconv.Itoa(n)}
}

func (v ttxValue) Int() (int, error) {
	return parseInt(v.Value)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		return int(n), err
	}
	return strconv.Atoi(s)
}

func stringsByIndex(in []ttxIndexValue) []string {
	if len(in) == 0 {
		return nil
	}
	max := -1
	for _, item := range in {
		if item.Index > max {
			max = item.Index
		}
	}
	out := make([]string, max+1)
	for _, item := range in {
		if item.Index >= 0 && item.Index < len(out) {
			out[item.Index] = item.Value
		}
	}
	return out
}

func intsByIndex(in []ttxIndexValue) ([]int, error) {
	values := stringsByIndex(in)
	out := make([]int, len(values))
	for i, v := range values {
		n, err := parseInt(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

func lookupRecordsByIndex(in []ttxSubstLookupRecord) ([]LookupRecord, error) {
	if len(in) == 0 {
		return nil, nil
	}
	max := -1
	for _, item := range in {
		if item.Index > max {
			max = item.Index
		}
	}
	out := make([]LookupRecord, max+1)
	for _, item := range in {
		if item.Index < 0 || item.Index >= len(out) {
			continue
		}
		si, err := item.SequenceIndex.Int()
		if err != nil {
			return nil, fmt.Errorf("SequenceIndex: %w", err)
		}
		li, err := item.LookupListIndex.Int()
		if err != nil {
			return nil, fmt.Errorf("LookupListIndex: %w", err)
		}
		out[item.Index] = LookupRecord{SequenceIndex: si, LookupListIndex: li}
	}
	return out, nil
}

func splitGlyphList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
