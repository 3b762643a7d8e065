package ttx

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Decode parses a GSUB TTX document into a normalized model.
// Supported lookups are GSUB-1, GSUB-4 and GSUB-6 format 1.
func Decode(r io.Reader) (*GSUB, error) {
	var font ttxFont
	if err := xml.NewDecoder(r).Decode(&font); err != nil {
		return nil, fmt.Errorf("ttx: %w", err)
	}
	if font.GSUB.LookupList == nil {
		return nil, fmt.Errorf("ttx: missing GSUB/LookupList")
	}
	g := &GSUB{}
	if font.GSUB.ScriptList != nil {
		for _, rec := range font.GSUB.ScriptList.Records {
			s := Script{Tag: rec.ScriptTag.Value}
			if ls := rec.Script.DefaultLangSys; ls != nil {
				fi, err := intsByIndex(ls.FeatureIndex)
				if err != nil {
					return nil, fmt.Errorf("ttx: script %s: %w", s.Tag, err)
				}
				s.Features = fi
			}
			g.Scripts = append(g.Scripts, s)
		}
	}
	if font.GSUB.FeatureList != nil {
		for _, rec := range font.GSUB.FeatureList.Records {
			lookups, err := intsByIndex(rec.Feature.LookupListIndex)
			if err != nil {
				return nil, fmt.Errorf("ttx: feature %s: %w", rec.FeatureTag.Value, err)
			}
			g.Features = append(g.Features, Feature{Tag: rec.FeatureTag.Value, Lookups: lookups})
		}
	}
	for _, lk := range font.GSUB.LookupList.Lookups {
		lookup, err := decodeLookup(lk)
		if err != nil {
			return nil, err
		}
		g.Lookups = append(g.Lookups, lookup)
	}
	tracer().Debugf("decoded GSUB with %d lookups", len(g.Lookups))
	return g, nil
}

// DecodeFile parses a GSUB TTX file.
func DecodeFile(path string) (*GSUB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func decodeLookup(lk ttxLookup) (Lookup, error) {
	lt, err := lk.LookupType.Int()
	if err != nil {
		return Lookup{}, fmt.Errorf("ttx: invalid LookupType: %w", err)
	}
	var lf uint16
	if lk.LookupFlag.Value != "" {
		n, err := lk.LookupFlag.Int()
		if err != nil {
			return Lookup{}, fmt.Errorf("ttx: invalid LookupFlag: %w", err)
		}
		lf = uint16(n)
	}
	lookup := Lookup{Index: lk.Index, Type: lt, Flag: lf}
	for _, st := range lk.SingleSubst {
		sub, err := normalizeSingleSubst(lt, st)
		if err != nil {
			return Lookup{}, err
		}
		lookup.Subtables = append(lookup.Subtables, sub)
	}
	for _, st := range lk.LigatureSubst {
		sub, err := normalizeLigatureSubst(lt, st)
		if err != nil {
			return Lookup{}, err
		}
		lookup.Subtables = append(lookup.Subtables, sub)
	}
	for _, st := range lk.ChainContextSubst {
		sub, err := normalizeChainContextSubst(lt, st)
		if err != nil {
			return Lookup{}, err
		}
		lookup.Subtables = append(lookup.Subtables, sub)
	}
	return lookup, nil
}

func normalizeSingleSubst(lookupType int, st ttxSingleSubst) (Subtable, error) {
	if lookupType != 1 {
		return Subtable{}, fmt.Errorf("ttx: unsupported lookup type %d with SingleSubst", lookupType)
	}
	subst := make(map[string]string)
	coverage := make([]string, 0, len(st.Substitutions))
	for _, s := range st.Substitutions {
		if s.In == "" || s.Out == "" {
			continue
		}
		if _, seen := subst[s.In]; !seen {
			coverage = append(coverage, s.In)
		}
		subst[s.In] = s.Out
	}
	return Subtable{
		Type:        1,
		Format:      1,
		Coverage:    coverage,
		SingleSubst: subst,
	}, nil
}

func normalizeLigatureSubst(lookupType int, st ttxLigatureSubst) (Subtable, error) {
	if lookupType != 4 {
		return Subtable{}, fmt.Errorf("ttx: unsupported lookup type %d with LigatureSubst", lookupType)
	}
	ligs := make(map[string][]Ligature)
	coverage := make([]string, 0, len(st.LigatureSet))
	for _, set := range st.LigatureSet {
		first := strings.TrimSpace(set.Glyph)
		if first == "" {
			continue
		}
		var list []Ligature
		for _, lig := range set.Ligatures {
			if lig.Glyph == "" {
				continue
			}
			list = append(list, Ligature{
				Components: splitGlyphList(lig.Components),
				Glyph:      lig.Glyph,
			})
		}
		ligs[first] = list
		coverage = append(coverage, first)
	}
	return Subtable{
		Type:      4,
		Format:    1,
		Coverage:  coverage,
		Ligatures: ligs,
	}, nil
}

func normalizeChainContextSubst(lookupType int, st ttxChainContextSubst) (Subtable, error) {
	if lookupType != 6 {
		return Subtable{}, fmt.Errorf("ttx: unsupported lookup type %d with ChainContextSubst", lookupType)
	}
	format := 1
	if st.FormatAttr != "" {
		n, err := strconv.Atoi(st.FormatAttr)
		if err != nil {
			return Subtable{}, fmt.Errorf("ttx: invalid ChainContextSubst format %q", st.FormatAttr)
		}
		format = n
	}
	if format != 1 {
		return Subtable{}, fmt.Errorf("ttx: unsupported ChainContextSubst format %d", format)
	}
	coverage := st.Coverage.Glyphs()
	maxSet := -1
	for _, rs := range st.ChainSubRuleSet {
		if rs.Index > maxSet {
			maxSet = rs.Index
		}
	}
	ruleSets := make([][]ChainRule, maxSet+1)
	for _, rs := range st.ChainSubRuleSet {
		rules := make([]ChainRule, 0, len(rs.ChainSubRule))
		for _, r := range rs.ChainSubRule {
			records, err := lookupRecordsByIndex(r.SubstLookupRecord)
			if err != nil {
				return Subtable{}, fmt.Errorf("ttx: ChainSubRule %d: %w", r.Index, err)
			}
			rules = append(rules, ChainRule{
				Backtrack:     stringsByIndex(r.Backtrack),
				Input:         stringsByIndex(r.Input),
				LookAhead:     stringsByIndex(r.LookAhead),
				LookupRecords: records,
			})
		}
		if rs.Index >= 0 && rs.Index < len(ruleSets) {
			ruleSets[rs.Index] = rules
		}
	}
	if len(ruleSets) != len(coverage) {
		return Subtable{}, fmt.Errorf("ttx: %d coverage glyphs but %d rule sets", len(coverage), len(ruleSets))
	}
	return Subtable{
		Type:          6,
		Format:        1,
		Coverage:      coverage,
		ChainRuleSets: ruleSets,
	}, nil
}
