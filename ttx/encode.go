package ttx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/wingfont/plan"
)

// Encode writes a substitution plan as a TTX document holding a GSUB table.
// Lookups are written with their plan identifiers as index, so a plan
// compiled with a lookup base continues an existing lookup list.
func Encode(w io.Writer, t *plan.Table) error {
	doc := ttxFont{
		SfntVersion: `\x00\x01\x00\x00`,
		GSUB: ttxGSUB{
			Version:     ttxValue{Value: "0x00010000"},
			ScriptList:  encodeScripts(t),
			FeatureList: encodeFeatures(t),
			LookupList:  &ttxLookupList{},
		},
	}
	for _, l := range t.Lookups {
		doc.GSUB.LookupList.Lookups = append(doc.GSUB.LookupList.Lookups, encodeLookup(l))
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("ttx: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("ttx: encoding GSUB: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("ttx: %w", err)
	}
	tracer().Infof("wrote GSUB with %d lookups", len(t.Lookups))
	return nil
}

func encodeScripts(t *plan.Table) *ttxScriptList {
	sl := &ttxScriptList{}
	for i, s := range t.Scripts {
		ls := &ttxLangSys{ReqFeatureIndex: intValue(0xffff)}
		for j, fi := range s.Features {
			ls.FeatureIndex = append(ls.FeatureIndex, ttxIndexValue{Index: j, Value: strconv.Itoa(fi)})
		}
		sl.Records = append(sl.Records, ttxScriptRecord{
			Index:     i,
			ScriptTag: ttxValue{Value: s.Tag.String()},
			Script:    ttxScript{DefaultLangSys: ls},
		})
	}
	return sl
}

func encodeFeatures(t *plan.Table) *ttxFeatureList {
	fl := &ttxFeatureList{}
	for i, f := range t.Features {
		rec := ttxFeatureRecord{Index: i, FeatureTag: ttxValue{Value: f.Tag.String()}}
		for j, id := range f.Lookups {
			rec.Feature.LookupListIndex = append(rec.Feature.LookupListIndex,
				ttxIndexValue{Index: j, Value: strconv.Itoa(int(id))})
		}
		fl.Records = append(fl.Records, rec)
	}
	return fl
}

func encodeLookup(l plan.Lookup) ttxLookup {
	lk := ttxLookup{
		Index:      int(l.ID),
		Comment:    " " + l.Name + " ",
		LookupType: intValue(int(l.Type)),
		LookupFlag: intValue(int(l.Flag)),
	}
	switch {
	case l.Single != nil:
		st := ttxSingleSubst{}
		for _, p := range l.Single.Pairs {
			st.Substitutions = append(st.Substitutions, ttxSingleSubstitution{
				In:  string(p.In.Name),
				Out: string(p.Out.Name),
			})
		}
		lk.SingleSubst = []ttxSingleSubst{st}
	case l.Chain != nil:
		st := ttxChainContextSubst{FormatAttr: "1"}
		for i, g := range l.Chain.Coverage {
			st.Coverage.GlyphList = append(st.Coverage.GlyphList, ttxValue{Value: string(g.Name)})
			set := ttxChainSubRuleSet{Index: i}
			for j, rule := range l.Chain.RuleSets[i] {
				r := ttxChainSubRule{Index: j}
				for k, in := range rule.Input {
					r.Input = append(r.Input, ttxIndexValue{Index: k, Value: string(in.Name)})
				}
				for k, rec := range rule.Records {
					r.SubstLookupRecord = append(r.SubstLookupRecord, ttxSubstLookupRecord{
						Index:           k,
						SequenceIndex:   intValue(int(rec.SequenceIndex)),
						LookupListIndex: intValue(int(rec.LookupListIndex)),
					})
				}
				set.ChainSubRule = append(set.ChainSubRule, r)
			}
			st.ChainSubRuleSet = append(st.ChainSubRuleSet, set)
		}
		lk.ChainContextSubst = []ttxChainContextSubst{st}
	case l.Ligature != nil:
		st := ttxLigatureSubst{}
		for _, set := range l.Ligature.Sets {
			ls := ttxLigatureSet{Glyph: string(set.First.Name)}
			for _, lig := range set.Ligatures {
				names := make([]string, len(lig.Components))
				for i, c := range lig.Components {
					names[i] = string(c.Name)
				}
				ls.Ligatures = append(ls.Ligatures, ttxLigature{
					Components: strings.Join(names, ","),
					Glyph:      string(lig.Glyph.Name),
				})
			}
			st.LigatureSet = append(st.LigatureSet, ls)
		}
		lk.LigatureSubst = []ttxLigatureSubst{st}
	}
	return lk
}
