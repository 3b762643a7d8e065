package ttx

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npillmayer/wingfont/plan"
)

// Verify compares a decoded GSUB model with the plan it has been written from.
// All differences found are joined into the returned error.
func Verify(t *plan.Table, g *GSUB) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	if len(g.Scripts) != len(t.Scripts) {
		fail("%d scripts, expected %d", len(g.Scripts), len(t.Scripts))
	} else {
		for i, s := range t.Scripts {
			if g.Scripts[i].Tag != s.Tag.String() || !slices.Equal(g.Scripts[i].Features, s.Features) {
				fail("script %d: %s %v, expected %s %v", i, g.Scripts[i].Tag, g.Scripts[i].Features, s.Tag, s.Features)
			}
		}
	}
	if len(g.Features) != len(t.Features) {
		fail("%d features, expected %d", len(g.Features), len(t.Features))
	} else {
		for i, f := range t.Features {
			ids := make([]int, len(f.Lookups))
			for j, id := range f.Lookups {
				ids[j] = int(id)
			}
			if g.Features[i].Tag != f.Tag.String() || !slices.Equal(g.Features[i].Lookups, ids) {
				fail("feature %d: %s %v, expected %s %v", i, g.Features[i].Tag, g.Features[i].Lookups, f.Tag, ids)
			}
		}
	}
	if len(g.Lookups) != len(t.Lookups) {
		fail("%d lookups, expected %d", len(g.Lookups), len(t.Lookups))
		return errors.Join(errs...)
	}
	for i, l := range t.Lookups {
		if err := verifyLookup(l, g.Lookups[i]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("ttx: GSUB differs from plan: %w", errors.Join(errs...))
	}
	return nil
}

func verifyLookup(l plan.Lookup, lk Lookup) error {
	if lk.Index != int(l.ID) || lk.Type != int(l.Type) || lk.Flag != uint16(l.Flag) {
		return fmt.Errorf("lookup %d: index/type/flag %d/%d/%d, expected %d/%d/%d",
			l.ID, lk.Index, lk.Type, lk.Flag, l.ID, l.Type, l.Flag)
	}
	if len(lk.Subtables) != 1 {
		return fmt.Errorf("lookup %d: %d subtables, expected 1", l.ID, len(lk.Subtables))
	}
	st := lk.Subtables[0]
	switch {
	case l.Single != nil:
		if len(st.SingleSubst) != len(l.Single.Pairs) {
			return fmt.Errorf("lookup %d: %d substitutions, expected %d", l.ID, len(st.SingleSubst), len(l.Single.Pairs))
		}
		for _, p := range l.Single.Pairs {
			if st.SingleSubst[string(p.In.Name)] != string(p.Out.Name) {
				return fmt.Errorf("lookup %d: %s is not substituted by %s", l.ID, p.In.Name, p.Out.Name)
			}
		}
	case l.Chain != nil:
		if len(st.Coverage) != len(l.Chain.Coverage) {
			return fmt.Errorf("lookup %d: coverage of %d glyphs, expected %d", l.ID, len(st.Coverage), len(l.Chain.Coverage))
		}
		for i, g := range l.Chain.Coverage {
			if st.Coverage[i] != string(g.Name) {
				return fmt.Errorf("lookup %d: coverage %d is %s, expected %s", l.ID, i, st.Coverage[i], g.Name)
			}
			if len(st.ChainRuleSets[i]) != len(l.Chain.RuleSets[i]) {
				return fmt.Errorf("lookup %d: rule set %d has %d rules, expected %d",
					l.ID, i, len(st.ChainRuleSets[i]), len(l.Chain.RuleSets[i]))
			}
			for j, rule := range l.Chain.RuleSets[i] {
				if err := verifyChainRule(rule, st.ChainRuleSets[i][j]); err != nil {
					return fmt.Errorf("lookup %d: rule %d/%d: %w", l.ID, i, j, err)
				}
			}
		}
	case l.Ligature != nil:
		if len(st.Ligatures) != len(l.Ligature.Sets) {
			return fmt.Errorf("lookup %d: %d ligature sets, expected %d", l.ID, len(st.Ligatures), len(l.Ligature.Sets))
		}
		for _, set := range l.Ligature.Sets {
			ligs := st.Ligatures[string(set.First.Name)]
			if len(ligs) != len(set.Ligatures) {
				return fmt.Errorf("lookup %d: %s starts %d ligatures, expected %d",
					l.ID, set.First.Name, len(ligs), len(set.Ligatures))
			}
			for k, lig := range set.Ligatures {
				if ligs[k].Glyph != string(lig.Glyph.Name) || len(ligs[k].Components) != len(lig.Components) {
					return fmt.Errorf("lookup %d: ligature %s/%d differs", l.ID, set.First.Name, k)
				}
			}
		}
	}
	return nil
}

func verifyChainRule(rule plan.ChainRule, r ChainRule) error {
	if len(r.Backtrack) != 0 || len(r.LookAhead) != 0 {
		return fmt.Errorf("unexpected backtrack or lookahead glyphs")
	}
	if len(r.Input) != len(rule.Input) {
		return fmt.Errorf("%d input glyphs, expected %d", len(r.Input), len(rule.Input))
	}
	for k, g := range rule.Input {
		if r.Input[k] != string(g.Name) {
			return fmt.Errorf("input %d is %s, expected %s", k, r.Input[k], g.Name)
		}
	}
	if len(r.LookupRecords) != len(rule.Records) {
		return fmt.Errorf("%d lookup records, expected %d", len(r.LookupRecords), len(rule.Records))
	}
	for k, rec := range rule.Records {
		if r.LookupRecords[k].SequenceIndex != int(rec.SequenceIndex) ||
			r.LookupRecords[k].LookupListIndex != int(rec.LookupListIndex) {
			return fmt.Errorf("lookup record %d differs", k)
		}
	}
	return nil
}
