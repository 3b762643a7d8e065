package variant

import (
	"sort"
	"strings"

	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/dataset"
	"github.com/npillmayer/wingfont/diagnostic"
	"golang.org/x/sync/errgroup"
)

// Allocate ranks the annotation candidates of every character and assigns
// slots. Candidates are ranked by weight, then tone, then annotation text, all
// descending. If a character has more than conf.MaxVariantsPerChar candidates,
// the lowest-ranked ones are discarded and a capacity note is recorded.
//
// Ranking runs on up to conf.Workers goroutines. Results are collected by
// character position, so the table does not depend on the number of workers.
func Allocate(freq *dataset.Frequencies, conf config.Config, notes *diagnostic.Collector) (*Table, error) {
	chars := freq.Chars()
	ranked := make([][]dataset.Candidate, len(chars))
	var g errgroup.Group
	g.SetLimit(max(1, conf.Workers))
	for i, c := range chars {
		i, c := i, c
		g.Go(func() error {
			cands := freq.Candidates(c)
			rank(cands)
			if len(cands) > 1 && cands[0].Weight < cands[len(cands)-1].Weight {
				return diagnostic.Violation(diagnostic.StageVariant, string(c),
					"slot 0 outweighed after ranking")
			}
			ranked[i] = cands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	t := newTable(len(chars))
	limit := conf.MaxVariantsPerChar
	for i, c := range chars {
		cands := ranked[i]
		if len(cands) > limit {
			reportDiscarded(freq, cands, limit, notes)
			cands = cands[:limit]
		}
		slots := make([]Slot, len(cands))
		for j, cand := range cands {
			slots[j] = Slot{Char: c, Annotation: cand.Annotation, Index: j, Weight: cand.Weight}
		}
		if err := t.put(c, slots); err != nil {
			return nil, diagnostic.Violation(diagnostic.StageVariant, string(c), "%v", err)
		}
	}
	tracer().Infof("allocated variants for %d characters, at most %d slots", t.Len(), t.MaxSlots())
	return t, nil
}

// rank sorts candidates by weight desc, tone desc, annotation desc.
func rank(cands []dataset.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if ta, tb := dataset.Tone(a.Annotation), dataset.Tone(b.Annotation); ta != tb {
			return ta > tb
		}
		return a.Annotation > b.Annotation
	})
}

func reportDiscarded(freq *dataset.Frequencies, cands []dataset.Candidate, limit int, notes *diagnostic.Collector) {
	c := cands[0].Char
	var discarded []string
	for _, cand := range cands[limit:] {
		d := cand.Annotation
		if ex := freq.Examples(c, cand.Annotation); len(ex) > 0 {
			d += " (" + strings.Join(ex, ", ") + ")"
		}
		discarded = append(discarded, d)
	}
	notes.Capacityf(diagnostic.StageVariant, string(c),
		"%d annotations exceed the limit of %d, discarded: %s",
		len(cands), limit, strings.Join(discarded, "; "))
}
