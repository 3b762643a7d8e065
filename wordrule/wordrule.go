/*
Package wordrule selects one annotation sequence per word of a dataset and
orders the resulting word rules by priority.

The priority order places longer words first, so that a contextual matcher
tries the more specific pattern before any shorter one which is a prefix of
it. Within one length, heavier rules come first; remaining ties are broken by
the tone pattern (ascending), the joined annotation text (descending) and
finally by order of first appearance in the dataset.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package wordrule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wingfont/dataset"
)

// tracer returns a trace sink for the wordrule package namespace.
func tracer() tracing.Trace {
	return tracing.Select("wingfont.wordrule")
}

// Rule is the surviving annotation sequence of a word.
type Rule struct {
	Word        string
	Chars       []rune
	Annotations []string // one per character
	Weight      int      // total weight of the surviving observation
	Priority    int      // position in the ordered rule list, 0 is highest
}

func (r Rule) String() string {
	return fmt.Sprintf("#%d %s [%s] w=%d", r.Priority, r.Word, strings.Join(r.Annotations, " "), r.Weight)
}

// Len returns the number of characters of the rule's word.
func (r Rule) Len() int {
	return len(r.Chars)
}

// Rules is an ordered list of word rules, with one rule per distinct word.
type Rules struct {
	list   []Rule
	byWord map[string]int
}

// Aggregate consolidates the word observations of a dataset into one rule per
// distinct word. Observations are put into priority order and the first
// observation of every word survives.
func Aggregate(freq *dataset.Frequencies) *Rules {
	obs := freq.Words()
	sort.SliceStable(obs, func(i, j int) bool {
		return precedes(obs[i], obs[j])
	})
	rules := &Rules{byWord: make(map[string]int)}
	dropped := 0
	for _, o := range obs {
		chars := []rune(o.Word)
		if len(chars) < 2 {
			continue
		}
		if _, seen := rules.byWord[o.Word]; seen {
			dropped++
			continue
		}
		rules.byWord[o.Word] = len(rules.list)
		rules.list = append(rules.list, Rule{
			Word:        o.Word,
			Chars:       chars,
			Annotations: o.Annotations,
			Weight:      o.Weight,
			Priority:    len(rules.list),
		})
	}
	tracer().Infof("%d word rules, %d competing annotation sequences dropped", len(rules.list), dropped)
	return rules
}

// precedes is the global priority order of word observations.
func precedes(a, b dataset.WordObservation) bool {
	la, lb := len([]rune(a.Word)), len([]rune(b.Word))
	if la != lb {
		return la > lb
	}
	if a.Weight != b.Weight {
		return a.Weight > b.Weight
	}
	if c := compareTones(a.Annotations, b.Annotations); c != 0 {
		return c < 0
	}
	ja, jb := strings.Join(a.Annotations, " "), strings.Join(b.Annotations, " ")
	if ja != jb {
		return ja > jb
	}
	return a.Seq < b.Seq
}

// compareTones compares the tone patterns of two annotation sequences
// lexicographically.
func compareTones(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ta, tb := dataset.Tone(a[i]), dataset.Tone(b[i])
		if ta != tb {
			return ta - tb
		}
	}
	return len(a) - len(b)
}

// List returns the rules in priority order.
func (rs *Rules) List() []Rule {
	return append([]Rule(nil), rs.list...)
}

// Len returns the number of rules.
func (rs *Rules) Len() int {
	return len(rs.list)
}

// Find returns the rule for word, if any.
func (rs *Rules) Find(word string) (Rule, bool) {
	i, ok := rs.byWord[word]
	if !ok {
		return Rule{}, false
	}
	return rs.list[i], true
}
