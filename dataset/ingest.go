package dataset

import (
	"slices"
	"strings"

	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/diagnostic"
	"golang.org/x/text/unicode/norm"
)

// Ingestor validates dataset rows and aggregates accepted rows into frequency
// tables. Rows have to be added in dataset order; the order of first
// appearance of characters, annotations and words is preserved.
type Ingestor struct {
	conf     config.Config
	rep      Repertoire
	notes    *diagnostic.Collector
	chars    charTable
	words    wordTable
	accepted []acceptedRow
	frozen   bool
}

// acceptedRow is kept for the sub-word pass, which also mines rows too long
// or too light for word rules of their own.
type acceptedRow struct {
	chars []rune
	annos []string
}

// NewIngestor creates an ingestor for a target repertoire. Rejected rows are
// reported to notes, which may be nil.
func NewIngestor(conf config.Config, rep Repertoire, notes *diagnostic.Collector) *Ingestor {
	return &Ingestor{
		conf:  conf,
		rep:   rep,
		notes: notes,
		chars: newCharTable(),
		words: newWordTable(),
	}
}

// Ingest is a convenience function which adds all rows to a new Ingestor and
// returns the resulting frequency tables.
func Ingest(rows []Row, rep Repertoire, conf config.Config, notes *diagnostic.Collector) *Frequencies {
	ing := NewIngestor(conf, rep, notes)
	for _, row := range rows {
		ing.Add(row)
	}
	return ing.Frequencies()
}

// Add validates a row and, if it is accepted, aggregates it. It returns false
// for rejected rows. Adding rows after Frequencies has been called panics.
func (ing *Ingestor) Add(row Row) bool {
	assert(!ing.frozen, "dataset: row added after frequency tables have been taken")
	word := norm.NFC.String(row.Word)
	chars := []rune(word)
	if len(chars) == 0 {
		ing.notes.Validationf(diagnostic.StageDataset, row.Word, "line %d: empty word", row.Line)
		return false
	}
	for _, c := range chars {
		if !ing.rep.HasGlyph(c) {
			ing.notes.Validationf(diagnostic.StageDataset, word,
				"line %d: no glyph for character %q (%U)", row.Line, c, c)
			return false
		}
	}
	if len(chars) != len(row.Annotations) {
		ing.notes.Validationf(diagnostic.StageDataset, word,
			"line %d: %d characters but %d annotations", row.Line, len(chars), len(row.Annotations))
		return false
	}
	annos := make([]string, len(row.Annotations))
	for i, a := range row.Annotations {
		annos[i] = norm.NFC.String(a)
	}
	charWeight := row.Weight
	if ing.conf.CharWeight == config.WeightUnit {
		charWeight = 1
	}
	for i, c := range chars {
		ing.chars.add(c, annos[i], charWeight, word, ing.conf.ExampleWords)
	}
	if len(chars) >= 2 {
		switch {
		case len(chars) > ing.conf.MaxWordLength:
			ing.notes.Capacityf(diagnostic.StageDataset, word,
				"line %d: %d characters exceed max_word_length %d, no word rule",
				row.Line, len(chars), ing.conf.MaxWordLength)
		case row.Weight < ing.conf.MinWordWeight:
			tracer().Debugf("word %q below minimum weight (%d < %d)", word, row.Weight, ing.conf.MinWordWeight)
		default:
			ing.words.add(word, annos, row.Weight)
		}
	}
	ing.accepted = append(ing.accepted, acceptedRow{chars: chars, annos: annos})
	return true
}

// Frequencies completes the aggregation and returns the frequency tables.
// Every accepted row's proper sub-words which are words of the dataset in
// their own right are recorded as additional word observations of weight 1,
// annotated by the enclosing row.
func (ing *Ingestor) Frequencies() *Frequencies {
	if !ing.frozen {
		ing.recordSubWords()
		ing.frozen = true
	}
	tracer().Infof("dataset: %d rows accepted, %d characters, %d word observations",
		len(ing.accepted), len(ing.chars.order), len(ing.words.order))
	return &Frequencies{chars: ing.chars, words: ing.words}
}

func (ing *Ingestor) recordSubWords() {
	known := make(map[string]bool, len(ing.words.order))
	for _, key := range ing.words.order {
		known[ing.words.obs[key].Word] = true
	}
	n := 0
	for _, acc := range ing.accepted {
		l := len(acc.chars)
		for size := min(l-1, ing.conf.MaxWordLength); size >= 2; size-- {
			for start := 0; start+size <= l; start++ {
				sub := string(acc.chars[start : start+size])
				if !known[sub] {
					continue
				}
				ing.words.add(sub, acc.annos[start:start+size], 1)
				n++
			}
		}
	}
	tracer().Debugf("recorded %d sub-word observations", n)
}

// --- Frequency tables ------------------------------------------------------

// Candidate is an annotation observed for a character, with the weight
// accumulated over all accepted rows.
type Candidate struct {
	Char       rune
	Annotation string
	Weight     int
}

// WordObservation is an annotation sequence observed for a word, with the
// weight accumulated over all accepted rows and sub-word observations.
// Seq is the rank of first appearance among all word observations.
type WordObservation struct {
	Word        string
	Annotations []string
	Weight      int
	Seq         int
}

// Frequencies holds the aggregated frequency tables of a dataset.
// It is immutable.
type Frequencies struct {
	chars charTable
	words wordTable
}

// Chars returns the characters of accepted rows in order of first appearance.
func (f *Frequencies) Chars() []rune {
	return append([]rune(nil), f.chars.order...)
}

// Candidates returns the annotation candidates of character c in order of
// first appearance.
func (f *Frequencies) Candidates(c rune) []Candidate {
	entry := f.chars.entries[c]
	if entry == nil {
		return nil
	}
	cands := make([]Candidate, len(entry.annos))
	for i, a := range entry.annos {
		cands[i] = Candidate{Char: c, Annotation: a, Weight: entry.weight[a]}
	}
	return cands
}

// Examples returns up to the configured number of words in which character c
// has been annotated with annotation.
func (f *Frequencies) Examples(c rune, annotation string) []string {
	entry := f.chars.entries[c]
	if entry == nil {
		return nil
	}
	return append([]string(nil), entry.examples[annotation]...)
}

// Words returns the word observations in order of first appearance.
func (f *Frequencies) Words() []WordObservation {
	obs := make([]WordObservation, len(f.words.order))
	for i, key := range f.words.order {
		o := *f.words.obs[key]
		o.Annotations = append([]string(nil), o.Annotations...)
		obs[i] = o
	}
	return obs
}

type charEntry struct {
	annos    []string // first-seen order
	weight   map[string]int
	examples map[string][]string
}

type charTable struct {
	order   []rune
	entries map[rune]*charEntry
}

func newCharTable() charTable {
	return charTable{entries: make(map[rune]*charEntry)}
}

func (t *charTable) add(c rune, anno string, weight int, word string, maxExamples int) {
	entry := t.entries[c]
	if entry == nil {
		entry = &charEntry{weight: make(map[string]int), examples: make(map[string][]string)}
		t.entries[c] = entry
		t.order = append(t.order, c)
	}
	if _, ok := entry.weight[anno]; !ok {
		entry.annos = append(entry.annos, anno)
	}
	entry.weight[anno] += weight
	ex := entry.examples[anno]
	if len(ex) < maxExamples && !slices.Contains(ex, word) {
		entry.examples[anno] = append(ex, word)
	}
}

type wordTable struct {
	order []string
	obs   map[string]*WordObservation
}

func newWordTable() wordTable {
	return wordTable{obs: make(map[string]*WordObservation)}
}

func (t *wordTable) add(word string, annos []string, weight int) {
	key := word + "\x00" + strings.Join(annos, " ")
	o := t.obs[key]
	if o == nil {
		o = &WordObservation{
			Word:        word,
			Annotations: append([]string(nil), annos...),
			Seq:         len(t.order),
		}
		t.obs[key] = o
		t.order = append(t.order, key)
	}
	o.Weight += weight
}

// assert panics when condition is false.
func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
