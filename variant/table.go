package variant

import "fmt"

// Slot is an annotation of a character together with its variant index.
type Slot struct {
	Char       rune
	Annotation string
	Index      int // rank, 0 is the default glyph
	Weight     int // aggregated weight, 0 for tables read from YAML
}

// Table is the character variant table. It maps every character to its
// ranked annotation slots. A Table is immutable once built.
type Table struct {
	order []rune
	slots map[rune][]Slot
	index map[rune]map[string]int
}

func newTable(capacity int) *Table {
	return &Table{
		order: make([]rune, 0, capacity),
		slots: make(map[rune][]Slot, capacity),
		index: make(map[rune]map[string]int, capacity),
	}
}

func (t *Table) put(c rune, slots []Slot) error {
	if _, dup := t.slots[c]; dup {
		return fmt.Errorf("duplicate character %q in variant table", c)
	}
	idx := make(map[string]int, len(slots))
	for i, s := range slots {
		if _, dup := idx[s.Annotation]; dup {
			return fmt.Errorf("duplicate annotation %q for character %q", s.Annotation, c)
		}
		idx[s.Annotation] = i
	}
	t.order = append(t.order, c)
	t.slots[c] = slots
	t.index[c] = idx
	return nil
}

// Chars returns the characters of the table in order of first appearance in
// the dataset.
func (t *Table) Chars() []rune {
	return append([]rune(nil), t.order...)
}

// Len returns the number of characters in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// Slots returns the ranked slots of character c.
func (t *Table) Slots(c rune) []Slot {
	return append([]Slot(nil), t.slots[c]...)
}

// SlotCount returns the number of slots of character c.
func (t *Table) SlotCount(c rune) int {
	return len(t.slots[c])
}

// Lookup returns the slot index of annotation for character c. If the
// annotation has no slot, e.g. because it has been truncated, ok is false.
func (t *Table) Lookup(c rune, annotation string) (index int, ok bool) {
	index, ok = t.index[c][annotation]
	return
}

// MaxSlots returns the largest slot count of any character.
func (t *Table) MaxSlots() int {
	m := 0
	for _, c := range t.order {
		m = max(m, len(t.slots[c]))
	}
	return m
}

// Entry is the plain representation of a table row: a character and its
// annotations in slot order.
type Entry struct {
	Char        string   `yaml:"char"`
	Annotations []string `yaml:"annotations,flow"`
}

// FromEntries creates a table from plain entries. Every entry must hold
// exactly one character and at least one annotation.
func FromEntries(entries []Entry) (*Table, error) {
	t := newTable(len(entries))
	for i, e := range entries {
		chars := []rune(e.Char)
		if len(chars) != 1 {
			return nil, fmt.Errorf("variant table entry %d: expected a single character, have %q", i, e.Char)
		}
		if len(e.Annotations) == 0 {
			return nil, fmt.Errorf("variant table entry %d (%q): no annotations", i, e.Char)
		}
		slots := make([]Slot, len(e.Annotations))
		for j, a := range e.Annotations {
			slots[j] = Slot{Char: chars[0], Annotation: a, Index: j}
		}
		if err := t.put(chars[0], slots); err != nil {
			return nil, fmt.Errorf("variant table entry %d: %w", i, err)
		}
	}
	return t, nil
}

// Entries returns the plain representation of the table, in table order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.order))
	for i, c := range t.order {
		annos := make([]string, len(t.slots[c]))
		for j, s := range t.slots[c] {
			annos[j] = s.Annotation
		}
		entries[i] = Entry{Char: string(c), Annotations: annos}
	}
	return entries
}
