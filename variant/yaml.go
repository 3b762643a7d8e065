package variant

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the table as a YAML sequence of entries, in table order:
//
//   - char: 行
//     annotations: [hang4, xing2, hong4]
func WriteYAML(w io.Writer, t *Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Entries()); err != nil {
		return fmt.Errorf("variant: writing YAML: %w", err)
	}
	return enc.Close()
}

// ReadYAML reads a table written by WriteYAML.
func ReadYAML(r io.Reader) (*Table, error) {
	var entries []Entry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("variant: reading YAML: %w", err)
	}
	t, err := FromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("variant: %w", err)
	}
	tracer().Debugf("read variant table with %d characters", t.Len())
	return t, nil
}
