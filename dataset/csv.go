package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/wingfont/diagnostic"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row is a single dataset entry.
type Row struct {
	Word        string   // one or more characters
	Annotations []string // one token per character, if the row is well-formed
	Weight      int      // defaults to 1
	Line        int      // input line, 0 if unknown
}

// ReadCSV reads dataset rows from CSV input. The input is expected to be
// UTF-8, optionally starting with a byte order mark. Fields are
// (word, annotations, weight), with the weight being optional; a weight which
// is not a non-negative integer is read as 1. Records with fewer than two fields
// are reported to notes and skipped.
func ReadCSV(r io.Reader, notes *diagnostic.Collector) ([]Row, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return rows, fmt.Errorf("dataset: reading CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(record) < 2 {
			notes.Validationf(diagnostic.StageDataset, strings.Join(record, ","),
				"line %d: expected at least 2 fields, have %d", line, len(record))
			continue
		}
		rows = append(rows, Row{
			Word:        strings.TrimSpace(record[0]),
			Annotations: strings.Fields(record[1]),
			Weight:      parseWeight(record),
			Line:        line,
		})
	}
	tracer().Debugf("read %d dataset rows", len(rows))
	return rows, nil
}

func parseWeight(record []string) int {
	if len(record) < 3 {
		return 1
	}
	w, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil || w < 0 {
		return 1
	}
	return w
}
