package diagnostic

import (
	"fmt"
	"strings"
)

// Kind classifies a recoverable issue.
type Kind int

const (
	// Validation marks input which has been rejected, e.g. a dataset row
	// referencing characters without glyph coverage.
	Validation Kind = iota
	// Capacity marks input which has been truncated to fit a hard limit, e.g.
	// annotations beyond the maximum number of variants per character.
	Capacity
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Validation:
		return "VALIDATION"
	case Capacity:
		return "CAPACITY"
	default:
		return "UNKNOWN"
	}
}

// Stage names the compile stage which recorded a note or error.
type Stage string

// Compile stages.
const (
	StageDataset  Stage = "dataset"
	StageVariant  Stage = "variant"
	StageWordRule Stage = "wordrule"
	StageGlyphs   Stage = "glyphs"
	StagePlan     Stage = "plan"
	StageNumeric  Stage = "numeric"
)

// Note is a non-fatal issue encountered during a compile.
type Note struct {
	Kind    Kind   // validation or capacity
	Stage   Stage  // stage which recorded the note
	Subject string // the row, character or word concerned (may be empty)
	Message string // human-readable description
}

// String returns a human-readable representation of the note.
func (n Note) String() string {
	if n.Subject != "" {
		return fmt.Sprintf("[%s] %s %q: %s", n.Kind, n.Stage, n.Subject, n.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", n.Kind, n.Stage, n.Message)
}

// InvariantViolation is a fatal inconsistency of the compile state, such as an
// unresolved bank reference or a rule chunk exceeding its capacity.
type InvariantViolation struct {
	Stage   Stage
	Subject string
	Issue   string
}

// Error implements the error interface.
func (v InvariantViolation) Error() string {
	if v.Subject != "" {
		return fmt.Sprintf("invariant violation in %s (%s): %s", v.Stage, v.Subject, v.Issue)
	}
	return fmt.Sprintf("invariant violation in %s: %s", v.Stage, v.Issue)
}

// Violation creates an InvariantViolation with a formatted issue text.
func Violation(stage Stage, subject string, format string, args ...any) error {
	return InvariantViolation{
		Stage:   stage,
		Subject: subject,
		Issue:   fmt.Sprintf(format, args...),
	}
}

// Collector accumulates notes during a compile. Every note is traced when it
// is recorded. The zero value is ready to use; a nil *Collector discards
// notes after tracing them.
type Collector struct {
	notes []Note
}

// Validationf records a validation note.
func (c *Collector) Validationf(stage Stage, subject string, format string, args ...any) {
	c.add(Note{Kind: Validation, Stage: stage, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Capacityf records a capacity note.
func (c *Collector) Capacityf(stage Stage, subject string, format string, args ...any) {
	c.add(Note{Kind: Capacity, Stage: stage, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

func (c *Collector) add(n Note) {
	tracer().Infof("%s", n)
	if c == nil {
		return
	}
	c.notes = append(c.notes, n)
}

// Notes returns the notes recorded so far, in order of recording.
func (c *Collector) Notes() []Note {
	if c == nil {
		return nil
	}
	return append([]Note(nil), c.notes...)
}

// Filter returns the recorded notes of kind k.
func (c *Collector) Filter(k Kind) []Note {
	if c == nil {
		return nil
	}
	var r []Note
	for _, n := range c.notes {
		if n.Kind == k {
			r = append(r, n)
		}
	}
	return r
}

// HasNotes returns true if any notes have been recorded.
func (c *Collector) HasNotes() bool {
	return c != nil && len(c.notes) > 0
}

// Count returns the number of recorded notes of kind k.
func (c *Collector) Count(k Kind) int {
	return len(c.Filter(k))
}

// Summary returns a one-line summary of the recorded notes, e.g.
// "3 validation, 1 capacity".
func (c *Collector) Summary() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation", c.Count(Validation)))
	parts = append(parts, fmt.Sprintf("%d capacity", c.Count(Capacity)))
	return strings.Join(parts, ", ")
}
