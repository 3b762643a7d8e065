/*
Package diagnostic collects the notes and errors produced while compiling an
annotation dataset into substitution rules.

Two kinds of issues are distinguished. Validation and capacity issues are
handled locally by the stage which detects them: the offending item is
skipped or truncated, and a Note is recorded with a Collector. Invariant
violations indicate an inconsistent compile state; they are returned as
errors of type InvariantViolation and abort the compile.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package diagnostic

import "github.com/npillmayer/schuko/tracing"

// tracer returns a trace sink for the compiler root namespace.
func tracer() tracing.Trace {
	return tracing.Select("wingfont")
}
