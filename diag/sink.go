package diag

import (
	"errors"
	"fmt"
	"sort"
)

// ErrFatal is wrapped by the error a Sink.Complain returns for a Fatal
// diagnostic. Callers can test for it with errors.Is.
var ErrFatal = errors.New("gramtab: fatal error")

// SubIndent is the extra indentation applied to a "previous declaration"
// secondary note relative to its primary diagnostic, mirroring Bison's
// SUB_INDENT constant.
const SubIndent = 2

// Severity classifies a diagnostic. The zero value is not a valid
// severity; use one of the named constants.
type Severity int

// Severities used by package symtab, in the order §7 of the
// specification lists them.
const (
	_ Severity = iota
	Fatal
	Complaint
	Wyacc
	Wprecedence
	Wother
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "fatal error"
	case Complaint:
		return "error"
	case Wyacc:
		return "warning (POSIX Yacc)"
	case Wprecedence:
		return "warning (precedence)"
	case Wother:
		return "warning"
	default:
		return "unknown severity"
	}
}

// IsError reports whether the severity should count towards an error
// exit status rather than a mere warning.
func (s Severity) IsError() bool {
	return s == Fatal || s == Complaint
}

// Location is an opaque, totally ordered source position. The zero
// value denotes "no location" and sorts before every other location.
type Location struct {
	File string
	Line int
	Col  int
}

// Compare totally orders locations: by file, then line, then column.
// A zero Location compares less than any non-zero Location with the
// same file (empty-string files sort first, matching Go's natural
// string ordering).
func (l Location) Compare(other Location) int {
	if l.File != other.File {
		if l.File < other.File {
			return -1
		}
		return 1
	}
	if l.Line != other.Line {
		if l.Line < other.Line {
			return -1
		}
		return 1
	}
	if l.Col != other.Col {
		if l.Col < other.Col {
			return -1
		}
		return 1
	}
	return 0
}

func (l Location) String() string {
	if l.File == "" && l.Line == 0 && l.Col == 0 {
		return "<no location>"
	}
	if l.Col == 0 {
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Diagnostic is a single recorded complaint or warning.
type Diagnostic struct {
	Severity Severity
	Location Location
	Message  string
	Indent   int
}

func (d Diagnostic) String() string {
	pad := ""
	for i := 0; i < d.Indent; i++ {
		pad += " "
	}
	return fmt.Sprintf("%s%s: %s: %s", pad, d.Location, d.Severity, d.Message)
}

// Sink is the diagnostic collaborator consumed by package symtab. It is
// deliberately narrow: symtab never inspects the diagnostics it emits,
// only counts on errors.Is(err, ErrFatal) for the handful of operations
// that must abort.
type Sink interface {
	// Complain records a single diagnostic. loc may be the zero
	// Location for diagnostics with no natural anchor.
	Complain(sev Severity, loc Location, format string, args ...interface{})
	// ComplainIndent records a diagnostic at a given indent level,
	// used to nest "previous declaration" secondary notes one level
	// deeper than their primary complaint.
	ComplainIndent(loc Location, sev Severity, indent int, format string, args ...interface{})
}

// Collector is the default Sink: it accumulates diagnostics in
// emission order and lets downstream table-building code observe an
// accumulated error count, per spec §7 "User-visible failure behavior".
type Collector struct {
	diags []Diagnostic
	trace func(Diagnostic) // optional mirror, e.g. into a tracing.Trace
}

// NewCollector creates an empty Collector. If trace is non-nil, every
// diagnostic is also forwarded to it (e.g. to mirror complaints into a
// tracing.Trace, the way gorgo mirrors warnings via tracer().Errorf).
func NewCollector(trace func(Diagnostic)) *Collector {
	return &Collector{trace: trace}
}

// Complain implements Sink.
func (c *Collector) Complain(sev Severity, loc Location, format string, args ...interface{}) {
	c.record(Diagnostic{Severity: sev, Location: loc, Message: fmt.Sprintf(format, args...)})
}

// ComplainIndent implements Sink.
func (c *Collector) ComplainIndent(loc Location, sev Severity, indent int, format string, args ...interface{}) {
	c.record(Diagnostic{Severity: sev, Location: loc, Message: fmt.Sprintf(format, args...), Indent: indent})
}

func (c *Collector) record(d Diagnostic) {
	c.diags = append(c.diags, d)
	if c.trace != nil {
		c.trace(d)
	}
}

// Diagnostics returns all recorded diagnostics, in emission order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diags
}

// Count returns the number of recorded diagnostics of a given severity.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any Fatal or Complaint diagnostic was
// recorded.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diags {
		if d.Severity.IsError() {
			return true
		}
	}
	return false
}

// FatalError returns an error wrapping ErrFatal if any Fatal diagnostic
// was recorded, else nil. It is for callers of package symtab, which
// records Fatal diagnostics where Bison would have exited the process
// but does not call FatalError itself.
func (c *Collector) FatalError() error {
	for _, d := range c.diags {
		if d.Severity == Fatal {
			return fmt.Errorf("%w: %s", ErrFatal, d.Message)
		}
	}
	return nil
}

// Redeclaration emits the two-location "X redeclaration for Y" /
// "previous declaration" pair. It assumes the caller already knows
// which declaration came first (first) and which is the redeclaration
// (second) — true whenever both locations come from the same
// mutator being invoked twice in source order, as with symbol_type_set
// in the original. Use RedeclarationOrdered when the two locations may
// not already be in source order (e.g. discovered during a sorted-tag
// traversal rather than as parsing progresses).
func Redeclaration(sink Sink, what, subject string, first, second Location) {
	sink.ComplainIndent(second, Complaint, 0, "%s redeclaration for %s", what, subject)
	sink.ComplainIndent(first, Complaint, SubIndent, "previous declaration")
}

// RedeclarationOrdered is Redeclaration, but first reorders the two
// locations by source position so the primary diagnostic always
// prints at the later one, per spec.md §7 "When the two locations
// would print out of source order, the engine swaps them for
// readability." Mirrors user_token_number_redeclaration.
func RedeclarationOrdered(sink Sink, what, subject string, a, b Location) {
	first, second := a, b
	if first.Compare(second) > 0 {
		first, second = second, first
	}
	Redeclaration(sink, what, subject, first, second)
}

// SortDiagnostics sorts diagnostics by location, for deterministic
// display when a Collector accumulated complaints out of source order
// (e.g. finalize's tag-sorted iteration order does not match source
// order).
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Location.Compare(diags[j].Location) < 0
	})
}
