package diag

import "fmt"

// Prefix starts every canonical diagnostic string.
const Prefix = "[TURBALANCE]"

// Diagnostic is a single structural issue. Line is 1-based; Column is the
// 1-based rune column it points at, kept for previews only.
type Diagnostic struct {
	Kind   Kind
	Line   int
	Column int
}

// New builds a Diagnostic.
func New(kind Kind, line, column int) Diagnostic {
	return Diagnostic{Kind: kind, Line: line, Column: column}
}

func (d Diagnostic) Message() string {
	return d.Kind.Message()
}

func (d Diagnostic) Severity() Severity {
	return d.Kind.Severity()
}

// String renders "[TURBALANCE] Line <n>: <message>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s Line %d: %s", Prefix, d.Line, d.Message())
}

// Strings renders every diagnostic in order.
func Strings(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}
