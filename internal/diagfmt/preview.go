package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"turbalance/internal/diag"
	"turbalance/internal/source"
)

// SuggestFix returns the line rewritten to silence d, when a local rewrite exists.
// Brace balance problems span lines and get no suggestion.
func SuggestFix(line string, d diag.Diagnostic) (string, bool) {
	trimmedRight := strings.TrimRight(line, " \t")
	switch d.Kind {
	case diag.MissingImportSemicolon:
		return trimmedRight + ";", true
	case diag.MissingContractBrace:
		return trimmedRight + " {", true
	default:
		return "", false
	}
}

func writePreview(w io.Writer, file *source.File, d diag.Diagnostic, p palette) {
	before := file.Line(d.Line)
	after, ok := SuggestFix(before, d)
	if !ok {
		return
	}
	fmt.Fprintln(w, "  preview:")
	fmt.Fprintf(w, "    %s\n", p.remove.Sprint("- "+expandTabs(before)))
	fmt.Fprintf(w, "    %s\n", p.added.Sprint("+ "+expandTabs(after)))
}
