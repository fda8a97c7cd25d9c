package diagfmt

import (
	"fmt"
	"io"

	"turbalance/internal/diag"
)

// NoErrorsMessage is printed by Console when there is nothing to report.
const NoErrorsMessage = "No syntax errors found."

// Console prints diagnostics the plain way: one canonical string per line in
// detection order, or NoErrorsMessage when the list is empty.
func Console(w io.Writer, diags []diag.Diagnostic) error {
	if len(diags) == 0 {
		_, err := fmt.Fprintln(w, NoErrorsMessage)
		return err
	}
	for _, d := range diags {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}
