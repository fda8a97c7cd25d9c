package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"turbalance/internal/diag"
	"turbalance/internal/source"
)

// Short renders one line per diagnostic:
//
//	error TB0001 path:line:col Extra '}'
//
// Order is detection order.
func Short(w io.Writer, bag *diag.Bag, file *source.File, mode PathMode, baseDir string) error {
	path := displayPath(file, mode, baseDir)
	for _, d := range bag.Items() {
		_, err := fmt.Fprintf(w, "%s %s %s:%d:%d %s\n",
			strings.ToLower(d.Severity().String()), d.Kind.ID(), path, d.Line, d.Column, d.Message())
		if err != nil {
			return err
		}
	}
	return nil
}
