package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"turbalance/internal/diag"
	"turbalance/internal/source"
)

const tabWidth = 4

type palette struct {
	sev    *color.Color
	code   *color.Color
	gutter *color.Color
	caret  *color.Color
	added  *color.Color
	remove *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev:    color.New(color.FgRed, color.Bold),
		code:   color.New(color.FgYellow),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		added:  color.New(color.FgGreen),
		remove: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.sev, p.code, p.gutter, p.caret, p.added, p.remove} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает:
//
//	<path>:<line>:<col>: ERROR TB0001: <message>
//
// затем строку исходника (и Context строк перед ней) с ^ под колонкой.
// Порядок вывода совпадает с порядком обнаружения.
func Pretty(w io.Writer, bag *diag.Bag, file *source.File, opts PrettyOpts) {
	p := newPalette(opts.Color)
	path := displayPath(file, opts.PathMode, opts.BaseDir)

	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, d.Line, d.Column,
			p.sev.Sprint(d.Severity().String()),
			p.code.Sprint(d.Kind.ID()),
			d.Message())

		if file == nil {
			continue
		}
		writeSnippet(w, file, d, opts, p)
		if opts.ShowPreview {
			writePreview(w, file, d, p)
		}
	}

	if n := bag.Truncated(); n > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostic(s) not shown\n", n)
	}
}

func writeSnippet(w io.Writer, file *source.File, d diag.Diagnostic, opts PrettyOpts, p palette) {
	gutterWidth := len(fmt.Sprint(d.Line))
	first := d.Line - int(opts.Context)
	if first < 1 {
		first = 1
	}
	for n := first; n <= d.Line; n++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, n), expandTabs(file.Line(n)))
	}

	line := file.Line(d.Line)
	pad := caretOffset(line, d.Column)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint("^"))
}

// caretOffset returns the display width of the runes before column.
func caretOffset(line string, column int) int {
	if column <= 1 {
		return 0
	}
	runes := []rune(line)
	if column-1 < len(runes) {
		runes = runes[:column-1]
	}
	return runewidth.StringWidth(expandTabs(string(runes)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
