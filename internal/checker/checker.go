package checker

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"turbalance/internal/diag"
	"turbalance/internal/source"
)

// ErrInvalidInput is returned when no source is supplied at all.
var ErrInvalidInput = errors.New("invalid input: source text is required")

// Options toggles rules beyond the default set. The zero value gives the
// default behavior.
type Options struct {
	// WordBoundary requires "contract", "import" and "aka" to be whole words.
	WordBoundary bool
	// FuncParens reports lines that mention "func" without any '('.
	FuncParens bool
}

// Checker runs the structural checks with fixed Options. It holds no state
// between calls and is safe for concurrent use.
type Checker struct {
	opts Options
}

// New returns a Checker for opts.
func New(opts Options) *Checker {
	return &Checker{opts: opts}
}

// Options returns the options the checker was built with.
func (c *Checker) Options() Options {
	return c.opts
}

// Check runs the default rules over text.
func Check(text string) []diag.Diagnostic {
	return New(Options{}).Check(text)
}

// CheckReader reads all of r and checks it. A nil reader is ErrInvalidInput.
func CheckReader(r io.Reader, opts Options) ([]diag.Diagnostic, error) {
	if r == nil {
		return nil, fmt.Errorf("check: %w", ErrInvalidInput)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("check: read source: %w", err)
	}
	return New(opts).Check(string(data)), nil
}

// Check returns the diagnostics for text in detection order.
func (c *Checker) Check(text string) []diag.Diagnostic {
	rep := &diag.SliceReporter{}
	c.CheckLines(source.SplitLines(text), rep)
	if rep.Items == nil {
		return []diag.Diagnostic{}
	}
	return rep.Items
}

// CheckLines runs the checks over pre-split lines and reports into r.
func (c *Checker) CheckLines(lines []string, r diag.Reporter) {
	var tracker BraceTracker
	for i, line := range lines {
		lineNo := i + 1
		c.scanBraces(line, lineNo, &tracker, r)
		c.checkLineRules(line, lineNo, r)
	}
	for _, p := range tracker.Drain() {
		r.Report(diag.New(diag.UnclosedOpen, p.Line, p.Column))
	}
}

func (c *Checker) scanBraces(line string, lineNo int, tracker *BraceTracker, r diag.Reporter) {
	col := 0
	for _, ch := range line {
		col++
		switch ch {
		case '{':
			tracker.Push(Position{Line: lineNo, Column: col})
		case '}':
			if _, ok := tracker.Pop(); !ok {
				r.Report(diag.New(diag.ExtraClose, lineNo, col))
			}
		}
	}
}

func (c *Checker) checkLineRules(line string, lineNo int, r diag.Reporter) {
	trimmed := strings.TrimSpace(line)
	col := firstColumn(line)

	if c.hasKeywordPrefix(trimmed, "contract") && !strings.Contains(line, "{") {
		r.Report(diag.New(diag.MissingContractBrace, lineNo, col))
	}

	if c.opts.FuncParens && c.containsWord(line, "func") && !strings.Contains(line, "(") {
		r.Report(diag.New(diag.MissingFuncParen, lineNo, col))
	}

	if c.hasKeywordPrefix(trimmed, "import") && c.containsWord(trimmed, "aka") && !strings.HasSuffix(trimmed, ";") {
		r.Report(diag.New(diag.MissingImportSemicolon, lineNo, col))
	}
}

func (c *Checker) hasKeywordPrefix(s, kw string) bool {
	if !strings.HasPrefix(s, kw) {
		return false
	}
	if !c.opts.WordBoundary {
		return true
	}
	next, _ := utf8.DecodeRuneInString(s[len(kw):])
	return next == utf8.RuneError || !isIdentRune(next)
}

func (c *Checker) containsWord(s, word string) bool {
	if !c.opts.WordBoundary {
		return strings.Contains(s, word)
	}
	for offset := 0; ; {
		idx := strings.Index(s[offset:], word)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(word)
		prev, _ := utf8.DecodeLastRuneInString(s[:start])
		next, _ := utf8.DecodeRuneInString(s[end:])
		if (start == 0 || !isIdentRune(prev)) && (end == len(s) || !isIdentRune(next)) {
			return true
		}
		offset = start + 1
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// firstColumn is the 1-based rune column of the first non-space rune.
func firstColumn(line string) int {
	col := 0
	for _, ch := range line {
		col++
		if !unicode.IsSpace(ch) {
			return col
		}
	}
	return 1
}
