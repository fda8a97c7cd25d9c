package source

import "strings"

// SplitLines splits text on "\r\n", "\r" and "\n". Every terminator counts as
// exactly one break, so "a\r\nb" gives two lines, not three. Empty lines are
// kept, and the empty string yields a single empty line.
func SplitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, text[start:])
}
