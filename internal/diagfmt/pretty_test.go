package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"turbalance/internal/checker"
	"turbalance/internal/diag"
	"turbalance/internal/source"
)

func checkedBag(t *testing.T, fs *source.FileSet, id source.FileID, max int) *diag.Bag {
	t.Helper()
	bag := diag.NewBag(max)
	bag.AddAll(checker.Check(fs.Get(id).Text()))
	return bag
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.tsw", []byte("contract A {\n"))
	file := fs.Get(fileID)
	bag := checkedBag(t, fs, fileID, 10)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.tsw:1:12"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.tsw:1:12"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.tsw:1:12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, file, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR TB0002: Unclosed '{'") {
				t.Errorf("Expected severity, code and message in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettyCaretUnderColumn(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("caret.tsw", []byte("  let s = \"}\""))
	var buf bytes.Buffer
	Pretty(&buf, checkedBag(t, fs, id, 0), fs.Get(id), PrettyOpts{PathMode: PathModeBasename})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, source and caret lines, got:\n%s", buf.String())
	}
	if lines[1] != "1 |   let s = \"}\"" {
		t.Errorf("source line = %q", lines[1])
	}
	if want := "  |            ^"; lines[2] != want {
		t.Errorf("caret line = %q, want %q", lines[2], want)
	}
}

func TestPrettyCaretWideRunes(t *testing.T) {
	if got := caretOffset("世界}", 3); got != 4 {
		t.Fatalf("caretOffset = %d, want 4", got)
	}
	if got := caretOffset("\t}", 2); got != tabWidth {
		t.Fatalf("caretOffset with tab = %d, want %d", got, tabWidth)
	}
	if got := caretOffset("}", 1); got != 0 {
		t.Fatalf("caretOffset at column 1 = %d", got)
	}
}

func TestPrettyContextAndPreview(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("ctx.tsw", []byte("contract A {\n  import g aka g\n}\n"))
	var buf bytes.Buffer
	Pretty(&buf, checkedBag(t, fs, id, 0), fs.Get(id), PrettyOpts{
		PathMode:    PathModeBasename,
		Context:     1,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"ctx.tsw:2:3: ERROR TB0004: Import statement must end with ';'",
		"1 | contract A {",
		"2 |   import g aka g",
		"- " + "  import g aka g",
		"+ " + "  import g aka g;",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyTruncatedNotice(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.tsw", []byte("}}}}"))
	var buf bytes.Buffer
	Pretty(&buf, checkedBag(t, fs, id, 2), fs.Get(id), PrettyOpts{})
	if !strings.Contains(buf.String(), "2 more diagnostic(s) not shown") {
		t.Fatalf("missing truncation notice:\n%s", buf.String())
	}
}

func TestSuggestFix(t *testing.T) {
	tests := []struct {
		line string
		kind diag.Kind
		want string
		ok   bool
	}{
		{"import x aka y  ", diag.MissingImportSemicolon, "import x aka y;", true},
		{"contract Foo", diag.MissingContractBrace, "contract Foo {", true},
		{"}", diag.ExtraClose, "", false},
	}
	for _, tt := range tests {
		got, ok := SuggestFix(tt.line, diag.New(tt.kind, 1, 1))
		if got != tt.want || ok != tt.ok {
			t.Errorf("SuggestFix(%q, %v) = %q, %v", tt.line, tt.kind, got, ok)
		}
	}
}
