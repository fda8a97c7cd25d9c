package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("test.tsw", []byte("contract A {\r\n}\n"))
	f := fs.Get(id)
	if f == nil {
		t.Fatal("expected file for fresh id")
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if len(f.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(f.Lines), f.Lines)
	}
	if got := f.Line(1); got != "contract A {" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := f.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if got := f.Line(42); got != "" {
		t.Errorf("Line(42) = %q, want empty", got)
	}
	if fs.Get(FileID(7)) != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	// Добавляем файл первый раз
	id1 := fs.Add("test.tsw", []byte("hello world"), 0)
	id2 := fs.Add("test.tsw", []byte("hello universe"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetByPath("test.tsw")
	if !ok {
		t.Fatal("expected file to exist after Add")
	}
	if latest.ID != id2 {
		t.Errorf("expected latest ID to be %d, got %d", id2, latest.ID)
	}
	if fs.Get(id1).Text() != "hello world" {
		t.Errorf("old version lost: %q", fs.Get(id1).Text())
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
	if files := fs.Files(); len(files) != 2 || files[1].ID != id2 {
		t.Errorf("Files() = %+v, want two files in id order", files)
	}
}

func TestFileSetLoadStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.tsw")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFcontract A {}"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Line(1) != "contract A {}" {
		t.Errorf("BOM not stripped: %q", f.Line(1))
	}
}

func TestFileSetLoadNFC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nfc.tsw")
	// "e" + combining acute accent
	if err := os.WriteFile(path, []byte("cafe\u0301"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path, LoadOptions{NFC: true})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	f := fs.Get(id)
	if f.Flags&FileNormalizedNFC == 0 {
		t.Error("expected FileNormalizedNFC flag")
	}
	if f.Text() != "caf\u00e9" {
		t.Errorf("expected composed form, got %q", f.Text())
	}
}

func TestFileSetLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.tsw"), LoadOptions{}); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.tsw")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	baseDir := t.TempDir()
	target := filepath.Join(baseDir, "nested", "file.tsw")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	if want := "nested/file.tsw"; got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}
