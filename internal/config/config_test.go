package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TOMLName)
	writeFile(t, path, `
[check]
extensions = [".tsw", ".turbo"]
word_boundary = true

[cache]
enabled = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Check.Extensions, []string{".tsw", ".turbo"}) {
		t.Errorf("extensions = %v", cfg.Check.Extensions)
	}
	if !cfg.Check.WordBoundary || cfg.Check.FuncParens {
		t.Errorf("rule switches = %+v", cfg.Check)
	}
	if cfg.Check.MaxDiagnostics != 0 {
		t.Errorf("default max_diagnostics lost: %d", cfg.Check.MaxDiagnostics)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache.enabled not decoded")
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
	if opts := cfg.CheckerOptions(); !opts.WordBoundary || opts.FuncParens {
		t.Errorf("CheckerOptions() = %+v", opts)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), YAMLName)
	writeFile(t, path, "check:\n  func_parens: true\n  normalize: nfc\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Check.FuncParens || cfg.Check.Normalize != NormalizeNFC {
		t.Errorf("unexpected check config %+v", cfg.Check)
	}
	if !reflect.DeepEqual(cfg.Check.Extensions, []string{".tsw"}) {
		t.Errorf("default extensions lost: %v", cfg.Check.Extensions)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errPart string
	}{
		{"unknown key", TOMLName, "[check]\ncolour = true\n", "unknown key"},
		{"bad extension", TOMLName, "[check]\nextensions = [\"tsw\"]\n", "must start with '.'"},
		{"bad normalize", YAMLName, "check:\n  normalize: nfd\n", "unknown mode"},
		{"negative max", TOMLName, "[check]\nmax_diagnostics = -1\n", "max_diagnostics"},
		{"broken toml", TOMLName, "[check\n", "failed to parse TOML"},
		{"unsupported", "turbalance.json", "{}", "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Fatalf("expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, YAMLName), "check: {}\n")
	writeFile(t, filepath.Join(root, TOMLName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := Find(nested)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got != filepath.Join(root, TOMLName) {
		t.Fatalf("Find = %q, want TOML in root", got)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	// в tmp нет конфигов выше по дереву в тестовом окружении
	dir := t.TempDir()
	if _, err := Find(dir); err != nil && !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find error: %v", err)
	}

	path := filepath.Join(dir, TOMLName)
	if err := Write(path, Default()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := Write(path, Default()); err == nil {
		t.Fatal("Write must refuse to overwrite")
	}

	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	want := Default()
	want.Path = path
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", cfg, want)
	}
}
