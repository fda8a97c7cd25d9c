package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"turbalance/internal/checker"
	"turbalance/internal/diag"
	"turbalance/internal/driver"
	"turbalance/internal/observ"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.tsw", "contract Foo\n}\n")

	res, err := driver.CheckFile(context.Background(), path, driver.Options{})
	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}
	got := diag.Strings(res.Bag.Items())
	want := []string{
		"[TURBALANCE] Line 1: Expected '{' after 'contract'",
		"[TURBALANCE] Line 2: Extra '}'",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("diag %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !res.Failed() || res.File == nil || res.Cached {
		t.Fatalf("unexpected result flags: %+v", res)
	}
}

func TestCheckFileMissing(t *testing.T) {
	_, err := driver.CheckFile(context.Background(), filepath.Join(t.TempDir(), "nope.tsw"), driver.Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestCheckFileMaxDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "braces.tsw", "}\n}\n}\n")

	res, err := driver.CheckFile(context.Background(), path, driver.Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}
	if res.Bag.Len() != 2 || res.Bag.Truncated() != 1 {
		t.Fatalf("len=%d truncated=%d, want 2/1", res.Bag.Len(), res.Bag.Truncated())
	}
}

func TestCheckFileTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.tsw", "contract A {\n}\n")
	timer := observ.NewTimer()

	if _, err := driver.CheckFile(context.Background(), path, driver.Options{Timer: timer}); err != nil {
		t.Fatalf("CheckFile error: %v", err)
	}
	report := timer.Report()
	if len(report.Phases) != 2 || report.Phases[0].Name != "load" || report.Phases[1].Name != "check" {
		t.Fatalf("unexpected phases %+v", report.Phases)
	}
}

func TestCheckSourceOptions(t *testing.T) {
	text := []byte("func main\ncontractual {\n")
	res, err := driver.CheckSource(context.Background(), "<stdin>", text, driver.Options{
		Checker: checker.Options{FuncParens: true, WordBoundary: true},
	})
	if err != nil {
		t.Fatalf("CheckSource error: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 2 || items[0].Kind != diag.MissingFuncParen || items[1].Kind != diag.UnclosedOpen {
		t.Fatalf("unexpected diagnostics %v", diag.Strings(items))
	}
}

func TestCheckDirOrderIndependentOfJobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.tsw", "}\n")
	writeFile(t, dir, "a.tsw", "contract A {\n}\n")
	writeFile(t, dir, "nested/c.tsw", "{\n")
	writeFile(t, dir, "skip.txt", "}\n")

	for _, jobs := range []int{1, 2, 8} {
		_, results, err := driver.CheckDir(context.Background(), dir, driver.Options{}, jobs)
		if err != nil {
			t.Fatalf("CheckDir(jobs=%d) error: %v", jobs, err)
		}
		if len(results) != 3 {
			t.Fatalf("jobs=%d: expected 3 results, got %d", jobs, len(results))
		}
		var paths []string
		for _, r := range results {
			rel, _ := filepath.Rel(dir, r.Path)
			paths = append(paths, filepath.ToSlash(rel))
		}
		if paths[0] != "a.tsw" || paths[1] != "b.tsw" || paths[2] != "nested/c.tsw" {
			t.Fatalf("jobs=%d: unexpected order %v", jobs, paths)
		}
		if results[0].Failed() || !results[1].Failed() || !results[2].Failed() {
			t.Fatalf("jobs=%d: unexpected failure flags", jobs)
		}
	}
}

func TestCheckDirExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.tsw", "")
	writeFile(t, dir, "b.swift", "")

	_, results, err := driver.CheckDir(context.Background(), dir, driver.Options{Extensions: []string{".swift"}}, 0)
	if err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "b.swift" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestCheckDirEmpty(t *testing.T) {
	fs, results, err := driver.CheckDir(context.Background(), t.TempDir(), driver.Options{}, 4)
	if err != nil || fs == nil || len(results) != 0 {
		t.Fatalf("CheckDir(empty) = %v, %v, %v", fs, results, err)
	}
}

func TestCheckDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.tsw", "{\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := driver.CheckDir(ctx, dir, driver.Options{}, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCheckDirProgressEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.tsw", "{\n")
	writeFile(t, dir, "b.tsw", "")

	var mu sync.Mutex
	statuses := map[string][]driver.Status{}
	sink := driver.SinkFunc(func(ev driver.Event) {
		mu.Lock()
		defer mu.Unlock()
		statuses[filepath.Base(ev.File)] = append(statuses[filepath.Base(ev.File)], ev.Status)
	})

	if _, _, err := driver.CheckDir(context.Background(), dir, driver.Options{Progress: sink}, 2); err != nil {
		t.Fatalf("CheckDir error: %v", err)
	}
	for _, name := range []string{"a.tsw", "b.tsw"} {
		got := statuses[name]
		if len(got) != 3 || got[0] != driver.StatusQueued || got[1] != driver.StatusChecking || got[2] != driver.StatusDone {
			t.Fatalf("%s: unexpected statuses %v", name, got)
		}
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.tsw", "contract A\n{\n")
	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt error: %v", err)
	}
	opts := driver.Options{Cache: cache}

	miss, err := driver.CheckFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("first CheckFile error: %v", err)
	}
	hit, err := driver.CheckFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("second CheckFile error: %v", err)
	}
	if miss.Cached || !hit.Cached {
		t.Fatalf("cached flags: miss=%v hit=%v", miss.Cached, hit.Cached)
	}
	a, b := miss.Bag.Items(), hit.Bag.Items()
	if len(a) != len(b) {
		t.Fatalf("cache changed diagnostics: %v vs %v", diag.Strings(a), diag.Strings(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("diag %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}

	// другой набор правил не должен попадать в тот же ключ
	other, err := driver.CheckFile(context.Background(), path, driver.Options{Cache: cache, Checker: checker.Options{FuncParens: true}})
	if err != nil {
		t.Fatalf("third CheckFile error: %v", err)
	}
	if other.Cached {
		t.Fatal("options change must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll error: %v", err)
	}
	again, err := driver.CheckFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("CheckFile after drop error: %v", err)
	}
	if again.Cached {
		t.Fatal("expected miss after DropAll")
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	var content [32]byte
	content[0] = 1
	base := driver.CacheKey(content, checker.Options{})
	if base != driver.CacheKey(content, checker.Options{}) {
		t.Fatal("CacheKey must be deterministic")
	}
	if base == driver.CacheKey(content, checker.Options{WordBoundary: true}) {
		t.Fatal("WordBoundary must change the key")
	}
	content[0] = 2
	if base == driver.CacheKey(content, checker.Options{}) {
		t.Fatal("content must change the key")
	}
}
