package driver

import (
	"turbalance/internal/checker"
	"turbalance/internal/diag"
	"turbalance/internal/observ"
	"turbalance/internal/source"
)

// DefaultExtensions is used by CheckDir when Options.Extensions is empty.
var DefaultExtensions = []string{".tsw"}

// Options controls a driver run. The zero value checks with default rules,
// unlimited diagnostics, no cache and no progress reporting.
type Options struct {
	Checker        checker.Options
	MaxDiagnostics int
	Extensions     []string
	NFC            bool

	Cache    *DiskCache
	Progress ProgressSink
	Timer    *observ.Timer
}

func (o Options) loadOptions() source.LoadOptions {
	return source.LoadOptions{NFC: o.NFC}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

// Result holds the outcome for one file.
type Result struct {
	Path   string
	FileID source.FileID
	File   *source.File
	Bag    *diag.Bag
	Cached bool
	// Err is set when the file could not be read; Bag is empty then.
	Err error
}

// Failed reports whether the file produced diagnostics or could not be read.
func (r *Result) Failed() bool {
	if r == nil {
		return false
	}
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}
