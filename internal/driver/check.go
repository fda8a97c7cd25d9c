package driver

import (
	"context"
	"fmt"
	"strconv"

	"turbalance/internal/checker"
	"turbalance/internal/diag"
	"turbalance/internal/source"
	"turbalance/internal/trace"
)

// CheckFile loads one file and runs the checker over it.
// A missing file yields an error wrapping os.ErrNotExist.
func CheckFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check_file", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	fileSet := source.NewFileSet()

	loadIdx := opts.Timer.Begin("load")
	fileID, err := fileSet.Load(path, opts.loadOptions())
	opts.Timer.End(loadIdx, "")
	if err != nil {
		emit(opts.Progress, Event{File: path, Status: StatusError, Err: err})
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	checkIdx := opts.Timer.Begin("check")
	res := checkLoaded(ctx, fileSet.Get(fileID), checker.New(opts.Checker), opts, nil)
	opts.Timer.End(checkIdx, fmt.Sprintf("%d diagnostic(s)", res.Bag.Len()))
	return res, nil
}

// CheckSource checks in-memory text as a virtual file named name.
func CheckSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual(name, content)
	return checkLoaded(ctx, fileSet.Get(fileID), checker.New(opts.Checker), opts, nil), nil
}

// checkLoaded runs one loaded file through memo, disk cache and checker.
// Diagnostics are always cached uncapped; the Bag limit applies afterwards.
func checkLoaded(ctx context.Context, file *source.File, c *checker.Checker, opts Options, memo *memoCache) *Result {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "check:"+file.Path, trace.CurrentSpan(ctx))
	emit(opts.Progress, Event{File: file.Path, Status: StatusChecking})

	key := CacheKey(file.Hash, c.Options())
	diags, cached := memo.get(key)
	if !cached {
		diags, cached = lookupDisk(ctx, opts.Cache, key, span.ID())
	}
	if !cached {
		diags = c.Check(file.Text())
		storeDisk(ctx, opts.Cache, key, file, diags, span.ID())
	}
	memo.put(key, diags)

	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.AddAll(diags)

	status := StatusDone
	if cached {
		status = StatusCached
	}
	emit(opts.Progress, Event{File: file.Path, Status: status, Diagnostics: len(diags)})
	span.WithExtra("diagnostics", strconv.Itoa(len(diags))).
		WithExtra("cached", strconv.FormatBool(cached)).
		End("")

	return &Result{
		Path:   file.Path,
		FileID: file.ID,
		File:   file,
		Bag:    bag,
		Cached: cached,
	}
}

func lookupDisk(ctx context.Context, cache *DiskCache, key Digest, parent uint64) ([]diag.Diagnostic, bool) {
	if cache == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	if err != nil {
		// битая запись равна промаху
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache_get", err.Error(), parent)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return payloadToDiagnostics(&payload), true
}

func storeDisk(ctx context.Context, cache *DiskCache, key Digest, file *source.File, diags []diag.Diagnostic, parent uint64) {
	if cache == nil {
		return
	}
	payload, err := diagnosticsToPayload(file.Path, file.Hash, diags)
	if err == nil {
		err = cache.Put(key, payload)
	}
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache_put", err.Error(), parent)
	}
}
