package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"turbalance/internal/checker"
	"turbalance/internal/source"
	"turbalance/internal/trace"
)

// ListFiles возвращает отсортированный список файлов с нужными расширениями.
func ListFiles(dir string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		for _, want := range extensions {
			if strings.EqualFold(ext, want) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every matching file under dir in parallel.
// Results are in sorted path order regardless of jobs. Unreadable files are
// reported through Result.Err, not as a CheckDir error.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int) (*source.FileSet, []Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check_dir", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	walkIdx := opts.Timer.Begin("walk")
	walkSpan := trace.Begin(tracer, trace.ScopePass, "walk", span.ID())
	files, err := ListFiles(dir, opts.extensions())
	walkSpan.WithExtra("files", strconv.Itoa(len(files))).End("")
	opts.Timer.End(walkIdx, fmt.Sprintf("%d file(s)", len(files)))
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	// Загрузка последовательная: FileSet не потокобезопасен.
	loadIdx := opts.Timer.Begin("load")
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		fileIDs[i], loadErrors[i] = fileSet.Load(path, opts.loadOptions())
	}
	opts.Timer.End(loadIdx, "")

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]Result, len(files))
	c := checker.New(opts.Checker)
	memo := newMemoCache(len(files))

	checkIdx := opts.Timer.Begin("check")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErrors[i] != nil {
				emit(opts.Progress, Event{File: path, Status: StatusError, Err: loadErrors[i]})
				results[i] = Result{Path: path, Err: fmt.Errorf("failed to load %s: %w", path, loadErrors[i])}
				return nil
			}

			results[i] = *checkLoaded(gctx, fileSet.Get(fileIDs[i]), c, opts, memo)
			return nil
		})
	}

	err = g.Wait()
	opts.Timer.End(checkIdx, fmt.Sprintf("jobs=%d", min(jobs, len(files))))
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
