package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"turbalance/internal/config"
	"turbalance/internal/driver"
	"turbalance/internal/observ"
	"turbalance/internal/source"
	"turbalance/internal/trace"
)

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [flags] <file|directory>",
		Short: "Check a TurboSwift file or every source file in a directory",
		Long: `Check reports brace imbalance and malformed contract or import lines.
The exit status is 1 when any diagnostic was reported or a file could not be
read.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}

	checkCmd.Flags().String("format", formatConsole, "output format (console|pretty|short|json|yaml|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("word-boundary", false, "require whole words for contract, import and aka")
	checkCmd.Flags().Bool("func-parens", false, "report func lines without '('")
	checkCmd.Flags().StringSlice("ext", nil, "file extensions checked in directories (default from config: .tsw)")
	checkCmd.Flags().Bool("nfc", false, "normalize sources to Unicode NFC before checking")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache of check results")
	checkCmd.Flags().String("config", "", "path to turbalance.toml or turbalance.yaml (default: discovered)")
	checkCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	checkCmd.Flags().Bool("preview", false, "show suggested line fixes in pretty output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")

	return checkCmd
}

// runCheck executes the "check" command: it resolves configuration (project
// file, then flags), checks the file or directory and renders the results.
// Diagnostics make the command fail silently with errDiagnostics.
func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	if !isKnownFormat(format) {
		return fmt.Errorf("unknown format: %s", format)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag, os.Stdout)
	if err != nil {
		return err
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	cfg, err := resolveConfig(cmd, target, st.IsDir())
	if err != nil {
		return err
	}

	opts := driver.Options{
		Checker:        cfg.CheckerOptions(),
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		Extensions:     cfg.Check.Extensions,
		NFC:            cfg.Check.Normalize == config.NormalizeNFC,
	}
	if cfg.Cache.Enabled {
		cache, err := openCache(cfg.Cache.Dir)
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "check", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	defer span.End(target)

	r := renderer{
		out:      cmd.OutOrStdout(),
		format:   format,
		color:    useColor,
		quiet:    quiet,
		preview:  preview,
		pathMode: pathModeFor(fullPath),
		args:     os.Args,
	}

	var failed bool
	if !st.IsDir() {
		res, err := driver.CheckFile(ctx, target, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		renderIdx := timer.Begin("render")
		err = r.file(res)
		timer.End(renderIdx, format)
		if err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
		failed = res.Failed()
	} else {
		var (
			fs      *source.FileSet
			results []driver.Result
		)
		if shouldUseTUI(mode, format) {
			fs, results, err = runCheckDirWithUI(ctx, "checking "+target, target, opts, jobs)
		} else {
			fs, results, err = driver.CheckDir(ctx, target, opts, jobs)
		}
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		for i := range results {
			if results[i].Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", results[i].Err)
			}
			failed = failed || results[i].Failed()
		}
		renderIdx := timer.Begin("render")
		err = r.dir(fs, results)
		timer.End(renderIdx, format)
		if err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}

	if timer != nil {
		if err := timer.WriteSummary(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	if failed {
		span.WithExtra("result", "failed")
		return silenceDiagnostics(cmd)
	}
	return nil
}

// resolveConfig loads --config or discovers the project file next to target,
// then applies flags the user set explicitly.
func resolveConfig(cmd *cobra.Command, target string, isDir bool) (config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		start := target
		if !isDir {
			start = filepath.Dir(target)
		}
		cfg, err = config.Discover(start)
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if err := overrideBool(flags, "word-boundary", &cfg.Check.WordBoundary); err != nil {
		return config.Config{}, err
	}
	if err := overrideBool(flags, "func-parens", &cfg.Check.FuncParens); err != nil {
		return config.Config{}, err
	}
	if err := overrideBool(flags, "disk-cache", &cfg.Cache.Enabled); err != nil {
		return config.Config{}, err
	}
	if err := overrideStrings(flags, "ext", &cfg.Check.Extensions); err != nil {
		return config.Config{}, err
	}
	if err := overrideInt(cmd.Root().PersistentFlags(), "max-diagnostics", &cfg.Check.MaxDiagnostics); err != nil {
		return config.Config{}, err
	}
	nfc := cfg.Check.Normalize == config.NormalizeNFC
	if err := overrideBool(flags, "nfc", &nfc); err != nil {
		return config.Config{}, err
	}
	cfg.Check.Normalize = config.NormalizeNone
	if nfc {
		cfg.Check.Normalize = config.NormalizeNFC
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func openCache(dir string) (*driver.DiskCache, error) {
	if dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("turbalance")
}
