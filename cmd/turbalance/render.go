package main

import (
	"fmt"
	"io"

	"turbalance/internal/diag"
	"turbalance/internal/diagfmt"
	"turbalance/internal/driver"
	"turbalance/internal/source"
	"turbalance/internal/version"
)

const (
	formatConsole = "console"
	formatPretty  = "pretty"
	formatShort   = "short"
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatSarif   = "sarif"
)

func isKnownFormat(format string) bool {
	switch format {
	case formatConsole, formatPretty, formatShort, formatJSON, formatYAML, formatSarif:
		return true
	default:
		return false
	}
}

func pathModeFor(fullPath bool) diagfmt.PathMode {
	if fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

// renderer writes check results in one output format.
type renderer struct {
	out      io.Writer
	format   string
	color    bool
	quiet    bool
	preview  bool
	pathMode diagfmt.PathMode
	args     []string
}

func (r renderer) prettyOpts(baseDir string) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:       r.color,
		Context:     2,
		PathMode:    r.pathMode,
		BaseDir:     baseDir,
		ShowPreview: r.preview,
	}
}

func (r renderer) sarifMeta() diagfmt.SarifRunMeta {
	return diagfmt.SarifRunMeta{
		ToolName:       "turbalance",
		ToolVersion:    version.Version,
		InvocationArgs: r.args,
	}
}

// file renders the result of a single-file check.
func (r renderer) file(res *driver.Result) error {
	switch r.format {
	case formatConsole:
		if res.Bag.Len() == 0 && r.quiet {
			return nil
		}
		return r.console(res.Bag)
	case formatPretty:
		if res.Bag.Len() == 0 {
			if r.quiet {
				return nil
			}
			return diagfmt.Console(r.out, nil)
		}
		diagfmt.Pretty(r.out, res.Bag, res.File, r.prettyOpts(""))
		return nil
	case formatShort:
		return diagfmt.Short(r.out, res.Bag, res.File, r.pathMode, "")
	case formatJSON:
		return diagfmt.JSON(r.out, res.Bag, res.File, diagfmt.JSONOpts{PathMode: r.pathMode})
	case formatYAML:
		return diagfmt.YAML(r.out, res.Bag, res.File, diagfmt.JSONOpts{PathMode: r.pathMode})
	case formatSarif:
		return diagfmt.Sarif(r.out, []diagfmt.SarifFile{{File: res.File, Bag: res.Bag}}, r.sarifMeta())
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// console prints the canonical lines and, when the bag was capped, how many
// diagnostics were dropped.
func (r renderer) console(bag *diag.Bag) error {
	if err := diagfmt.Console(r.out, bag.Items()); err != nil {
		return err
	}
	if n := bag.Truncated(); n > 0 {
		_, err := fmt.Fprintf(r.out, "... %d more diagnostic(s) not shown\n", n)
		return err
	}
	return nil
}

// dir renders directory results in path order. Unreadable files are skipped;
// the caller reports them on stderr. Paths are relative to the checked
// directory unless --fullpath is set, so equal basenames stay distinct.
func (r renderer) dir(fs *source.FileSet, results []driver.Result) error {
	baseDir := ""
	if fs != nil {
		baseDir = fs.BaseDir()
	}
	if r.pathMode != diagfmt.PathModeAbsolute {
		r.pathMode = diagfmt.PathModeRelative
	}
	readable := make([]driver.Result, 0, len(results))
	for _, res := range results {
		if res.Err == nil && res.File != nil {
			readable = append(readable, res)
		}
	}

	switch r.format {
	case formatConsole, formatPretty:
		printed := 0
		for _, res := range readable {
			if r.quiet && res.Bag.Len() == 0 {
				continue
			}
			if printed > 0 {
				fmt.Fprintln(r.out)
			}
			printed++
			fmt.Fprintf(r.out, "== %s ==\n", r.displayPath(res.File, baseDir))
			if r.format == formatPretty && res.Bag.Len() > 0 {
				diagfmt.Pretty(r.out, res.Bag, res.File, r.prettyOpts(baseDir))
				continue
			}
			if err := r.console(res.Bag); err != nil {
				return err
			}
		}
		return nil
	case formatShort:
		for _, res := range readable {
			if err := diagfmt.Short(r.out, res.Bag, res.File, r.pathMode, baseDir); err != nil {
				return err
			}
		}
		return nil
	case formatJSON, formatYAML:
		opts := diagfmt.JSONOpts{PathMode: r.pathMode, BaseDir: baseDir}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(readable))
		for _, res := range readable {
			output[r.displayPath(res.File, baseDir)] = diagfmt.BuildDiagnosticsOutput(res.Bag, res.File, opts)
		}
		if r.format == formatYAML {
			return diagfmt.EncodeYAML(r.out, output)
		}
		return diagfmt.EncodeJSON(r.out, output)
	case formatSarif:
		files := make([]diagfmt.SarifFile, 0, len(readable))
		for _, res := range readable {
			files = append(files, diagfmt.SarifFile{File: res.File, Bag: res.Bag})
		}
		return diagfmt.Sarif(r.out, files, r.sarifMeta())
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

func (r renderer) displayPath(file *source.File, baseDir string) string {
	switch r.pathMode {
	case diagfmt.PathModeAbsolute:
		return file.FormatPath("absolute", baseDir)
	case diagfmt.PathModeRelative:
		return file.FormatPath("relative", baseDir)
	default:
		return file.FormatPath("auto", baseDir)
	}
}
