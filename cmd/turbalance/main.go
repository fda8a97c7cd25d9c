package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"turbalance/internal/version"
)

// errDiagnostics is returned by commands that already printed diagnostics.
// main turns it into exit status 1 without printing anything else.
var errDiagnostics = errors.New("diagnostics reported")

// app owns the command tree and the resources set up while it runs.
type app struct {
	root         *cobra.Command
	traceCleanup func(error)
	profCleanup  func()
}

// newApp собирает дерево команд; тесты создают свежий экземпляр на каждый запуск.
func newApp() *app {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "turbalance",
		Short: "Structural balance checker for TurboSwift sources",
		Long: `turbalance scans TurboSwift sources line by line and reports structural
issues such as unmatched braces.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
			if err != nil {
				return fmt.Errorf("failed to get color flag: %w", err)
			}
			useColor, err := resolveColor(colorFlag, os.Stdout)
			if err != nil {
				return err
			}
			color.NoColor = !useColor

			cleanup, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			a.traceCleanup = cleanup

			profCleanup, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			a.profCleanup = profCleanup
			return nil
		},
	}
	a.root = rootCmd

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newStubCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show per file (0=unlimited)")
	registerTraceFlags(rootCmd)
	registerProfileFlags(rootCmd)

	return a
}

// execute runs the command tree with args and releases the profiler and the
// tracer afterwards, also when a command fails.
func (a *app) execute(args []string) error {
	a.root.SetArgs(args)
	err := a.root.Execute()
	if a.profCleanup != nil {
		a.profCleanup()
		a.profCleanup = nil
	}
	if a.traceCleanup != nil {
		a.traceCleanup(err)
		a.traceCleanup = nil
	}
	return err
}

// main builds the CLI and executes it.
// If command execution returns an error, the process exits with status code 1.
func main() {
	if err := newApp().execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func resolveColor(value string, f *os.File) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// silenceDiagnostics marks the command as failed without cobra noise.
func silenceDiagnostics(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return errDiagnostics
}
