package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"turbalance/internal/stubgen"
)

func newStubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stub <input> <output>",
		Short: "Generate a Python check_syntax stub from a source file",
		Long: `Stub reads <input> and writes a two-line Python function to <output>.
The function returns [] when the input mentions "contract" and a single
"Missing 'contract' keyword" entry otherwise.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if err := stubgen.Generate(in, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s from %s\n", out, in)
			return nil
		},
	}
}
