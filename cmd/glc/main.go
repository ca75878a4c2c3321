// Command glc lowers Glacier HIR module files to LIR.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glacier-ir/glacier/hir"
	"github.com/glacier-ir/glacier/lower"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "glc:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "glc",
		Short:         "Glacier IR lowering tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newLowerCommand())
	return cmd
}

func newLowerCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "lower <module.yaml>",
		Short: "Lower an HIR module file to LIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLower(args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default stdout)")

	return cmd
}

func runLower(path, output string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	hm, err := hir.DecodeYAML(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	lm, err := lower.LowerModule(hm)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	out := lm.String()
	if output == "" || output == "-" {
		_, err = os.Stdout.WriteString(out)
		return err
	}
	return os.WriteFile(output, []byte(out), 0o644)
}
