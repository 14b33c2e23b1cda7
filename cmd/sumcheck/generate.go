// cmd/sumcheck/generate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodeRushOJ/croj-sum/internal/cases"
)

func newGenerateCmd(logger *zap.Logger) *cobra.Command {
	var (
		outDir  string
		count   int
		corrupt []int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write generated sum cases as <i>.in / <i>.out files",
		Long: `Case i holds round(2.3^i) lines of "1" after its count line, so its
expected output is that count. --corrupt replaces the expected output of the
given cases with "67" to check that a judge reports Wrong Answer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := cases.Generate(cases.Options{Count: count, Corrupt: corrupt})
			if err != nil {
				return err
			}
			if err := cases.WriteDir(outDir, cs, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cases to %s\n", len(cs), outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "directory to write cases into")
	cmd.Flags().IntVar(&count, "count", cases.DefaultCount, "number of cases")
	cmd.Flags().IntSliceVar(&corrupt, "corrupt", nil, "case indices to give a wrong expected output")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
