// cmd/croj-sum/main.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodeRushOJ/croj-sum/internal/accumulator"
	"github.com/CodeRushOJ/croj-sum/internal/util"
)

const (
	exitInvalidInput = 1
	exitFailure      = 2
)

func main() {
	util.InitDebugMode()
	logger, err := util.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}

	err = newRootCmd(logger).Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "croj-sum",
		Short: "Print the sum of N integers read from stdin",
		Long: `croj-sum reads a count N from the first line of standard input,
then N signed integers, one per line, and prints their sum.

Surrounding whitespace on each line is ignored. Lines after the Nth value
are not read. Malformed or missing input exits with status 1 and prints
nothing on standard output.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sum(logger, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func sum(logger *zap.Logger, in io.Reader, out io.Writer) error {
	if err := accumulator.New(logger).Run(in, out); err != nil {
		logger.Debug("Accumulation failed", zap.Error(err))
		return err
	}
	return nil
}

func exitCode(err error) int {
	if errors.Is(err, accumulator.ErrInvalidInput) {
		return exitInvalidInput
	}
	return exitFailure
}
