// cmd/sumcheck/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodeRushOJ/croj-sum/internal/util"
)

var errCasesFailed = errors.New("not every case was accepted")

func main() {
	util.InitDebugMode()
	logger, err := util.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = newRootCmd(logger).ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "sumcheck",
		Short: "Generate sum test cases and judge programs against them",
		Long: `sumcheck exercises a program that reads a count N followed by N integers
and prints their sum, the way an online judge would.

  sumcheck generate --out cases/          write numbered .in/.out files
  sumcheck run --bin ./croj-sum           judge a built binary
  sumcheck run --lang rust --source main.rs

Set CROJ_DEBUG=1 for debug logs on stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(logger), newRunCmd(logger))
	return root
}
