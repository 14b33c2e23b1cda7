// cmd/sumcheck/run.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodeRushOJ/croj-sum/internal/cases"
	"github.com/CodeRushOJ/croj-sum/internal/sandbox"
	"github.com/CodeRushOJ/croj-sum/internal/util"
)

// maxDisplay caps how much program output is echoed per case.
const maxDisplay = 256

type runOptions struct {
	binary     string
	source     string
	language   string
	casesDir   string
	count      int
	corrupt    []int
	scenarios  bool
	configPath string
	timeSec    int
	memMB      int
	parallel   int
	jsonOutput bool
}

func newRunCmd(logger *zap.Logger) *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Judge a program against sum cases",
		Long: `Runs a prebuilt binary (--bin) or compiles a single source file (--source,
--lang) and feeds it every case. Cases come from --cases-dir, or are
generated (--count, --corrupt) and followed by the built-in scenarios.
Exits non-zero unless every case is Accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJudge(cmd, logger, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.binary, "bin", "", "prebuilt executable to judge")
	f.StringVar(&opts.source, "source", "", "source file to compile and judge")
	f.StringVar(&opts.language, "lang", "go", "language of --source (go, cpp, rust, python, java, javascript)")
	f.StringVar(&opts.casesDir, "cases-dir", "", "directory of <name>.in / <name>.out files")
	f.IntVar(&opts.count, "count", 12, "number of generated cases when --cases-dir is not set")
	f.IntSliceVar(&opts.corrupt, "corrupt", nil, "generated case indices to give a wrong expected output")
	f.BoolVar(&opts.scenarios, "scenarios", true, "append the built-in scenarios to generated cases")
	f.StringVar(&opts.configPath, "config", "", "YAML judge configuration")
	f.IntVar(&opts.timeSec, "time", sandbox.DefaultExecuteTimeLimitSec, "execution time limit per case (seconds)")
	f.IntVar(&opts.memMB, "mem", sandbox.DefaultMemoryLimitMB, "memory limit per case (MB)")
	f.IntVar(&opts.parallel, "parallel", 1, "cases to run at once")
	f.BoolVar(&opts.jsonOutput, "json", false, "print the report as JSON")
	cmd.MarkFlagsMutuallyExclusive("bin", "source")
	cmd.MarkFlagsMutuallyExclusive("cases-dir", "corrupt")
	cmd.MarkFlagsOneRequired("bin", "source")
	return cmd
}

func runJudge(cmd *cobra.Command, logger *zap.Logger, opts runOptions) error {
	cfg := sandbox.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := sandbox.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("time") {
		cfg.DefaultExecuteTimeLimit = time.Duration(opts.timeSec) * time.Second
	}
	if flags.Changed("mem") {
		cfg.DefaultExecuteMemoryLimit = int64(opts.memMB) * 1024 * 1024
	}
	if flags.Changed("parallel") {
		cfg.Parallelism = opts.parallel
	}

	sub := sandbox.Submission{Binary: opts.binary}
	if opts.source != "" {
		code, err := os.ReadFile(opts.source)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		sub.Language = opts.language
		sub.SourceCode = string(code)
	}

	cs, err := loadCases(opts)
	if err != nil {
		return err
	}

	runner, err := sandbox.NewRunner(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize judge: %w", err)
	}
	report, err := runner.Judge(cmd.Context(), sub, cs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		printReport(out, report, cs)
	}

	if !report.Passed() {
		return errCasesFailed
	}
	return nil
}

func loadCases(opts runOptions) ([]cases.Case, error) {
	if opts.casesDir != "" {
		return cases.LoadDir(opts.casesDir)
	}
	cs, err := cases.Generate(cases.Options{Count: opts.count, Corrupt: opts.corrupt})
	if err != nil {
		return nil, err
	}
	if opts.scenarios {
		cs = append(cs, cases.Scenarios()...)
	}
	return cs, nil
}

func printReport(w io.Writer, report *sandbox.Report, cs []cases.Case) {
	expected := make(map[string]string, len(cs))
	for _, c := range cs {
		expected[c.Name] = c.Expected
	}

	fmt.Fprintf(w, "Run %s (%s)\n", report.RunID, report.Language)
	if report.CompileOutput != "" {
		fmt.Fprintf(w, "Compile output:\n%s\n", report.CompileOutput)
	}

	for _, c := range report.Cases {
		res := c.Result
		fmt.Fprintf(w, "\n--- case %s ---\n", c.Name)
		fmt.Fprintf(w, "Status: %s\n", res.Status)
		if res.Status == sandbox.StatusCompileError {
			continue
		}
		fmt.Fprintf(w, "Exit code: %d\n", res.ExitCode)
		fmt.Fprintf(w, "Time: %d ms\n", res.TimeUsedMillis)
		if res.MemoryUsedKB >= 0 {
			fmt.Fprintf(w, "Memory: %d KB\n", res.MemoryUsedKB)
		}

		switch res.Status {
		case sandbox.StatusAccepted:
		case sandbox.StatusWrongAnswer:
			fmt.Fprintf(w, "Expected: %q\n", util.NormalizeString(expected[c.Name]))
			fmt.Fprintf(w, "Actual:   %q\n", util.NormalizeString(truncate(res.Stdout)))
		default:
			if res.Stderr != "" {
				fmt.Fprintf(w, "Stderr (%d bytes):\n%s\n", len(res.Stderr), truncate(res.Stderr))
			}
			if res.Error != "" {
				fmt.Fprintf(w, "Error: %s\n", res.Error)
			}
		}
	}

	fmt.Fprintf(w, "\n%d/%d accepted", report.Summary[sandbox.StatusAccepted], len(report.Cases))
	for _, status := range []sandbox.Status{
		sandbox.StatusWrongAnswer,
		sandbox.StatusRuntimeError,
		sandbox.StatusTimeLimitExceeded,
		sandbox.StatusMemoryLimitExceeded,
		sandbox.StatusOutputLimitExceeded,
		sandbox.StatusCompileError,
		sandbox.StatusSandboxError,
	} {
		if n := report.Summary[status]; n > 0 {
			fmt.Fprintf(w, ", %d %s", n, status)
		}
	}
	fmt.Fprintln(w)
}

func truncate(s string) string {
	if len(s) > maxDisplay {
		return s[:maxDisplay] + "..."
	}
	return s
}
