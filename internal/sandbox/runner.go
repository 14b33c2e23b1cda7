// internal/sandbox/runner.go
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/CodeRushOJ/croj-sum/internal/cases"
	"github.com/CodeRushOJ/croj-sum/internal/util"
)

// Submission is a program to judge: source code in Language, or a prebuilt
// Binary. When Binary is set the language defaults to LanguageBinary.
type Submission struct {
	Language   string
	SourceCode string
	Binary     string
}

// Runner orchestrates compilation and execution of submissions.
type Runner struct {
	cfg      Config
	compiler *Compiler
	log      *zap.Logger
}

// NewRunner creates a new local judge runner instance.
func NewRunner(cfg Config, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := util.EnsureDir(cfg.HostTempDir); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHostTempDir, err)
	}
	logger.Debug("Judge runner initialized", zap.String("hostTempDir", cfg.HostTempDir))
	return &Runner{
		cfg:      cfg,
		compiler: NewCompiler(cfg, logger),
		log:      logger,
	}, nil
}

// Program is a prepared submission that can be executed repeatedly.
type Program struct {
	Language      string
	CompileOutput string

	runCmd   []string
	env      map[string]string
	executor *Executor
	cleanup  func()
	log      *zap.Logger
}

// Prepare compiles or locates the submission. A build failure is returned
// as a *CompileError. Close the Program to remove its run directory.
func (r *Runner) Prepare(ctx context.Context, sub Submission) (*Program, error) {
	language := sub.Language
	if sub.Binary != "" && language == "" {
		language = LanguageBinary
	}
	langCfg, ok := r.cfg.Languages[language]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownLanguage, language)
	}

	hostRunDir, cleanup, err := util.SetupHostRunDir(r.cfg.HostTempDir, r.log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHostTempDir, err)
	}

	srcPath, exePath, compileOutput := "", "", ""
	if sub.Binary != "" {
		exePath, err = filepath.Abs(sub.Binary)
		if err == nil {
			_, err = os.Stat(exePath)
		}
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("%w '%s': %w", ErrBinaryNotFound, sub.Binary, err)
		}
	} else {
		srcPath, exePath, compileOutput, err = r.compiler.Compile(ctx, language, langCfg, sub.SourceCode, hostRunDir)
		if err != nil {
			cleanup()
			return nil, err
		}
	}

	memLimitBytes := langCfg.GetMemoryLimit(r.cfg.DefaultExecuteMemoryLimit)
	runCmd, err := util.ProcessCommandTemplate(langCfg.Run.Command, map[string]string{
		PlaceholderExePath:   exePath,
		PlaceholderWorkDir:   hostRunDir,
		PlaceholderSrcPath:   srcPath,
		PlaceholderExeDir:    filepath.Dir(exePath),
		PlaceholderMaxMemory: strconv.FormatInt(memLimitBytes/1024, 10),
	})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to process run command template for '%s': %w", language, err)
	}

	runCfg := r.cfg
	runCfg.DefaultExecuteTimeLimit = langCfg.GetExecuteTimeout(r.cfg.DefaultExecuteTimeLimit)
	runCfg.DefaultExecuteMemoryLimit = memLimitBytes

	return &Program{
		Language:      language,
		CompileOutput: compileOutput,
		runCmd:        runCmd,
		env:           langCfg.Run.Env,
		executor:      NewExecutor(runCfg, r.log),
		cleanup:       cleanup,
		log:           r.log,
	}, nil
}

// Run executes the program once. When expected is non-nil an otherwise
// Accepted result is compared with it and may become Wrong Answer.
func (p *Program) Run(ctx context.Context, stdin string, expected *string) Result {
	res := p.executor.Execute(ctx, p.runCmd, p.env, &stdin)
	res.CompileOutput = p.CompileOutput

	if res.Status == StatusAccepted && expected != nil && !util.CompareOutputs(res.Stdout, *expected) {
		p.log.Debug("Output mismatch",
			zap.String("expected", util.NormalizeString(*expected)),
			zap.String("actual", util.NormalizeString(res.Stdout)))
		res.Status = StatusWrongAnswer
		res.Error = ErrOutputMismatch.Error()
	}
	return res
}

// Close removes the program's run directory.
func (p *Program) Close() {
	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
}

// Judge prepares the submission once and runs it against every case, up to
// cfg.Parallelism at a time. A compile failure marks every case Compile
// Error; only setup failures are returned as errors.
func (r *Runner) Judge(ctx context.Context, sub Submission, cs []cases.Case) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Language: sub.Language}
	log := r.log.With(zap.String("runID", report.RunID))
	started := time.Now()

	prog, err := r.Prepare(ctx, sub)
	var compileErr *CompileError
	switch {
	case errors.As(err, &compileErr):
		log.Info("Submission did not compile", zap.Error(compileErr.Err))
		res := NewResult(StatusCompileError, compileErr.Err)
		res.CompileOutput = compileErr.Output
		report.CompileOutput = compileErr.Output
		for _, c := range cs {
			report.add(c.Name, res)
		}
		return report, nil
	case err != nil:
		return nil, err
	}
	defer prog.Close()
	report.Language = prog.Language

	results := make([]Result, len(cs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Parallelism)
	for i, c := range cs {
		i, c := i, c
		g.Go(func() error {
			expected := c.Expected
			results[i] = prog.Run(gctx, c.Input, &expected)
			log.Debug("Case finished", zap.String("case", c.Name), zap.String("status", string(results[i].Status)))
			return nil
		})
	}
	_ = g.Wait()

	for i, c := range cs {
		report.add(c.Name, results[i])
	}
	log.Info("Judge finished",
		zap.Int("cases", len(cs)),
		zap.Bool("passed", report.Passed()),
		zap.Duration("took", time.Since(started)))
	return report, nil
}
