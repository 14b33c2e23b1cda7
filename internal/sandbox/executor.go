// internal/sandbox/executor.go
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// waitDelay bounds how long Wait blocks on output pipes after the child is killed.
const waitDelay = time.Second

// Executor handles executing commands with appropriate resource limits.
type Executor struct {
	cfg Config
	log *zap.Logger
}

// NewExecutor creates a new executor instance. The time and memory limits
// come from cfg.DefaultExecuteTimeLimit and cfg.DefaultExecuteMemoryLimit.
func NewExecutor(cfg Config, logger *zap.Logger) *Executor {
	return &Executor{cfg: cfg, log: logger}
}

// Execute runs the provided command with resource constraints.
// runCmd: Command and arguments to execute (already processed for placeholders)
// env: Optional environment variables added to the inherited environment
// stdinData: Optional standard input data
func (e *Executor) Execute(ctx context.Context, runCmd []string, env map[string]string, stdinData *string) Result {
	if len(runCmd) == 0 {
		return NewResult(StatusSandboxError, fmt.Errorf("empty command provided to executor"))
	}

	execCtx, cancel := context.WithTimeout(ctx, e.cfg.DefaultExecuteTimeLimit)
	defer cancel()

	e.log.Debug("Executing", zap.Strings("cmd", runCmd), zap.Duration("timeLimit", e.cfg.DefaultExecuteTimeLimit))
	// #nosec G204
	execCmd := exec.CommandContext(execCtx, runCmd[0], runCmd[1:]...)
	execCmd.WaitDelay = waitDelay

	if len(env) > 0 {
		execEnv := execCmd.Environ()
		for k, v := range env {
			execEnv = append(execEnv, fmt.Sprintf("%s=%s", k, v))
		}
		execCmd.Env = execEnv
	}

	if stdinData != nil {
		execCmd.Stdin = strings.NewReader(*stdinData)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	stdoutWriter := NewLimitedWriter(&stdoutBuf, e.cfg.MaxStdoutSize)
	stderrWriter := NewLimitedWriter(&stderrBuf, e.cfg.MaxStderrSize)
	execCmd.Stdout = stdoutWriter
	execCmd.Stderr = stderrWriter

	startTime := time.Now()
	runErr := execCmd.Run()
	duration := time.Since(startTime)

	result := Result{
		ExitCode:       0,
		TimeUsedMillis: duration.Milliseconds(),
		MemoryUsedKB:   -1,
		Stdout:         stdoutBuf.String(),
		Stderr:         stderrBuf.String(),
	}
	if execCmd.ProcessState != nil {
		result.MemoryUsedKB = peakMemoryKB(execCmd.ProcessState)
	}

	// 1. Caller gave up: not the program's fault.
	if ctx.Err() != nil {
		result.Status = StatusSandboxError
		result.Error = fmt.Sprintf("execution cancelled: %v", ctx.Err())
		result.ExitCode = -1
		return result
	}

	// 2. The process never started or could not be waited on.
	if runErr != nil && execCmd.ProcessState == nil {
		result.Status = StatusSandboxError
		result.Error = fmt.Sprintf("%v: %v", ErrStartFailed, runErr)
		result.ExitCode = -1
		e.log.Warn("Failed to start process", zap.Strings("cmd", runCmd), zap.Error(runErr))
		return result
	}

	// 3. Time limit
	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		result.Status = StatusTimeLimitExceeded
		result.Error = fmt.Sprintf("%v (limit: %v)", ErrExecuteTimeout, e.cfg.DefaultExecuteTimeLimit)
		result.ExitCode = -1
		return result
	}

	// 4. Output limits
	var limitErrs []error
	if stdoutWriter.Exceeded() {
		limitErrs = append(limitErrs, fmt.Errorf("%w (stdout, limit: %d bytes)", ErrOutputLimitExceeded, e.cfg.MaxStdoutSize))
	}
	if stderrWriter.Exceeded() {
		limitErrs = append(limitErrs, fmt.Errorf("%w (stderr, limit: %d bytes)", ErrOutputLimitExceeded, e.cfg.MaxStderrSize))
	}
	if len(limitErrs) > 0 {
		result.Status = StatusOutputLimitExceeded
		result.Error = errors.Join(limitErrs...).Error()
	}

	if execCmd.ProcessState != nil {
		result.ExitCode = execCmd.ProcessState.ExitCode()
	}

	// 5. Memory limit, checked after the fact from rusage.
	memLimitKB := e.cfg.DefaultExecuteMemoryLimit / 1024
	if result.Status == "" && memLimitKB > 0 && result.MemoryUsedKB > memLimitKB {
		result.Status = StatusMemoryLimitExceeded
		result.Error = fmt.Sprintf("%v (used: %d KB, limit: %d KB)", ErrMemoryLimitExceeded, result.MemoryUsedKB, memLimitKB)
	}

	// 6. Run errors and exit code
	if runErr != nil && result.Status == "" {
		result.Status = StatusRuntimeError
		result.Error = fmt.Sprintf("runtime error: %v (exit code: %d)", runErr, result.ExitCode)
	}

	if result.Status == "" {
		if result.ExitCode == 0 {
			result.Status = StatusAccepted
		} else {
			result.Status = StatusRuntimeError
			result.Error = fmt.Sprintf("process exited with code %d", result.ExitCode)
		}
	}

	e.log.Debug("Execution finished",
		zap.String("status", string(result.Status)),
		zap.Int("exitCode", result.ExitCode),
		zap.Int64("timeMillis", result.TimeUsedMillis),
		zap.Int64("memoryKB", result.MemoryUsedKB))
	return result
}

// --- LimitedWriter ---

// LimitedWriter wraps an io.Writer but stops writing after a certain limit.
// Writes past the limit are reported as successful and discarded.
type LimitedWriter struct {
	w        io.Writer
	limit    int64
	written  int64
	mu       sync.Mutex
	exceeded bool
}

// NewLimitedWriter creates a new LimitedWriter.
func NewLimitedWriter(w io.Writer, limit int64) *LimitedWriter {
	return &LimitedWriter{w: w, limit: limit}
}

// Exceeded reports whether any write went past the limit.
func (lw *LimitedWriter) Exceeded() bool {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.exceeded
}

func (lw *LimitedWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	remaining := lw.limit - lw.written
	if remaining <= 0 {
		if len(p) > 0 {
			lw.exceeded = true
		}
		return len(p), nil
	}

	writeLen := int64(len(p))
	if writeLen > remaining {
		writeLen = remaining
		lw.exceeded = true
	}

	n, err = lw.w.Write(p[:writeLen])
	lw.written += int64(n)

	if err == nil && lw.exceeded {
		return len(p), nil
	}

	return n, err
}
