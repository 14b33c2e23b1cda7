// internal/sandbox/result.go
package sandbox

import (
	"errors"
	"fmt"
)

// Status represents the outcome of a sandbox execution.
type Status string

const (
	StatusAccepted            Status = "Accepted"              // Ran within limits and, if checked, printed the expected output.
	StatusWrongAnswer         Status = "Wrong Answer"          // Ran within limits but the output did not match.
	StatusCompileError        Status = "Compile Error"         // Code failed to compile locally.
	StatusRuntimeError        Status = "Runtime Error"         // Program exited with non-zero status.
	StatusTimeLimitExceeded   Status = "Time Limit Exceeded"   // Execution time exceeded the limit.
	StatusMemoryLimitExceeded Status = "Memory Limit Exceeded" // Peak RSS exceeded the limit, checked after exit.
	StatusOutputLimitExceeded Status = "Output Limit Exceeded" // Stdout or Stderr exceeded the size limit.
	StatusSandboxError        Status = "Sandbox Error"         // Internal error within the judge (e.g., file ops).
)

// Result holds the outcome of a code execution in the sandbox.
type Result struct {
	Status         Status // Final status of the execution.
	ExitCode       int    // Exit code of the program (-1 if not run or killed).
	Stdout         string // Standard output (potentially truncated).
	Stderr         string // Standard error (potentially truncated).
	Error          string // Internal error message OR compile error output.
	TimeUsedMillis int64  // Wall time of the execution in milliseconds (-1 if not run).
	MemoryUsedKB   int64  // Peak resident set size in KB (-1 if not measured).

	// Compile specific info
	CompileOutput string // Full output from the compilation phase.
}

// IsOK checks if the result status indicates successful compilation and execution within limits.
func (r *Result) IsOK() bool {
	return r.Status == StatusAccepted
}

// NewResult creates a basic result with a given status and potential error.
func NewResult(status Status, err error) Result {
	res := Result{
		Status:         status,
		ExitCode:       -1,
		TimeUsedMillis: -1,
		MemoryUsedKB:   -1,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// Predefined sandbox errors
var (
	ErrCompileTimeout      = errors.New("local compilation timed out")
	ErrCompileFailed       = errors.New("local compilation failed")
	ErrExecuteTimeout      = errors.New("local execution timed out")
	ErrStartFailed         = errors.New("failed to start process")
	ErrHostTempDir         = errors.New("failed to manage host temporary directory")
	ErrBinaryNotFound      = errors.New("binary not found")
	ErrOutputLimitExceeded = errors.New("output limit exceeded")
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
	ErrOutputMismatch      = errors.New("output does not match expected output")
	ErrUnknownLanguage     = errors.New("unknown language")
)

// CompileError carries the compiler output alongside the failure cause.
type CompileError struct {
	Output string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Output)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
