package sandbox

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func executor(cfg Config) *Executor {
	return NewExecutor(cfg, zap.NewNop())
}

func stdin(s string) *string { return &s }

func TestExecute_Accumulate(t *testing.T) {
	res := executor(DefaultConfig()).Execute(context.Background(), []string{os.Args[0]}, helper("accumulate"), stdin("3\n1\n2\n3\n"))
	require.Equal(t, StatusAccepted, res.Status, res.Error)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "6\n", res.Stdout)
	assert.Empty(t, res.Stderr)
	assert.GreaterOrEqual(t, res.TimeUsedMillis, int64(0))
}

func TestExecute_InvalidInputIsRuntimeError(t *testing.T) {
	res := executor(DefaultConfig()).Execute(context.Background(), []string{os.Args[0]}, helper("accumulate"), stdin("2\n1\n"))
	assert.Equal(t, StatusRuntimeError, res.Status)
	assert.Equal(t, 1, res.ExitCode)
	assert.Empty(t, res.Stdout)
	assert.Contains(t, res.Stderr, "invalid input")
}

func TestExecute_NonZeroExit(t *testing.T) {
	res := executor(DefaultConfig()).Execute(context.Background(), []string{os.Args[0]}, helper("fail"), nil)
	assert.Equal(t, StatusRuntimeError, res.Status)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom", res.Stderr)
}

func TestExecute_TimeLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultExecuteTimeLimit = 200 * time.Millisecond

	started := time.Now()
	res := executor(cfg).Execute(context.Background(), []string{os.Args[0]}, helper("sleep"), nil)
	assert.Equal(t, StatusTimeLimitExceeded, res.Status)
	assert.Equal(t, -1, res.ExitCode)
	assert.Less(t, time.Since(started), 10*time.Second)
}

func TestExecute_OutputLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStdoutSize = 1024

	res := executor(cfg).Execute(context.Background(), []string{os.Args[0]}, helper("flood"), nil)
	assert.Equal(t, StatusOutputLimitExceeded, res.Status)
	assert.Len(t, res.Stdout, 1024)
	assert.Contains(t, res.Error, "stdout")
}

func TestExecute_MemoryLimit(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("peak memory is not measured on " + runtime.GOOS)
	}
	cfg := DefaultConfig()
	cfg.DefaultExecuteMemoryLimit = 1024 // 1 KB, below any real process

	res := executor(cfg).Execute(context.Background(), []string{os.Args[0]}, helper("accumulate"), stdin("0\n"))
	assert.Equal(t, StatusMemoryLimitExceeded, res.Status)
	assert.Greater(t, res.MemoryUsedKB, int64(1))
}

func TestExecute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := executor(DefaultConfig()).Execute(ctx, []string{os.Args[0]}, helper("accumulate"), stdin("0\n"))
	assert.Equal(t, StatusSandboxError, res.Status)
	assert.Contains(t, res.Error, "cancelled")
}

func TestExecute_EmptyCommand(t *testing.T) {
	res := executor(DefaultConfig()).Execute(context.Background(), nil, nil, nil)
	assert.Equal(t, StatusSandboxError, res.Status)
	assert.Equal(t, -1, res.ExitCode)
}

func TestExecute_MissingBinaryIsSandboxError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no such dir", "sum")

	res := executor(DefaultConfig()).Execute(context.Background(), []string{missing}, nil, stdin("0\n"))
	assert.Equal(t, StatusSandboxError, res.Status)
	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, res.Error, ErrStartFailed.Error())
	assert.NotContains(t, res.Error, "exit code")
}

func TestLimitedWriter(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLimitedWriter(&buf, 5)

	n, err := lw.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, lw.Exceeded())

	n, err = lw.Write([]byte("defgh"))
	require.NoError(t, err)
	assert.Equal(t, 5, n, "overflowing writes report full length")
	assert.True(t, lw.Exceeded())

	n, err = lw.Write([]byte(strings.Repeat("z", 10)))
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, "abcde", buf.String())
}
