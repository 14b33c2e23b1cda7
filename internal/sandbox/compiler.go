// internal/sandbox/compiler.go
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/CodeRushOJ/croj-sum/internal/util"
)

// Compiler writes submissions to a run directory and builds them with the
// language's compile command.
type Compiler struct {
	cfg Config
	log *zap.Logger
}

// NewCompiler creates a new Compiler instance.
func NewCompiler(cfg Config, logger *zap.Logger) *Compiler {
	return &Compiler{cfg: cfg, log: logger}
}

// Compile writes sourceCode into hostRunDir and compiles it when the
// language has a compile command. For interpreted languages exePath is the
// source path. Output holds whatever the compiler printed. A failed build
// returns a *CompileError.
func (c *Compiler) Compile(ctx context.Context, language string, langCfg LanguageConfig, sourceCode, hostRunDir string) (srcPath, exePath, output string, err error) {
	srcFileName := langCfg.Compile.SrcName
	if srcFileName == "" {
		return "", "", "", fmt.Errorf("language '%s' CompileConfig missing SrcName", language)
	}
	srcPath = filepath.Join(hostRunDir, srcFileName)
	if err := os.WriteFile(srcPath, []byte(sourceCode), 0644); err != nil {
		return "", "", "", fmt.Errorf("failed to write source file: %w", err)
	}
	c.log.Debug("Source code saved", zap.String("language", language), zap.String("path", srcPath))

	if langCfg.Compile.CompileCommand == "" {
		c.log.Debug("Skipping compilation phase", zap.String("language", language))
		return srcPath, srcPath, "", nil
	}

	exeName := langCfg.Compile.ExeName
	if exeName == "" {
		return "", "", "", fmt.Errorf("language '%s' has CompileCommand but no ExeName", language)
	}
	if runtime.GOOS == "windows" && filepath.Ext(exeName) == "" {
		exeName += ".exe"
	}
	exePath = filepath.Join(hostRunDir, exeName)

	compileCmdStr := util.ProcessShellCommand(langCfg.Compile.CompileCommand, map[string]string{
		PlaceholderSrcPath: srcPath,
		PlaceholderExePath: exePath,
		PlaceholderWorkDir: hostRunDir,
		PlaceholderExeDir:  filepath.Dir(exePath),
	})

	compileTimeout := langCfg.GetCompileTimeout(c.cfg.DefaultCompileTimeLimit)
	compileCtx, cancel := context.WithTimeout(ctx, compileTimeout)
	defer cancel()

	// #nosec G204
	cmd := exec.CommandContext(compileCtx, "sh", "-c", compileCmdStr)
	cmd.Dir = hostRunDir
	cmd.WaitDelay = waitDelay
	var outBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &outBuf

	c.log.Info("Compiling", zap.String("language", language), zap.String("cmd", compileCmdStr))
	startTime := time.Now()
	runErr := cmd.Run()
	duration := time.Since(startTime)

	if runErr != nil {
		if errors.Is(compileCtx.Err(), context.DeadlineExceeded) {
			c.log.Warn("Compile timed out", zap.String("language", language), zap.Duration("after", duration))
			return "", "", "", &CompileError{
				Output: outBuf.String(),
				Err:    fmt.Errorf("%w (limit: %v)", ErrCompileTimeout, compileTimeout),
			}
		}
		c.log.Info("Compile failed", zap.String("language", language), zap.Duration("after", duration), zap.Error(runErr))
		return "", "", "", &CompileError{
			Output: outBuf.String(),
			Err:    fmt.Errorf("%w: %v", ErrCompileFailed, runErr),
		}
	}

	if _, statErr := os.Stat(exePath); statErr != nil {
		return "", "", "", &CompileError{
			Output: outBuf.String(),
			Err:    fmt.Errorf("%w '%s': %w", ErrBinaryNotFound, exePath, statErr),
		}
	}

	c.log.Info("Compile successful", zap.String("language", language), zap.Duration("took", duration))
	return srcPath, exePath, outBuf.String(), nil
}
