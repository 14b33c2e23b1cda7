// internal/util/tempdir.go
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SetupHostRunDir creates a unique temporary directory for a run on the host.
// It returns the path to the created directory and a cleanup function.
func SetupHostRunDir(baseDir string, logger *zap.Logger) (runDir string, cleanup func(), err error) {
	runID := uuid.New().String()
	runDir = filepath.Join(baseDir, runID)

	if err := EnsureDir(baseDir); err != nil {
		return "", nil, err
	}
	if err := os.Mkdir(runDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create host run temp dir %s: %w", runDir, err)
	}
	logger.Debug("Created host temp dir", zap.String("dir", runDir))

	cleanup = func() {
		if err := os.RemoveAll(runDir); err != nil {
			logger.Warn("Failed to clean up host temp dir", zap.String("dir", runDir), zap.Error(err))
			return
		}
		logger.Debug("Cleaned up host temp dir", zap.String("dir", runDir))
	}

	return runDir, cleanup, nil
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dirName string) error {
	if err := os.MkdirAll(dirName, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirName, err)
	}
	return nil
}

// ProcessCommandString replaces placeholders in a command string with actual values
func ProcessCommandString(cmdTemplate string, replacements map[string]string) string {
	result := cmdTemplate
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// ProcessShellCommand replaces placeholders in a command string meant for
// "sh -c". Each value is single-quoted so paths containing spaces or shell
// metacharacters reach the command as one word.
func ProcessShellCommand(cmdTemplate string, replacements map[string]string) string {
	quoted := make(map[string]string, len(replacements))
	for placeholder, value := range replacements {
		quoted[placeholder] = ShellQuote(value)
	}
	return ProcessCommandString(cmdTemplate, quoted)
}

// ShellQuote wraps s in single quotes for a POSIX shell.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ProcessCommandTemplate splits a command template on whitespace and then
// replaces placeholders inside each part, so a substituted value always stays
// a single argument for exec.Command. Quoting is not interpreted.
func ProcessCommandTemplate(cmdTemplate string, replacements map[string]string) ([]string, error) {
	fields := strings.Fields(cmdTemplate)
	cmdParts := make([]string, 0, len(fields))
	for _, field := range fields {
		cmdParts = append(cmdParts, ProcessCommandString(field, replacements))
	}
	if len(cmdParts) == 0 || cmdParts[0] == "" {
		return nil, fmt.Errorf("empty command after processing %q", cmdTemplate)
	}
	return cmdParts, nil
}
