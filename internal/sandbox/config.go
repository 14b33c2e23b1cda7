// internal/sandbox/config.go
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Command template placeholders
const (
	PlaceholderSrcPath   = "{{SRC_PATH}}" // Source code file path
	PlaceholderExePath   = "{{EXE_PATH}}" // Executable/output file path
	PlaceholderWorkDir   = "{{WORK_DIR}}" // Working directory path
	PlaceholderExeDir    = "{{EXE_DIR}}"  // Directory containing the executable
	PlaceholderMaxMemory = "{{MAX_MEM}}"  // Maximum memory in KB
)

const (
	// --- Default Execution Limits ---
	DefaultCompileTimeLimitSec = 10  // Default compile timeout in seconds
	DefaultExecuteTimeLimitSec = 3   // Default execution timeout in seconds
	DefaultMaxStdoutKB         = 64  // Default max stdout size in KB
	DefaultMaxStderrKB         = 64  // Default max stderr size in KB
	DefaultMemoryLimitMB       = 512 // Default memory limit in MB

	// --- Host Environment ---
	DefaultHostTempDirName = "croj-sum-runs" // Created under os.TempDir()
)

// CompileConfig defines how to compile a language source file
type CompileConfig struct {
	SrcName        string `yaml:"src_name"`    // Source file name (e.g., "main.go")
	ExeName        string `yaml:"exe_name"`    // Output executable name
	CompileCommand string `yaml:"command"`     // Compile command template, run with sh -c
	TimeoutSec     int    `yaml:"timeout_sec"` // Compile timeout in seconds (0 = use default)
}

// RunConfig defines how to run a compiled or interpreted language
type RunConfig struct {
	Command    string            `yaml:"command"`     // Run command template
	Env        map[string]string `yaml:"env"`         // Extra environment variables
	TimeoutSec int               `yaml:"timeout_sec"` // Execution timeout in seconds (0 = use default)
	MemoryMB   int               `yaml:"memory_mb"`   // Memory limit in MB (0 = use default)
}

// LanguageConfig holds configuration for a specific programming language
type LanguageConfig struct {
	Compile CompileConfig `yaml:"compile"`
	Run     RunConfig     `yaml:"run"`
}

// GetCompileTimeout returns the compile timeout, using default if not set
func (lc *LanguageConfig) GetCompileTimeout(defaultTimeout time.Duration) time.Duration {
	if lc.Compile.TimeoutSec <= 0 {
		return defaultTimeout
	}
	return time.Duration(lc.Compile.TimeoutSec) * time.Second
}

// GetExecuteTimeout returns the execution timeout, using default if not set
func (lc *LanguageConfig) GetExecuteTimeout(defaultTimeout time.Duration) time.Duration {
	if lc.Run.TimeoutSec <= 0 {
		return defaultTimeout
	}
	return time.Duration(lc.Run.TimeoutSec) * time.Second
}

// GetMemoryLimit returns the memory limit in bytes, using default if not set
func (lc *LanguageConfig) GetMemoryLimit(defaultLimit int64) int64 {
	if lc.Run.MemoryMB <= 0 {
		return defaultLimit
	}
	return int64(lc.Run.MemoryMB) * 1024 * 1024
}

// Config holds the configuration for the judge.
type Config struct {
	HostTempDir               string                    `yaml:"host_temp_dir"`
	DefaultCompileTimeLimit   time.Duration             `yaml:"compile_time_limit"`
	DefaultExecuteTimeLimit   time.Duration             `yaml:"execute_time_limit"`
	DefaultExecuteMemoryLimit int64                     `yaml:"memory_limit_bytes"`
	MaxStdoutSize             int64                     `yaml:"max_stdout_bytes"`
	MaxStderrSize             int64                     `yaml:"max_stderr_bytes"`
	Parallelism               int                       `yaml:"parallelism"` // Cases run at once
	Languages                 map[string]LanguageConfig `yaml:"languages"`
}

// DefaultConfig returns a new Config struct with default values and language settings.
func DefaultConfig() Config {
	cfg := Config{
		HostTempDir:               filepath.Join(os.TempDir(), DefaultHostTempDirName),
		DefaultCompileTimeLimit:   time.Duration(DefaultCompileTimeLimitSec) * time.Second,
		DefaultExecuteTimeLimit:   time.Duration(DefaultExecuteTimeLimitSec) * time.Second,
		DefaultExecuteMemoryLimit: int64(DefaultMemoryLimitMB) * 1024 * 1024,
		MaxStdoutSize:             int64(DefaultMaxStdoutKB) * 1024,
		MaxStderrSize:             int64(DefaultMaxStderrKB) * 1024,
		Parallelism:               1,
		Languages:                 make(map[string]LanguageConfig),
	}

	ConfigureDefaultLanguages(&cfg)

	return cfg
}

// LoadConfig reads a YAML file over DefaultConfig. Languages named in the
// file replace the built-in entry of the same name; others are kept.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that limits are usable.
func (c *Config) Validate() error {
	switch {
	case c.HostTempDir == "":
		return fmt.Errorf("host_temp_dir must be set")
	case c.DefaultCompileTimeLimit <= 0:
		return fmt.Errorf("compile_time_limit must be positive, got %v", c.DefaultCompileTimeLimit)
	case c.DefaultExecuteTimeLimit <= 0:
		return fmt.Errorf("execute_time_limit must be positive, got %v", c.DefaultExecuteTimeLimit)
	case c.MaxStdoutSize <= 0 || c.MaxStderrSize <= 0:
		return fmt.Errorf("output limits must be positive")
	case c.Parallelism < 1:
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	return nil
}
