package sandbox

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/CodeRushOJ/croj-sum/internal/accumulator"
)

// helperEnv switches the test binary into a child-process role.
const helperEnv = "CROJ_SANDBOX_HELPER"

func TestMain(m *testing.M) {
	if mode := os.Getenv(helperEnv); mode != "" {
		os.Exit(runHelper(mode))
	}
	goleak.VerifyTestMain(m)
}

func runHelper(mode string) int {
	switch mode {
	case "accumulate":
		if err := accumulator.New(nil).Run(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	case "sleep":
		time.Sleep(time.Minute)
		return 0
	case "flood":
		fmt.Print(strings.Repeat("x", 1<<20))
		return 0
	case "fail":
		fmt.Fprint(os.Stderr, "boom")
		return 3
	default:
		fmt.Fprintf(os.Stderr, "unknown helper mode %q\n", mode)
		return 2
	}
}

func helper(mode string) map[string]string {
	return map[string]string{helperEnv: mode}
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.HostTempDir = t.TempDir()
	for _, mode := range []string{"accumulate", "sleep", "fail"} {
		cfg.Languages["helper-"+mode] = LanguageConfig{
			Run: RunConfig{Command: PlaceholderExePath, Env: helper(mode)},
		}
	}
	return cfg
}
