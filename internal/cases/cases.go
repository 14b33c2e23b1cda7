// internal/cases/cases.go

// Package cases builds the input/expected-output pairs used to judge a sum
// program, and reads and writes them as numbered .in/.out files.
package cases

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultCount matches the size of the original sum problem set.
	DefaultCount = 22
	// GrowthFactor sets the size of case i to round(GrowthFactor^i).
	GrowthFactor = 2.3
	// CorruptedOutput replaces the expected output of a corrupted case.
	CorruptedOutput = "67"

	inExt  = ".in"
	outExt = ".out"
)

var (
	ErrNoCases      = errors.New("no test cases found")
	ErrCorruptIndex = errors.New("corrupt index out of range")
)

// Case is one judged input with its expected output.
type Case struct {
	Name     string
	Input    string
	Expected string
}

// Options tunes Generate.
type Options struct {
	Count   int   // Number of cases; 0 means DefaultCount.
	Corrupt []int // Indices whose expected output is replaced by CorruptedOutput.
}

// Size returns the number of values in generated case i.
func Size(i int) int {
	return int(math.Round(math.Pow(GrowthFactor, float64(i))))
}

// Generate builds cases of exponentially increasing size. Case i holds
// Size(i) lines of "1", so its expected output is Size(i). Every index in
// opts.Corrupt must name a generated case.
func Generate(opts Options) ([]Case, error) {
	count := opts.Count
	if count <= 0 {
		count = DefaultCount
	}
	corrupt := make(map[int]bool, len(opts.Corrupt))
	for _, i := range opts.Corrupt {
		if i < 0 || i >= count {
			return nil, fmt.Errorf("%w: %d (generating %d cases, valid indices are 0-%d)", ErrCorruptIndex, i, count, count-1)
		}
		corrupt[i] = true
	}

	out := make([]Case, 0, count)
	for i := 0; i < count; i++ {
		n := Size(i)
		var b strings.Builder
		b.Grow(len(strconv.Itoa(n)) + 1 + 2*n)
		fmt.Fprintf(&b, "%d\n", n)
		for j := 0; j < n; j++ {
			b.WriteString("1\n")
		}

		expected := fmt.Sprintf("%d\n", n)
		if corrupt[i] {
			expected = CorruptedOutput
		}
		out = append(out, Case{Name: strconv.Itoa(i), Input: b.String(), Expected: expected})
	}
	return out, nil
}

// Scenarios returns small hand-written cases covering signs, whitespace and
// the empty count.
func Scenarios() []Case {
	return []Case{
		{Name: "three", Input: "3\n1\n2\n3\n", Expected: "6\n"},
		{Name: "mixed-signs", Input: "2\n10\n-4\n", Expected: "6\n"},
		{Name: "empty", Input: "0\n", Expected: "0\n"},
		{Name: "negative", Input: "2\n-5\n3\n", Expected: "-2\n"},
		{Name: "whitespace", Input: " 2 \n\t-3 \n +4\t\n", Expected: "1\n"},
		{Name: "trailing-input", Input: "1\n9\nignored\n", Expected: "9\n"},
	}
}

// WriteDir writes each case as <dir>/<name>.in and <dir>/<name>.out,
// creating dir if needed.
func WriteDir(dir string, cs []Case, logger *zap.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create case dir %s: %w", dir, err)
	}
	for _, c := range cs {
		if err := os.WriteFile(filepath.Join(dir, c.Name+inExt), []byte(c.Input), 0644); err != nil {
			return fmt.Errorf("write case %s input: %w", c.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, c.Name+outExt), []byte(c.Expected), 0644); err != nil {
			return fmt.Errorf("write case %s output: %w", c.Name, err)
		}
		logger.Debug("Wrote case", zap.String("name", c.Name), zap.Int("inputBytes", len(c.Input)))
	}
	return nil
}

// LoadDir reads every <name>.in file in dir together with its <name>.out.
// Numeric names sort numerically and come before other names.
func LoadDir(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read case dir %s: %w", dir, err)
	}

	var out []Case
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != inExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), inExt)
		input, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read case %s input: %w", name, err)
		}
		expected, err := os.ReadFile(filepath.Join(dir, name+outExt))
		if err != nil {
			return nil, fmt.Errorf("read case %s output: %w", name, err)
		}
		out = append(out, Case{Name: name, Input: string(input), Expected: string(expected)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoCases, dir)
	}

	sort.Slice(out, func(i, j int) bool { return lessName(out[i].Name, out[j].Name) })
	return out, nil
}

func lessName(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
