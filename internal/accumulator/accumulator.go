// internal/accumulator/accumulator.go

// Package accumulator reads a count N followed by N integers, one per line,
// and produces their sum.
//
// The sum is kept as a math/big.Int, so it never overflows regardless of how
// many values are read or how large they are. Lines after the Nth value are
// left unread.
package accumulator

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Accumulator sums the values described by a count line.
type Accumulator struct {
	log *zap.Logger
}

// New returns an Accumulator. A nil logger disables logging.
func New(logger *zap.Logger) *Accumulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accumulator{log: logger}
}

// ParseCount parses a count line: a non-negative base-10 integer with an
// optional leading '+', surrounded by optional whitespace.
func ParseCount(line string) (uint64, error) {
	s := strings.TrimSpace(line)
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativeCount
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ParseValue parses a value line: a signed base-10 integer of any magnitude,
// surrounded by optional whitespace.
func ParseValue(line string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(line), 10)
	if !ok {
		return nil, ErrNotInteger
	}
	return v, nil
}

// Sum reads the count line and then exactly that many value lines from src.
// The first malformed or missing line aborts the read with a *ParseError.
func (a *Accumulator) Sum(src LineSource) (*big.Int, error) {
	line, err := src.Next()
	if err != nil {
		return nil, a.readError(1, FieldCount, err)
	}
	n, err := ParseCount(line)
	if err != nil {
		return nil, &ParseError{Line: 1, Field: FieldCount, Text: strings.TrimSpace(line), Err: err}
	}
	a.log.Debug("Read count", zap.Uint64("count", n))

	sum := new(big.Int)
	for i := uint64(0); i < n; i++ {
		lineNo := int(i) + 2
		line, err := src.Next()
		if err != nil {
			return nil, a.readError(lineNo, FieldValue, err)
		}
		v, err := ParseValue(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Field: FieldValue, Text: strings.TrimSpace(line), Err: err}
		}
		sum.Add(sum, v)
	}

	a.log.Debug("Accumulated values", zap.Uint64("count", n), zap.Stringer("sum", sum))
	return sum, nil
}

// Run sums the input read from r and writes the total to w as a single
// decimal line. Nothing is written to w when reading fails.
func (a *Accumulator) Run(r io.Reader, w io.Writer) error {
	sum, err := a.Sum(NewReaderSource(r))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, sum.String()); err != nil {
		return fmt.Errorf("write sum: %w", err)
	}
	return nil
}

func (a *Accumulator) readError(line int, field Field, err error) error {
	if errors.Is(err, io.EOF) {
		return &ParseError{Line: line, Field: field, Err: ErrUnexpectedEOF}
	}
	a.log.Warn("Reading input failed", zap.Int("line", line), zap.Error(err))
	return fmt.Errorf("read line %d: %w", line, err)
}
