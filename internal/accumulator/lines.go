// internal/accumulator/lines.go
package accumulator

import (
	"bufio"
	"errors"
	"io"
)

// LineSource produces a finite sequence of text lines.
// Next returns io.EOF once the source is exhausted. A source cannot be
// rewound; build a new one to read the input again.
type LineSource interface {
	Next() (string, error)
}

// ReaderSource reads lines from an io.Reader without a line length limit.
type ReaderSource struct {
	r    *bufio.Reader
	done bool
}

// NewReaderSource wraps r in a buffered line reader.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: bufio.NewReader(r)}
}

// Next returns the next line including its terminator, if any.
// A final line without a trailing newline is still returned.
func (s *ReaderSource) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}
	line, err := s.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		s.done = true
		if line == "" {
			return "", io.EOF
		}
	}
	return line, nil
}

// SliceSource serves lines from memory.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource returns a source over lines. The slice is not copied.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

func (s *SliceSource) Next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}
