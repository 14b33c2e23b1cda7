package accumulator

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "three values", input: "3\n1\n2\n3\n", want: "6\n"},
		{name: "mixed signs", input: "2\n10\n-4\n", want: "6\n"},
		{name: "zero count", input: "0\n", want: "0\n"},
		{name: "negative sum", input: "2\n-5\n3\n", want: "-2\n"},
		{name: "surrounding whitespace", input: " 2 \n\t-3 \n +4\t\n", want: "1\n"},
		{name: "crlf line endings", input: "2\r\n7\r\n8\r\n", want: "15\n"},
		{name: "last line without newline", input: "2\n1\n41", want: "42\n"},
		{name: "plus signed count", input: "+1\n5\n", want: "5\n"},
		{name: "trailing lines ignored", input: "1\n9\nnot a number\n", want: "9\n"},
		{name: "beyond int64", input: "2\n9223372036854775807\n1\n", want: "9223372036854775808\n"},
		{name: "below int64", input: "2\n-9223372036854775808\n-1\n", want: "-9223372036854775809\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := New(nil).Run(strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLine  int
		wantField Field
		wantCause error
	}{
		{name: "empty input", input: "", wantLine: 1, wantField: FieldCount, wantCause: ErrUnexpectedEOF},
		{name: "non-numeric count", input: "abc\n", wantLine: 1, wantField: FieldCount},
		{name: "negative count", input: "-1\n", wantLine: 1, wantField: FieldCount, wantCause: ErrNegativeCount},
		{name: "negative zero count", input: "-0\n", wantLine: 1, wantField: FieldCount, wantCause: ErrNegativeCount},
		{name: "empty count line", input: "\n1\n", wantLine: 1, wantField: FieldCount},
		{name: "stream ends early", input: "2\n1\n", wantLine: 3, wantField: FieldValue, wantCause: ErrUnexpectedEOF},
		{name: "non-numeric value", input: "2\n1\nx\n", wantLine: 3, wantField: FieldValue, wantCause: ErrNotInteger},
		{name: "blank value line", input: "1\n\n", wantLine: 2, wantField: FieldValue, wantCause: ErrNotInteger},
		{name: "decimal value", input: "1\n1.5\n", wantLine: 2, wantField: FieldValue, wantCause: ErrNotInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := New(nil).Run(strings.NewReader(tt.input), &out)
			require.Error(t, err)
			assert.Empty(t, out.String(), "no partial sum may be written")
			assert.ErrorIs(t, err, ErrInvalidInput)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantLine, perr.Line)
			assert.Equal(t, tt.wantField, perr.Field)
			if tt.wantCause != nil {
				assert.ErrorIs(t, err, tt.wantCause)
			}
		})
	}
}

func TestSum_ConsumesOnlyNeededLines(t *testing.T) {
	src := NewSliceSource([]string{"2", "1", "2", "3", "4"})
	sum, err := New(nil).Sum(src)
	require.NoError(t, err)
	assert.Equal(t, "3", sum.String())

	next, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "3", next)
}

type failingSource struct{ err error }

func (f failingSource) Next() (string, error) { return "", f.err }

func TestSum_ReadErrorIsNotParseError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := New(nil).Sum(failingSource{err: boom})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "read line 1")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRun_WriteError(t *testing.T) {
	err := New(nil).Run(strings.NewReader("1\n1\n"), failingWriter{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestParseError_Message(t *testing.T) {
	err := &ParseError{Line: 1, Field: FieldCount, Text: "abc", Err: ErrNotInteger}
	assert.Equal(t, `invalid input: line 1 (count): "abc": not a base-10 integer`, err.Error())

	err = &ParseError{Line: 4, Field: FieldValue, Err: ErrUnexpectedEOF}
	assert.Equal(t, "invalid input: line 4 (value): unexpected end of input", err.Error())
}

func TestParseCount(t *testing.T) {
	n, err := ParseCount(" 5 \n")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)

	_, err = ParseCount("++5")
	assert.Error(t, err)

	_, err = ParseCount("18446744073709551616")
	assert.Error(t, err, "count beyond uint64 is rejected")
}

func TestSum_LogsCount(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := New(zap.New(core)).Sum(NewSliceSource([]string{"1", "7"}))
	require.NoError(t, err)

	entries := logs.FilterMessage("Accumulated values").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "7", entries[0].ContextMap()["sum"])
}
