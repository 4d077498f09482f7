package sink

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var records = [][]string{
	{"id", "name"},
	{"1", "Smith, J"},
	{"2", ""},
	{"3", "say \"hi\""},
}

func writeAll(t *testing.T, s Sink) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, s.Write(r))
	}
	require.NoError(t, s.Flush())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{
			name: "count",
			want: "",
		},
		{
			name: "text",
			want: "1) \"id\", \"name\"\n" +
				"2) \"1\", \"Smith, J\"\n" +
				"3) \"2\", \"\"\n" +
				"4) \"3\", \"say \\\"hi\\\"\"\n",
		},
		{
			name: "json",
			want: "[\"id\",\"name\"]\n" +
				"[\"1\",\"Smith, J\"]\n" +
				"[\"2\",\"\"]\n" +
				"[\"3\",\"say \\\"hi\\\"\"]\n",
		},
		{
			name: "csv",
			want: "id,name\n" +
				"1,\"Smith, J\"\n" +
				"2,\n" +
				"3,\"say \"\"hi\"\"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s, err := New(tt.name, &buf, tt.opts...)
			require.NoError(t, err)
			writeAll(t, s)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "count, text, json, csv")
}

func TestFormatNameCaseInsensitive(t *testing.T) {
	_, err := New("JSON", &bytes.Buffer{})
	assert.NoError(t, err)
}

func TestJSONArray(t *testing.T) {
	t.Run("records", func(t *testing.T) {
		var buf bytes.Buffer
		s, err := New("json", &buf, WithNewlineDelimited(false))
		require.NoError(t, err)
		require.NoError(t, s.Write([]string{"a", "b"}))
		require.NoError(t, s.Write([]string{"c"}))
		require.NoError(t, s.Flush())
		require.NoError(t, s.Flush())

		assert.Equal(t, "[\n[\"a\",\"b\"],\n[\"c\"]\n]\n", buf.String())

		var decoded [][]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, decoded)
	})

	t.Run("no records", func(t *testing.T) {
		var buf bytes.Buffer
		s, err := New("json", &buf, WithNewlineDelimited(false))
		require.NoError(t, err)
		require.NoError(t, s.Flush())
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestWithLimit(t *testing.T) {
	var buf bytes.Buffer
	s, err := New("csv", &buf, WithLimit(2))
	require.NoError(t, err)
	writeAll(t, s)
	assert.Equal(t, "id,name\n1,\"Smith, J\"\n", buf.String())

	buf.Reset()
	s, err = New("csv", &buf, WithLimit(0))
	require.NoError(t, err)
	writeAll(t, s)
	assert.Empty(t, buf.String())
}

func TestTextColor(t *testing.T) {
	var buf bytes.Buffer
	s, err := New("text", &buf, WithColor(true))
	require.NoError(t, err)
	writeAll(t, s)

	// Escape codes depend on whether the test runs on a terminal.
	out := buf.String()
	assert.Contains(t, out, "Smith, J")
	assert.Contains(t, out, "4) ")
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestFlushReportsWriteError(t *testing.T) {
	for _, format := range []string{"text", "json", "csv"} {
		t.Run(format, func(t *testing.T) {
			s, err := New(format, failingWriter{})
			require.NoError(t, err)
			require.NoError(t, s.Write([]string{"a"}))
			assert.ErrorIs(t, s.Flush(), errDiskFull)
		})
	}
}

func TestWriteReportsWriteError(t *testing.T) {
	// Larger than the output buffer, so the write reaches the writer.
	big := []string{strings.Repeat("x", 8192)}

	tests := []struct {
		format string
		opts   []Option
	}{
		{format: "text"},
		{format: "json"},
		{format: "json", opts: []Option{WithNewlineDelimited(false)}},
		{format: "csv"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			s, err := New(tt.format, failingWriter{}, tt.opts...)
			require.NoError(t, err)
			assert.ErrorIs(t, s.Write(big), errDiskFull)
		})
	}
}
