package csv_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-csvscan/pkg/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nodeRecords flattens a parsed AST back into records.
func nodeRecords(t *testing.T, node ast.SchemaNode) [][]string {
	t.Helper()
	arrayNode, ok := node.(*ast.ArrayDataNode)
	require.True(t, ok, "expected *ast.ArrayDataNode, got %T", node)

	records := [][]string{}
	for _, elem := range arrayNode.Elements() {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		require.True(t, ok, "expected record *ast.ArrayDataNode, got %T", elem)

		fields := []string{}
		for _, fieldNode := range recordNode.Elements() {
			literal, ok := fieldNode.(*ast.LiteralNode)
			require.True(t, ok, "expected field *ast.LiteralNode, got %T", fieldNode)
			value, ok := literal.Value().(string)
			require.True(t, ok, "expected string value, got %T", literal.Value())
			fields = append(fields, value)
		}
		records = append(records, fields)
	}
	return records
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [][]string
		wantErr error
	}{
		{
			name:  "simple csv",
			input: "name,age\nAlice,30\nBob,25",
			want:  [][]string{{"name", "age"}, {"Alice", "30"}, {"Bob", "25"}},
		},
		{
			name:  "quoted fields",
			input: "\"name\",\"age\"\n\"Alice\",\"30\"\n",
			want:  [][]string{{"name", "age"}, {"Alice", "30"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  [][]string{},
		},
		{
			name:  "single field",
			input: "value",
			want:  [][]string{{"value"}},
		},
		{
			name:  "escaped quotes",
			input: `"field with ""quotes"" inside"`,
			want:  [][]string{{`field with "quotes" inside`}},
		},
		{
			name:  "empty fields",
			input: "a,,c\n,b,",
			want:  [][]string{{"a", "", "c"}, {"", "b", ""}},
		},
		{
			name:  "newlines in quoted fields",
			input: "\"field\nwith\nnewlines\",normal",
			want:  [][]string{{"field\nwith\nnewlines", "normal"}},
		},
		{
			name:    "unclosed quote",
			input:   `"unclosed`,
			wantErr: csv.ErrUnterminatedQuote,
		},
		{
			name:    "garbage after quote",
			input:   `"a"b`,
			wantErr: csv.ErrUnexpectedAfterQuote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := csv.Parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, node)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, nodeRecords(t, node))

			// the reader path agrees with the string path
			node, err = csv.ParseReader(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, nodeRecords(t, node))
		})
	}
}

func TestReadAll(t *testing.T) {
	records, err := csv.ReadAll(strings.NewReader("a,b\r\n\"c\"\"\",d\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c\"", "d"}}, records)

	records, err = csv.ReadAll(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	_, err = csv.ReadAll(strings.NewReader("ok\n\"broken"))
	var pe *csv.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple fields", "name,age", false},
		{"quoted fields", `"name","age"`, false},
		{"empty fields", "a,,c", false},
		{"escaped quotes", `"field with ""quotes"""`, false},
		{"newlines in quoted fields", "\"field\nwith\nnewlines\"", false},
		{"bare quote in unquoted field", `ab"c`, false},
		{"space after closing quote", `"a" ,b`, false},
		{"unterminated quote", `"abc`, true},
		{"character after closing quote", `"a"x,c`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := csv.Validate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, csv.ErrMalformedInput)
			} else {
				assert.NoError(t, err)
			}

			err = csv.ValidateReader(strings.NewReader(tt.input))
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "CSV", csv.Format())
}
