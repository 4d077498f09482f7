package csv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST produced by Parse or ParseReader back to CSV.
//
// Every record ends with LF. Fields are quoted only when scanning them back
// unquoted would change them: when they contain a comma, a quote or a line
// break, or when they start with a space. A record with no fields has no
// CSV form and is an error.
//
//	node, _ := csv.Parse("name, age\r\nAlice,30")
//	out, _ := csv.Render(node)
//	// out: "name,age\nAlice,30\n"
func Render(node ast.SchemaNode) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	var buf bytes.Buffer
	for n, elem := range file.Elements() {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("expected record to be *ast.ArrayDataNode, got %T", elem)
		}
		if len(recordNode.Elements()) == 0 {
			return nil, fmt.Errorf("record %d has no fields", n+1)
		}
		for i, fieldNode := range recordNode.Elements() {
			literal, ok := fieldNode.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("expected field to be *ast.LiteralNode, got %T", fieldNode)
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			writeField(&buf, fmt.Sprint(literal.Value()))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// FormatRecord encodes one record without a line terminator. A record with
// a single empty field encodes to the empty string, which scans back as a
// blank line. So does a record with no fields, which therefore scans back
// as one empty field.
func FormatRecord(record []string) string {
	var buf bytes.Buffer
	for i, field := range record {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeField(&buf, field)
	}
	return buf.String()
}

func writeField(buf *bytes.Buffer, value string) {
	if !strings.ContainsAny(value, ",\"\r\n") && !strings.HasPrefix(value, " ") {
		buf.WriteString(value)
		return
	}
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
	buf.WriteByte('"')
}
