// Package csv provides streaming CSV scanning and AST generation.
//
// Records are read one at a time by a character-level state machine with a
// single character of lookahead:
//
//   - Fields are separated by commas
//   - Records end at LF, CR, CRLF or LFCR
//   - Fields may be quoted with double quotes
//   - Quoted fields may contain commas, line breaks, and escaped quotes ("")
//   - Spaces before a field and after a closing quote are skipped
//   - An empty line is a record with one empty field
//
// The delimiter and quote characters are fixed, and field values are never
// converted: every field is a string.
//
// # Thread Safety
//
// Package-level functions are safe for concurrent use; each call creates its
// own Scanner. A single Scanner must not be used from several goroutines.
//
// # Streaming
//
//	scanner := csv.NewScanner(file)
//	for {
//	    record, err := scanner.NextRecord()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // use record
//	}
//
// # AST
//
// Parse and ParseReader return Shape's unified AST:
//
//	node, err := csv.Parse("name,age\nAlice,30")
//	records := node.(*ast.ArrayDataNode).Elements()
package csv

import (
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Parse parses CSV format into an AST from a string.
//
// Returns an ast.ArrayDataNode representing the parsed CSV:
//   - *ast.ArrayDataNode for the file (array of records)
//   - Each record is an *ast.ArrayDataNode of fields, positioned at the record start
//   - Each field is an *ast.LiteralNode containing a string value
//
// Example:
//
//	node, err := csv.Parse("name,age\nAlice,30\nBob,25")
//	arrayNode := node.(*ast.ArrayDataNode)
//	records := arrayNode.Elements()
//	// records[0] is the header row
//	// records[1] is the first data row
func Parse(input string) (ast.SchemaNode, error) {
	return parse(NewScannerFromStream(tokenizer.NewStream(input)))
}

// ParseReader parses CSV format into an AST from an io.Reader.
//
// The input is scanned record by record, but the returned AST holds every
// record, so memory grows with the input. Use NewScanner to process records
// without retaining them.
//
// Example parsing from a file:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	node, err := csv.ParseReader(file)
func ParseReader(reader io.Reader) (ast.SchemaNode, error) {
	return parse(NewScanner(reader))
}

func parse(s *Scanner) (ast.SchemaNode, error) {
	records := make([]ast.SchemaNode, 0, 16)
	for {
		record, err := s.NextRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start := s.RecordStart()
		pos := ast.NewPosition(start.Offset, start.Line, start.Column)
		fields := make([]ast.SchemaNode, len(record))
		for i, f := range record {
			fields[i] = ast.NewLiteralNode(f, pos)
		}
		records = append(records, ast.NewArrayDataNode(fields, pos))
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// ReadAll reads every remaining record from reader.
// An empty input yields an empty, non-nil slice.
func ReadAll(reader io.Reader) ([][]string, error) {
	s := NewScanner(reader)
	records := make([][]string, 0, 16)
	for {
		record, err := s.NextRecord()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// Format returns the format identifier for this parser.
// Returns "CSV" to identify this as the CSV data format parser.
func Format() string {
	return "CSV"
}

// Validate checks if the input string is valid CSV.
//
// Returns nil if the input is valid CSV.
// Returns a *ParseError describing the first malformed record otherwise.
//
//	if err := csv.Validate(input); err != nil {
//	    fmt.Println("Invalid CSV:", err)
//	}
func Validate(input string) error {
	return validate(NewScannerFromString(input))
}

// ValidateReader checks if the input from an io.Reader is valid CSV.
// Records are scanned and discarded one at a time.
func ValidateReader(reader io.Reader) error {
	return validate(NewScanner(reader))
}

func validate(s *Scanner) error {
	for {
		_, err := s.NextRecord()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
