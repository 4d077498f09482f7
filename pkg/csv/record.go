package csv

// Record represents a single row in a CSV file.
// It provides access to field values by index or by header name.
type Record struct {
	fields  []string
	headers []string // Reference to scanner headers for name-based access
}

// NewRecord wraps fields in a Record without headers.
func NewRecord(fields []string) Record {
	return Record{fields: fields}
}

// Get gets the field value at the specified index.
// Returns (value, false) if the index is out of bounds.
// Index is 0-based.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName gets the field value by header name.
// Returns (value, false) if the header name is not found or if no headers are set.
//
// Example:
//
//	scanner := csv.NewScanner(reader).SetHasHeaders(true)
//	for scanner.Scan() {
//	    name, ok := scanner.Record().GetByName("name")
//	}
func (r Record) GetByName(name string) (string, bool) {
	for i, header := range r.headers {
		if header == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Fields returns all field values in the record.
// This returns a copy of the fields slice.
func (r Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}
