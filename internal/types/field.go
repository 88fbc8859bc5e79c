package types

// Sentinel stands in for a field that was absent at the source.
const Sentinel = "N/A"

// Field is the result of extracting a single value from a book card.
// Absence is an expected outcome, not an error, so callers branch on
// Missing instead of comparing against a magic string.
type Field struct {
	Value   string
	Missing bool
}

// Found wraps a successfully extracted value.
func Found(value string) Field {
	return Field{Value: value}
}

// Absent marks a field the selector did not resolve.
func Absent() Field {
	return Field{Missing: true}
}

// Or returns the value, or fallback when the field is missing.
func (f Field) Or(fallback string) string {
	if f.Missing {
		return fallback
	}
	return f.Value
}

// String returns the value with the standard sentinel substituted for
// missing fields, matching what gets persisted.
func (f Field) String() string {
	return f.Or(Sentinel)
}
