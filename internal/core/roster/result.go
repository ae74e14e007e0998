package roster

import "fmt"

// Outcome is what happened to a single data row.
type Outcome int

const (
	Inserted Outcome = iota
	Duplicate
	MissingField
	MalformedValue
	PersistenceError
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Duplicate:
		return "duplicate"
	case MissingField:
		return "missing_field"
	case MalformedValue:
		return "malformed_value"
	case PersistenceError:
		return "persistence_error"
	default:
		return "unknown"
	}
}

// RowResult records the outcome of one data row.
type RowResult struct {
	Index    int // 0-based position among data rows
	Outcome  Outcome
	Username string
	Field    Field
	Value    string
	UserID   int64
	Err      error
}

// Line is the spreadsheet line of the row, counting the header as line 1.
func (r RowResult) Line() int {
	return r.Index + 2
}

// Failed reports whether the row was rejected.
func (r RowResult) Failed() bool {
	return r.Outcome != Inserted
}

// Message renders the row failure for the import report.
// Inserted rows have no message.
func (r RowResult) Message() string {
	switch r.Outcome {
	case Duplicate:
		return fmt.Sprintf("Row %d: Username %s already exists", r.Line(), r.Username)
	case MissingField:
		return fmt.Sprintf("Row %d: Missing value for %s", r.Line(), r.Field)
	case MalformedValue:
		return fmt.Sprintf("Row %d: Invalid %s %q", r.Line(), r.Field, r.Value)
	case PersistenceError:
		return fmt.Sprintf("Row %d: %v", r.Line(), r.Err)
	default:
		return ""
	}
}
