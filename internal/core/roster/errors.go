package roster

import "errors"

// Reason classifies why a whole import was refused.
type Reason int

const (
	// FileRejected covers a missing file, a disallowed extension or content
	// that could not be read as a spreadsheet.
	FileRejected Reason = iota + 1
	// SchemaRejected means a required column could not be resolved.
	SchemaRejected
)

func (r Reason) String() string {
	switch r {
	case FileRejected:
		return "file_rejected"
	case SchemaRejected:
		return "schema_rejected"
	default:
		return "unknown"
	}
}

// RejectError aborts an import before any row is written.
// Msg is safe to show to the user as-is.
type RejectError struct {
	Reason  Reason
	Missing []Field
	Msg     string
	Err     error
}

func (e *RejectError) Error() string {
	return e.Msg
}

func (e *RejectError) Unwrap() error {
	return e.Err
}

// NewFileRejected wraps a file intake failure with the message shown to the
// uploader.
func NewFileRejected(msg string, err error) *RejectError {
	return &RejectError{Reason: FileRejected, Msg: msg, Err: err}
}

// IsRejected reports whether err aborted an import for the given reason.
func IsRejected(err error, reason Reason) bool {
	var re *RejectError
	return errors.As(err, &re) && re.Reason == reason
}
