// Package roster implements bulk provisioning of students and faculty from
// an uploaded spreadsheet.
//
// # Architecture
//
// An import is a single linear pass through these phases:
//
//	ParsingFile -> ResolvingColumns -> ValidatingColumns -> ProcessingRows -> Committing -> Done
//
// Parsing belongs to the caller (see package spreadsheet); the Importer takes
// over with the header row and the data rows.
//
// # Column resolution
//
// Each import kind has a declarative Schema: logical fields in reporting
// order, each with an ordered list of accepted header spellings. Resolve
// matches headers exactly (case-sensitive) and the first variant present wins.
// If any field stays unresolved the whole import is rejected before a single
// row is read.
//
// # Rows
//
// Every row yields a RowResult: Inserted, Duplicate, MissingField,
// MalformedValue or PersistenceError. Failures never abort the batch. Row
// numbers in messages are the 0-based data index plus two, which is the line
// the row occupies in the spreadsheet.
//
// Student usernames are the roll number. Faculty usernames are the lowercased
// name with spaces replaced by dots, suffixed with the 0-based data index.
// That suffix repeats when the same file is imported twice, so a second
// import is rejected row by row as duplicates, while a reordered roster yields
// fresh usernames for the same people.
//
// # Transactions
//
// All inserts share one Batch which is committed once at the end. The Batch
// implementation is expected to isolate each insert so a failed insert does
// not poison the rows after it.
package roster
