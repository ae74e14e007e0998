package roster

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/portal/internal/models"
)

// Kind selects which roster is being imported.
type Kind string

const (
	KindStudent Kind = "student"
	KindFaculty Kind = "faculty"
)

// ParseKind accepts the singular or plural form used in URLs.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student", "students":
		return KindStudent, nil
	case "faculty", "faculties":
		return KindFaculty, nil
	default:
		return "", fmt.Errorf("unknown roster kind %q", s)
	}
}

// Role is the role assigned to every user created by an import of this kind.
func (k Kind) Role() models.Role {
	if k == KindFaculty {
		return models.RoleFaculty
	}
	return models.RoleStudent
}

// Label is the plural noun used in the import report.
func (k Kind) Label() string {
	if k == KindFaculty {
		return "faculty members"
	}
	return "students"
}

// Field is a logical spreadsheet column, independent of header spelling.
type Field string

const (
	FieldName       Field = "name"
	FieldRollNo     Field = "rollno"
	FieldEmail      Field = "email"
	FieldSection    Field = "section"
	FieldDepartment Field = "department"
	FieldPassword   Field = "password"
)

// Column lists the accepted header spellings of a field in priority order.
type Column struct {
	Field    Field
	Variants []string
}

// Schema is the declarative column table for one import kind.
// Columns are in the order missing fields are reported.
type Schema struct {
	Kind    Kind
	Columns []Column
}

var (
	emailVariants      = []string{"Email Id", "Email", "email", "Email ID"}
	departmentVariants = []string{"Dept", "Department", "department", "dept"}
	passwordVariants   = []string{"Password", "password"}
)

var studentSchema = Schema{
	Kind: KindStudent,
	Columns: []Column{
		{Field: FieldName, Variants: []string{"Name", "name", "Student Name", "student_name"}},
		{Field: FieldRollNo, Variants: []string{"RollNo", "rollno", "Roll Number", "roll_number", "ID", "Id"}},
		{Field: FieldEmail, Variants: emailVariants},
		{Field: FieldSection, Variants: []string{"Section", "section"}},
		{Field: FieldDepartment, Variants: departmentVariants},
		{Field: FieldPassword, Variants: passwordVariants},
	},
}

var facultySchema = Schema{
	Kind: KindFaculty,
	Columns: []Column{
		{Field: FieldName, Variants: []string{"Name", "name", "Faculty Name", "faculty_name"}},
		{Field: FieldEmail, Variants: emailVariants},
		{Field: FieldDepartment, Variants: departmentVariants},
		{Field: FieldPassword, Variants: passwordVariants},
	},
}

// SchemaFor returns the column table for k.
func SchemaFor(k Kind) Schema {
	if k == KindFaculty {
		return facultySchema
	}
	return studentSchema
}

// Headers returns the preferred header spelling of every field, used to
// generate blank upload templates.
func (s Schema) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Variants[0]
	}
	return out
}

// ColumnMap maps a logical field to the header text found in the file.
type ColumnMap map[Field]string

// HeaderIndex maps header text to its column position. The first occurrence
// of a repeated header wins.
type HeaderIndex map[string]int

// Resolution is the outcome of matching a header row against a Schema.
type Resolution struct {
	Columns ColumnMap
	Index   HeaderIndex
	Missing []Field
}

// Resolve matches headers against the schema. Matching is exact and
// case-sensitive. It never fails; unresolved fields are listed in Missing in
// schema order.
func Resolve(headers []string, schema Schema) Resolution {
	idx := make(HeaderIndex, len(headers))
	for i, h := range headers {
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}

	res := Resolution{
		Columns: make(ColumnMap, len(schema.Columns)),
		Index:   idx,
	}
	for _, col := range schema.Columns {
		found := false
		for _, v := range col.Variants {
			if _, ok := idx[v]; ok {
				res.Columns[col.Field] = v
				found = true
				break
			}
		}
		if !found {
			res.Missing = append(res.Missing, col.Field)
		}
	}
	return res
}

// Err returns a SchemaRejected error naming the missing fields, or nil.
func (r Resolution) Err() error {
	if len(r.Missing) == 0 {
		return nil
	}
	names := make([]string, len(r.Missing))
	for i, f := range r.Missing {
		names[i] = string(f)
	}
	return &RejectError{
		Reason:  SchemaRejected,
		Missing: r.Missing,
		Msg:     "Missing required columns: " + strings.Join(names, ", "),
	}
}

// cell returns the raw value of field in row, and false when the column is
// beyond the end of a short row.
func (r Resolution) cell(row []string, field Field) (string, bool) {
	header, ok := r.Columns[field]
	if !ok {
		return "", false
	}
	pos := r.Index[header]
	if pos >= len(row) {
		return "", false
	}
	return row[pos], true
}
