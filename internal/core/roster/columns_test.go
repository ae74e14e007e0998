package roster

import (
	"reflect"
	"testing"
)

// ============================================================================
// Resolve Tests
// ============================================================================

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		headers     []string
		wantColumns ColumnMap
		wantMissing []Field
	}{
		{
			name:    "canonical student headers",
			kind:    KindStudent,
			headers: []string{"Name", "RollNo", "Email Id", "Section", "Dept", "Password"},
			wantColumns: ColumnMap{
				FieldName: "Name", FieldRollNo: "RollNo", FieldEmail: "Email Id",
				FieldSection: "Section", FieldDepartment: "Dept", FieldPassword: "Password",
			},
		},
		{
			name:    "alternate student spellings",
			kind:    KindStudent,
			headers: []string{"Student Name", "Roll Number", "Email", "Section", "Dept", "Password"},
			wantColumns: ColumnMap{
				FieldName: "Student Name", FieldRollNo: "Roll Number", FieldEmail: "Email",
				FieldSection: "Section", FieldDepartment: "Dept", FieldPassword: "Password",
			},
		},
		{
			name:    "first variant in priority order wins",
			kind:    KindFaculty,
			headers: []string{"faculty_name", "name", "Name", "email", "Email", "dept", "Department", "password"},
			wantColumns: ColumnMap{
				FieldName: "Name", FieldEmail: "Email", FieldDepartment: "Department", FieldPassword: "password",
			},
		},
		{
			name:    "matching is case-sensitive",
			kind:    KindFaculty,
			headers: []string{"NAME", "EMAIL", "Dept", "Password"},
			wantColumns: ColumnMap{
				FieldDepartment: "Dept", FieldPassword: "Password",
			},
			wantMissing: []Field{FieldName, FieldEmail},
		},
		{
			name:    "no whitespace tolerance in headers",
			kind:    KindFaculty,
			headers: []string{"Name ", "Email", "Dept", "Password"},
			wantColumns: ColumnMap{
				FieldEmail: "Email", FieldDepartment: "Dept", FieldPassword: "Password",
			},
			wantMissing: []Field{FieldName},
		},
		{
			name:    "ID accepted as roll number",
			kind:    KindStudent,
			headers: []string{"name", "ID", "email", "section", "department", "password"},
			wantColumns: ColumnMap{
				FieldName: "name", FieldRollNo: "ID", FieldEmail: "email",
				FieldSection: "section", FieldDepartment: "department", FieldPassword: "password",
			},
		},
		{
			name:        "missing fields listed in schema order",
			kind:        KindStudent,
			headers:     []string{"Password", "Name", "Email"},
			wantColumns: ColumnMap{FieldName: "Name", FieldEmail: "Email", FieldPassword: "Password"},
			wantMissing: []Field{FieldRollNo, FieldSection, FieldDepartment},
		},
		{
			name:        "empty header row",
			kind:        KindFaculty,
			headers:     nil,
			wantColumns: ColumnMap{},
			wantMissing: []Field{FieldName, FieldEmail, FieldDepartment, FieldPassword},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.headers, SchemaFor(tt.kind))
			if !reflect.DeepEqual(got.Columns, tt.wantColumns) {
				t.Errorf("Columns = %v, want %v", got.Columns, tt.wantColumns)
			}
			if !reflect.DeepEqual(got.Missing, tt.wantMissing) {
				t.Errorf("Missing = %v, want %v", got.Missing, tt.wantMissing)
			}
		})
	}
}

func TestResolve_RepeatedHeaderUsesFirstPosition(t *testing.T) {
	res := Resolve([]string{"Name", "Email", "Name"}, SchemaFor(KindFaculty))
	if got := res.Index["Name"]; got != 0 {
		t.Errorf("Index[Name] = %d, want 0", got)
	}
}

func TestResolution_Err(t *testing.T) {
	res := Resolve([]string{"Name", "Email", "Password"}, SchemaFor(KindStudent))
	err := res.Err()
	if err == nil {
		t.Fatal("Err() = nil, want error")
	}
	want := "Missing required columns: rollno, section, department"
	if err.Error() != want {
		t.Errorf("Err() = %q, want %q", err.Error(), want)
	}
	if !IsRejected(err, SchemaRejected) {
		t.Errorf("IsRejected(err, SchemaRejected) = false, want true")
	}

	complete := Resolve(SchemaFor(KindStudent).Headers(), SchemaFor(KindStudent))
	if err := complete.Err(); err != nil {
		t.Errorf("Err() on complete headers = %v, want nil", err)
	}
}

func TestSchemaHeaders(t *testing.T) {
	got := SchemaFor(KindFaculty).Headers()
	want := []string{"Name", "Email Id", "Dept", "Password"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "students", want: KindStudent},
		{in: "Student", want: KindStudent},
		{in: "faculty", want: KindFaculty},
		{in: "staff", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
