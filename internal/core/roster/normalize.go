package roster

// normalize.go turns one spreadsheet row into a user record.
//
// Cells are trimmed; an empty required cell is a MissingField failure and a
// syntactically invalid email is a MalformedValue failure. Nothing here
// touches the store.

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/portal/internal/models"
)

var validate = validator.New()

// FacultyUsername derives the login of a faculty member from the name and the
// 0-based data row index.
func FacultyUsername(name string, index int) string {
	// Casers keep state, so each call gets its own.
	lower := cases.Lower(language.Und)
	return strings.ReplaceAll(lower.String(name), " ", ".") + strconv.Itoa(index)
}

// Normalize validates a data row and builds the user it describes.
// On failure the returned RowResult explains why; the user is then zero.
func Normalize(schema Schema, res Resolution, index int, row []string) (models.User, *RowResult) {
	values := make(map[Field]string, len(schema.Columns))
	for _, col := range schema.Columns {
		raw, _ := res.cell(row, col.Field)
		v := strings.TrimSpace(raw)
		if v == "" {
			return models.User{}, &RowResult{
				Index:   index,
				Outcome: MissingField,
				Field:   col.Field,
			}
		}
		values[col.Field] = v
	}

	if err := validate.Var(values[FieldEmail], "email"); err != nil {
		return models.User{}, &RowResult{
			Index:   index,
			Outcome: MalformedValue,
			Field:   FieldEmail,
			Value:   values[FieldEmail],
			Err:     err,
		}
	}

	u := models.User{
		Role:       schema.Kind.Role(),
		Name:       values[FieldName],
		Email:      values[FieldEmail],
		Department: values[FieldDepartment],
		Password:   values[FieldPassword],
	}

	switch schema.Kind {
	case KindFaculty:
		u.Username = FacultyUsername(u.Name, index)
	default:
		u.Username = values[FieldRollNo]
		u.RollNo = values[FieldRollNo]
		u.Section = values[FieldSection]
	}
	return u, nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
