package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// checkInput validates a request struct and reports the first failing field
// as a *PublicError.
func checkInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return &PublicError{Msg: fmt.Sprintf("Missing required field: %s", fe.Field()), Code: "VAL002", Err: err}
	case "email":
		return &PublicError{Msg: fmt.Sprintf("Invalid email: %v", fe.Value()), Code: "VAL003", Err: err}
	case "datetime":
		return &PublicError{Msg: fmt.Sprintf("Invalid date: %v", fe.Value()), Code: "VAL004", Err: err}
	case "oneof":
		return &PublicError{Msg: fmt.Sprintf("Invalid %s: %v", fe.Field(), fe.Value()), Code: "VAL006", Err: err}
	default:
		return &PublicError{Msg: fmt.Sprintf("Invalid %s", fe.Field()), Code: "VAL006", Err: err}
	}
}
