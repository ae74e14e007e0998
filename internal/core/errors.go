package core

import "errors"

// Sentinel errors returned by Service. error_messages.go maps each of them to
// the message shown to users.
var (
	ErrUnauthenticated    = errors.New("unauthorized: no session")
	ErrForbidden          = errors.New("unauthorized: role not permitted")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameTaken    = errors.New("username already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordMismatch = errors.New("new passwords do not match")

	ErrNoFaculty          = errors.New("no faculty found")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrNoClasses          = errors.New("no classes assigned to faculty")
	ErrClubEventNotFound  = errors.New("club or event not found")
)

// PublicError carries a message that is already fit to show to users.
// Err keeps the underlying cause for logs.
type PublicError struct {
	Msg  string
	Code string
	Err  error
}

func (e *PublicError) Error() string {
	return e.Msg
}

func (e *PublicError) Unwrap() error {
	return e.Err
}
