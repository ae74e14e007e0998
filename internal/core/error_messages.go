package core

// error_messages.go maps technical errors to user-facing messages with a
// support code.
//
// Codes are grouped by category:
//
//	AUTH  sessions and role checks
//	USR   user administration and passwords
//	PRM   permission requests
//	ATT   attendance
//	IMP   roster import lifecycle
//	FILE  uploaded file intake
//	VAL   request and spreadsheet validation
//	DB    database constraints and connectivity
//	RATE  request throttling
//	ERR   request lifecycle and the ERR000 fallback
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones. When a user
// reports ERR000, check the logs for the original error.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Sessions (AUTH)
	// =========================================================================
	{"unauthorized", UserMessage{"Unauthorized", "Sign in with an account that has access", "AUTH001"}},
	{"invalid credentials", UserMessage{"Invalid credentials. Please try again.", "Check the username, password and role", "AUTH002"}},
	{"token is expired", UserMessage{"Your session has expired", "Sign in again", "AUTH003"}},

	// =========================================================================
	// Users (USR)
	// =========================================================================
	{"username already exists", UserMessage{"Username already exists", "Choose a different username", "USR001"}},
	{"user not found", UserMessage{"User not found", "Refresh the list and try again", "USR002"}},
	{"current password is incorrect", UserMessage{"Current password is incorrect", "Re-enter your current password", "USR003"}},
	{"new passwords do not match", UserMessage{"New passwords do not match", "Type the same new password twice", "USR004"}},

	// =========================================================================
	// Permissions and attendance (PRM, ATT)
	// =========================================================================
	{"no faculty found", UserMessage{"No faculty found", "Ask an administrator to add a faculty member", "PRM001"}},
	{"permission not found", UserMessage{"Permission request not found", "Refresh the dashboard and try again", "PRM002"}},
	{"no classes assigned to faculty", UserMessage{"No classes assigned to faculty", "Ask an administrator to assign a class", "ATT001"}},
	{"club or event not found", UserMessage{"Club or event not found", "Refresh the list and try again", "VAL008"}},

	// =========================================================================
	// Roster import (IMP)
	// =========================================================================
	{"too many concurrent imports", UserMessage{"System is busy processing other imports", "Please wait a moment and try again", "IMP001"}},
	{"import interrupted", UserMessage{"Import was interrupted before it finished", "Nothing was saved. Upload the file again", "IMP002"}},
	{"commit import", UserMessage{"Import could not be saved", "Nothing was saved. Upload the file again", "IMP003"}},
	{"begin import", UserMessage{"Import could not be started", "Please try again in a few moments", "IMP004"}},

	// =========================================================================
	// File intake (FILE)
	// =========================================================================
	{"no file uploaded", UserMessage{"No file uploaded", "Attach a spreadsheet in the file field", "FILE001"}},
	{"no file selected", UserMessage{"No file selected", "Choose a spreadsheet to upload", "FILE002"}},
	{"invalid file type", UserMessage{"Invalid file type", "Upload an .xlsx or .xls spreadsheet", "FILE003"}},
	{"request body too large", UserMessage{"File exceeds maximum size limit", "Split the roster into smaller files", "FILE004"}},
	{"empty file", UserMessage{"The uploaded file is empty", "Upload a spreadsheet with a header row", "FILE005"}},

	// =========================================================================
	// Validation (VAL)
	// =========================================================================
	{"missing required columns", UserMessage{"Required column is missing from the spreadsheet", "Download the template and compare the headers", "VAL001"}},
	{"missing required field", UserMessage{"Required field is empty", "Fill in every required field", "VAL002"}},
	{"invalid email", UserMessage{"Invalid email address", "Use an address like name@example.com", "VAL003"}},
	{"invalid date", UserMessage{"Invalid date format", "Use YYYY-MM-DD", "VAL004"}},
	{"invalid type", UserMessage{"Type must be club or event", "Pick club or event", "VAL005"}},
	{"invalid status", UserMessage{"Status is not allowed", "Use pending, approved or rejected", "VAL006"}},
	{"invalid request body", UserMessage{"Request body is not valid JSON", "Send a JSON object", "VAL007"}},

	// =========================================================================
	// Database (DB)
	// =========================================================================
	{"duplicate key", UserMessage{"A record with this value already exists", "Check for duplicate entries", "DB001"}},
	{"record not found", UserMessage{"Record not found", "Refresh and try again", "DB002"}},
	{"connection refused", UserMessage{"Unable to connect to database", "Please try again in a few moments", "DB003"}},
	{"connection reset", UserMessage{"Database connection was interrupted", "Please try again", "DB004"}},
	{"deadlock", UserMessage{"Database was busy with conflicting operations", "Please try again", "DB005"}},

	// =========================================================================
	// Rate limiting and request lifecycle (RATE, ERR)
	// =========================================================================
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "ERR001"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Try a smaller file or try again later", "ERR002"}},
	{"timeout", UserMessage{"Operation timed out", "Please try again later", "ERR002"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. A
// *PublicError keeps its own message and code.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var pe *PublicError
	if errors.As(err, &pe) && pe.Code != "" {
		msg := lookup(pe.Code)
		msg.Message = pe.Msg
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

func lookup(code string) UserMessage {
	for _, ep := range errorPatterns {
		if ep.msg.Code == code {
			return ep.msg
		}
	}
	return UserMessage{Code: code}
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matched a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
