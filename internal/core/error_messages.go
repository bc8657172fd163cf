package core

// error_messages.go turns technical errors into messages users can act on.
//
// Codes are grouped by category so support staff can find the cause quickly:
//
//	FILE001-FILE099  file problems (size, encoding, CSV grammar, missing data)
//	IMP001-IMP099    import run problems (concurrent import, batch failure)
//	DB001-DB099      storage constraint and connectivity errors
//	REQ001-REQ099    request cancellation and timeouts
//	ERR000           fallback; check the logs for the original error
//
// Sentinel errors from this package are matched first with errors.Is and
// errors.As. Anything else, typically driver errors, is matched by a
// case-insensitive substring table where the first match wins.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Split the file into smaller files and import them one at a time",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Check for unbalanced quotes and save the file as comma-separated values",
		Code:    "FILE002",
	}
	msgEncoding = UserMessage{
		Message: "File contains invalid characters",
		Action:  "Save the file with UTF-8 encoding",
		Code:    "FILE003",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV file to import",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The file has no contacts to import",
		Action:  "Add a header row and at least one contact row, or start from the template",
		Code:    "FILE005",
	}
	msgImportBusy = UserMessage{
		Message: "Another import is already running",
		Action:  "Wait for it to finish and try again",
		Code:    "IMP001",
	}
	msgBatchFailed = UserMessage{
		Message: "Some contacts could not be saved",
		Action:  "Contacts saved before the failure were kept. Re-import only the rows that were not submitted",
		Code:    "IMP002",
	}
	msgCanceled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "REQ001",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try importing a smaller file or try again later",
		Code:    "REQ002",
	}
)

// sentinelMessages maps package errors to messages. Order matters:
// ErrEncoding wraps ErrParse and must be checked before it.
var sentinelMessages = []struct {
	target error
	msg    UserMessage
}{
	{ErrFileTooLarge, msgFileTooLarge},
	{ErrEncoding, msgEncoding},
	{ErrParse, msgInvalidCSV},
	{ErrNoFile, msgNoFile},
	{ErrEmptyFile, msgEmptyFile},
	{ErrNoDataRows, msgEmptyFile},
	{ErrImportInProgress, msgImportBusy},
	{context.Canceled, msgCanceled},
	{context.DeadlineExceeded, msgTimeout},
}

// ErrNoFile is returned when a request carries no upload.
var ErrNoFile = errors.New("no file provided")

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps driver error text (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A contact with this value already exists",
			Action:  "Remove duplicate contacts from your CSV",
			Code:    "DB001",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Check for duplicate entries in your CSV",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates check constraint",
		msg: UserMessage{
			Message: "A value was rejected by the database",
			Action:  "Check interest levels and statuses against the template",
			Code:    "DB003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try importing a smaller file or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. A nil
// error maps to the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	// A batch failure is reported as such whatever the driver said.
	var be *BatchError
	if errors.As(err, &be) {
		return msgBatchFailed
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message. Error returns the
// user message; Unwrap returns the technical error for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err into a UserError. It returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}
