package core

// # Error Codes Reference
//
// User-facing messages carry a code so a user can quote it to support.
//
// # Request Errors (REQ001)
//
//	REQ001 - Name and surname are required
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File exceeds the maximum size limit
//	FILE002 - File could not be read as a spreadsheet or CSV
//	FILE004 - No file was provided
//	FILE005 - File contains no rows with data
//	FILE006 - Media type is not on the allow-list
//	FILE007 - Legacy .xls (BIFF) workbook
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Selected row has fewer than three columns
//	SEL002 - No row looks like candidate data (strict selection only)
//
// # Extraction Errors (EXT001-EXT003)
//
//	EXT001 - No seniority cell
//	EXT002 - No years of experience cell
//	EXT003 - No availability cell
//
// # Validation Errors (VAL001-VAL003)
//
//	VAL001 - Seniority is not junior or senior
//	VAL002 - Years of experience is not a non-negative integer
//	VAL003 - Availability is not a boolean
//	VAL004 - Years of experience is too large to store
//
// # Upload and Database Errors
//
//	UPL002 - Too many uploads in progress
//	DB004  - Connection refused
//	DB005  - Connection reset
//	DB006  - Timeout
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Support staff should check the application
// logs for the original technical error.
//
// # Matching
//
// Typed errors are matched first with errors.Is and errors.As, so wrapping
// keeps the code stable. Untyped errors fall through to a case-insensitive
// substring table where the first matching pattern wins.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/candidates/internal/sheet"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgNamesRequired = UserMessage{
		Message: "Name and surname are required",
		Action:  "Fill in both the name and surname fields",
		Code:    "REQ001",
	}
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum size limit",
		Action:  "Upload a smaller file",
		Code:    "FILE001",
	}
	msgUnreadable = UserMessage{
		Message: "Error reading file. Please ensure it is a valid Excel or CSV file.",
		Action:  "Re-save the file as .xlsx or .csv and try again",
		Code:    "FILE002",
	}
	msgNoFile = UserMessage{
		Message: "File is required",
		Action:  "Select an .xlsx or .csv file to upload",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "File must contain at least one row with data",
		Action:  "Add a row with seniority, years of experience and availability",
		Code:    "FILE005",
	}
	msgMediaType = UserMessage{
		Message: "Invalid file type. Only Excel (.xlsx, .xls) and CSV files are allowed",
		Action:  "Upload an .xlsx or .csv file",
		Code:    "FILE006",
	}
	msgLegacyXLS = UserMessage{
		Message: "Legacy Excel 97-2003 (.xls) workbooks are not supported",
		Action:  "Open the file in Excel and save it as .xlsx or .csv",
		Code:    "FILE007",
	}
	msgInsufficientColumns = UserMessage{
		Message: "File must contain a row with at least 3 columns: seniority, yearsOfExperience, availability",
		Action:  "Make sure the data row has a seniority, a number of years and true/false",
		Code:    "SEL001",
	}
	msgNoPlausibleRow = UserMessage{
		Message: "No row contains seniority, years of experience and availability",
		Action:  "Add a row such as: junior, 2, true",
		Code:    "SEL002",
	}
	msgTooManyUploads = UserMessage{
		Message: "System is busy processing other uploads",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}
)

var fieldNotFoundMessages = map[string]UserMessage{
	FieldSeniority: {
		Message: `Seniority must be "junior" or "senior"`,
		Action:  "Add a cell containing junior or senior",
		Code:    "EXT001",
	},
	FieldYearsOfExperience: {
		Message: "Years of experience must be a valid number",
		Action:  "Add a cell with the number of years, e.g. 2",
		Code:    "EXT002",
	},
	FieldAvailability: {
		Message: "Availability must be a boolean value (true/false)",
		Action:  "Add a cell containing true or false",
		Code:    "EXT003",
	},
}

var validationMessages = map[string]UserMessage{
	FieldSeniority: {
		Message: `Seniority must be "junior" or "senior"`,
		Action:  "Use junior or senior",
		Code:    "VAL001",
	},
	FieldYearsOfExperience: {
		Message: "Years of experience must be a non-negative integer",
		Action:  "Use a whole number such as 0, 2 or 8",
		Code:    "VAL002",
	},
	FieldAvailability: {
		Message: "Availability must be a boolean value",
		Action:  "Use true or false",
		Code:    "VAL003",
	},
}

var msgYearsTooLarge = UserMessage{
	Message: "Years of experience is too large to store",
	Action:  "Check the years of experience cell",
	Code:    "VAL004",
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages
// for errors that arrive untyped, mostly from the database drivers.
var errorPatterns = []errorPattern{
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
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	err := &FieldNotFoundError{Field: FieldAvailability}
//	msg := MapError(err)
//	// msg.Code == "EXT003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	if msg, ok := mapTyped(err); ok {
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

func mapTyped(err error) (UserMessage, bool) {
	var (
		reqErr   *RequestError
		colErr   *InsufficientColumnsError
		fieldErr *FieldNotFoundError
		valErr   *ValidationError
		limitErr *StorageLimitError
		userErr  *UserError
	)

	switch {
	case errors.As(err, &userErr):
		return userErr.User, true
	case errors.As(err, &reqErr):
		return msgNamesRequired, true
	case errors.Is(err, ErrNoFile):
		return msgNoFile, true
	case errors.Is(err, ErrFileTooLarge):
		return msgFileTooLarge, true
	case errors.Is(err, sheet.ErrUnsupportedMediaType):
		return msgMediaType, true
	case errors.Is(err, sheet.ErrLegacySpreadsheet):
		return msgLegacyXLS, true
	case errors.Is(err, sheet.ErrUnreadable):
		return msgUnreadable, true
	case errors.Is(err, ErrEmptyInput):
		return msgEmptyFile, true
	case errors.Is(err, ErrNoPlausibleRow):
		return msgNoPlausibleRow, true
	case errors.As(err, &colErr):
		return msgInsufficientColumns, true
	case errors.As(err, &fieldErr):
		msg, ok := fieldNotFoundMessages[fieldErr.Field]
		return msg, ok
	case errors.As(err, &valErr):
		msg, ok := validationMessages[valErr.Field]
		return msg, ok
	case errors.As(err, &limitErr):
		return msgYearsTooLarge, true
	case errors.Is(err, ErrTooManyUploads):
		return msgTooManyUploads, true
	}
	return UserMessage{}, false
}

// IsInputError reports whether err was caused by the uploaded request or file
// rather than by the system. Callers use it to pick a client error status.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	msg, ok := mapTyped(err)
	if !ok {
		return false
	}
	switch msg.Code {
	case msgTooManyUploads.Code, defaultMessage.Code:
		return false
	}
	return true
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with the message shown to users.
// The original error is preserved for logging.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
