package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/candidates/internal/sheet"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "missing name",
			err:         &RequestError{Field: "name", Message: "is required"},
			wantCode:    "REQ001",
			wantMessage: "Name and surname are required",
		},
		{
			name:        "no file",
			err:         ErrNoFile,
			wantCode:    "FILE004",
			wantMessage: "File is required",
		},
		{
			name:        "wrapped file too large",
			err:         fmt.Errorf("%w: 20MB", ErrFileTooLarge),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the maximum size limit",
		},
		{
			name:        "media type",
			err:         fmt.Errorf("%w: %q", sheet.ErrUnsupportedMediaType, "application/pdf"),
			wantCode:    "FILE006",
			wantMessage: "Invalid file type. Only Excel (.xlsx, .xls) and CSV files are allowed",
		},
		{
			name:     "legacy xls",
			err:      sheet.ErrLegacySpreadsheet,
			wantCode: "FILE007",
		},
		{
			name:     "unreadable",
			err:      fmt.Errorf("%w: open workbook: zip: not a valid zip file", sheet.ErrUnreadable),
			wantCode: "FILE002",
		},
		{
			name:        "empty input",
			err:         ErrEmptyInput,
			wantCode:    "FILE005",
			wantMessage: "File must contain at least one row with data",
		},
		{
			name:        "insufficient columns",
			err:         &InsufficientColumnsError{Columns: 2},
			wantCode:    "SEL001",
			wantMessage: "File must contain a row with at least 3 columns: seniority, yearsOfExperience, availability",
		},
		{
			name:     "no plausible row",
			err:      ErrNoPlausibleRow,
			wantCode: "SEL002",
		},
		{
			name:        "seniority not found",
			err:         &FieldNotFoundError{Field: FieldSeniority},
			wantCode:    "EXT001",
			wantMessage: `Seniority must be "junior" or "senior"`,
		},
		{
			name:        "years not found",
			err:         &FieldNotFoundError{Field: FieldYearsOfExperience},
			wantCode:    "EXT002",
			wantMessage: "Years of experience must be a valid number",
		},
		{
			name:        "availability not found",
			err:         &FieldNotFoundError{Field: FieldAvailability},
			wantCode:    "EXT003",
			wantMessage: "Availability must be a boolean value (true/false)",
		},
		{
			name:     "seniority invalid",
			err:      &ValidationError{Field: FieldSeniority, Message: MsgInvalidSeniority},
			wantCode: "VAL001",
		},
		{
			name:        "years invalid",
			err:         &ValidationError{Field: FieldYearsOfExperience, Message: MsgInvalidYears},
			wantCode:    "VAL002",
			wantMessage: "Years of experience must be a non-negative integer",
		},
		{
			name:        "years beyond storage limit",
			err:         fmt.Errorf("store: %w", &StorageLimitError{Field: FieldYearsOfExperience, Value: 1 << 40, Limit: MaxStoredYears}),
			wantCode:    "VAL004",
			wantMessage: "Years of experience is too large to store",
		},
		{
			name:     "too many uploads",
			err:      ErrTooManyUploads,
			wantCode: "UPL002",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantCode:    "DB004",
			wantMessage: "Unable to connect to database",
		},
		{
			name:     "sqlite busy",
			err:      errors.New("database is locked (5) (SQLITE_BUSY)"),
			wantCode: "DB006",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("Connection Reset by peer"),
			wantCode:    "DB005",
			wantMessage: "Database connection was interrupted",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrEmptyInput)

	expected := "File must contain at least one row with data (Code: FILE005). Add a row with seniority, years of experience and availability"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"typed error is user facing", &FieldNotFoundError{Field: FieldSeniority}, true},
		{"pattern error is user facing", errors.New("connection refused"), true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"request", &RequestError{Field: "surname"}, true},
		{"empty", ErrEmptyInput, true},
		{"validation", &ValidationError{Field: FieldYearsOfExperience}, true},
		{"media type", sheet.ErrUnsupportedMediaType, true},
		{"busy", ErrTooManyUploads, false},
		{"database", errors.New("connection refused"), false},
		{"unknown", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInputError(tt.err); got != tt.want {
				t.Errorf("IsInputError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := &FieldNotFoundError{Field: FieldAvailability}
		userErr := NewUserError(techErr)

		if userErr.Error() != "Availability must be a boolean value (true/false)" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, techErr) {
			t.Error("Unwrap() should return original error")
		}
		if got := MapError(userErr).Code; got != "EXT003" {
			t.Errorf("MapError(userErr).Code = %q, want EXT003", got)
		}
	})
}
