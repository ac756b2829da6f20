package core

// validation.go covers both ends of an upload: the request that carries the
// file, and the record recovered from it.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a coerced field that violates its domain rule.
type ValidationError struct {
	Field   string // Field name
	Value   string // The rejected value
	Message string // Human-readable reason
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// UploadRequest is a file upload with the uploader-supplied names.
type UploadRequest struct {
	Name        string `validate:"required,max=255"`
	Surname     string `validate:"required,max=255"`
	FileName    string `validate:"max=1024"`
	ContentType string
	Data        []byte
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize returns a copy with surrounding whitespace removed from the names.
func (r UploadRequest) Normalize() UploadRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.FileName = strings.TrimSpace(r.FileName)
	return r
}

// validateRequest checks names, file presence and size. When requireNames is
// false (previews), only the file is checked.
func validateRequest(r UploadRequest, requireNames bool, maxSize int64) error {
	if requireNames {
		if err := validate.Struct(r); err != nil {
			return requestErrorFrom(err)
		}
	}
	if len(r.Data) == 0 && r.FileName == "" {
		return ErrNoFile
	}
	if maxSize > 0 && int64(len(r.Data)) > maxSize {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(r.Data), maxSize)
	}
	return nil
}

// requestErrorFrom turns the first validator failure into a RequestError.
func requestErrorFrom(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &RequestError{Field: field, Message: "is required"}
	case "max":
		return &RequestError{Field: field, Message: "is too long (max " + fe.Param() + " characters)"}
	default:
		return &RequestError{Field: field, Message: "is invalid"}
	}
}
