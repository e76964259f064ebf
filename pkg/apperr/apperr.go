// Package apperr defines the error taxonomy shared across the billing system.
//
// All public operations return errors of type *Error carrying a
// machine-readable Code and a human-readable message. Errors from
// dependencies (HTTP transport, SQLite, Chrome) are wrapped at the boundary
// and never cross it raw.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies a failure.
type Code string

const (
	// CodeNotFound means a referenced record, group, invoice or quote is absent.
	CodeNotFound Code = "not_found"

	// CodeInvalidInput means the caller supplied unusable input.
	CodeInvalidInput Code = "invalid_input"

	// CodeUnauthorized means a credential or permission check failed.
	CodeUnauthorized Code = "unauthorized"

	// CodeRequestFailed means the remote API could not be reached.
	CodeRequestFailed Code = "request_failed"

	// CodeRemoteAPIError means the remote API answered with a non-success status.
	CodeRemoteAPIError Code = "remote_api_error"

	// CodeExportFailed means CSV export failed before anything was written.
	CodeExportFailed Code = "export_failed"

	// CodePDFGenerationFailed means headless-Chrome rendering failed.
	CodePDFGenerationFailed Code = "pdf_generation_failed"

	// CodeFileWriteFailed means a local file could not be written.
	CodeFileWriteFailed Code = "file_write_failed"
)

// Error is the result-with-error value returned across package boundaries.
type Error struct {
	// Code is the machine-readable failure class.
	Code Code

	// Op is the operation that failed (e.g. "tablestore.ListRecords").
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without an underlying cause.
func New(code Code, op, message string) *Error {
	return &Error{Code: code, Op: op, Message: message}
}

// Wrap creates an Error wrapping an underlying cause. Returns nil when err
// is nil so call sites can wrap unconditionally.
func Wrap(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err // already classified
	}
	return &Error{Code: code, Op: op, Err: err}
}

// Wrapf is Wrap with an additional message.
func Wrapf(code Code, op string, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Op: op, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the Code from an error, or "" if the error is not an *Error.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsNotFound reports whether err is classified CodeNotFound.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
