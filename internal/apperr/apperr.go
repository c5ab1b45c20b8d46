// Package apperr defines the typed errors services return and the HTTP status
// each one maps to.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes into the broad failure classes surfaced to clients.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuth           Kind = "auth"
	KindUnauthorized   Kind = "unauthorized"
	KindNotFound       Kind = "not_found"
	KindProvider       Kind = "provider"
	KindPartialFailure Kind = "partial_failure"
)

// Code identifies the concrete failure of an operation.
type Code string

const (
	CodeValidation      Code = "VALIDATION_ERROR"
	CodeAuth            Code = "AUTH_ERROR"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeTokenMissing    Code = "TOKEN_MISSING"
	CodeProfileInsert   Code = "PROFILE_INSERT_ERROR"
	CodeResetDispatch   Code = "RESET_DISPATCH_ERROR"
	CodeUpdate          Code = "UPDATE_ERROR"
	CodeProfileDelete   Code = "PROFILE_DELETE_ERROR"
	CodeIdentityDelete  Code = "IDENTITY_DELETE_ERROR"
	CodeQuery           Code = "QUERY_ERROR"
	CodeDelete          Code = "DELETE_ERROR"
	CodeNoFile          Code = "NO_FILE"
	CodeRelay           Code = "RELAY_ERROR"
	CodeInternal        Code = "INTERNAL_ERROR"
	CodePayloadTooLarge Code = "PAYLOAD_TOO_LARGE"
)

// Error is the application error carried from services to the HTTP boundary.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Status  int
	// Details is an optional payload echoed to the client next to the message.
	Details any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func newError(kind Kind, code Code, status int, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Status: status, Message: message, Err: err}
}

// Validation reports missing or malformed input.
func Validation(message string) *Error {
	return newError(KindValidation, CodeValidation, http.StatusBadRequest, message, nil)
}

// Auth reports credentials rejected by the identity provider.
func Auth(message string, err error) *Error {
	return newError(KindAuth, CodeAuth, http.StatusBadRequest, message, err)
}

// Unauthorized reports an absent or invalid bearer token.
func Unauthorized(message string, err error) *Error {
	return newError(KindUnauthorized, CodeUnauthorized, http.StatusUnauthorized, message, err)
}

// NotFound reports that the requested record does not exist.
func NotFound(message string) *Error {
	return newError(KindNotFound, CodeNotFound, http.StatusNotFound, message, nil)
}

// TokenMissing reports a successful authentication that issued no access token.
func TokenMissing() *Error {
	return newError(KindProvider, CodeTokenMissing, http.StatusInternalServerError, "access token was not issued", nil)
}

// ProfileInsert reports that the profile row could not be written after the identity was created.
func ProfileInsert(message string, err error) *Error {
	return newError(KindPartialFailure, CodeProfileInsert, http.StatusInternalServerError, message, err)
}

// ResetDispatch reports that the password reset email could not be dispatched.
func ResetDispatch(message string, err error) *Error {
	return newError(KindProvider, CodeResetDispatch, http.StatusInternalServerError, message, err)
}

// Update reports a failed profile update.
func Update(message string, err error) *Error {
	return newError(KindProvider, CodeUpdate, http.StatusBadRequest, message, err)
}

// ProfileDelete reports that the first step of a user deletion failed.
func ProfileDelete(message string, err error) *Error {
	return newError(KindProvider, CodeProfileDelete, http.StatusBadRequest, message, err)
}

// IdentityDelete reports that the identity could not be removed after its profile row was deleted.
func IdentityDelete(message string, err error) *Error {
	return newError(KindPartialFailure, CodeIdentityDelete, http.StatusInternalServerError, message, err)
}

// Query reports a failed read against the provider.
func Query(message string, err error) *Error {
	return newError(KindProvider, CodeQuery, http.StatusInternalServerError, message, err)
}

// Delete reports a failed delete against the provider.
func Delete(message string, err error) *Error {
	return newError(KindProvider, CodeDelete, http.StatusInternalServerError, message, err)
}

// NoFile reports an upload request without file content.
func NoFile() *Error {
	return newError(KindValidation, CodeNoFile, http.StatusBadRequest, "no file uploaded", nil)
}

// PayloadTooLarge reports an upload above the configured size limit.
func PayloadTooLarge(limit int64) *Error {
	return newError(KindValidation, CodePayloadTooLarge, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", limit), nil)
}

// Relay reports that the image host rejected or failed an upload.
func Relay(details any, err error) *Error {
	e := newError(KindProvider, CodeRelay, http.StatusInternalServerError, "image upload failed", err)
	e.Details = details
	return e
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return newError(KindProvider, CodeInternal, http.StatusInternalServerError, "internal error", err)
}
