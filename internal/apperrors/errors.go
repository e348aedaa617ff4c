// Package apperrors defines the request-level error kinds of the directory
// service and their mapping to HTTP statuses. All of these are validation or
// authorization failures: none are retried and none are fatal to the process.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an application error kind
type Code string

const (
	CodeMissingTenant Code = "MISSING_TENANT"
	CodeMissingRole   Code = "MISSING_ROLE"
	CodeInvalidRole   Code = "INVALID_ROLE"
	CodeForbidden     Code = "FORBIDDEN"
	CodeEmptyName     Code = "EMPTY_NAME"
	CodeUserNotFound  Code = "USER_NOT_FOUND"
	CodeInvalidBody   Code = "INVALID_BODY"
	CodeInternal      Code = "INTERNAL_ERROR"
)

// Error is a structured application error with a stable code
type Error struct {
	Code    Code
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Is matches errors by code so callers can use errors.Is against the
// convenience constructors below
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New creates an Error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Convenience constructors for the fixed error kinds

func MissingTenant() *Error {
	return New(CodeMissingTenant, "tenant ID required in X-Tenant-ID header")
}

func MissingRole() *Error {
	return New(CodeMissingRole, "user role required in X-User-Role header")
}

func InvalidRole(token string) *Error {
	return New(CodeInvalidRole, fmt.Sprintf("invalid role: %s", token))
}

func Forbidden() *Error {
	return New(CodeForbidden, "forbidden")
}

func EmptyName() *Error {
	return New(CodeEmptyName, "name cannot be empty")
}

func UserNotFound() *Error {
	return New(CodeUserNotFound, "user not found")
}

func InvalidBody(cause error) *Error {
	return New(CodeInvalidBody, fmt.Sprintf("invalid request body: %v", cause))
}

// CodeOf extracts the application code from an error chain
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error to its client-visible status code.
// Cross-tenant lookups surface the same NotFound as nonexistent ids, so
// the mapping never leaks tenant existence.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch CodeOf(err) {
	case CodeMissingRole:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUserNotFound:
		return http.StatusNotFound
	case CodeMissingTenant, CodeInvalidRole, CodeEmptyName, CodeInvalidBody:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
