// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apperr defines the error taxonomy shared by every layer of the
// application. Stores and services return these types (usually wrapped with
// fmt.Errorf and %w); the HTTP layer maps them to status codes through
// [Status] without knowing where they came from.
//
// Anything that is not one of the types below is an unknown error and is
// rendered as 500 with its message suppressed in production.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports bad input shape or a violated constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validation returns a *ValidationError for field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AuthReason tells why authentication or authorization failed.
type AuthReason int

const (
	NotLoggedIn AuthReason = iota + 1
	Forbidden
	InvalidOrExpiredToken
	PasswordChanged
	UserDeleted
	InvalidCredentials
)

var authMessages = map[AuthReason]string{
	NotLoggedIn:           "You are not logged in! Please log in to get access.",
	Forbidden:             "You do not have permission to perform this action",
	InvalidOrExpiredToken: "Token is invalid or has expired",
	PasswordChanged:       "User recently changed password! Please log in again.",
	UserDeleted:           "The user belonging to this token does no longer exist.",
	InvalidCredentials:    "Incorrect email or password",
}

// AuthError reports a failed authentication or authorization step.
type AuthError struct {
	Reason  AuthReason
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return authMessages[e.Reason]
}

// Is matches any *AuthError with the same reason, so sentinels such as
// [ErrForbidden] can be used with errors.Is.
func (e *AuthError) Is(target error) bool {
	var t *AuthError
	if !errors.As(target, &t) {
		return false
	}
	return t.Reason == e.Reason
}

// Auth returns an *AuthError with the default message of reason.
func Auth(reason AuthReason) error {
	return &AuthError{Reason: reason}
}

// Sentinels for errors.Is checks.
var (
	ErrNotLoggedIn           = Auth(NotLoggedIn)
	ErrForbidden             = Auth(Forbidden)
	ErrInvalidOrExpiredToken = Auth(InvalidOrExpiredToken)
	ErrPasswordChanged       = Auth(PasswordChanged)
	ErrUserDeleted           = Auth(UserDeleted)
	ErrInvalidCredentials    = Auth(InvalidCredentials)
)

// NotFoundError reports that an entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No %s found with that ID", e.Entity)
}

// Is matches any *NotFoundError regardless of entity.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// NotFound returns a *NotFoundError for entity.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = &NotFoundError{}

// OperationalError is an expected failure with an explicit status code and a
// message that is safe to show to the client.
type OperationalError struct {
	Status  int
	Message string
	Err     error
}

func (e *OperationalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *OperationalError) Unwrap() error {
	return e.Err
}

// Operational returns an *OperationalError wrapping err.
func Operational(status int, message string, err error) error {
	return &OperationalError{Status: status, Message: message, Err: err}
}

// Status maps err to an HTTP status code and reports whether the error is
// part of the taxonomy. Unknown errors yield 500 and false.
func Status(err error) (int, bool) {
	var (
		validationErr  *ValidationError
		authErr        *AuthError
		notFoundErr    *NotFoundError
		operationalErr *OperationalError
	)

	switch {
	case err == nil:
		return http.StatusOK, true
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, true
	case errors.As(err, &authErr):
		if authErr.Reason == Forbidden {
			return http.StatusForbidden, true
		}
		return http.StatusUnauthorized, true
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, true
	case errors.As(err, &operationalErr):
		return operationalErr.Status, true
	default:
		return http.StatusInternalServerError, false
	}
}

// Message returns the client-facing message of a taxonomy error. For unknown
// errors it returns an empty string.
func Message(err error) string {
	var (
		validationErr  *ValidationError
		authErr        *AuthError
		notFoundErr    *NotFoundError
		operationalErr *OperationalError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &authErr):
		return authErr.Error()
	case errors.As(err, &notFoundErr):
		return notFoundErr.Error()
	case errors.As(err, &operationalErr):
		return operationalErr.Message
	default:
		return ""
	}
}
