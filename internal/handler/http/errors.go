// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/nitesh01487/natours/internal/apperr"
)

// Errors raised by the transport layer itself, before a service is called.
var (
	// ErrInvalidJSON is returned when the body is not a JSON document of the
	// expected shape.
	ErrInvalidJSON = apperr.Validation("", "Invalid JSON was passed")

	// ErrBodyTooLarge is returned when the body exceeds SERVER_MAX_BODY_BYTES.
	ErrBodyTooLarge = apperr.Operational(http.StatusRequestEntityTooLarge, "Request body is too large", nil)

	// ErrRouteNotDefined answers POST /users, which is replaced by signup.
	ErrRouteNotDefined = apperr.Operational(http.StatusInternalServerError, "This route is not defined! Please use /signup instead", nil)
)

func errInvalidParam(name string) error {
	return apperr.Validation(name, "must be a number")
}
