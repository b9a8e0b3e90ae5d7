// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/nitesh01487/natours/internal/apperr"
)

// routeNotFound answers unknown routes with a JSON 404.
//
// It is registered both as the router's NotFound and MethodNotAllowed
// handler, so a known path requested with an unsupported method is
// indistinguishable from an unknown path.
func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, errRouteNotFound(r))
}

func errRouteNotFound(r *http.Request) error {
	return apperr.Operational(http.StatusNotFound, fmt.Sprintf("Can't find %s on this server!", r.URL.RequestURI()), nil)
}
