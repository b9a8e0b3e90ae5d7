package http

import "net/http"

// withBodyLimit caps request bodies at the configured size. Reads past the
// limit fail with [http.MaxBytesError], which writeError answers with 413.
func (h *Handler) withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.server.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.server.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}
