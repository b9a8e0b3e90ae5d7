// Package http implements the REST transport of natours.
//
// It wires the /api/v1 routes and the page data routes onto a chi router,
// decodes requests, and renders every answer as a JSON envelope. Request
// tracing, access logging, compression, body limits, authentication and
// role checks run as middleware before a request reaches the service layer.
// Errors are mapped to HTTP status codes in one place, see [Handler.writeError].
package http
