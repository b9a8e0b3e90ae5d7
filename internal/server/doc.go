// Package server runs the natours HTTP server together with the background
// workers.
//
// It owns the server lifecycle: startup, signal handling and a graceful
// shutdown bounded by the configured timeout.
package server
