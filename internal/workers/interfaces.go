// Package workers runs the background jobs of the natours service.
// It defines the Worker interface and a Workers aggregate that starts and
// stops every configured job together with the server.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block: implementations spawn their own goroutine which
// exits when ctx is cancelled or Stop is called. Stop blocks until that
// goroutine has returned and is safe to call on a worker that never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// RatingsRecomputer recomputes the aggregated ratings of every tour.
type RatingsRecomputer interface {
	RecomputeAll(ctx context.Context) error
}
