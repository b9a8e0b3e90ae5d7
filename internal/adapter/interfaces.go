// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the clients of the external systems the natours
// service talks to.
//
// [PaymentGateway] opens hosted checkout sessions at a Stripe-compatible
// payment provider over HTTP. [Mailer] hands transactional emails to the
// delivery pipeline by publishing them on a RabbitMQ queue.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of the
// provider's body format.
package adapter

import (
	"context"

	"github.com/nitesh01487/natours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// PaymentGateway opens hosted checkout sessions.
type PaymentGateway interface {
	// CreateCheckoutSession asks the gateway for a session selling
	// req.LineItem and returns its id and redirect url.
	CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (models.CheckoutSession, error)
}

// Mailer delivers transactional emails.
type Mailer interface {
	// Send enqueues email for delivery. A nil error means the message was
	// accepted by the pipeline, not that it reached the inbox.
	Send(ctx context.Context, email models.Email) error

	// Close releases the underlying connection.
	Close() error
}
