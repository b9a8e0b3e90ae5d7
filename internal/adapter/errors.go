package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("gateway rejected the request")
	ErrUnauthorized        = errors.New("gateway credentials rejected")
	ErrNotFound            = errors.New("gateway resource not found")
	ErrRateLimited         = errors.New("gateway rate limit exceeded")
	ErrGatewayUnavailable  = errors.New("gateway unavailable")
	ErrPaymentsDisabled    = errors.New("payment gateway is not configured")
	ErrMailerNotConfigured = errors.New("mailer is not configured")
)
