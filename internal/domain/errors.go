package domain

import "errors"

// Every kind is fatal to the current attempt only.
var (
	// ErrAddressUnavailable: landing page carried no parsable IPv4 marker
	ErrAddressUnavailable = errors.New("client address unavailable")
	// ErrTransport: network failure, timeout or unexpected HTTP status
	ErrTransport = errors.New("portal transport error")
	// ErrMalformedResponse: status body violates the envelope/JSON contract
	ErrMalformedResponse = errors.New("malformed status response")
	// ErrAuthenticationFailed: credentials submitted but still offline
	ErrAuthenticationFailed = errors.New("authentication failed")
)
