package content

import "errors"

var (
	ErrCooldownActive   = errors.New("content: cooldown active")
	ErrAlreadyInFlight  = errors.New("content: request already in flight")
	ErrNetworkFailure   = errors.New("content: network failure")
	ErrMalformedPayload = errors.New("content: malformed payload")
	ErrPending          = errors.New("content: call not settled")
)
