package app

import "errors"

var (
	// ErrClientNotFound is returned when a client ID does not resolve.
	ErrClientNotFound = errors.New("client not found")

	// ErrCommissionNotFound is returned when a commission is in neither bucket.
	ErrCommissionNotFound = errors.New("commission not found")

	// ErrInvalidTransition is returned for workflow moves the guards reject.
	ErrInvalidTransition = errors.New("invalid status transition")
)
