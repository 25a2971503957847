package domain

import "errors"

// Failure taxonomy shared across the core and its adapters.
// Collaborator errors bubble unchanged; empty result sets are valid data,
// not errors.
var (
	// Caller bug: non-positive interval/radius, malformed coordinates.
	ErrInvalidParameter = errors.New("invalid parameter")

	// The route provider returned no usable route.
	ErrRouteNotFound = errors.New("route not found")

	// A provider call failed (network, timeout, quota). Not retried here.
	ErrUpstream = errors.New("upstream provider unavailable")
)
