package domain

import "errors"

// Source errors
var (
	// ErrBusUnavailable is returned when the session bus cannot be reached
	ErrBusUnavailable = errors.New("session bus unavailable")
	// ErrNoPlayer is returned when no player (or no allow-listed player) is running
	ErrNoPlayer = errors.New("no player found")
	// ErrPlayerRead covers disconnections and malformed replies while reading a player
	ErrPlayerRead = errors.New("player read failed")
)

// Presence errors
var (
	// ErrPeerUnavailable is returned when the presence peer cannot be reached
	ErrPeerUnavailable = errors.New("presence peer unavailable")
	// ErrNotConnected is returned when publishing without a live connection
	ErrNotConnected = errors.New("presence peer not connected")
	// ErrActivityRejected is returned when the peer refuses a payload on a healthy connection
	ErrActivityRejected = errors.New("activity rejected by peer")
)

// Artwork errors
var (
	// ErrLookupFailed covers network failures, bad status codes and unusable bodies
	ErrLookupFailed = errors.New("artwork lookup failed")
	// ErrNoAPIKey is returned when the lookup service has no credentials configured
	ErrNoAPIKey = errors.New("artwork lookup api key not configured")
	// ErrCacheUnavailable is returned when the cache cannot be read or written
	ErrCacheUnavailable = errors.New("artwork cache unavailable")
)
