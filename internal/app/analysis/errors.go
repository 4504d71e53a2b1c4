package analysis

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrPlayerNotFound = errors.New("player_not_found")
	ErrNoHands        = errors.New("no_hands")
)
