package domain

import "errors"

// Validation errors
var (
	ErrBlankLeague     = errors.New("league name cannot be blank")
	ErrNoFeedTypes     = errors.New("feed category list cannot be empty")
	ErrNoActiveLeague  = errors.New("no active league set")
	ErrInvalidClass    = errors.New("invalid item class")
	ErrInvalidSlot     = errors.New("invalid slot")
	ErrInvalidOrdering = errors.New("invalid ordering field")
)

// Not-found errors
var (
	ErrLeagueNotFound  = errors.New("league not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrItemNotInLeague = errors.New("item not present in this league")
)
