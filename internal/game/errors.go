package game

import "errors"

var (
	ErrInvalidRank     = errors.New("invalid card rank")
	ErrInvalidSuit     = errors.New("invalid card suit")
	ErrEmptyHand       = errors.New("hand has no cards")
	ErrSplitNotAllowed = errors.New("hand cannot be split")
	ErrNoPlayers       = errors.New("game should have at least one player")
	ErrTooManyPlayers  = errors.New("too many players")
)
