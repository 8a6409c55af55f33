package game

// Table rules for a single-deck game.
const (
	MaxHandsPerPlayer = 4
	MaxPlayers        = 7
	DealerStayValue   = 17
	BlackjackValue    = 21

	// softAceBonus is added once when an ace can count as 11 without busting
	softAceBonus = 10
)
