package game

type Outcome string

const (
	Win       Outcome = "win"
	Lose      Outcome = "lose"
	Push      Outcome = "push"
	Blackjack Outcome = "blackjack"
)

// Resolve compares a finished player hand with the dealer's hand. A player
// blackjack is always a win; every other hand is judged on value and bust.
func Resolve(player, dealer Standing) Outcome {
	switch {
	case player.Blackjack:
		return Blackjack
	case player.Bust:
		return Lose
	case dealer.Bust:
		return Win
	case player.Value > dealer.Value:
		return Win
	case player.Value == dealer.Value:
		return Push
	default:
		return Lose
	}
}

// HandResult is the resolution of one player hand in a round
type HandResult struct {
	Position  int      `json:"position"`
	Owner     string   `json:"owner"`
	HandIndex int      `json:"handIndex"`
	Cards     []Card   `json:"cards"`
	Standing  Standing `json:"standing"`
	Outcome   Outcome  `json:"outcome"`
}

// RoundResult summarizes a finished round
type RoundResult struct {
	Number      int          `json:"number"`
	DealerCards []Card       `json:"dealerCards"`
	Dealer      Standing     `json:"dealer"`
	Hands       []HandResult `json:"hands"`
}
