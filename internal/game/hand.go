package game

import (
	"fmt"
	"strings"
)

// Hand is the running set of cards for one player hand or the dealer.
// rawValue counts every ace as 1.
type Hand struct {
	cards    []Card
	rawValue int
	aces     int
}

// Standing is the final state of a hand as used for resolution
type Standing struct {
	Value     int  `json:"value"`
	Bust      bool `json:"bust"`
	Blackjack bool `json:"blackjack"`
}

func NewHand() *Hand {
	return &Hand{}
}

// Reset clears the hand for a new round
func (h *Hand) Reset() {
	h.cards = nil
	h.rawValue = 0
	h.aces = 0
}

func (h *Hand) Push(c Card) {
	if c.IsAce() {
		h.aces++
	}
	h.cards = append(h.cards, c)
	h.rawValue += c.Value()
}

// Pop removes and returns the last card pushed
func (h *Hand) Pop() (Card, error) {
	if len(h.cards) == 0 {
		return Card{}, ErrEmptyHand
	}
	c := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	h.rawValue -= c.Value()
	if c.IsAce() {
		h.aces--
	}
	return c, nil
}

// Value returns the hand total, counting one ace as 11 when that does not bust
func (h *Hand) Value() int {
	if h.HasAce() && h.rawValue+softAceBonus <= BlackjackValue {
		return h.rawValue + softAceBonus
	}
	return h.rawValue
}

func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in the order they were received
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// IsJustReceived reports whether the hand holds exactly the two dealt cards
func (h *Hand) IsJustReceived() bool {
	return len(h.cards) == 2
}

// CanBeSplit allows any pair of equal point value, so K/Q splits too
func (h *Hand) CanBeSplit() bool {
	return h.IsJustReceived() && h.cards[0].Value() == h.cards[1].Value()
}

func (h *Hand) IsBust() bool {
	return h.Value() > BlackjackValue
}

func (h *Hand) HasAce() bool {
	return h.aces > 0
}

func (h *Hand) IsBlackjack() bool {
	return h.IsJustReceived() && h.aces == 1 && h.Value() == BlackjackValue
}

func (h *Hand) Standing() Standing {
	return Standing{
		Value:     h.Value(),
		Bust:      h.IsBust(),
		Blackjack: h.IsBlackjack(),
	}
}

func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s (%d)", strings.Join(parts, ", "), h.Value())
}
