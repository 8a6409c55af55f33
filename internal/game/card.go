package game

import (
	"encoding/json"
	"fmt"
)

type Suit string
type Rank string

const (
	Spades   Suit = "Spade"
	Hearts   Suit = "Heart"
	Diamonds Suit = "Diamond"
	Clubs    Suit = "Club"
)

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

var (
	Suits = []Suit{Spades, Hearts, Diamonds, Clubs}
	Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
)

// Card is a playing card. It is a plain value; copies never share state.
// Literals must use a rank from Ranks and a suit from Suits; anything else
// should go through NewCard. Decoding JSON validates the same way.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rank Rank `json:"rank"`
		Suit Suit `json:"suit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	card, err := NewCard(raw.Rank, raw.Suit)
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// NewCard validates rank and suit and returns the card
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidRank, rank)
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidSuit, suit)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustCard is NewCard for literals known to be valid
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

func (r Rank) Valid() bool {
	for _, known := range Ranks {
		if r == known {
			return true
		}
	}
	return false
}

func (s Suit) Valid() bool {
	for _, known := range Suits {
		if s == known {
			return true
		}
	}
	return false
}

// Value returns the blackjack value of the card. Aces count 1 here; the
// hand decides when one of them is worth 11.
func (c Card) Value() int {
	switch c.Rank {
	case Ace:
		return 1
	case Ten, Jack, Queen, King:
		return 10
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	default:
		return 0
	}
}

func (c Card) IsAce() bool {
	return c.Rank == Ace
}

func (c Card) String() string {
	return string(c.Rank) + c.Suit.Symbol()
}

// Symbol returns the unicode pip for the suit
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}
