package game

import (
	"math/rand"
	"time"
)

// Deck is a single 52-card deck. Drawing from an empty deck rebuilds and
// reshuffles it first, so a table never runs out of cards.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full, shuffled 52-card deck
func NewDeck() *Deck {
	return NewDeckWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewDeckWithSource creates a full deck shuffled from the given source
func NewDeckWithSource(src rand.Source) *Deck {
	d := &Deck{rng: rand.New(src)}
	d.Reset()
	return d
}

// NewStackedDeck creates a deck whose first draws return cards in the given
// order. Once they are used up the deck behaves like NewDeck.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	d.cards = make([]Card, len(cards))
	// top of the deck is the end of the slice
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Reset rebuilds the deck to 52 cards and shuffles it
func (d *Deck) Reset() {
	d.cards = make([]Card, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
	d.Shuffle()
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	// Fisher-Yates shuffle algorithm
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card, resetting the deck when empty
func (d *Deck) Draw() Card {
	if d.IsEmpty() {
		d.Reset()
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, top card last
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
