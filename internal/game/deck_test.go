package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck()
	assert.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		assert.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeckDraw(t *testing.T) {
	d := NewDeck()
	d.Draw()
	assert.Equal(t, 51, d.Remaining())
}

func TestDeckReplenishesWhenEmpty(t *testing.T) {
	d := NewDeck()
	for i := 0; i < 52; i++ {
		d.Draw()
	}
	assert.True(t, d.IsEmpty())

	d.Draw()
	assert.Equal(t, 51, d.Remaining())
}

func TestDeckShuffleIsSeeded(t *testing.T) {
	a := NewDeckWithSource(rand.NewSource(42))
	b := NewDeckWithSource(rand.NewSource(42))
	assert.Equal(t, a.Cards(), b.Cards())
}

func TestStackedDeckDrawsInOrder(t *testing.T) {
	d := NewStackedDeck(MustCard(Ace, Spades), MustCard(King, Hearts))
	assert.Equal(t, MustCard(Ace, Spades), d.Draw())
	assert.Equal(t, MustCard(King, Hearts), d.Draw())
	assert.True(t, d.IsEmpty())

	d.Draw()
	assert.Equal(t, 51, d.Remaining())
}
