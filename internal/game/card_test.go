package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardValue(t *testing.T) {
	numeric := map[Rank]int{Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8, Nine: 9, Ten: 10}
	for rank, want := range numeric {
		c := MustCard(rank, Spades)
		assert.Equal(t, want, c.Value(), "rank %s", rank)
		assert.False(t, c.IsAce())
	}

	for _, rank := range []Rank{Jack, Queen, King} {
		assert.Equal(t, 10, MustCard(rank, Hearts).Value(), "rank %s", rank)
	}

	ace := MustCard(Ace, Clubs)
	assert.Equal(t, 1, ace.Value())
	assert.True(t, ace.IsAce())
}

func TestNewCardRejectsUnknownValues(t *testing.T) {
	_, err := NewCard("11", Spades)
	assert.ErrorIs(t, err, ErrInvalidRank)

	_, err = NewCard(Ace, "Star")
	assert.ErrorIs(t, err, ErrInvalidSuit)

	c, err := NewCard(Queen, Diamonds)
	require.NoError(t, err)
	assert.Equal(t, "Q♦", c.String())
}

func TestCardJSONDecodingValidates(t *testing.T) {
	var c Card
	require.NoError(t, json.Unmarshal([]byte(`{"rank":"Q","suit":"Diamond"}`), &c))
	assert.Equal(t, MustCard(Queen, Diamonds), c)
	assert.Equal(t, 10, c.Value())

	err := json.Unmarshal([]byte(`{"rank":"X","suit":"Spade"}`), &c)
	assert.ErrorIs(t, err, ErrInvalidRank)

	var hand []Card
	err = json.Unmarshal([]byte(`[{"rank":"A","suit":"Spade"},{"rank":"K","suit":"Star"}]`), &hand)
	assert.ErrorIs(t, err, ErrInvalidSuit)
}
