package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		player Standing
		dealer Standing
		want   Outcome
	}{
		{"player bust loses even if dealer busts", Standing{Value: 24, Bust: true}, Standing{Value: 22, Bust: true}, Lose},
		{"player blackjack wins against dealer blackjack", Standing{Value: 21, Blackjack: true}, Standing{Value: 21, Blackjack: true}, Blackjack},
		{"player blackjack", Standing{Value: 21, Blackjack: true}, Standing{Value: 21}, Blackjack},
		{"drawn 21 pushes against dealer blackjack", Standing{Value: 21}, Standing{Value: 21, Blackjack: true}, Push},
		{"dealer blackjack beats 20", Standing{Value: 20}, Standing{Value: 21, Blackjack: true}, Lose},
		{"dealer bust", Standing{Value: 12}, Standing{Value: 23, Bust: true}, Win},
		{"higher wins", Standing{Value: 19}, Standing{Value: 18}, Win},
		{"equal push", Standing{Value: 18}, Standing{Value: 18}, Push},
		{"lower loses", Standing{Value: 17}, Standing{Value: 20}, Lose},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.player, tt.dealer))
		})
	}
}

func TestParseMove(t *testing.T) {
	m, ok := ParseMove(" H ")
	assert.True(t, ok)
	assert.Equal(t, Hit, m)

	m, ok = ParseMove("split")
	assert.True(t, ok)
	assert.Equal(t, Split, m)

	_, ok = ParseMove("double")
	assert.False(t, ok)
}
