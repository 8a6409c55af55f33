package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(0, "", nil)
	assert.Equal(t, 0, p.Position())
	assert.Len(t, p.Hands(), 1)
	assert.Equal(t, "Player 1", p.Label())
	assert.Equal(t, "alice", NewPlayer(3, "alice", nil).Label())
}

func TestPlayerResetHands(t *testing.T) {
	p := NewPlayer(0, "", nil)
	p.hands = append(p.hands, NewHand())
	assert.Len(t, p.Hands(), 2)

	p.ResetHands()
	assert.Len(t, p.Hands(), 1)
	assert.Equal(t, 0, p.Hands()[0].Len())
}

func TestPlayerSplit(t *testing.T) {
	p := NewPlayer(0, "", nil)
	h := p.Hands()[0]
	first, last := MustCard(Eight, Spades), MustCard(Eight, Hearts)
	h.Push(first)
	h.Push(last)

	newHand, err := p.Split(h)
	require.NoError(t, err)
	assert.Len(t, p.Hands(), 2)
	assert.Same(t, newHand, p.Hands()[1])
	assert.Equal(t, []Card{first}, h.Cards())
	assert.Equal(t, []Card{last}, newHand.Cards())
	assert.Equal(t, 8, h.Value())
}

func TestPlayerSplitNotAllowed(t *testing.T) {
	p := NewPlayer(0, "", nil)
	h := p.Hands()[0]
	h.Push(MustCard(Nine, Spades))
	h.Push(MustCard(Ten, Hearts))

	_, err := p.Split(h)
	assert.ErrorIs(t, err, ErrSplitNotAllowed)
	assert.Len(t, p.Hands(), 1)
	assert.Equal(t, 2, h.Len())
}

func TestPlayerSplitLimitedByMaxHands(t *testing.T) {
	p := NewPlayer(0, "", nil)
	for len(p.hands) < MaxHandsPerPlayer {
		p.hands = append(p.hands, NewHand())
	}
	h := p.Hands()[0]
	h.Push(MustCard(Ace, Spades))
	h.Push(MustCard(Ace, Hearts))

	assert.True(t, h.CanBeSplit())
	assert.False(t, p.CanSplit(h))
	_, err := p.Split(h)
	assert.ErrorIs(t, err, ErrSplitNotAllowed)
	assert.Len(t, p.Hands(), MaxHandsPerPlayer)
}

func TestPlayerDecideAsksAgainForIllegalMoves(t *testing.T) {
	answers := []Move{Split, Move(99), Hit}
	calls := 0
	p := NewPlayer(0, "", DeciderFunc(func(ctx context.Context, req DecisionRequest) (Move, error) {
		m := answers[calls]
		calls++
		return m, nil
	}))

	req := DecisionRequest{Options: []MoveOption{optionFor(Stay), optionFor(Hit)}}
	move, err := p.Decide(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, Hit, move)
	assert.Equal(t, 3, calls)
}

func TestPlayerDecideReturnsSourceErrors(t *testing.T) {
	boom := errors.New("input closed")
	p := NewPlayer(0, "", DeciderFunc(func(ctx context.Context, req DecisionRequest) (Move, error) {
		return 0, boom
	}))

	_, err := p.Decide(context.Background(), DecisionRequest{Options: []MoveOption{optionFor(Stay)}})
	assert.ErrorIs(t, err, boom)
}

func TestPlayerDecideStopsOnCancelledContext(t *testing.T) {
	p := NewPlayer(0, "", DeciderFunc(func(ctx context.Context, req DecisionRequest) (Move, error) {
		return Split, nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Decide(ctx, DecisionRequest{Options: []MoveOption{optionFor(Stay)}})
	assert.ErrorIs(t, err, context.Canceled)
}
