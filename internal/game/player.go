package game

import (
	"context"
	"fmt"
)

// Player is a seat at the table. It owns one hand per round, more after
// splitting, and asks its Decider what to do with each of them.
type Player struct {
	position int
	name     string
	hands    []*Hand
	decider  Decider
}

// NewPlayer creates a player at the given position. An empty name is
// displayed as "Player N".
func NewPlayer(position int, name string, decider Decider) *Player {
	return &Player{
		position: position,
		name:     name,
		hands:    []*Hand{NewHand()},
		decider:  decider,
	}
}

func (p *Player) Position() int {
	return p.position
}

// Label is how the player is shown to people
func (p *Player) Label() string {
	if p.name != "" {
		return p.name
	}
	return fmt.Sprintf("Player %d", p.position+1)
}

func (p *Player) Hands() []*Hand {
	return p.hands
}

// ResetHands replaces all hands with a single empty one
func (p *Player) ResetHands() {
	p.hands = []*Hand{NewHand()}
}

func (p *Player) CanSplit(h *Hand) bool {
	return len(p.hands) < MaxHandsPerPlayer && h.CanBeSplit()
}

// Split moves the last card of h into a new hand and returns that hand
func (p *Player) Split(h *Hand) (*Hand, error) {
	if !p.CanSplit(h) {
		return nil, ErrSplitNotAllowed
	}
	card, err := h.Pop()
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	newHand := NewHand()
	newHand.Push(card)
	p.hands = append(p.hands, newHand)
	return newHand, nil
}

// Decide asks the decider until it answers with one of the offered moves
func (p *Player) Decide(ctx context.Context, req DecisionRequest) (Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		move, err := p.decider.Decide(ctx, req)
		if err != nil {
			return 0, fmt.Errorf("%s decision: %w", p.Label(), err)
		}
		if req.Allows(move) {
			return move, nil
		}
	}
}
