package game

import (
	"context"
	"strings"
)

// Move is a player decision for one hand
type Move int

const (
	Stay Move = iota
	Hit
	Split
)

// Key is the short answer a player types or sends for the move
func (m Move) Key() string {
	switch m {
	case Stay:
		return "s"
	case Hit:
		return "h"
	case Split:
		return "p"
	default:
		return ""
	}
}

func (m Move) String() string {
	switch m {
	case Stay:
		return "stay"
	case Hit:
		return "hit"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// ParseMove maps a key (or the move's name) to a Move
func ParseMove(key string) (Move, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, m := range []Move{Stay, Hit, Split} {
		if key == m.Key() || key == m.String() {
			return m, true
		}
	}
	return 0, false
}

// MoveOption is one legal move offered to a decision source
type MoveOption struct {
	Move        Move   `json:"-"`
	Key         string `json:"key"`
	Description string `json:"description"`
}

func optionFor(m Move) MoveOption {
	return MoveOption{Move: m, Key: m.Key(), Description: m.String()}
}

// DecisionRequest is everything a decision source is shown for one hand
type DecisionRequest struct {
	Position    int          `json:"position"`
	Owner       string       `json:"owner"`
	HandIndex   int          `json:"handIndex"`
	Cards       []Card       `json:"cards"`
	Value       int          `json:"value"`
	DealerCards []Card       `json:"dealerCards"`
	Options     []MoveOption `json:"options"`
}

// Allows reports whether m is one of the legal options
func (r DecisionRequest) Allows(m Move) bool {
	for _, o := range r.Options {
		if o.Move == m {
			return true
		}
	}
	return false
}

// Decider is any source of move decisions: a person at a terminal, a remote
// seat or a script. Returning a move outside the request's options is
// allowed; the player asks again.
type Decider interface {
	Decide(ctx context.Context, req DecisionRequest) (Move, error)
}

type DeciderFunc func(ctx context.Context, req DecisionRequest) (Move, error)

func (f DeciderFunc) Decide(ctx context.Context, req DecisionRequest) (Move, error) {
	return f(ctx, req)
}

// ContinuePrompter answers whether another round should be played
type ContinuePrompter interface {
	ContinueSession(ctx context.Context) (bool, error)
}

type ContinueFunc func(ctx context.Context) (bool, error)

func (f ContinueFunc) ContinueSession(ctx context.Context) (bool, error) {
	return f(ctx)
}
