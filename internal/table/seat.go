package table

import (
	"context"
	"sync"

	"github.com/calvinwijaya/blackjack-table/internal/game"
)

type question int

const (
	noQuestion question = iota
	askMove
	askContinue
)

// Tally counts hand outcomes for a seat across the session
type Tally struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Pushes     int `json:"pushes"`
	Blackjacks int `json:"blackjacks"`
}

func (t *Tally) add(o game.Outcome) {
	switch o {
	case game.Win:
		t.Wins++
	case game.Blackjack:
		t.Wins++
		t.Blackjacks++
	case game.Push:
		t.Pushes++
	case game.Lose:
		t.Losses++
	}
}

// Seat is a remote player. It implements game.Decider by sending the
// question to the client and waiting for the answer to come back through
// the table.
type Seat struct {
	ID   string
	Name string

	table   *Table
	answers chan string

	mu      sync.Mutex
	pending question
	tally   Tally
}

func newSeat(t *Table, id, name string) *Seat {
	return &Seat{
		ID:      id,
		Name:    name,
		table:   t,
		answers: make(chan string, 1),
	}
}

// Decide implements game.Decider
func (s *Seat) Decide(ctx context.Context, req game.DecisionRequest) (game.Move, error) {
	s.ask(askMove)
	defer s.ask(noQuestion)

	s.table.sendTo(s.ID, MsgDecisionRequired, req)
	for {
		answer, err := s.wait(ctx)
		if err != nil {
			return 0, err
		}
		if move, ok := game.ParseMove(answer); ok && req.Allows(move) {
			return move, nil
		}
		s.table.sendTo(s.ID, MsgInvalidAnswer, req.Options)
	}
}

func (s *Seat) continueSession(ctx context.Context) (bool, error) {
	s.ask(askContinue)
	defer s.ask(noQuestion)

	s.table.sendTo(s.ID, MsgContinueRequired, nil)
	for {
		answer, err := s.wait(ctx)
		if err != nil {
			return false, err
		}
		switch answer {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		s.table.sendTo(s.ID, MsgInvalidAnswer, []string{"y", "n"})
	}
}

func (s *Seat) wait(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-s.answers:
		return a, nil
	}
}

// ask switches the pending question and drops any stale answer
func (s *Seat) ask(q question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = q
	select {
	case <-s.answers:
	default:
	}
}

// submit hands an answer to a waiting Decide or continueSession call
func (s *Seat) submit(q question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != q {
		return ErrNoPendingQuestion
	}
	select {
	case s.answers <- answer:
		return nil
	default:
		return ErrAnswerPending
	}
}

// Tally returns the seat's results so far
func (s *Seat) Tally() Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally
}

func (s *Seat) record(o game.Outcome) {
	s.mu.Lock()
	s.tally.add(o)
	s.mu.Unlock()
}
