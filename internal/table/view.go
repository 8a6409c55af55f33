package table

import (
	"time"

	"github.com/calvinwijaya/blackjack-table/internal/game"
)

// SeatView is the public state of a seat
type SeatView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	IsOwner  bool   `json:"isOwner"`
	Tally    Tally  `json:"tally"`
}

// View is a snapshot of a table safe to hand to clients
type View struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Status    Status            `json:"status"`
	Seats     []SeatView        `json:"seats"`
	LastRound *game.RoundResult `json:"lastRound,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (t *Table) View() View {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v := View{
		ID:        t.ID,
		Name:      t.Name,
		Status:    t.status,
		Seats:     make([]SeatView, len(t.seats)),
		LastRound: t.lastRound,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.updatedAt,
	}
	for i, s := range t.seats {
		v.Seats[i] = SeatView{
			ID:       s.ID,
			Name:     s.Name,
			Position: i,
			IsOwner:  s.ID == t.ownerID,
			Tally:    s.Tally(),
		}
	}
	if t.lastErr != nil {
		v.Error = t.lastErr.Error()
	}
	return v
}
