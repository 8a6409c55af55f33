package table

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/calvinwijaya/blackjack-table/internal/game"
	"github.com/google/uuid"
)

type Status string

const (
	Waiting   Status = "waiting"   // Waiting for players to sit down
	Playing   Status = "playing"   // A session is running
	Completed Status = "completed" // The last session has ended
)

// Table is one blackjack table on the server. Remote clients take seats,
// the owner starts the session and every round runs on the table's own
// goroutine.
type Table struct {
	ID        string
	Name      string
	CreatedAt time.Time

	notify  Notifier
	sinks   []game.Display
	newDeck func() *game.Deck
	logger  *slog.Logger

	mu        sync.RWMutex
	status    Status
	ownerID   string
	seats     []*Seat
	updatedAt time.Time
	lastRound *game.RoundResult
	lastErr   error
	cancel    context.CancelFunc
	done      chan struct{}
}

type Option func(*Table)

// WithSink adds a display built for this table, e.g. an event feed
func WithSink(build func(tableID string) game.Display) Option {
	return func(t *Table) {
		if d := build(t.ID); d != nil {
			t.sinks = append(t.sinks, d)
		}
	}
}

// WithDeckFactory controls the deck used for each session
func WithDeckFactory(fn func() *game.Deck) Option {
	return func(t *Table) {
		t.newDeck = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// New creates an empty table
func New(name string, notify Notifier, opts ...Option) *Table {
	if notify == nil {
		notify = nopNotifier{}
	}
	now := time.Now()
	t := &Table{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		notify:    notify,
		newDeck:   game.NewDeck,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		status:    Waiting,
		updatedAt: now,
	}
	if t.Name == "" {
		t.Name = "Table " + t.ID[:8]
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *Table) OwnerID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ownerID
}

// Seat returns the seat held by playerID
func (t *Table) Seat(playerID string) (*Seat, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.seatLocked(playerID)
}

func (t *Table) seatLocked(playerID string) (*Seat, bool) {
	for _, s := range t.seats {
		if s.ID == playerID {
			return s, true
		}
	}
	return nil, false
}

// Join seats a player. The first player to sit down owns the table.
func (t *Table) Join(playerID, name string) (*Seat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == Playing {
		return nil, fmt.Errorf("%w: %s", ErrWrongStatus, t.status)
	}
	if _, ok := t.seatLocked(playerID); ok {
		return nil, ErrAlreadySeated
	}
	if len(t.seats) >= game.MaxPlayers {
		return nil, ErrTableFull
	}
	if playerID == "" {
		playerID = uuid.New().String()
	}

	seat := newSeat(t, playerID, strings.TrimSpace(name))
	t.seats = append(t.seats, seat)
	if t.ownerID == "" {
		t.ownerID = playerID
	}
	t.updatedAt = time.Now()
	return seat, nil
}

// Leave removes a player between sessions
func (t *Table) Leave(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == Playing {
		return fmt.Errorf("%w: %s", ErrWrongStatus, t.status)
	}
	for i, s := range t.seats {
		if s.ID == playerID {
			t.seats = append(t.seats[:i], t.seats[i+1:]...)
			if t.ownerID == playerID {
				t.ownerID = ""
				if len(t.seats) > 0 {
					t.ownerID = t.seats[0].ID
				}
			}
			t.updatedAt = time.Now()
			return nil
		}
	}
	return ErrNotSeated
}

// Start runs a session in the background. Only the owner may start it.
func (t *Table) Start(ctx context.Context, playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == Playing {
		return fmt.Errorf("%w: %s", ErrWrongStatus, t.status)
	}
	if playerID != t.ownerID {
		return ErrNotOwner
	}

	players := make([]*game.Player, len(t.seats))
	for i, s := range t.seats {
		players[i] = game.NewPlayer(i, s.Name, s)
	}
	dealer, err := game.NewDealer(players,
		game.WithDeck(t.newDeck()),
		game.WithDisplay(game.MultiDisplay(append([]game.Display{t}, t.sinks...))),
		game.WithContinuePrompter(t),
		game.WithResultHandler(t.recordRound),
		game.WithLogger(t.logger.With("table", t.ID)),
	)
	if err != nil {
		return err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.status = Playing
	t.lastErr = nil
	t.updatedAt = time.Now()

	go t.run(sessionCtx, dealer, t.done)
	return nil
}

func (t *Table) run(ctx context.Context, dealer *game.Dealer, done chan struct{}) {
	defer close(done)
	t.logger.Info("table session started", "table", t.ID, "seats", len(dealer.Players()))

	err := dealer.PlayGame(ctx)
	if err != nil {
		t.logger.Warn("table session stopped", "table", t.ID, "error", err)
	} else {
		t.logger.Info("table session finished", "table", t.ID, "rounds", dealer.Round())
	}

	t.mu.Lock()
	t.status = Completed
	t.lastErr = err
	t.cancel = nil
	t.updatedAt = time.Now()
	t.mu.Unlock()

	t.notify.BroadcastToTable(t.ID, Message{Type: MsgTableUpdate, TableID: t.ID, Data: t.View()})
}

// Close stops a running session; seats waiting on a question are released
func (t *Table) Close() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Done is closed when the current session ends
func (t *Table) Done() <-chan struct{} {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return t.done
}

// SubmitMove answers the pending decision for playerID
func (t *Table) SubmitMove(playerID, key string) error {
	seat, ok := t.Seat(playerID)
	if !ok {
		return ErrNotSeated
	}
	return seat.submit(askMove, key)
}

// SubmitContinue answers the play-again question; "y" or "n"
func (t *Table) SubmitContinue(playerID, answer string) error {
	seat, ok := t.Seat(playerID)
	if !ok {
		return ErrNotSeated
	}
	return seat.submit(askContinue, strings.ToLower(strings.TrimSpace(answer)))
}

// ContinueSession implements game.ContinuePrompter by asking the owner
func (t *Table) ContinueSession(ctx context.Context) (bool, error) {
	t.mu.RLock()
	owner, ok := t.seatLocked(t.ownerID)
	t.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return owner.continueSession(ctx)
}

// Show implements game.Display by broadcasting the event to the table
func (t *Table) Show(e game.Event) {
	t.notify.BroadcastToTable(t.ID, Message{Type: MsgEvent, TableID: t.ID, Data: e})
}

func (t *Table) recordRound(r game.RoundResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastRound = &r
	t.updatedAt = time.Now()
	for _, hr := range r.Hands {
		if hr.Position < len(t.seats) {
			t.seats[hr.Position].record(hr.Outcome)
		}
	}
}

func (t *Table) sendTo(playerID, msgType string, data interface{}) {
	t.notify.SendToPlayer(playerID, Message{Type: msgType, TableID: t.ID, PlayerID: playerID, Data: data})
}
