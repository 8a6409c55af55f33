package table

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/calvinwijaya/blackjack-table/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	sent chan Message

	mu         sync.Mutex
	broadcasts []Message
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan Message, 16)}
}

func (f *fakeNotifier) SendToPlayer(playerID string, message interface{}) {
	f.sent <- message.(Message)
}

func (f *fakeNotifier) BroadcastToTable(tableID string, message interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, message.(Message))
}

func (f *fakeNotifier) eventCount(t game.EventType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.broadcasts {
		if e, ok := m.Data.(game.Event); ok && e.Type == t {
			n++
		}
	}
	return n
}

func next(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
		return Message{}
	}
}

func stacked(cards ...game.Card) func() *game.Deck {
	return func() *game.Deck {
		return game.NewStackedDeck(cards...)
	}
}

func c(r game.Rank) game.Card {
	return game.MustCard(r, game.Clubs)
}

func TestJoinAndLeave(t *testing.T) {
	tb := New("", nil)
	assert.Contains(t, tb.Name, "Table ")

	alice, err := tb.Join("alice", "Alice")
	require.NoError(t, err)
	_, err = tb.Join("bob", "Bob")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, tb.OwnerID())

	_, err = tb.Join("alice", "Alice")
	assert.ErrorIs(t, err, ErrAlreadySeated)

	require.NoError(t, tb.Leave("alice"))
	assert.Equal(t, "bob", tb.OwnerID())
	assert.ErrorIs(t, tb.Leave("alice"), ErrNotSeated)

	anon, err := tb.Join("", "")
	require.NoError(t, err)
	assert.NotEmpty(t, anon.ID)
}

func TestTableFull(t *testing.T) {
	tb := New("full", nil)
	for i := 0; i < game.MaxPlayers; i++ {
		_, err := tb.Join("", "")
		require.NoError(t, err)
	}
	_, err := tb.Join("", "")
	assert.ErrorIs(t, err, ErrTableFull)
}

func TestStartRequiresOwnerAndPlayers(t *testing.T) {
	tb := New("t", nil)
	assert.ErrorIs(t, tb.Start(context.Background(), ""), game.ErrNoPlayers)

	_, err := tb.Join("alice", "Alice")
	require.NoError(t, err)
	_, err = tb.Join("bob", "Bob")
	require.NoError(t, err)
	assert.ErrorIs(t, tb.Start(context.Background(), "bob"), ErrNotOwner)
}

func TestSubmitWithoutQuestion(t *testing.T) {
	tb := New("t", nil)
	_, err := tb.Join("alice", "Alice")
	require.NoError(t, err)

	assert.ErrorIs(t, tb.SubmitMove("alice", "h"), ErrNoPendingQuestion)
	assert.ErrorIs(t, tb.SubmitContinue("alice", "y"), ErrNoPendingQuestion)
	assert.ErrorIs(t, tb.SubmitMove("carol", "h"), ErrNotSeated)
}

func TestSessionWithRemoteSeats(t *testing.T) {
	n := newFakeNotifier()
	tb := New("t", n, WithDeckFactory(stacked(
		c(game.Ten), c(game.Seven), // alice
		c(game.Ten), c(game.Nine), // bob
		c(game.Ten), c(game.Eight), // dealer
	)))
	alice, err := tb.Join("alice", "Alice")
	require.NoError(t, err)
	bob, err := tb.Join("bob", "Bob")
	require.NoError(t, err)

	require.NoError(t, tb.Start(context.Background(), alice.ID))
	assert.Equal(t, Playing, tb.Status())

	_, err = tb.Join("carol", "Carol")
	assert.ErrorIs(t, err, ErrWrongStatus)

	msg := next(t, n.sent)
	require.Equal(t, MsgDecisionRequired, msg.Type)
	require.Equal(t, alice.ID, msg.PlayerID)
	req := msg.Data.(game.DecisionRequest)
	assert.Equal(t, 17, req.Value)

	require.NoError(t, tb.SubmitMove(alice.ID, "double"))
	assert.Equal(t, MsgInvalidAnswer, next(t, n.sent).Type)
	require.NoError(t, tb.SubmitMove(alice.ID, "s"))

	msg = next(t, n.sent)
	require.Equal(t, MsgDecisionRequired, msg.Type)
	require.Equal(t, bob.ID, msg.PlayerID)
	require.NoError(t, tb.SubmitMove(bob.ID, "stay"))

	msg = next(t, n.sent)
	require.Equal(t, MsgContinueRequired, msg.Type)
	require.Equal(t, alice.ID, msg.PlayerID)
	require.NoError(t, tb.SubmitContinue(alice.ID, " N "))

	select {
	case <-tb.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish")
	}

	v := tb.View()
	assert.Equal(t, Completed, v.Status)
	assert.Empty(t, v.Error)
	require.NotNil(t, v.LastRound)
	assert.Equal(t, 18, v.LastRound.Dealer.Value)
	require.Len(t, v.Seats, 2)
	assert.Equal(t, Tally{Losses: 1}, v.Seats[0].Tally)
	assert.Equal(t, Tally{Wins: 1}, v.Seats[1].Tally)
	assert.True(t, v.Seats[0].IsOwner)
	assert.Equal(t, 2, n.eventCount(game.EventHandResolved))
}

func TestCloseReleasesWaitingSeat(t *testing.T) {
	n := newFakeNotifier()
	tb := New("t", n, WithDeckFactory(stacked(c(game.Two), c(game.Three), c(game.Ten), c(game.Nine))))
	_, err := tb.Join("alice", "Alice")
	require.NoError(t, err)
	require.NoError(t, tb.Start(context.Background(), "alice"))

	assert.Equal(t, MsgDecisionRequired, next(t, n.sent).Type)
	tb.Close()

	v := tb.View()
	assert.Equal(t, Completed, v.Status)
	assert.Contains(t, v.Error, context.Canceled.Error())
}

func TestWithSinkReceivesEvents(t *testing.T) {
	var mu sync.Mutex
	var got []game.EventType
	tb := New("t", nil,
		WithDeckFactory(stacked(c(game.Ace), c(game.King), c(game.Ten), c(game.Nine))),
		WithSink(func(tableID string) game.Display {
			return game.DisplayFunc(func(e game.Event) {
				mu.Lock()
				got = append(got, e.Type)
				mu.Unlock()
			})
		}),
	)
	_, err := tb.Join("alice", "Alice")
	require.NoError(t, err)

	// the owner is never asked: nopNotifier drops the question, so close
	// the session once the round has been played
	require.NoError(t, tb.Start(context.Background(), "alice"))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range got {
			if e == game.EventRoundEnded {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	tb.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, got, game.EventBlackjack)
	assert.Contains(t, got, game.EventHandResolved)
}
