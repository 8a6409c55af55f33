package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Dealer runs the table: it deals from its deck, walks every player hand
// through the decision loop, plays its own hand and resolves the round.
type Dealer struct {
	deck     *Deck
	hand     *Hand
	players  []*Player
	over     bool
	round    int
	display  Display
	prompter ContinuePrompter
	onResult func(RoundResult)
	logger   *slog.Logger
}

// roundContext carries the per-round state through the state machine
type roundContext struct {
	number int
}

type Option func(*Dealer)

// WithDeck replaces the default freshly shuffled deck
func WithDeck(deck *Deck) Option {
	return func(d *Dealer) {
		d.deck = deck
	}
}

func WithDisplay(display Display) Option {
	return func(d *Dealer) {
		d.display = display
	}
}

// WithContinuePrompter sets who is asked whether to play another round.
// Without one the session ends after a single round.
func WithContinuePrompter(p ContinuePrompter) Option {
	return func(d *Dealer) {
		d.prompter = p
	}
}

// WithResultHandler registers a callback invoked with every finished round
func WithResultHandler(fn func(RoundResult)) Option {
	return func(d *Dealer) {
		d.onResult = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dealer) {
		d.logger = logger
	}
}

// NewDealer creates a dealer for the given players
func NewDealer(players []*Player, opts ...Option) (*Dealer, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if len(players) > MaxPlayers {
		return nil, fmt.Errorf("%w: %d seats, at most %d", ErrTooManyPlayers, len(players), MaxPlayers)
	}

	d := &Dealer{
		hand:    NewHand(),
		players: players,
		display: nopDisplay{},
		prompter: ContinueFunc(func(context.Context) (bool, error) {
			return false, nil
		}),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.deck == nil {
		d.deck = NewDeck()
	}
	if d.display == nil {
		d.display = nopDisplay{}
	}
	return d, nil
}

func (d *Dealer) Hand() *Hand {
	return d.hand
}

func (d *Dealer) Deck() *Deck {
	return d.deck
}

func (d *Dealer) Players() []*Player {
	return d.players
}

// IsOver reports whether the session has been stopped
func (d *Dealer) IsOver() bool {
	return d.over
}

// Round returns the number of rounds started so far
func (d *Dealer) Round() int {
	return d.round
}

// PlayGame plays rounds until the session is over
func (d *Dealer) PlayGame(ctx context.Context) error {
	d.emit(Event{Type: EventGameStarted, Position: DealerPosition, Message: "Game starting!"})
	for !d.over {
		if _, err := d.PlayRound(ctx); err != nil {
			return err
		}
	}
	d.emit(Event{Type: EventGameOver, Round: d.round, Position: DealerPosition, Message: "Game over!"})
	return nil
}

// PlayRound deals, lets every player act on every hand, plays the dealer
// hand, resolves all hands and finally asks whether to keep playing.
func (d *Dealer) PlayRound(ctx context.Context) (RoundResult, error) {
	d.round++
	rc := &roundContext{number: d.round}
	d.logger.Debug("round starting", "round", rc.number, "players", len(d.players))
	d.emit(Event{Type: EventRoundStarted, Round: rc.number, Position: DealerPosition, Message: "New round!"})

	d.setupRound(rc)

	for _, p := range d.players {
		// hands split off during this loop are appended and visited too
		for i := 0; i < len(p.Hands()); i++ {
			if err := d.processHand(ctx, rc, p, i); err != nil {
				return RoundResult{}, err
			}
		}
	}

	if d.hand.IsBlackjack() {
		d.emitHand(rc, EventBlackjack, d.Label(), DealerPosition, 0, d.hand, "Dealer gets blackjack!")
	} else {
		d.playDealerHand(rc)
	}

	result := d.resolveRound(rc)
	if d.onResult != nil {
		d.onResult(result)
	}
	d.emit(Event{Type: EventRoundEnded, Round: rc.number, Position: DealerPosition, Value: d.hand.Value()})

	over, err := d.isSessionOver(ctx)
	if err != nil {
		return result, err
	}
	d.over = over
	return result, nil
}

// Label is the dealer's display name
func (d *Dealer) Label() string {
	return "Dealer"
}

func (d *Dealer) setupRound(rc *roundContext) {
	for _, p := range d.players {
		p.ResetHands()
	}
	d.hand.Reset()

	for _, p := range d.players {
		for i, h := range p.Hands() {
			d.dealInitial(h)
			d.emitHand(rc, EventHandDealt, p.Label(), p.Position(), i, h, "")
		}
	}
	d.dealInitial(d.hand)
	d.emitHand(rc, EventHandDealt, d.Label(), DealerPosition, 0, d.hand, "Initial cards dealt")
}

func (d *Dealer) dealInitial(h *Hand) {
	for i := 0; i < 2; i++ {
		h.Push(d.deck.Draw())
	}
}

// processHand runs one player hand until it stays, busts or has blackjack.
// A split keeps playing the original hand; the new one is left for the
// caller's iteration.
func (d *Dealer) processHand(ctx context.Context, rc *roundContext, p *Player, idx int) error {
	hand := p.Hands()[idx]
	d.emitHand(rc, EventHandShown, p.Label(), p.Position(), idx, hand, "")
	d.emitHand(rc, EventHandShown, d.Label(), DealerPosition, 0, d.hand, "")

	for {
		if hand.IsBlackjack() {
			d.emitHand(rc, EventBlackjack, p.Label(), p.Position(), idx, hand, p.Label()+" gets blackjack!")
			return nil
		}

		move, err := p.Decide(ctx, d.decisionRequest(p, idx, hand))
		if err != nil {
			return err
		}
		d.logger.Debug("player decided", "round", rc.number, "player", p.Label(), "hand", idx, "move", move.String())

		switch move {
		case Stay:
			d.emitHand(rc, EventStay, p.Label(), p.Position(), idx, hand, "")
			return nil
		case Split:
			newHand, err := p.Split(hand)
			if err != nil {
				return fmt.Errorf("%s hand %d: %w", p.Label(), idx+1, err)
			}
			hand.Push(d.deck.Draw())
			newHand.Push(d.deck.Draw())
			d.emitHand(rc, EventSplit, p.Label(), p.Position(), idx, hand, "Here is your split hand:")
			d.emitHand(rc, EventSplit, p.Label(), p.Position(), len(p.Hands())-1, newHand, "")
		case Hit:
			hand.Push(d.deck.Draw())
			d.emitHand(rc, EventHit, p.Label(), p.Position(), idx, hand, "")
		default:
			return fmt.Errorf("%s hand %d: unknown move %d", p.Label(), idx+1, move)
		}

		if hand.IsBust() {
			d.emitHand(rc, EventBust, p.Label(), p.Position(), idx, hand, "Busted!")
			return nil
		}
	}
}

func (d *Dealer) decisionRequest(p *Player, idx int, hand *Hand) DecisionRequest {
	options := []MoveOption{optionFor(Stay), optionFor(Hit)}
	if p.CanSplit(hand) {
		options = append(options, optionFor(Split))
	}
	return DecisionRequest{
		Position:    p.Position(),
		Owner:       p.Label(),
		HandIndex:   idx,
		Cards:       hand.Cards(),
		Value:       hand.Value(),
		DealerCards: d.hand.Cards(),
		Options:     options,
	}
}

// playDealerHand draws until the house stay value is reached
func (d *Dealer) playDealerHand(rc *roundContext) {
	d.emit(Event{Type: EventDealerTurn, Round: rc.number, Owner: d.Label(), Position: DealerPosition, Message: "Dealing to " + d.Label()})
	for d.hand.Value() < DealerStayValue {
		d.hand.Push(d.deck.Draw())
	}
	msg := ""
	if d.hand.IsBust() {
		msg = "Busted!"
	}
	d.emitHand(rc, EventHandShown, d.Label(), DealerPosition, 0, d.hand, msg)
}

func (d *Dealer) resolveRound(rc *roundContext) RoundResult {
	dealer := d.hand.Standing()
	result := RoundResult{
		Number:      rc.number,
		DealerCards: d.hand.Cards(),
		Dealer:      dealer,
	}
	for _, p := range d.players {
		for i, h := range p.Hands() {
			hr := HandResult{
				Position:  p.Position(),
				Owner:     p.Label(),
				HandIndex: i,
				Cards:     h.Cards(),
				Standing:  h.Standing(),
			}
			hr.Outcome = Resolve(hr.Standing, dealer)
			result.Hands = append(result.Hands, hr)

			d.emit(Event{
				Type:      EventHandResolved,
				Round:     rc.number,
				Owner:     hr.Owner,
				Position:  hr.Position,
				HandIndex: i,
				Cards:     hr.Cards,
				Value:     hr.Standing.Value,
				Outcome:   hr.Outcome,
			})
		}
	}
	d.logger.Debug("round resolved", "round", rc.number, "dealer", dealer.Value, "hands", len(result.Hands))
	return result
}

func (d *Dealer) isSessionOver(ctx context.Context) (bool, error) {
	if len(d.players) == 0 {
		return true, nil
	}
	keepPlaying, err := d.prompter.ContinueSession(ctx)
	if err != nil {
		return true, fmt.Errorf("continue session: %w", err)
	}
	return !keepPlaying, nil
}

func (d *Dealer) emitHand(rc *roundContext, t EventType, owner string, position, idx int, h *Hand, msg string) {
	d.emit(Event{
		Type:      t,
		Round:     rc.number,
		Owner:     owner,
		Position:  position,
		HandIndex: idx,
		Cards:     h.Cards(),
		Value:     h.Value(),
		Message:   msg,
	})
}

func (d *Dealer) emit(e Event) {
	d.display.Show(e)
}
