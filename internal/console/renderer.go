package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/calvinwijaya/blackjack-table/internal/game"
	"github.com/pterm/pterm"
)

// Renderer prints table events for a person at a terminal
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Show implements game.Display
func (r *Renderer) Show(e game.Event) {
	switch e.Type {
	case game.EventGameStarted, game.EventGameOver:
		r.println(pterm.DefaultSection.Sprint(e.Message))
	case game.EventRoundStarted:
		r.println(pterm.Info.Sprintf("Round %d", e.Round))
	case game.EventHandDealt, game.EventHandShown, game.EventHit, game.EventSplit, game.EventStay:
		if e.Message != "" {
			r.println(e.Message)
		}
		r.println(handBox(e))
	case game.EventBust:
		r.println(handBox(e))
		r.println(pterm.Error.Sprintf("%s busted!", e.Owner))
	case game.EventBlackjack:
		r.println(handBox(e))
		r.println(pterm.Success.Sprintf("%s gets blackjack!", e.Owner))
	case game.EventDealerTurn:
		r.println(pterm.Info.Sprint(e.Message))
	case game.EventHandResolved:
		r.println(fmt.Sprintf("%s hand %d: %d, %s", e.Owner, e.HandIndex+1, e.Value, outcomeText(e.Outcome)))
	case game.EventRoundEnded:
		r.println("")
	}
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.out, s)
}

func handBox(e game.Event) string {
	title := e.Owner + "'s cards"
	if e.Position != game.DealerPosition {
		title = fmt.Sprintf("%s (hand %d)", title, e.HandIndex+1)
	}
	cards := make([]string, len(e.Cards))
	for i, c := range e.Cards {
		cards[i] = c.String()
	}
	body := fmt.Sprintf("%s   value %d", strings.Join(cards, "  "), e.Value)
	return pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().WithLeftPadding(2).WithRightPadding(2).Sprint(body)
}

func outcomeText(o game.Outcome) string {
	switch o {
	case game.Win:
		return pterm.LightGreen("wins")
	case game.Blackjack:
		return pterm.LightGreen("wins with blackjack")
	case game.Push:
		return pterm.LightYellow("push")
	case game.Lose:
		return pterm.LightRed("loses")
	default:
		return string(o)
	}
}
