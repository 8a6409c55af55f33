package game

type EventType string

const (
	EventGameStarted  EventType = "gameStarted"
	EventRoundStarted EventType = "roundStarted"
	EventHandDealt    EventType = "handDealt"
	EventHandShown    EventType = "handShown"
	EventHit          EventType = "hit"
	EventSplit        EventType = "split"
	EventStay         EventType = "stay"
	EventBust         EventType = "bust"
	EventBlackjack    EventType = "blackjack"
	EventDealerTurn   EventType = "dealerTurn"
	EventHandResolved EventType = "handResolved"
	EventRoundEnded   EventType = "roundEnded"
	EventGameOver     EventType = "gameOver"
)

// DealerPosition marks events about the dealer's own hand
const DealerPosition = -1

// Event is a notification for a presentation layer. Sinks must not change
// game state in response.
type Event struct {
	Type      EventType `json:"type"`
	Round     int       `json:"round"`
	Owner     string    `json:"owner,omitempty"`
	Position  int       `json:"position"`
	HandIndex int       `json:"handIndex"`
	Cards     []Card    `json:"cards,omitempty"`
	Value     int       `json:"value,omitempty"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Display receives events as the round progresses
type Display interface {
	Show(e Event)
}

type DisplayFunc func(e Event)

func (f DisplayFunc) Show(e Event) {
	f(e)
}

// MultiDisplay fans every event out to each display in order
type MultiDisplay []Display

func (m MultiDisplay) Show(e Event) {
	for _, d := range m {
		if d != nil {
			d.Show(e)
		}
	}
}

type nopDisplay struct{}

func (nopDisplay) Show(Event) {}
