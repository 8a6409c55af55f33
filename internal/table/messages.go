package table

// Message types exchanged with table clients
const (
	MsgWelcome          = "welcome"
	MsgTableCreated     = "tableCreated"
	MsgTableUpdate      = "tableUpdate"
	MsgPlayerJoined     = "playerJoined"
	MsgPlayerLeft       = "playerLeft"
	MsgEvent            = "event"
	MsgDecisionRequired = "decisionRequired"
	MsgContinueRequired = "continueRequired"
	MsgInvalidAnswer    = "invalidAnswer"
	MsgMove             = "move"
	MsgContinue         = "continue"
	MsgError            = "error"
)

// Message is the envelope sent over the WebSocket in both directions.
// Clients answer questions with Answer set to a move key or "y"/"n".
type Message struct {
	Type     string      `json:"type"`
	TableID  string      `json:"tableId,omitempty"`
	PlayerID string      `json:"playerId,omitempty"`
	Answer   string      `json:"answer,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// Notifier delivers messages to connected clients
type Notifier interface {
	BroadcastToTable(tableID string, message interface{})
	SendToPlayer(playerID string, message interface{})
}

type nopNotifier struct{}

func (nopNotifier) BroadcastToTable(string, interface{}) {}
func (nopNotifier) SendToPlayer(string, interface{})     {}
