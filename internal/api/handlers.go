package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/calvinwijaya/blackjack-table/internal/game"
	"github.com/calvinwijaya/blackjack-table/internal/store"
	"github.com/calvinwijaya/blackjack-table/internal/table"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handlers contains all the API handlers
type Handlers struct {
	ctx       context.Context
	store     store.Store
	hub       *Hub
	tableOpts []table.Option
	logger    *slog.Logger
}

// NewHandlers creates a new instance of Handlers. Sessions started through
// the API live until ctx is cancelled or the owner stops playing; opts are
// applied to every table created.
func NewHandlers(ctx context.Context, store store.Store, hub *Hub, logger *slog.Logger, opts ...table.Option) *Handlers {
	h := &Handlers{
		ctx:       ctx,
		store:     store,
		hub:       hub,
		tableOpts: append([]table.Option{table.WithLogger(logger)}, opts...),
		logger:    logger,
	}
	hub.onMessage = h.handleSocketMessage
	return h
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/table/new", h.NewTable).Methods("POST")
	r.HandleFunc("/api/table/list", h.ListTables).Methods("GET")
	r.HandleFunc("/api/table/{id}", h.GetTable).Methods("GET")
	r.HandleFunc("/api/table/{id}/join", h.JoinTable).Methods("POST")
	r.HandleFunc("/api/table/{id}/leave", h.LeaveTable).Methods("POST")
	r.HandleFunc("/api/table/{id}/start", h.StartTable).Methods("POST")
	r.HandleFunc("/api/table/{id}/move", h.Move).Methods("POST")
	r.HandleFunc("/api/table/{id}/continue", h.Continue).Methods("POST")

	r.HandleFunc("/ws", h.hub.WebSocketHandler)
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// statusFor maps table and game errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrTableNotFound), errors.Is(err, table.ErrNotSeated):
		return http.StatusNotFound
	case errors.Is(err, table.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, table.ErrWrongStatus), errors.Is(err, table.ErrTableFull),
		errors.Is(err, table.ErrAlreadySeated), errors.Is(err, table.ErrNoPendingQuestion),
		errors.Is(err, table.ErrAnswerPending):
		return http.StatusConflict
	case errors.Is(err, game.ErrNoPlayers), errors.Is(err, game.ErrTooManyPlayers):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) tableFromRequest(w http.ResponseWriter, r *http.Request) (*table.Table, bool) {
	t, err := h.store.GetTable(mux.Vars(r)["id"])
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Table not found")
		return nil, false
	}
	return t, true
}

func (h *Handlers) broadcastUpdate(t *table.Table) {
	h.hub.BroadcastToTable(t.ID, table.Message{Type: table.MsgTableUpdate, TableID: t.ID, Data: t.View()})
}

// NewTable creates a new blackjack table
func (h *Handlers) NewTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	// the body is optional
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t := table.New(req.Name, h.hub, h.tableOpts...)
	if err := h.store.SaveTable(t); err != nil {
		h.logger.Error("save table", "error", err)
		errorResponse(w, http.StatusInternalServerError, "Failed to save table")
		return
	}

	view := t.View()
	h.hub.Broadcast(table.Message{Type: table.MsgTableCreated, TableID: t.ID, Data: view})
	response(w, http.StatusCreated, view)
}

// ListTables returns every table
func (h *Handlers) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.store.GetAllTables()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving tables")
		return
	}

	views := make([]table.View, 0, len(tables))
	for _, t := range tables {
		views = append(views, t.View())
	}
	response(w, http.StatusOK, views)
}

// GetTable returns the current state of a table
func (h *Handlers) GetTable(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tableFromRequest(w, r)
	if !ok {
		return
	}
	response(w, http.StatusOK, t.View())
}

// JoinTable seats a player at a table
func (h *Handlers) JoinTable(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tableFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		PlayerID   string `json:"playerId"`
		PlayerName string `json:"playerName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = uuid.New().String()
	}

	seat, err := t.Join(req.PlayerID, req.PlayerName)
	if err != nil {
		errorResponse(w, statusFor(err), err.Error())
		return
	}

	h.hub.BroadcastToTable(t.ID, table.Message{
		Type:     table.MsgPlayerJoined,
		TableID:  t.ID,
		PlayerID: seat.ID,
		Data:     map[string]string{"name": seat.Name},
	})
	h.broadcastUpdate(t)

	response(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"playerId": seat.ID,
		"table":    t.View(),
	})
}

// LeaveTable removes a player from a table between sessions
func (h *Handlers) LeaveTable(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tableFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		PlayerID string `json:"playerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := t.Leave(req.PlayerID); err != nil {
		errorResponse(w, statusFor(err), err.Error())
		return
	}

	h.hub.BroadcastToTable(t.ID, table.Message{Type: table.MsgPlayerLeft, TableID: t.ID, PlayerID: req.PlayerID})
	h.broadcastUpdate(t)

	response(w, http.StatusOK, map[string]string{
		"success": "true",
		"message": "Successfully left table",
	})
}

// StartTable starts a session; only the table owner may do this
func (h *Handlers) StartTable(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tableFromRequest(w, r)
	if !ok {
		return
	}

	var req struct {
		PlayerID string `json:"playerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := t.Start(h.ctx, req.PlayerID); err != nil {
		errorResponse(w, statusFor(err), err.Error())
		return
	}
	h.broadcastUpdate(t)

	response(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"table":   t.View(),
	})
}

type answerRequest struct {
	PlayerID string `json:"playerId"`
	Key      string `json:"key"`
	Answer   string `json:"answer"`
}

// Move answers a pending decision with a move key
func (h *Handlers) Move(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, func(t *table.Table, req answerRequest) error {
		return t.SubmitMove(req.PlayerID, req.Key)
	})
}

// Continue answers the play-again question with "y" or "n"
func (h *Handlers) Continue(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, func(t *table.Table, req answerRequest) error {
		return t.SubmitContinue(req.PlayerID, req.Answer)
	})
}

func (h *Handlers) answer(w http.ResponseWriter, r *http.Request, submit func(*table.Table, answerRequest) error) {
	t, ok := h.tableFromRequest(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := submit(t, req); err != nil {
		errorResponse(w, statusFor(err), err.Error())
		return
	}
	response(w, http.StatusAccepted, map[string]bool{"success": true})
}

// handleSocketMessage routes answers sent over a WebSocket
func (h *Handlers) handleSocketMessage(c *Client, msg table.Message) {
	t, err := h.store.GetTable(msg.TableID)
	if err != nil {
		c.reply(table.Message{Type: table.MsgError, TableID: msg.TableID, Data: err.Error()})
		return
	}

	switch msg.Type {
	case table.MsgMove:
		err = t.SubmitMove(msg.PlayerID, msg.Answer)
	case table.MsgContinue:
		err = t.SubmitContinue(msg.PlayerID, msg.Answer)
	default:
		return
	}
	if err != nil {
		c.reply(table.Message{Type: table.MsgError, TableID: t.ID, PlayerID: msg.PlayerID, Data: err.Error()})
	}
}
