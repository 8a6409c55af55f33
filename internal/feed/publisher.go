// Package feed mirrors table events onto Redis pub/sub so other services
// (a spectator page, an audit consumer) can follow a table.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/calvinwijaya/blackjack-table/internal/game"
	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// Envelope is the JSON payload published for every event
type Envelope struct {
	TableID     string     `json:"tableId"`
	Event       game.Event `json:"event"`
	PublishedAt time.Time  `json:"publishedAt"`
}

type Publisher struct {
	client *redis.Client
	logger *slog.Logger
}

// NewPublisher connects to the Redis server at url (redis://host:port/db)
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Publisher{client: redis.NewClient(opts), logger: logger}, nil
}

// Ping checks the connection
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

// Channel is the pub/sub channel for a table
func Channel(tableID string) string {
	return "blackjack:table:" + tableID + ":events"
}

// ForTable returns a display publishing that table's events
func (p *Publisher) ForTable(tableID string) game.Display {
	return game.DisplayFunc(func(e game.Event) {
		p.publish(tableID, e)
	})
}

func (p *Publisher) publish(tableID string, e game.Event) {
	payload, err := Encode(tableID, e, time.Now())
	if err != nil {
		p.logger.Error("encode table event", "table", tableID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, Channel(tableID), payload).Err(); err != nil {
		p.logger.Warn("publish table event", "table", tableID, "event", e.Type, "error", err)
	}
}

// Encode builds the published payload
func Encode(tableID string, e game.Event, at time.Time) ([]byte, error) {
	return json.Marshal(Envelope{TableID: tableID, Event: e, PublishedAt: at.UTC()})
}
