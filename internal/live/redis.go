package live

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"art-auction/utils"
)

const (
	bidChannelPrefix  = "bid_events:"
	chatChannelPrefix = "chat_events:"
)

// RedisBroker publishes bid and chat events to Redis so every node's bridge
// can fan them out to its own websocket clients.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker connects to Redis and verifies the connection
func NewRedisBroker(ctx context.Context, addr, password string, db int) (*RedisBroker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return &RedisBroker{client: client}, nil
}

// PublishBid publishes the event on the item's bid channel
func (b *RedisBroker) PublishBid(ctx context.Context, event BidEvent) error {
	event.Kind = KindBid
	payload, err := encodeEvent(event.ItemID, event)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, bidChannelPrefix+event.ItemID, payload).Err(); err != nil {
		return fmt.Errorf("publish bid event for item %s: %w", event.ItemID, err)
	}
	return nil
}

// PublishChat publishes the message on the item's chat channel
func (b *RedisBroker) PublishChat(ctx context.Context, event ChatEvent) error {
	event.Kind = KindChat
	payload, err := encodeEvent(event.ItemID, event)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, chatChannelPrefix+event.ItemID, payload).Err(); err != nil {
		return fmt.Errorf("publish chat event for item %s: %w", event.ItemID, err)
	}
	return nil
}

// Close releases the Redis connection
func (b *RedisBroker) Close() error {
	return b.client.Close()
}

// Bridge subscribes to every bid and chat channel and replays messages into
// the hub. It blocks until ctx is cancelled; run it in its own goroutine.
func (b *RedisBroker) Bridge(ctx context.Context, hub *Hub) error {
	pubsub := b.client.PSubscribe(ctx, bidChannelPrefix+"*", chatChannelPrefix+"*")
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("redis subscription closed")
			}
			// item IDs are UUIDs, so the first colon ends the prefix
			itemID := msg.Channel
			if i := strings.Index(msg.Channel, ":"); i >= 0 {
				itemID = msg.Channel[i+1:]
			}
			hub.Broadcast(itemID, []byte(msg.Payload))
			utils.Info("live: relayed event", map[string]any{
				"channel":  msg.Channel,
				"item_id":  itemID,
				"watchers": hub.SubscriberCount(itemID),
			})
		}
	}
}
