package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	model "art-auction/internal/models"
)

// startHub runs a hub and a websocket endpoint that subscribes each
// connection to the item named in the query string.
func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Shutdown)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		itemID := r.URL.Query().Get("item_id")
		if err := hub.ServeItem(w, r, "client-"+itemID, itemID); err != nil {
			t.Logf("upgrade failed: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	return hub, srv
}

func dialItem(t *testing.T, srv *httptest.Server, itemID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?item_id=" + itemID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readPayload(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	return payload
}

func TestHub_BroadcastReachesOnlyItemWatchers(t *testing.T) {
	hub, srv := startHub(t)

	watcherA := dialItem(t, srv, "item1")
	watcherB := dialItem(t, srv, "item1")
	dialItem(t, srv, "item2")

	require.Eventually(t, func() bool {
		return hub.SubscriberCount("item1") == 2 && hub.SubscriberCount("item2") == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast("item1", []byte(`{"hello":"watchers"}`))

	require.JSONEq(t, `{"hello":"watchers"}`, string(readPayload(t, watcherA)))
	require.JSONEq(t, `{"hello":"watchers"}`, string(readPayload(t, watcherB)))
	require.Equal(t, 1, hub.SubscriberCount("item2"))
}

func TestHub_ClientDisconnectUnsubscribes(t *testing.T) {
	hub, srv := startHub(t)

	conn := dialItem(t, srv, "item1")
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("item1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.SubscriberCount("item1") == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLocalBroker_PublishBid(t *testing.T) {
	hub, srv := startHub(t)

	conn := dialItem(t, srv, "item1")
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("item1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	broker := NewLocalBroker(hub)
	sent := BidEvent{
		ItemID: "item1",
		Bid: model.Bid{
			BidID:    "bid1",
			ItemID:   "item1",
			BidderID: "user1",
			Amount:   decimal.NewFromInt(105),
		},
		CurrentBid:     decimal.NewFromInt(105),
		MinimumNextBid: decimal.NewFromInt(111),
	}
	require.NoError(t, broker.PublishBid(context.Background(), sent))

	var got BidEvent
	require.NoError(t, json.Unmarshal(readPayload(t, conn), &got))
	require.Equal(t, KindBid, got.Kind)
	require.Equal(t, "item1", got.ItemID)
	require.Equal(t, "bid1", got.Bid.BidID)
	require.True(t, got.CurrentBid.Equal(decimal.NewFromInt(105)))
	require.True(t, got.MinimumNextBid.Equal(decimal.NewFromInt(111)))
}

func TestLocalBroker_PublishChat(t *testing.T) {
	hub, srv := startHub(t)

	conn := dialItem(t, srv, "item1")
	require.Eventually(t, func() bool {
		return hub.SubscriberCount("item1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	broker := NewLocalBroker(hub)
	sent := ChatEvent{
		ItemID:    "item1",
		MessageID: "msg1",
		UserID:    "user1",
		Username:  "alice",
		Message:   "going once",
		SentAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, broker.PublishChat(context.Background(), sent))

	var got ChatEvent
	require.NoError(t, json.Unmarshal(readPayload(t, conn), &got))
	require.Equal(t, KindChat, got.Kind)
	require.Equal(t, "item1", got.ItemID)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "going once", got.Message)
}
