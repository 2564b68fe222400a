package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, h *Hub) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(h.ServeHTTP))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for h.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, h.Count())
		}

		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	h := NewHub()

	conn, cleanup := dialHub(t, h)
	defer cleanup()

	waitForClients(t, h, 1)

	h.Broadcast(EventStockUpdated, map[string]interface{}{
		"product_id":     "p1",
		"stock_quantity": 4,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(payload, &msg))

	assert.Equal(t, EventStockUpdated, msg.Event)
	assert.False(t, msg.Timestamp.IsZero())

	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "p1", data["product_id"])
}

func TestClientDisconnectLowersCount(t *testing.T) {
	h := NewHub()

	conn, cleanup := dialHub(t, h)
	defer cleanup()

	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)
}

func TestBroadcastDuringDisconnect(t *testing.T) {
	h := NewHub()

	stop := make(chan struct{})

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			select {
			case <-stop:
				return
			default:
				h.Broadcast(EventStockUpdated, map[string]int{"stock_quantity": 1})
			}
		}
	}()

	// Register and immediately drop clients while broadcasts are in
	// flight. The single-slot buffer also forces the slow-client
	// eviction path.
	for i := 0; i < 200; i++ {
		c := &client{send: make(chan []byte, 1)}
		require.True(t, h.register(c))
		h.unregister(c)
	}

	close(stop)
	wg.Wait()
}

func TestRunClosesClientsOnCancel(t *testing.T) {
	h := NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		h.Run(ctx)
		close(done)
	}()

	conn, cleanup := dialHub(t, h)
	defer cleanup()

	waitForClients(t, h, 1)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	assert.Equal(t, 0, h.Count())

	// Further broadcasts must not panic after shutdown.
	h.Broadcast(EventQuoteCreated, nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
