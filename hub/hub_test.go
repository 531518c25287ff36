package hub

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/utils"
)

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Register(conn, "e1")
	}))
	t.Cleanup(server.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestBroadcastReachesClients(t *testing.T) {
	utils.SetOutput(io.Discard)
	h := New()
	client := dial(t, h)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 5*time.Millisecond)

	h.Broadcast("cache_filled", map[string]interface{}{"entity": "category", "count": 3})

	var msg struct {
		Event string                 `json:"event"`
		Data  map[string]interface{} `json:"data"`
	}
	client.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, "cache_filled", msg.Event)
	assert.Equal(t, "category", msg.Data["entity"])
}

func TestUnregisterIsIdempotent(t *testing.T) {
	utils.SetOutput(io.Discard)
	h := New()
	dial(t, h)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 5*time.Millisecond)

	h.mutex.Lock()
	var conn *websocket.Conn
	for c := range h.clients {
		conn = c
	}
	h.mutex.Unlock()

	h.Unregister(conn)
	h.Unregister(conn)
	assert.Equal(t, 0, h.Count())

	h.Broadcast("record_deleted", nil)
}

func TestSlowClientDoesNotBlockBroadcast(t *testing.T) {
	utils.SetOutput(io.Discard)
	h := New()
	h.buffer = 1
	dial(t, h)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 5*time.Millisecond)

	// the client never reads, so its socket buffers fill up
	big := strings.Repeat("x", 1<<20)
	start := time.Now()
	for i := 0; i < 40; i++ {
		h.Broadcast("cache_filled", big)
	}
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Eventually(t, func() bool { return h.Count() == 0 }, time.Second, 5*time.Millisecond)

	h.Broadcast("record_deleted", nil)
}
