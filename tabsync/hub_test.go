package tabsync

import (
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

func dialTab(t *testing.T, hub *Hub, sessionID string) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Subscribe(w, r, sessionID)
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestBroadcastReachesEveryTabOfTheSession(t *testing.T) {
	hub := NewHub()

	tab1, close1 := dialTab(t, hub, "session_1_aa")
	defer close1()
	tab2, close2 := dialTab(t, hub, "session_1_aa")
	defer close2()

	require.Eventually(t, func() bool {
		return hub.TabCount("session_1_aa") == 2
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast("session_1_aa", "cart")

	for _, conn := range []*websocket.Conn{tab1, tab2} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, "cart", ev.Kind)
		assert.Equal(t, "session_1_aa", ev.SessionID)
	}
}

func TestBroadcastDoesNotCrossSessions(t *testing.T) {
	hub := NewHub()

	other, closeOther := dialTab(t, hub, "session_2_bb")
	defer closeOther()

	require.Eventually(t, func() bool {
		return hub.TabCount("session_2_bb") == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast("session_1_aa", "wishlist")

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := other.ReadMessage()
	assert.Error(t, err) // read times out, nothing was sent
}

// Two handlers mutating the same session's cart broadcast at the same time;
// each connection allows only one writer, so the hub must serialize them.
func TestSimultaneousBroadcastsToOneTab(t *testing.T) {
	hub := NewHub()

	tab, closeTab := dialTab(t, hub, "session_4_dd")
	defer closeTab()

	require.Eventually(t, func() bool {
		return hub.TabCount("session_4_dd") == 1
	}, time.Second, 10*time.Millisecond)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast("session_4_dd", "cart")
		}()
	}
	wg.Wait()

	tab.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < n; i++ {
		_, data, err := tab.ReadMessage()
		require.NoError(t, err)

		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, "cart", ev.Kind)
		assert.Equal(t, "session_4_dd", ev.SessionID)
	}
}

func TestClosedTabIsDropped(t *testing.T) {
	hub := NewHub()

	_, closeTab := dialTab(t, hub, "session_3_cc")
	require.Eventually(t, func() bool {
		return hub.TabCount("session_3_cc") == 1
	}, time.Second, 10*time.Millisecond)

	closeTab()

	require.Eventually(t, func() bool {
		return hub.TabCount("session_3_cc") == 0
	}, time.Second, 10*time.Millisecond)
}
