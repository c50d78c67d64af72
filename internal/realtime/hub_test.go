package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"event-ops/backend/internal/model"
)

func newTestServer(t *testing.T, hub *Hub, taskID model.TaskID) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Subscribe(taskID, conn)
		defer hub.Unsubscribe(taskID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_BroadcastToSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := newTestServer(t, hub, "t1")
	client := dial(t, srv)

	require.Eventually(t, func() bool { return hub.Subscribers("t1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast("t1", map[string]string{"participant_id": "p1"})
	// 其他任务的推送不应送达
	hub.Broadcast("t2", map[string]string{"participant_id": "p2"})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	require.Equal(t, MessageTypeScan, msg.Type)
	require.Equal(t, "p1", msg.Data["participant_id"])

	require.NoError(t, client.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = client.ReadMessage()
	require.Error(t, err, "不应收到其他任务的消息")
}

func TestHub_UnsubscribeOnDisconnect(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := newTestServer(t, hub, "t1")
	client := dial(t, srv)

	require.Eventually(t, func() bool { return hub.Subscribers("t1") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, client.Close())
	require.Eventually(t, func() bool { return hub.Subscribers("t1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastWithoutSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	require.NotPanics(t, func() { hub.Broadcast("nobody", "x") })
	require.Zero(t, hub.Subscribers("nobody"))
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := newTestServer(t, hub, "t1")
	client := dial(t, srv)

	require.Eventually(t, func() bool { return hub.Subscribers("t1") == 1 }, time.Second, 10*time.Millisecond)
	hub.Close()
	require.Zero(t, hub.Subscribers("t1"))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := client.ReadMessage()
	require.Error(t, err)
}

func TestHub_SlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := newTestServer(t, hub, "slow")
	// 客户端只连接不读取，服务端写入最终阻塞在 TCP 缓冲区
	_ = dial(t, srv)

	require.Eventually(t, func() bool { return hub.Subscribers("slow") == 1 }, time.Second, 10*time.Millisecond)

	payload := strings.Repeat("x", 256<<10)
	start := time.Now()
	for i := 0; i < 128; i++ {
		hub.Broadcast("slow", payload)
	}
	require.Less(t, time.Since(start), 2*time.Second, "广播不应等待慢连接的网络写入")

	start = time.Now()
	hub.Broadcast("fast", "x")
	require.Less(t, time.Since(start), 100*time.Millisecond, "其他任务的广播不应受慢连接影响")

	require.Eventually(t, func() bool { return hub.Subscribers("slow") == 0 }, 2*time.Second, 10*time.Millisecond,
		"队列写满的慢连接应被断开")
}

func TestHub_UnsubscribeTwice(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := newTestServer(t, hub, "t1")
	client := dial(t, srv)

	require.Eventually(t, func() bool { return hub.Subscribers("t1") == 1 }, time.Second, 10*time.Millisecond)
	hub.Close()
	require.NoError(t, client.Close())

	// 服务端 handler 退出时会再次 Unsubscribe，不应重复关闭队列
	require.NotPanics(t, func() { hub.Broadcast("t1", "after-close") })
}
