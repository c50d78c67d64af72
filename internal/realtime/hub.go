package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"event-ops/backend/internal/model"
)

const (
	writeTimeout = 5 * time.Second
	// 每个连接的待发送队列长度，写满即视为慢消费者并断开
	sendBuffer = 16
)

// MessageTypeScan 扫码状态变更推送
const MessageTypeScan = "scan"

// Message 推送给客户端的消息
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client 单个订阅连接，send 只由写协程消费
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub 按任务分组的 WebSocket 连接集合
// Broadcast 只做非阻塞入队，实际写入由每个连接各自的写协程完成
type Hub struct {
	mu     sync.RWMutex
	tasks  map[model.TaskID]map[*websocket.Conn]*client
	logger *zap.Logger
}

// NewHub 创建 Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		tasks:  make(map[model.TaskID]map[*websocket.Conn]*client),
		logger: logger.Named("realtime"),
	}
}

// Subscribe 将连接加入任务的推送组并启动写协程
func (h *Hub) Subscribe(taskID model.TaskID, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.tasks[taskID] == nil {
		h.tasks[taskID] = make(map[*websocket.Conn]*client)
	}
	h.tasks[taskID][conn] = c
	count := len(h.tasks[taskID])
	h.mu.Unlock()

	h.logger.Debug("客户端已订阅",
		zap.String("task_id", string(taskID)),
		zap.Int("subscribers", count),
	)

	go h.writePump(taskID, c)
}

// Unsubscribe 移除并关闭连接
func (h *Hub) Unsubscribe(taskID model.TaskID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(taskID, conn)
}

// Broadcast 向订阅该任务的所有连接投递一条扫码消息，不等待网络写入
// 队列已满的连接被断开
func (h *Hub) Broadcast(taskID model.TaskID, payload interface{}) {
	data, err := json.Marshal(Message{Type: MessageTypeScan, Data: payload})
	if err != nil {
		h.logger.Error("推送消息序列化失败", zap.Error(err))
		return
	}

	var slow []*websocket.Conn
	h.mu.RLock()
	for conn, c := range h.tasks[taskID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range slow {
		h.logger.Warn("推送队列已满，断开慢连接", zap.String("task_id", string(taskID)))
		h.Unsubscribe(taskID, conn)
	}
}

// Subscribers 返回任务当前的订阅数
func (h *Hub) Subscribers(taskID model.TaskID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tasks[taskID])
}

// Close 关闭全部连接，用于服务退出
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for taskID, conns := range h.tasks {
		for conn := range conns {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(time.Second))
			h.removeLocked(taskID, conn)
		}
	}
}

// writePump 串行写出队列中的消息；队列关闭或写失败时退出
func (h *Hub) writePump(taskID model.TaskID, c *client) {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("推送失败，断开连接", zap.String("task_id", string(taskID)), zap.Error(err))
			h.Unsubscribe(taskID, c.conn)
			return
		}
	}
}

// removeLocked 调用方须持有写锁；关闭 send 后写协程自行退出
func (h *Hub) removeLocked(taskID model.TaskID, conn *websocket.Conn) {
	conns, ok := h.tasks[taskID]
	if !ok {
		return
	}
	c, ok := conns[conn]
	if !ok {
		return
	}
	delete(conns, conn)
	close(c.send)
	_ = conn.Close()
	if len(conns) == 0 {
		delete(h.tasks, taskID)
	}
	h.logger.Debug("客户端已断开", zap.String("task_id", string(taskID)))
}
