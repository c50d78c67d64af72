package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"event-ops/backend/internal/api/middleware"
	"event-ops/backend/internal/realtime"
)

// 客户端只接收推送，读取仅用于感知断开
const wsReadLimit = 512

// RealtimeHandler 扫码实时推送 WebSocket 处理器
type RealtimeHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewRealtimeHandler 创建 RealtimeHandler，握手 Origin 复用 CORS 白名单
func NewRealtimeHandler(hub *realtime.Hub, allowOrigins []string, logger *zap.Logger) *RealtimeHandler {
	allowed := middleware.OriginAllowlist(allowOrigins)
	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed(origin)
			},
		},
		logger: logger,
	}
}

// SubscribeScans 订阅任务的扫码状态变更
// GET /api/v1/ws/tasks/:id/scans
func (h *RealtimeHandler) SubscribeScans(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket 握手失败", zap.String("task_id", string(taskID)), zap.Error(err))
		return
	}
	conn.SetReadLimit(wsReadLimit)

	h.hub.Subscribe(taskID, conn)
	defer h.hub.Unsubscribe(taskID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
