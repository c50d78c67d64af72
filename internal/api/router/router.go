package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-ops/backend/config"
	"event-ops/backend/internal/api/handler"
	"event-ops/backend/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时扫码接口不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	scanLimit := middleware.RateLimit(limiter, cfg.Scan.RateLimit, cfg.Scan.RateWindow, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 组织者模块
		organizers := v1.Group("/organizers")
		{
			organizers.POST("", h.Organizer.CreateOrganizer)
			organizers.GET("", h.Organizer.ListOrganizers)
			organizers.GET("/search", h.Organizer.SearchOrganizers)
			organizers.GET("/absent", h.Organizer.ListAbsentOrganizers)
			organizers.GET("/present", h.Organizer.ListPresentOrganizers)
			organizers.GET("/:id", h.Organizer.GetOrganizer)
			organizers.PUT("/:id", h.Organizer.UpdateOrganizer)
			organizers.DELETE("/:id", h.Organizer.DeleteOrganizer)
			organizers.GET("/:id/assignments", h.Assignment.ListOrganizerAssignments)
			organizers.GET("/:id/tasks", h.Assignment.ListOrganizerTasks)
			organizers.GET("/:id/calendar.ics", h.Assignment.GetOrganizerCalendar)
		}

		// 参与者模块
		participants := v1.Group("/participants")
		{
			participants.POST("", h.Participant.CreateParticipant)
			participants.GET("", h.Participant.ListParticipants)
			participants.GET("/qr/:code", h.Participant.GetParticipantByQR)
			participants.GET("/:id", h.Participant.GetParticipant)
			participants.PUT("/:id", h.Participant.UpdateParticipant)
			participants.DELETE("/:id", h.Participant.DeleteParticipant)
		}

		// 任务模块
		tasks := v1.Group("/tasks")
		{
			tasks.POST("", h.Task.CreateTask)
			tasks.GET("", h.Task.ListTasks)
			tasks.GET("/search", h.Task.SearchTasks)
			tasks.GET("/unfinished", h.Task.ListUnfinishedTasks)
			tasks.GET("/late", h.Task.ListLateTasks)
			tasks.GET("/:id", h.Task.GetTask)
			tasks.PUT("/:id", h.Task.UpdateTask)
			tasks.DELETE("/:id", h.Task.DeleteTask)

			// 任务分配
			tasks.PUT("/:id/assignment", h.Assignment.UpsertAssignment)
			tasks.GET("/:id/assignment", h.Assignment.GetAssignment)

			// 扫码签到（限流）
			tasks.POST("/:id/scans", scanLimit, h.Attendance.MarkScanned)
			tasks.GET("/:id/scans/history", h.Attendance.ListScanHistory)
			tasks.GET("/:id/scans/:participantId", h.Attendance.GetScanStatus)
			tasks.DELETE("/:id/scans/:participantId", scanLimit, h.Attendance.MarkUnscanned)

			// 参与者扫码状态
			tasks.GET("/:id/participants", h.Attendance.ListParticipantsWithStatus)
			tasks.GET("/:id/participants/scanned", h.Attendance.ListScannedParticipants)
			tasks.GET("/:id/participants/unscanned", h.Attendance.ListUnscannedParticipants)
		}

		// 活动模块
		events := v1.Group("/events")
		{
			events.POST("", h.Event.CreateEvent)
			events.GET("", h.Event.ListEvents)
			events.GET("/:id", h.Event.GetEvent)
			events.PUT("/:id", h.Event.UpdateEvent)
			events.DELETE("/:id", h.Event.DeleteEvent)
		}

		// 管理员模块
		admins := v1.Group("/admins")
		{
			admins.POST("", h.Admin.CreateAdmin)
			admins.GET("", h.Admin.ListAdmins)
			admins.GET("/search", h.Admin.SearchAdmins)
			admins.GET("/:id", h.Admin.GetAdmin)
			admins.PUT("/:id", h.Admin.UpdateAdmin)
			admins.DELETE("/:id", h.Admin.DeleteAdmin)
		}

		// 实时推送
		v1.GET("/ws/tasks/:id/scans", h.Realtime.SubscribeScans)
	}

	return r
}
