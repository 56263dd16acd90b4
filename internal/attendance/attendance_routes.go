package attendance

import (
	"github.com/psyoonchild719/online-library-dashboard/internal/middleware"
	"github.com/psyoonchild719/online-library-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, jwtSecret string, enforcer *rbac.Service, eventGuards ...gin.HandlerFunc) {
	attendanceGroup := rg.Group("/attendance")
	attendanceGroup.Use(middleware.AuthMiddleware(jwtSecret))
	{
		attendanceGroup.POST("/events", append(eventGuards, handler.RecordEvent)...)
		attendanceGroup.GET("/recent", handler.GetRecent)
		attendanceGroup.GET("/members/:id/sessions", handler.GetMemberSessions)
		attendanceGroup.GET("/summary", handler.GetSummary)

		attendanceGroup.DELETE("/logs/:id",
			middleware.RBACAuthorize(enforcer, "attendance_logs", "delete"),
			handler.DeleteLog,
		)
	}
}
