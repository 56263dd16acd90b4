package member

import (
	"github.com/psyoonchild719/online-library-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, jwtSecret string) {
	members := r.Group("/members")
	members.Use(middleware.AuthMiddleware(jwtSecret))
	{
		members.GET("", h.GetAll)
		members.GET("/:id", h.GetByID)
	}
}
