package auth

import (
	"github.com/psyoonchild719/online-library-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, jwtSecret string) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/google", handler.LoginWithGoogle)
		authGroup.POST("/refresh", handler.Refresh)
		authGroup.GET("/me", middleware.AuthMiddleware(jwtSecret), handler.GetMe)
	}
}
