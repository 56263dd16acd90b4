package qna

import (
	"github.com/psyoonchild719/online-library-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, jwtSecret string) {
	qnaGroup := rg.Group("/qna")
	qnaGroup.Use(middleware.AuthMiddleware(jwtSecret))
	{
		qnaGroup.GET("/questions", handler.ListQuestions)
		qnaGroup.GET("/questions/:id", handler.GetQuestion)
		qnaGroup.POST("/questions", handler.CreateQuestion)
		qnaGroup.GET("/questions/:id/comments", handler.ListComments)
		qnaGroup.POST("/questions/:id/comments", handler.AddComment)
	}
}
