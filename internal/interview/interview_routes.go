package interview

import (
	"github.com/psyoonchild719/online-library-dashboard/internal/middleware"
	"github.com/psyoonchild719/online-library-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, jwtSecret string, enforcer *rbac.Service) {
	interviewGroup := rg.Group("/interview")
	interviewGroup.Use(middleware.AuthMiddleware(jwtSecret))
	{
		interviewGroup.GET("/cases", handler.ListCases)
		interviewGroup.GET("/cases/:id", handler.GetCase)

		interviewGroup.POST("/answers", handler.SaveAnswer)
		interviewGroup.GET("/answers", handler.ListAnswers)
		interviewGroup.DELETE("/answers/:id", handler.DeleteAnswer)

		interviewGroup.POST("/practice", handler.LogPractice)
		interviewGroup.GET("/practice/stats", handler.GetPracticeStats)

		caseWrite := middleware.RBACAuthorize(enforcer, "interview_cases", "write")
		interviewGroup.POST("/cases", caseWrite, handler.CreateCase)
		interviewGroup.PUT("/cases/:id", caseWrite, handler.UpdateCase)
		interviewGroup.DELETE("/cases/:id", caseWrite, handler.DeleteCase)

		questionWrite := middleware.RBACAuthorize(enforcer, "interview_questions", "write")
		interviewGroup.POST("/cases/:id/questions", questionWrite, handler.AddQuestion)
		interviewGroup.PUT("/questions/:id", questionWrite, handler.UpdateQuestion)
		interviewGroup.DELETE("/questions/:id", questionWrite, handler.DeleteQuestion)

		interviewGroup.POST("/seed",
			middleware.RBACAuthorize(enforcer, "interview_seed", "write"),
			handler.Seed,
		)
	}
}
