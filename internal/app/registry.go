package app

import (
	"net/http"
	"time"

	"github.com/psyoonchild719/online-library-dashboard/internal/attendance"
	"github.com/psyoonchild719/online-library-dashboard/internal/auth"
	"github.com/psyoonchild719/online-library-dashboard/internal/interview"
	"github.com/psyoonchild719/online-library-dashboard/internal/member"
	"github.com/psyoonchild719/online-library-dashboard/internal/messaging/kafka"
	"github.com/psyoonchild719/online-library-dashboard/internal/middleware"
	"github.com/psyoonchild719/online-library-dashboard/internal/qna"
	"github.com/psyoonchild719/online-library-dashboard/internal/realtime"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/apperror"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Router wires every module into the API engine. The worker and consumer
// binaries never call this; they build only the services they run.
func (a *App) Router() *gin.Engine {
	apperror.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(a.Logger))
	r.Use(middleware.RateLimit(20, 40))

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	loc := a.Cfg.Location()

	memberRepo := member.NewRepository(a.DB)
	attendanceRepo := attendance.NewRepository(a.DB)
	outboxRepo := kafka.NewOutboxRepository(a.SQLDB)
	interviewRepo := interview.NewRepository(a.DB)
	qnaRepo := qna.NewRepository(a.DB)

	memberService := member.NewService(memberRepo)
	attendanceService := attendance.NewServiceWithOutbox(
		a.SQLDB, attendanceRepo, memberRepo, outboxRepo, a.Hub, loc, a.Logger,
	)
	interviewService := interview.NewService(interviewRepo, a.Redis, loc, a.Logger)
	qnaService := qna.NewService(qnaRepo, a.Logger)

	verifier := auth.NewGoogleVerifier(a.Cfg.GoogleClientID)
	authService := auth.NewService(verifier, memberRepo, attendanceRepo, a.Allow, auth.Config{
		JWTSecret: a.Cfg.JWTSecret,
	}, a.Logger)

	api := r.Group("/api/v1")

	auth.RegisterRoutes(api, auth.NewHandler(authService), a.Cfg.JWTSecret)
	member.RegisterRoutes(api, member.NewHandler(memberService), a.Cfg.JWTSecret)

	attendance.RegisterRoutes(api, attendance.NewHandler(attendanceService), a.Cfg.JWTSecret, a.RBAC,
		middleware.MemberRateLimit(2, 5),
		middleware.Idempotency(a.Redis, 10*time.Second),
	)

	interview.RegisterRoutes(api, interview.NewHandler(interviewService), a.Cfg.JWTSecret, a.RBAC)
	qna.RegisterRoutes(api, qna.NewHandler(qnaService), a.Cfg.JWTSecret)
	realtime.RegisterRoutes(api, realtime.NewHandler(a.Hub), a.Cfg.JWTSecret)

	return r
}
