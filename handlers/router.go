package handlers

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	cors "github.com/itsjamie/gin-cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(svr *Service) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(requestid.New())
	router.Use(cors.Middleware(cors.Config{
		Origins:         svr.Config.SiteBaseURL,
		Methods:         "GET, PUT, POST, DELETE, HEAD, PATCH",
		RequestHeaders:  "Origin, Authorization, Content-Type, Content-Length",
		ExposedHeaders:  "Correlation-Id",
		MaxAge:          12 * time.Hour,
		Credentials:     false,
		ValidateHeaders: false,
	}))

	router.GET("/service/api/portfolio/v1/health", svr.Health)
	router.GET("/service/api/portfolio/v1/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/service/api/portfolio/v1")

	// Self-service routes; password reset is reachable without a session by
	// design.
	v1.POST("/auth/register", svr.Register)
	v1.POST("/auth/password-reset/pin", svr.RequestPasswordResetPin)
	v1.POST("/auth/password-reset/verify", svr.VerifyPasswordResetPin)
	v1.POST("/auth/password-reset/link", svr.SendPasswordResetLink)

	authed := v1.Group("", svr.authRequired)
	authed.POST("/profile", svr.UpdateProfile)
	authed.POST("/notifications/like", svr.NotifyLike)
	authed.POST("/notifications/follow", svr.NotifyFollow)

	admin := authed.Group("/admin", svr.adminRequired)
	admin.POST("/cleanup", svr.CleanupNotifications)

	return router, nil
}
