package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lectorank/lectorank-backend/internal/config"
	"github.com/lectorank/lectorank-backend/internal/handler"
	"github.com/lectorank/lectorank-backend/internal/middleware"
	"github.com/lectorank/lectorank-backend/internal/response"
	"github.com/lectorank/lectorank-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	Vote          *handler.VoteHandler
	Lecturer      *handler.LecturerHandler
	LecturerAdmin *handler.LecturerAdminHandler
	AccountAdmin  *handler.AccountAdminHandler
	Feedback      *handler.FeedbackHandler
	Dashboard     *handler.DashboardHandler
	WS            *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireAccountJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAccountJWT(authService), handlers.Auth.Me)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 2. Public Listings (Optional Account Token) ───────────────────
	// Lecturer standings are readable without a token; a valid account
	// token adds the voted-today annotation.
	publicAPI := router.Group("/api/v1")
	publicAPI.Use(middleware.OptionalAccountJWT(authService))
	{
		publicAPI.GET("/lecturers", handlers.Lecturer.List)
		publicAPI.GET("/lecturers/:id", handlers.Lecturer.Get)
		publicAPI.GET("/feedback/summary", handlers.Feedback.Summary)
	}

	// ─── 3. Account Group (JWT + Single Session) ───────────────────────
	accountAPI := router.Group("/api/v1")
	accountAPI.Use(
		middleware.RequireAccountJWT(authService),
		middleware.CheckSingleSession(authService),
	)
	{
		accountAPI.POST("/lecturers/:id/vote", handlers.Vote.Cast)
		accountAPI.DELETE("/lecturers/:id/vote", handlers.Vote.Cancel)
		accountAPI.GET("/votes/history", handlers.Vote.History)
		accountAPI.POST("/feedback", handlers.Feedback.Submit)
	}

	// ─── 4. WebSocket Group (Account WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/leaderboard/stream", handlers.WS.LeaderboardStream)
	}

	// ─── 5. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Lecturer roster
		adminAPI.POST("/lecturers", handlers.LecturerAdmin.Create)
		adminAPI.PUT("/lecturers/:id", handlers.LecturerAdmin.Update)
		adminAPI.DELETE("/lecturers/:id", handlers.LecturerAdmin.Delete)

		// Account moderation
		adminAPI.GET("/accounts", handlers.AccountAdmin.List)
		adminAPI.POST("/accounts/:id/ban", handlers.AccountAdmin.Ban)
		adminAPI.POST("/accounts/:id/unban", handlers.AccountAdmin.Unban)

		// Quota reset
		adminAPI.POST("/reset-quotas", handlers.Vote.ResetQuotas)

		// Feedback review
		adminAPI.GET("/feedback", handlers.Feedback.Recent)

		// Dashboard
		adminAPI.GET("/dashboard", handlers.Dashboard.GetDashboardData)
	}

	return router
}
