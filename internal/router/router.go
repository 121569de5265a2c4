package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lophocvn/lophoc-backend/internal/config"
	"github.com/lophocvn/lophoc-backend/internal/handler"
	"github.com/lophocvn/lophoc-backend/internal/middleware"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/response"
	"github.com/lophocvn/lophoc-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Schedule   *handler.ScheduleHandler
	Enrollment *handler.EnrollmentHandler
	Attendance *handler.AttendanceHandler
	Class      *handler.ClassHandler
	Student    *handler.StudentHandler
	User       *handler.UserHandler
	Finance    *handler.FinanceHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokenService *service.TokenService,
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

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for mutating schedule routes (60 requests per minute per IP).
	writeLimiter := middleware.NewRateLimiter(60, time.Minute)

	staff := middleware.RequireActor(tokenService)
	manage := middleware.RequireRole(model.RoleAdmin, model.RoleManager)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// ─── 1. Staff API (JWT) ────────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(staff)
	{
		// Week helpers and the timetable view are readable by any staff role.
		api.GET("/weeks", handlers.Schedule.Weeks)
		api.GET("/timetable", handlers.Schedule.Timetable)

		// Schedules
		api.GET("/schedules", handlers.Schedule.List)
		api.GET("/schedules/:id", handlers.Schedule.Get)
		api.POST("/schedules", manage, writeLimiter.Middleware(), handlers.Schedule.Create)
		api.PUT("/schedules/:id", manage, writeLimiter.Middleware(), handlers.Schedule.Update)
		api.DELETE("/schedules/:id", manage, writeLimiter.Middleware(), handlers.Schedule.Delete)
		api.POST("/schedules/copy-week", manage, writeLimiter.Middleware(), handlers.Schedule.CopyWeek)

		// Enrollments
		api.GET("/schedules/:id/enrollments", handlers.Enrollment.Roster)
		api.POST("/schedules/:id/enrollments", manage, handlers.Enrollment.BulkEnroll)
		api.POST("/schedules/:id/enrollments/sync", manage, handlers.Enrollment.SyncRoster)
		api.POST("/schedules/:id/enrollments/:student_id", manage, handlers.Enrollment.Enroll)
		api.DELETE("/schedules/:id/enrollments/:student_id", manage, handlers.Enrollment.Unenroll)

		// Attendance (teachers record their own sessions)
		api.POST("/attendance", handlers.Attendance.Mark)
		api.GET("/schedules/:id/attendance", handlers.Attendance.ListBySchedule)

		// Classes
		api.GET("/classes", handlers.Class.List)
		api.GET("/classes/:id", handlers.Class.Get)
		api.POST("/classes", adminOnly, handlers.Class.Create)
		api.PUT("/classes/:id", adminOnly, handlers.Class.Update)
		api.DELETE("/classes/:id", adminOnly, handlers.Class.Delete)

		// Students
		api.GET("/students", handlers.Student.List)
		api.GET("/students/:id", handlers.Student.Get)
		api.POST("/students", manage, handlers.Student.Create)
		api.PUT("/students/:id", manage, handlers.Student.Update)
		api.DELETE("/students/:id", manage, handlers.Student.Delete)

		// Staff users
		api.GET("/users", handlers.User.List)
		api.GET("/users/:id", handlers.User.Get)
		api.POST("/users", adminOnly, handlers.User.Create)
		api.PUT("/users/:id", adminOnly, handlers.User.Update)
		api.DELETE("/users/:id", adminOnly, handlers.User.Delete)

		// Finance ledger (admin bookkeeping)
		api.GET("/finance/transactions", adminOnly, handlers.Finance.List)
		api.POST("/finance/transactions", adminOnly, handlers.Finance.Create)
		api.GET("/finance/transactions/:id", adminOnly, handlers.Finance.Get)
		api.DELETE("/finance/transactions/:id", adminOnly, handlers.Finance.Delete)
		api.GET("/finance/summary", adminOnly, handlers.Finance.Summary)
	}

	// ─── 2. WebSocket Group (WS Auth via ?token=) ──────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(tokenService))
	{
		ws.GET("/schedules/stream", handlers.WS.ScheduleStream)
	}

	return router
}
