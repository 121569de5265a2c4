package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lophocvn/lophoc-backend/internal/config"
	"github.com/lophocvn/lophoc-backend/internal/database"
	"github.com/lophocvn/lophoc-backend/internal/handler"
	"github.com/lophocvn/lophoc-backend/internal/logger"
	"github.com/lophocvn/lophoc-backend/internal/repository"
	"github.com/lophocvn/lophoc-backend/internal/router"
	"github.com/lophocvn/lophoc-backend/internal/service"
	"github.com/lophocvn/lophoc-backend/internal/validator"
	"github.com/lophocvn/lophoc-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting LopHoc Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	scheduleRepo := repository.NewScheduleRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	financeRepo := repository.NewFinanceRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	tokenService := service.NewTokenService(cfg)
	permissionService := service.NewPermissionService(classRepo, scheduleRepo)
	scheduleService := service.NewScheduleService(
		pool, scheduleRepo, enrollmentRepo, attendanceRepo,
		studentRepo, classRepo, userRepo, rdb, cfg, log,
	)
	enrollmentService := service.NewEnrollmentService(pool, enrollmentRepo, scheduleRepo, studentRepo, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, enrollmentRepo)
	classService := service.NewClassService(classRepo, userRepo)
	studentService := service.NewStudentService(studentRepo, classRepo)
	userService := service.NewUserService(userRepo, tokenService)
	financeService := service.NewFinanceService(financeRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Schedule:   handler.NewScheduleHandler(scheduleService, permissionService),
		Enrollment: handler.NewEnrollmentHandler(enrollmentService, permissionService),
		Attendance: handler.NewAttendanceHandler(attendanceService, permissionService),
		Class:      handler.NewClassHandler(classService),
		Student:    handler.NewStudentHandler(studentService),
		User:       handler.NewUserHandler(userService),
		Finance:    handler.NewFinanceHandler(financeService),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	timetableWorker := worker.NewTimetableWorker(scheduleService, log)
	go timetableWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load the current and next week timetables BEFORE accepting traffic
	// so the Monday-morning rush never stampedes the database.
	if err := scheduleService.PrewarmTimetables(ctx); err != nil {
		log.Warn().Err(err).Msg("Timetable prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(tokenService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
