package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lophocvn/lophoc-backend/internal/config"
	"github.com/lophocvn/lophoc-backend/internal/database"
	"github.com/lophocvn/lophoc-backend/internal/logger"
	"github.com/lophocvn/lophoc-backend/internal/model"
	"github.com/lophocvn/lophoc-backend/internal/repository"
	"github.com/lophocvn/lophoc-backend/internal/service"
	"github.com/lophocvn/lophoc-backend/internal/weekkey"
)

// seed populates a development database with a class, its roster and a
// first week of schedules.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	scheduleRepo := repository.NewScheduleRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	tokenService := service.NewTokenService(cfg)
	userService := service.NewUserService(userRepo, tokenService)
	classService := service.NewClassService(classRepo, userRepo)
	studentService := service.NewStudentService(studentRepo, classRepo)
	scheduleService := service.NewScheduleService(
		pool, scheduleRepo, enrollmentRepo, attendanceRepo,
		studentRepo, classRepo, userRepo, rdb, cfg, log,
	)

	fmt.Println("=== Seeding Development Data ===")

	// Staff: one manager, one teacher.
	manager, err := userService.Create(ctx, &model.CreateUserRequest{
		Email:    "quanly@lophoc.vn",
		FullName: "Trần Thị Hoa",
		Role:     model.RoleManager,
		Password: "lophoc123",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create manager")
	}
	teacher, err := userService.Create(ctx, &model.CreateUserRequest{
		Email:    "giaovien@lophoc.vn",
		FullName: "Nguyễn Văn Minh",
		Role:     model.RoleTeacher,
		Password: "lophoc123",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create teacher")
	}

	class, err := classService.Create(ctx, &model.CreateClassRequest{
		Name:        "10A1",
		Description: "Lớp luyện thi khối 10",
		ManagerID:   &manager.ID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create class")
	}
	fmt.Printf("Created class %s with ID: %d\n", class.Name, class.ID)

	names := []string{
		"Nguyễn Văn An", "Trần Thị Bích", "Lê Hoàng Cường", "Phạm Thu Dung",
		"Hoàng Minh Đức", "Vũ Thị Hạnh", "Đặng Quốc Huy", "Bùi Thị Lan",
		"Đỗ Văn Long", "Ngô Thị Mai", "Dương Văn Nam", "Lý Thị Oanh",
		"Phan Văn Phúc", "Võ Thị Quỳnh", "Trịnh Văn Sơn", "Mai Thị Thảo",
		"Hồ Văn Tùng", "Đinh Thị Uyên", "Lưu Văn Vinh", "Cao Thị Yến",
	}

	successCount := 0
	for i, name := range names {
		_, err := studentService.Create(ctx, &model.CreateStudentRequest{
			StudentCode: fmt.Sprintf("HS%04d", i+1),
			FullName:    name,
			ClassID:     &class.ID,
		})
		if err != nil {
			fmt.Printf("Error creating student %s: %v\n", name, err)
			continue
		}
		successCount++
	}
	fmt.Printf("Created %d/%d students\n", successCount, len(names))

	// A first week of schedules; the roster auto-enrolls on create.
	week := weekkey.Current()
	slots := []struct {
		day        int
		session    model.DaySession
		start, end string
		subject    string
	}{
		{1, model.SessionEvening, "18:00", "19:30", "Toán"},
		{3, model.SessionEvening, "18:00", "19:30", "Ngữ văn"},
		{6, model.SessionMorning, "08:00", "09:30", "Tiếng Anh"},
	}
	for _, slot := range slots {
		sched, enrolled, err := scheduleService.Create(ctx, &model.CreateScheduleRequest{
			ClassID:   class.ID,
			TeacherID: teacher.ID,
			DayOfWeek: slot.day,
			Session:   slot.session,
			StartTime: slot.start,
			EndTime:   slot.end,
			Subject:   slot.subject,
			Room:      "P101",
			WeekKey:   week,
		})
		if err != nil {
			fmt.Printf("Error creating schedule %s: %v\n", slot.subject, err)
			continue
		}
		fmt.Printf("Created schedule %d (%s) with %d students enrolled\n",
			sched.ID, slot.subject, enrolled)
	}

	fmt.Println("\nSeed completed!")
}
