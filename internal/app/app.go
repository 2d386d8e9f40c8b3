package app

import (
	"os"

	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/config"
	"go-attendance/internal/department"
	"go-attendance/internal/employee"
	"go-attendance/internal/middleware"
	"go-attendance/internal/migrations"
	"go-attendance/internal/shared/connection"
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure, services and routes onto the router.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := migrations.Up(sqlDB); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
	if err != nil {
		// Without Redis, logout cannot revoke tokens early; everything else
		// keeps working.
		zap.L().Warn("redis unavailable, token revocation disabled", zap.Error(err))
		rdb = nil
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return err
	}

	userRepo := user.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)

	departmentService := department.NewService(departmentRepo)
	employeeService := employee.NewService(sqlDB, employeeRepo, userRepo, departmentService)
	authService := auth.NewService(
		sqlDB,
		userRepo,
		employeeRepo,
		employeeService,
		departmentService,
		rdb,
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
	)
	attendanceService := attendance.NewService(attendanceRepo, employeeService)

	authMW := middleware.AuthMiddleware(cfg.Auth.JWTSecret, rdb)

	api := router.Group("/api/v1")
	department.RegisterRoutes(api, department.NewHandler(departmentService))
	auth.RegisterRoutes(api, auth.NewHandler(authService), authMW)
	employee.RegisterRoutes(api, employee.NewHandler(employeeService, cfg.Uploads.Dir), authMW)
	attendance.RegisterRoutes(api, attendance.NewHandler(attendanceService), authMW)

	return nil
}
