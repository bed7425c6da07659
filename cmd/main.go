package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rems1212/Employee-Canteen/internal/handler"
	"github.com/rems1212/Employee-Canteen/internal/ledger"
	"github.com/rems1212/Employee-Canteen/internal/middleware"
	"github.com/rems1212/Employee-Canteen/internal/reconcile"
	"github.com/rems1212/Employee-Canteen/internal/stock"
	"github.com/rems1212/Employee-Canteen/pkg/config"
	"github.com/rems1212/Employee-Canteen/pkg/database"
	"github.com/rems1212/Employee-Canteen/pkg/jwtutil"
	"github.com/rems1212/Employee-Canteen/pkg/logger"
	"github.com/rems1212/Employee-Canteen/pkg/metrics"
	"github.com/rems1212/Employee-Canteen/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting canteen service...", cfg.LogConfig()...)

	// Initialize JWT utilities
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utilities initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	httpMetrics := metrics.NewHTTPMetrics(cfg.ServiceName)
	log.Info("Prometheus metrics initialized")

	// Initialize database and run migrations
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	// Core services over the shared gorm connection
	attendanceLedger := ledger.NewService(ledger.NewGormRepository(database.GetDB()))
	stockLedger := stock.NewService(stock.NewGormRepository(database.GetDB()))

	attendanceHandler := handler.NewAttendanceHandler(attendanceLedger)
	inventoryHandler := handler.NewInventoryHandler(stockLedger)

	// Periodic usage ledger consistency check
	checker := reconcile.NewChecker(reconcile.NewGormRepository(database.GetDB()), log)
	sched := cron.New()
	if _, err := sched.AddFunc(cfg.Reconcile.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := checker.Run(ctx); err != nil {
			log.Error("Usage ledger reconciliation run failed", zap.Error(err))
		}
	}); err != nil {
		log.Fatal("Failed to schedule reconciliation job",
			zap.String("schedule", cfg.Reconcile.Schedule),
			zap.Error(err))
	}
	sched.Start()
	log.Info("Reconciliation job scheduled", zap.String("schedule", cfg.Reconcile.Schedule))

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(httpMetrics.Middleware())

	// Request logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			log := logger.FromContext(c)
			log.Info("HTTP Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			)

			return err
		}
	})

	// Public routes
	e.GET("/", handler.Hello)
	e.GET("/health", handler.Hello)
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))

	api := e.Group("/api")

	api.POST("/register", handler.Register)
	api.POST("/login", handler.Login)
	api.GET("/verify-token", handler.VerifyToken)

	api.GET("/customers", handler.ListCustomers)
	api.POST("/customers", handler.CreateCustomer)

	api.GET("/sales", handler.ListSales)
	api.POST("/sales", handler.CreateSale)
	api.GET("/revenue", handler.Revenue)

	api.GET("/suppliers", handler.ListSuppliers)
	api.POST("/suppliers", handler.CreateSupplier)

	api.POST("/attendance", attendanceHandler.Submit)
	api.GET("/attendance", attendanceHandler.RollCall)
	api.GET("/attendance/:employeeId", attendanceHandler.ByEmployee)
	api.GET("/leave-balance/:employeeId", attendanceHandler.LeaveBalances)

	// Usage history is a read-side join, public like the other reports
	api.GET("/inventory/used", inventoryHandler.UsageHistory)

	// Routes that require authentication and canteen scope
	authed := api.Group("", middleware.AuthMiddleware, middleware.RequireCanteenContext)

	authed.POST("/employees", handler.CreateEmployee)
	authed.GET("/employees", handler.ListEmployees)
	authed.GET("/employees/category/:category", handler.ListEmployeesByCategory)
	authed.PUT("/employees/:id", handler.UpdateEmployee)
	authed.DELETE("/employees/:id", handler.DeleteEmployee)

	authed.GET("/inventory", inventoryHandler.List)
	authed.POST("/inventory", inventoryHandler.Add)
	authed.PUT("/inventory/:id", inventoryHandler.Use)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
