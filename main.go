package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"absensiku_backend/internals/configs"
	database "absensiku_backend/internals/databases"
	gapService "absensiku_backend/internals/features/attendance/gaps/service"
	machineClient "absensiku_backend/internals/features/attendance/machine/client"
	machineService "absensiku_backend/internals/features/attendance/machine/service"
	pollingService "absensiku_backend/internals/features/attendance/polling/service"
	processingService "absensiku_backend/internals/features/attendance/processing/service"
	scheduler "absensiku_backend/internals/features/attendance/scheduler"
	middlewares "absensiku_backend/internals/middlewares"
	routes "absensiku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.MigratePipeline()
	database.WarmUpQueries()

	// 🔗 Rakit pipeline: client mesin → ingest → processor → orchestrator
	api := machineClient.New(configs.MachineBaseURL, configs.MachineUsername, configs.MachinePassword)
	ingest := machineService.NewIngestService(api, machineService.NewPunchStore(database.DB))
	employeeSync := machineService.NewEmployeeSyncService(api, machineService.NewEmployeeStore(database.DB))
	processor := processingService.NewProcessor(database.DB, ingest)
	orchestrator := pollingService.NewOrchestrator(
		pollingService.NewQueueStore(database.DB), ingest, processor)
	analyzer := gapService.NewGapAnalyzer(gapService.NewPunchCoverageStore(database.DB))
	backfill := gapService.NewBackfillService(analyzer, ingest)

	// ⏱ scheduler setelah DB siap
	scheduler.StartAttendanceCycleScheduler(processor)
	scheduler.StartPollingScheduler(orchestrator)

	// ❤️ Health check (anti-cold start)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routes.PipelineDeps{
		EmployeeSync: employeeSync,
		Processor:    processor,
		Orchestrator: orchestrator,
		Analyzer:     analyzer,
		Backfill:     backfill,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
