// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gapsRoute "absensiku_backend/internals/features/attendance/gaps/route"
	gapService "absensiku_backend/internals/features/attendance/gaps/service"
	machineRoute "absensiku_backend/internals/features/attendance/machine/route"
	machineService "absensiku_backend/internals/features/attendance/machine/service"
	pollingRoute "absensiku_backend/internals/features/attendance/polling/route"
	pollingService "absensiku_backend/internals/features/attendance/polling/service"
	processingRoute "absensiku_backend/internals/features/attendance/processing/route"
	processingService "absensiku_backend/internals/features/attendance/processing/service"
	"absensiku_backend/internals/middlewares"
	authMiddleware "absensiku_backend/internals/middlewares/auth"
)

// PipelineDeps: service pipeline yang dirakit sekali di main dan dipakai
// bersama oleh routes dan scheduler.
type PipelineDeps struct {
	EmployeeSync *machineService.EmployeeSyncService
	Processor    *processingService.Processor
	Orchestrator *pollingService.Orchestrator
	Analyzer     *gapService.GapAnalyzer
	Backfill     *gapService.BackfillService
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps PipelineDeps) {
	// ===================== READ SURFACE =====================
	// Kontrak read-only untuk modul laporan/dashboard.
	log.Println("[INFO] Setting up READ surface...")
	public := app.Group("/api/u")
	processingRoute.AttendanceReadRoutes(public, db, deps.Processor)

	// ===================== OPERATOR =====================
	log.Println("[INFO] Setting up OPERATOR group (Auth)...")
	ops := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret: os.Getenv("JWT_SECRET"),
		}),
	)
	pollingRoute.PollingQueueRoutes(ops, db, deps.Orchestrator)
	machineRoute.MachineRoutes(ops, deps.EmployeeSync)

	// Trigger kerja berat dibatasi lebih ketat.
	heavy := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret: os.Getenv("JWT_SECRET"),
		}),
		middlewares.HeavyOpsRateLimiter(),
	)
	gapsRoute.GapRoutes(heavy, deps.Analyzer, deps.Backfill)
	processingRoute.AttendanceOpsRoutes(heavy, db, deps.Processor)
}
