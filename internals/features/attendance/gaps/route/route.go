package route

import (
	"github.com/gofiber/fiber/v2"

	gapCtrl "absensiku_backend/internals/features/attendance/gaps/controller"
	"absensiku_backend/internals/features/attendance/gaps/service"
)

func GapRoutes(r fiber.Router, analyzer *service.GapAnalyzer, backfill *service.BackfillService) {
	ctrl := gapCtrl.NewGapController(analyzer, backfill)

	// =====================
	// Gap Analysis / Backfill
	// =====================
	group := r.Group("/gaps")
	group.Get("/analysis", ctrl.Analysis)
	group.Post("/backfill", ctrl.RunBackfill)
	group.Get("/backfill/progress", ctrl.BackfillProgress)
}
