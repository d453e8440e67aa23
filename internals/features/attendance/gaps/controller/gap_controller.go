// file: internals/features/attendance/gaps/controller/gap_controller.go
package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"absensiku_backend/internals/features/attendance/gaps/service"
	helper "absensiku_backend/internals/helpers"
)

type GapController struct {
	Analyzer *service.GapAnalyzer
	Backfill *service.BackfillService
}

func NewGapController(analyzer *service.GapAnalyzer, backfill *service.BackfillService) *GapController {
	return &GapController{Analyzer: analyzer, Backfill: backfill}
}

/* ===================== ANALISIS ===================== */
// GET /gaps/analysis
func (ctrl *GapController) Analysis(c *fiber.Ctx) error {
	report, err := ctrl.Analyzer.Analyze()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Analisis gap gagal: "+err.Error())
	}
	return helper.Success(c, "OK", report)
}

/* ===================== BACKFILL ===================== */
// POST /gaps/backfill — jalan di background, progress dipantau lewat
// endpoint progress.
func (ctrl *GapController) RunBackfill(c *fiber.Ctx) error {
	if ctrl.Backfill.Progress().Running {
		return fiber.NewError(fiber.StatusConflict, "Backfill masih berjalan")
	}

	go func() {
		if _, err := ctrl.Backfill.Run(); err != nil {
			log.Printf("[GAP] backfill error: %v", err)
		}
	}()

	return helper.SuccessWithCode(c, fiber.StatusAccepted, "Backfill dimulai", nil)
}

// GET /gaps/backfill/progress
func (ctrl *GapController) BackfillProgress(c *fiber.Ctx) error {
	return helper.Success(c, "OK", ctrl.Backfill.Progress())
}
