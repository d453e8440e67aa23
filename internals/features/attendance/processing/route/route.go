package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtrl "absensiku_backend/internals/features/attendance/processing/controller"
	"absensiku_backend/internals/features/attendance/processing/service"
)

// AttendanceReadRoutes: kontrak read-only untuk kolaborator (laporan,
// dashboard). Tidak ada endpoint tulis di sini.
func AttendanceReadRoutes(r fiber.Router, db *gorm.DB, processor *service.Processor) {
	ctrl := attCtrl.NewAttendanceController(db, processor)

	group := r.Group("/attendance")
	group.Get("/", ctrl.List)
	group.Get("/summaries", ctrl.ListSummaries)
}

// AttendanceOpsRoutes: trigger manual siklus processor (operator).
func AttendanceOpsRoutes(r fiber.Router, db *gorm.DB, processor *service.Processor) {
	ctrl := attCtrl.NewAttendanceController(db, processor)

	group := r.Group("/attendance")
	group.Post("/cycle", ctrl.TriggerCycle)
}
