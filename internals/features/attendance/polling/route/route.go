package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	queueCtrl "absensiku_backend/internals/features/attendance/polling/controller"
	"absensiku_backend/internals/features/attendance/polling/service"
)

func PollingQueueRoutes(r fiber.Router, db *gorm.DB, orch *service.Orchestrator) {
	ctrl := queueCtrl.NewQueueController(db, orch)

	// =====================
	// Polling Queue
	// =====================
	group := r.Group("/polling-queue")
	group.Post("/", ctrl.Enqueue)                            // enqueue request ingest
	group.Get("/", ctrl.List)                                // list by status (paginated)
	group.Get("/orchestrator/status", ctrl.OrchestratorStatus)
	group.Get("/:id", ctrl.GetById)                          // detail + progress
	group.Post("/:id/cancel", ctrl.Cancel)                   // hanya pending
}
